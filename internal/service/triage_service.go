package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/civicpulse-service/internal/classifier"
	"github.com/spec-kit/civicpulse-service/internal/domain"
	"github.com/spec-kit/civicpulse-service/internal/events"
	"github.com/spec-kit/civicpulse-service/internal/observability"
	"github.com/spec-kit/civicpulse-service/internal/store"
	apperrors "github.com/spec-kit/civicpulse-service/pkg/util/errorutil"
)

const idPrefix = "CMP-IND-"

// allowedTransitions defines the status machine. Arbitrary jumps are not
// permitted: RESOLVED and REJECTED can only be re-opened through
// UNDER_REVIEW.
var allowedTransitions = map[domain.ComplaintStatus][]domain.ComplaintStatus{
	domain.StatusPending:     {domain.StatusUnderReview, domain.StatusInProgress, domain.StatusRejected},
	domain.StatusUnderReview: {domain.StatusInProgress, domain.StatusResolved, domain.StatusRejected},
	domain.StatusInProgress:  {domain.StatusUnderReview, domain.StatusResolved, domain.StatusRejected},
	domain.StatusResolved:    {domain.StatusUnderReview},
	domain.StatusRejected:    {domain.StatusUnderReview},
}

// TriageService coordinates the complaint intake pipeline and the
// authority-side operations.
type TriageService struct {
	store      *store.ComplaintStore
	classifier classifier.Classifier
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics

	// now is swappable so resolution timing is testable.
	now func() time.Time
}

// TriageDependencies bundles collaborators for the service.
type TriageDependencies struct {
	Store      *store.ComplaintStore
	Classifier classifier.Classifier
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewTriageService constructs the service.
func NewTriageService(deps TriageDependencies) *TriageService {
	return &TriageService{
		store:      deps.Store,
		classifier: deps.Classifier,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		now:        time.Now,
	}
}

// SubmitComplaint runs the intake pipeline: classify the description,
// normalize the untrusted result into a record, prepend it to the
// collection, and mirror the snapshot. A classifier failure leaves the
// collection untouched.
func (s *TriageService) SubmitComplaint(ctx context.Context, input IntakeInput) (*domain.Complaint, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}

	started := s.now()
	analysis, err := s.classifier.Analyze(ctx, input.Description)
	if err != nil {
		s.metrics.RecordClassifierCall("failure", s.now().Sub(started))
		s.logger.Warn("classification failed", zap.Error(err))
		return nil, apperrors.NewClassificationFailed(err)
	}
	s.metrics.RecordClassifierCall("success", s.now().Sub(started))

	complaint, err := normalize(analysis, input, s.generateComplaintID(), s.now())
	if err != nil {
		return nil, apperrors.NewClassificationFailed(err)
	}

	if err := s.store.Add(ctx, complaint); err != nil {
		// The in-memory record stands; losing the mirror write is a
		// durability warning, not a submission failure.
		s.logger.Warn("snapshot write failed after intake", zap.String("complaint_id", complaint.ID), zap.Error(err))
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintFiled,
		ComplaintID: complaint.ID,
		Payload: events.ComplaintFiledPayload{
			Department:     complaint.Department,
			Priority:       complaint.Priority,
			Title:          complaint.Title,
			CitizenID:      complaint.CitizenID,
			CitizenMessage: complaint.CitizenMessage,
		},
	})
	return &complaint, nil
}

// TransitionStatus moves a complaint to a new status. Moving into RESOLVED
// stamps resolvedAt and fixes resolutionTimeHours; re-opening clears both.
func (s *TriageService) TransitionStatus(ctx context.Context, id string, target domain.ComplaintStatus) (*domain.Complaint, error) {
	now := s.now()
	var oldStatus domain.ComplaintStatus
	var transitionErr error
	updated, found, saveErr := s.store.Update(ctx, id, func(c *domain.Complaint) error {
		// Validated under the store's write lock so two concurrent
		// transitions cannot both pass against the same stale status.
		if !isValidTransition(c.Status, target) {
			transitionErr = apperrors.NewConflict(
				fmt.Sprintf("cannot move complaint from %s to %s", c.Status, target),
				map[string]any{"from": c.Status, "to": target},
			)
			return transitionErr
		}
		oldStatus = c.Status
		c.Status = target
		c.UpdatedAt = now
		switch {
		case target == domain.StatusResolved:
			resolvedAt := now
			hours := resolvedAt.Sub(c.CreatedAt).Hours()
			c.ResolvedAt = &resolvedAt
			c.ResolutionTimeHours = &hours
		case oldStatus == domain.StatusResolved:
			c.ResolvedAt = nil
			c.ResolutionTimeHours = nil
		}
		return nil
	})
	if !found {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	if transitionErr != nil {
		return nil, transitionErr
	}
	if saveErr != nil {
		s.logger.Warn("snapshot write failed after status change", zap.String("complaint_id", id), zap.Error(saveErr))
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintStatusChanged,
		ComplaintID: updated.ID,
		Payload: events.ComplaintStatusChangedPayload{
			OldStatus:           oldStatus,
			NewStatus:           updated.Status,
			CitizenID:           updated.CitizenID,
			ResolutionTimeHours: updated.ResolutionTimeHours,
		},
	})
	return &updated, nil
}

// ListComplaints returns the collection newest-first, optionally filtered
// to one citizen (the citizen view).
func (s *TriageService) ListComplaints(citizenID string) []domain.Complaint {
	all := s.store.All()
	if citizenID == "" {
		return all
	}
	filtered := make([]domain.Complaint, 0, len(all))
	for _, c := range all {
		if c.CitizenID == citizenID {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// GetComplaint fetches one record by id.
func (s *TriageService) GetComplaint(id string) (*domain.Complaint, error) {
	complaint, ok := s.store.Get(id)
	if !ok {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
	}
	return &complaint, nil
}

// Stats computes the dashboard aggregates from the current collection.
func (s *TriageService) Stats() DashboardStats {
	return ComputeStats(s.store.All())
}

// generateComplaintID produces the CMP-IND-<4 digits> identifier, re-rolling
// on collision. After too many collisions it falls back to a uuid suffix so
// uniqueness always holds.
func (s *TriageService) generateComplaintID() string {
	for attempt := 0; attempt < 100; attempt++ {
		id := fmt.Sprintf("%s%d", idPrefix, rand.Intn(9000)+1000)
		if !s.store.Exists(id) {
			return id
		}
	}
	return idPrefix + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func isValidTransition(current, next domain.ComplaintStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func (s *TriageService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
