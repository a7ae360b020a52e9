package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/civicpulse-service/internal/domain"
	"github.com/spec-kit/civicpulse-service/internal/store"
	apperrors "github.com/spec-kit/civicpulse-service/pkg/util/errorutil"
)

type fakeClassifier struct {
	analysis *domain.Analysis
	err      error
	calls    int
}

func (f *fakeClassifier) Analyze(ctx context.Context, description string) (*domain.Analysis, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	result := *f.analysis
	return &result, nil
}

func streetlightAnalysis() *domain.Analysis {
	return &domain.Analysis{
		Title:          "Streetlight Broken Near School",
		Category:       "Utilities (Water/Electric)",
		Summary:        "A streetlight near the school is not working, making the area unsafe at night.",
		Location:       "School Road, Pune",
		Urgency:        7,
		Impact:         8,
		FinalScore:     7.4,
		Level:          "high",
		ActionPlan:     []string{"Inspect the pole", "Replace the bulb", "Test the light at night"},
		CitizenMessage: "We will send an electrician to fix the light.",
	}
}

func newTestService(t *testing.T, c *fakeClassifier) *TriageService {
	t.Helper()
	complaintStore := store.NewComplaintStore(store.NewMemoryBackend(), zap.NewNop())
	if err := complaintStore.Load(context.Background(), nil); err != nil {
		t.Fatalf("load store: %v", err)
	}
	return NewTriageService(TriageDependencies{
		Store:      complaintStore,
		Classifier: c,
		Logger:     zap.NewNop(),
	})
}

func submitStreetlight(t *testing.T, svc *TriageService) *domain.Complaint {
	t.Helper()
	complaint, err := svc.SubmitComplaint(context.Background(), IntakeInput{
		Title:       "Streetlight broken",
		Description: "Streetlight broken near school, very dark and unsafe",
		CitizenName: "Asha Verma",
		CitizenID:   "CIT-1",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	return complaint
}

func TestSubmitComplaintScenario(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})
	complaint := submitStreetlight(t, svc)

	if complaint.Department != domain.DepartmentUtilities {
		t.Errorf("department = %q, want Utilities", complaint.Department)
	}
	if complaint.Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want High", complaint.Priority)
	}
	if complaint.Status != domain.StatusPending {
		t.Errorf("status = %q, want PENDING", complaint.Status)
	}
	if complaint.ResolutionTimeHours != nil || complaint.ResolvedAt != nil {
		t.Error("new complaint must not carry resolution fields")
	}
	if complaint.Priority != complaint.PriorityMetrics.Level {
		t.Errorf("priority %q diverges from metrics level %q", complaint.Priority, complaint.PriorityMetrics.Level)
	}
	if !complaint.CreatedAt.Equal(complaint.UpdatedAt) {
		t.Error("createdAt and updatedAt must match at intake")
	}
	if !strings.HasPrefix(complaint.ID, "CMP-IND-") {
		t.Errorf("unexpected id format %q", complaint.ID)
	}
	wantTags := []string{"utilities (water/electric)", "report"}
	if len(complaint.Tags) != 2 || complaint.Tags[0] != wantTags[0] || complaint.Tags[1] != wantTags[1] {
		t.Errorf("tags = %v, want %v", complaint.Tags, wantTags)
	}
	// The classifier title wins over the citizen title.
	if complaint.Title != "Streetlight Broken Near School" {
		t.Errorf("title = %q", complaint.Title)
	}
}

func TestSubmitComplaintClampsAndRecomputesScore(t *testing.T) {
	analysis := streetlightAnalysis()
	analysis.Urgency = 14
	analysis.Impact = -3
	analysis.FinalScore = 99

	svc := newTestService(t, &fakeClassifier{analysis: analysis})
	complaint := submitStreetlight(t, svc)

	metrics := complaint.PriorityMetrics
	if metrics.Urgency != 10 || metrics.Impact != 0 {
		t.Errorf("expected clamped metrics, got urgency=%v impact=%v", metrics.Urgency, metrics.Impact)
	}
	if metrics.FinalScore != 6 { // 10*0.6 + 0*0.4, reported 99 is never trusted
		t.Errorf("finalScore = %v, want 6", metrics.FinalScore)
	}
}

func TestSubmitComplaintUnrecognizedCategoryAndLevel(t *testing.T) {
	analysis := streetlightAnalysis()
	analysis.Category = "Space Debris"
	analysis.Level = "catastrophic"

	svc := newTestService(t, &fakeClassifier{analysis: analysis})
	complaint := submitStreetlight(t, svc)

	if complaint.Department != domain.DepartmentOther {
		t.Errorf("department = %q, want catch-all", complaint.Department)
	}
	if complaint.Priority != domain.PriorityMedium {
		t.Errorf("priority = %q, want Medium default", complaint.Priority)
	}
}

func TestSubmitComplaintFallsBackToCitizenTitle(t *testing.T) {
	analysis := streetlightAnalysis()
	analysis.Title = "  "

	svc := newTestService(t, &fakeClassifier{analysis: analysis})
	complaint := submitStreetlight(t, svc)

	if complaint.Title != "Streetlight broken" {
		t.Errorf("title = %q, want citizen title fallback", complaint.Title)
	}
}

func TestSubmitComplaintClassifierFailureAddsNothing(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{err: errors.New("network unreachable")})

	before := len(svc.ListComplaints(""))
	_, err := svc.SubmitComplaint(context.Background(), IntakeInput{
		Title:       "Streetlight broken",
		Description: "Streetlight broken near school",
		CitizenID:   "CIT-1",
	})
	if err == nil {
		t.Fatal("expected classification failure")
	}
	if !apperrors.IsCode(err, "CLASSIFICATION_FAILED") {
		t.Fatalf("unexpected error code: %v", err)
	}
	if got := len(svc.ListComplaints("")); got != before {
		t.Fatalf("collection length changed on failure: %d -> %d", before, got)
	}
}

func TestSubmitComplaintNonFiniteMetricsRejected(t *testing.T) {
	analysis := streetlightAnalysis()
	analysis.Urgency = nan()

	svc := newTestService(t, &fakeClassifier{analysis: analysis})
	_, err := svc.SubmitComplaint(context.Background(), IntakeInput{
		Title:       "Streetlight broken",
		Description: "Streetlight broken near school",
		CitizenID:   "CIT-1",
	})
	if !apperrors.IsCode(err, "CLASSIFICATION_FAILED") {
		t.Fatalf("expected classification failure for NaN metrics, got %v", err)
	}
	if len(svc.ListComplaints("")) != 0 {
		t.Fatal("no record may be created from malformed metrics")
	}
}

func nan() float64 {
	v := 0.0
	return v / v
}

func TestTransitionToResolvedStampsResolutionTime(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})

	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }
	complaint := submitStreetlight(t, svc)

	svc.now = func() time.Time { return t0.Add(18 * time.Hour) }
	if _, err := svc.TransitionStatus(context.Background(), complaint.ID, domain.StatusUnderReview); err != nil {
		t.Fatalf("to under review: %v", err)
	}
	resolved, err := svc.TransitionStatus(context.Background(), complaint.ID, domain.StatusResolved)
	if err != nil {
		t.Fatalf("to resolved: %v", err)
	}

	if resolved.Status != domain.StatusResolved {
		t.Errorf("status = %q", resolved.Status)
	}
	if resolved.ResolvedAt == nil || !resolved.ResolvedAt.Equal(t0.Add(18*time.Hour)) {
		t.Errorf("resolvedAt = %v", resolved.ResolvedAt)
	}
	if resolved.ResolutionTimeHours == nil || *resolved.ResolutionTimeHours != 18 {
		t.Errorf("resolutionTimeHours = %v, want 18", resolved.ResolutionTimeHours)
	}
}

func TestNonResolvedTransitionsNeverSetResolutionFields(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})
	complaint := submitStreetlight(t, svc)

	updated, err := svc.TransitionStatus(context.Background(), complaint.ID, domain.StatusInProgress)
	if err != nil {
		t.Fatalf("transition: %v", err)
	}
	if updated.ResolvedAt != nil || updated.ResolutionTimeHours != nil {
		t.Error("non-resolved transition set resolution fields")
	}
}

func TestReopenClearsResolutionFields(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})
	complaint := submitStreetlight(t, svc)

	mustTransition(t, svc, complaint.ID, domain.StatusUnderReview, domain.StatusResolved)
	reopened, err := svc.TransitionStatus(context.Background(), complaint.ID, domain.StatusUnderReview)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.ResolvedAt != nil || reopened.ResolutionTimeHours != nil {
		t.Error("re-open must clear stale resolution fields")
	}
}

func TestTransitionRefreshesUpdatedAtMonotonically(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})

	t0 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return t0 }
	complaint := submitStreetlight(t, svc)

	previous := complaint.UpdatedAt
	for i, target := range []domain.ComplaintStatus{domain.StatusUnderReview, domain.StatusInProgress, domain.StatusResolved} {
		svc.now = func() time.Time { return t0.Add(time.Duration(i+1) * time.Hour) }
		updated, err := svc.TransitionStatus(context.Background(), complaint.ID, target)
		if err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
		if updated.UpdatedAt.Before(previous) {
			t.Fatalf("updatedAt went backwards: %v < %v", updated.UpdatedAt, previous)
		}
		previous = updated.UpdatedAt
	}
}

func TestDisallowedTransitionIsRejected(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})
	complaint := submitStreetlight(t, svc)

	// PENDING cannot jump straight to RESOLVED.
	_, err := svc.TransitionStatus(context.Background(), complaint.ID, domain.StatusResolved)
	if !apperrors.IsCode(err, "CONFLICT") {
		t.Fatalf("expected conflict, got %v", err)
	}

	stored, getErr := svc.GetComplaint(complaint.ID)
	if getErr != nil {
		t.Fatalf("get: %v", getErr)
	}
	if stored.Status != domain.StatusPending {
		t.Errorf("rejected transition mutated status to %q", stored.Status)
	}
}

func TestConcurrentTransitionsApplyExactlyOnce(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})

	// Race RESOLVED against REJECTED from UNDER_REVIEW repeatedly. Whichever
	// lands first, the other must see a terminal status and get a conflict;
	// both succeeding would be a second hop the table forbids.
	for i := 0; i < 200; i++ {
		complaint := submitStreetlight(t, svc)
		if _, err := svc.TransitionStatus(context.Background(), complaint.ID, domain.StatusUnderReview); err != nil {
			t.Fatalf("setup transition: %v", err)
		}

		start := make(chan struct{})
		results := make(chan error, 2)
		for _, target := range []domain.ComplaintStatus{domain.StatusResolved, domain.StatusRejected} {
			go func(target domain.ComplaintStatus) {
				<-start
				_, err := svc.TransitionStatus(context.Background(), complaint.ID, target)
				results <- err
			}(target)
		}
		close(start)

		var conflicts, successes int
		for j := 0; j < 2; j++ {
			err := <-results
			switch {
			case err == nil:
				successes++
			case apperrors.IsCode(err, "CONFLICT"):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		if successes != 1 || conflicts != 1 {
			t.Fatalf("iteration %d: successes=%d conflicts=%d, want exactly one of each", i, successes, conflicts)
		}

		stored, err := svc.GetComplaint(complaint.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if stored.Status != domain.StatusResolved && stored.Status != domain.StatusRejected {
			t.Fatalf("iteration %d: final status %q", i, stored.Status)
		}
		if stored.Status == domain.StatusRejected && stored.ResolvedAt != nil {
			t.Fatalf("iteration %d: rejected complaint carries resolution fields", i)
		}
	}
}

func TestTransitionUnknownIDIsNotFound(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})
	_, err := svc.TransitionStatus(context.Background(), "CMP-IND-0000", domain.StatusUnderReview)
	if !apperrors.IsCode(err, "NOT_FOUND") {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListComplaintsFiltersByCitizen(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})

	for _, citizenID := range []string{"CIT-1", "CIT-2", "CIT-1"} {
		if _, err := svc.SubmitComplaint(context.Background(), IntakeInput{
			Title:       "Streetlight broken",
			Description: "Streetlight broken near school",
			CitizenID:   citizenID,
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	if got := len(svc.ListComplaints("CIT-1")); got != 2 {
		t.Errorf("citizen view = %d records, want 2", got)
	}
	if got := len(svc.ListComplaints("")); got != 3 {
		t.Errorf("authority view = %d records, want 3", got)
	}
}

func TestGeneratedIDsAreUnique(t *testing.T) {
	svc := newTestService(t, &fakeClassifier{analysis: streetlightAnalysis()})

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		complaint := submitStreetlight(t, svc)
		if seen[complaint.ID] {
			t.Fatalf("duplicate id generated: %s", complaint.ID)
		}
		seen[complaint.ID] = true
	}
}

func mustTransition(t *testing.T, svc *TriageService, id string, targets ...domain.ComplaintStatus) {
	t.Helper()
	for _, target := range targets {
		if _, err := svc.TransitionStatus(context.Background(), id, target); err != nil {
			t.Fatalf("transition to %s: %v", target, err)
		}
	}
}
