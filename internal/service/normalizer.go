package service

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// ErrBadMetrics reports non-numeric priority metrics in an otherwise
// well-formed classifier response.
var ErrBadMetrics = errors.New("classifier metrics are not finite numbers")

// IntakeInput is the citizen-supplied part of a new complaint.
type IntakeInput struct {
	Title       string
	Description string
	CitizenName string
	CitizenID   string
}

// normalize converts untrusted classifier output plus citizen input into a
// valid complaint record. Category and level strings fall back to their
// defined defaults; numeric metrics are clamped to [0,10] and the final
// score is recomputed rather than trusted.
func normalize(analysis *domain.Analysis, input IntakeInput, id string, now time.Time) (domain.Complaint, error) {
	if !isFinite(analysis.Urgency) || !isFinite(analysis.Impact) {
		return domain.Complaint{}, ErrBadMetrics
	}

	title := strings.TrimSpace(analysis.Title)
	if title == "" {
		title = strings.TrimSpace(input.Title)
	}

	department := domain.ParseDepartment(analysis.Category)
	level, _ := domain.ParsePriorityLevel(analysis.Level)

	urgency := clamp(analysis.Urgency, 0, 10)
	impact := clamp(analysis.Impact, 0, 10)
	finalScore := urgency*0.6 + impact*0.4

	return domain.Complaint{
		ID:          id,
		Title:       title,
		Description: input.Description,
		Status:      domain.StatusPending,
		Priority:    level,
		PriorityMetrics: domain.PriorityMetrics{
			Urgency:    urgency,
			Impact:     impact,
			FinalScore: finalScore,
			Level:      level,
		},
		Department:     department,
		CitizenName:    input.CitizenName,
		CitizenID:      input.CitizenID,
		CreatedAt:      now,
		UpdatedAt:      now,
		Tags:           []string{strings.ToLower(string(department)), "report"},
		Summary:        analysis.Summary,
		Location:       analysis.Location,
		ActionPlan:     analysis.ActionPlan,
		CitizenMessage: analysis.CitizenMessage,
	}, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
