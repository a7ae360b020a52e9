package classifier

import (
	"encoding/json"
	"fmt"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// Wire shapes mirror the response schema. Pointer fields distinguish a
// missing key from a zero value so schema violations are rejected instead
// of silently defaulted.
type rawEnvelope struct {
	StructuredIssue *rawIssue `json:"structured_issue"`
}

type rawIssue struct {
	Title           *string     `json:"title"`
	Category        *string     `json:"category"`
	Summary         *string     `json:"summary"`
	Location        *string     `json:"location"`
	PriorityMetrics *rawMetrics `json:"priority_metrics"`
	ActionPlan      []string    `json:"authority_action_plan"`
	CitizenMessage  *string     `json:"citizen_message"`
}

type rawMetrics struct {
	Urgency    *float64 `json:"urgency"`
	Impact     *float64 `json:"impact"`
	FinalScore *float64 `json:"final_score"`
	Level      *string  `json:"level"`
}

func parseAnalysis(payload string) (*domain.Analysis, error) {
	var envelope rawEnvelope
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, fmt.Errorf("decode structured issue: %w", err)
	}
	issue := envelope.StructuredIssue
	if issue == nil {
		return nil, fmt.Errorf("response missing structured_issue")
	}
	if issue.Title == nil || issue.Category == nil || issue.Summary == nil ||
		issue.Location == nil || issue.CitizenMessage == nil {
		return nil, fmt.Errorf("structured_issue missing required text fields")
	}
	if issue.ActionPlan == nil {
		return nil, fmt.Errorf("structured_issue missing authority_action_plan")
	}
	metrics := issue.PriorityMetrics
	if metrics == nil {
		return nil, fmt.Errorf("structured_issue missing priority_metrics")
	}
	if metrics.Urgency == nil || metrics.Impact == nil || metrics.FinalScore == nil || metrics.Level == nil {
		return nil, fmt.Errorf("priority_metrics missing required fields")
	}

	return &domain.Analysis{
		Title:          *issue.Title,
		Category:       *issue.Category,
		Summary:        *issue.Summary,
		Location:       *issue.Location,
		Urgency:        *metrics.Urgency,
		Impact:         *metrics.Impact,
		FinalScore:     *metrics.FinalScore,
		Level:          *metrics.Level,
		ActionPlan:     issue.ActionPlan,
		CitizenMessage: *issue.CitizenMessage,
	}, nil
}
