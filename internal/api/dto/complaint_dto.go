package dto

import (
	"time"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// SubmitComplaintRequest payload.
type SubmitComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CitizenName string `json:"citizen_name"`
	CitizenID   string `json:"citizen_id"`
}

// UpdateStatusRequest payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// PriorityMetricsResponse mirrors the stored metrics tuple.
type PriorityMetricsResponse struct {
	Urgency    float64              `json:"urgency"`
	Impact     float64              `json:"impact"`
	FinalScore float64              `json:"final_score"`
	Level      domain.PriorityLevel `json:"level"`
}

// ComplaintResponse provides full complaint info.
type ComplaintResponse struct {
	ID                  string                  `json:"id"`
	Title               string                  `json:"title"`
	Description         string                  `json:"description"`
	Status              domain.ComplaintStatus  `json:"status"`
	Priority            domain.PriorityLevel    `json:"priority"`
	PriorityMetrics     PriorityMetricsResponse `json:"priority_metrics"`
	Department          domain.Department       `json:"department"`
	CitizenName         string                  `json:"citizen_name"`
	CitizenID           string                  `json:"citizen_id"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
	ResolvedAt          *time.Time              `json:"resolved_at,omitempty"`
	ResolutionTimeHours *float64                `json:"resolution_time_hours,omitempty"`
	Tags                []string                `json:"tags"`
	Summary             string                  `json:"summary"`
	Location            string                  `json:"location"`
	ActionPlan          []string                `json:"action_plan"`
	CitizenMessage      string                  `json:"citizen_message"`
}

// FromComplaint maps a domain record onto the wire shape.
func FromComplaint(c *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Status:      c.Status,
		Priority:    c.Priority,
		PriorityMetrics: PriorityMetricsResponse{
			Urgency:    c.PriorityMetrics.Urgency,
			Impact:     c.PriorityMetrics.Impact,
			FinalScore: c.PriorityMetrics.FinalScore,
			Level:      c.PriorityMetrics.Level,
		},
		Department:          c.Department,
		CitizenName:         c.CitizenName,
		CitizenID:           c.CitizenID,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
		ResolvedAt:          c.ResolvedAt,
		ResolutionTimeHours: c.ResolutionTimeHours,
		Tags:                c.Tags,
		Summary:             c.Summary,
		Location:            c.Location,
		ActionPlan:          c.ActionPlan,
		CitizenMessage:      c.CitizenMessage,
	}
}
