package events

import (
	"time"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintFiled         EventType = "complaint_filed"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintFiledPayload payload.
type ComplaintFiledPayload struct {
	Department     domain.Department    `json:"department"`
	Priority       domain.PriorityLevel `json:"priority"`
	Title          string               `json:"title"`
	CitizenID      string               `json:"citizen_id"`
	CitizenMessage string               `json:"citizen_message"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus           domain.ComplaintStatus `json:"old_status"`
	NewStatus           domain.ComplaintStatus `json:"new_status"`
	CitizenID           string                 `json:"citizen_id"`
	ResolutionTimeHours *float64               `json:"resolution_time_hours,omitempty"`
}
