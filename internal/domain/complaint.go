package domain

import (
	"strings"
	"time"
)

// ComplaintStatus enumerates lifecycle states for complaints.
type ComplaintStatus string

const (
	StatusPending     ComplaintStatus = "PENDING"
	StatusUnderReview ComplaintStatus = "UNDER_REVIEW"
	StatusInProgress  ComplaintStatus = "IN_PROGRESS"
	StatusResolved    ComplaintStatus = "RESOLVED"
	StatusRejected    ComplaintStatus = "REJECTED"
)

// PriorityLevel enumerates severity labels derived from classifier metrics.
type PriorityLevel string

const (
	PriorityLow      PriorityLevel = "Low"
	PriorityMedium   PriorityLevel = "Medium"
	PriorityHigh     PriorityLevel = "High"
	PriorityCritical PriorityLevel = "Critical"
)

// Department enumerates the responsible-authority categories. The last
// entry is the catch-all used for anything the classifier cannot place.
type Department string

const (
	DepartmentPublicWorks Department = "Public Works"
	DepartmentSanitation  Department = "Sanitation"
	DepartmentUtilities   Department = "Utilities (Water/Electric)"
	DepartmentSecurity    Department = "Security & Police"
	DepartmentHealth      Department = "Public Health"
	DepartmentRoads       Department = "Roads & Transport"
	DepartmentOther       Department = "General Administration"
)

// PriorityMetrics is the urgency/impact/score tuple the classifier produces.
type PriorityMetrics struct {
	Urgency    float64       `json:"urgency"`
	Impact     float64       `json:"impact"`
	FinalScore float64       `json:"finalScore"`
	Level      PriorityLevel `json:"level"`
}

// Complaint is the aggregate for citizen-filed issues. Priority always
// mirrors PriorityMetrics.Level; ResolvedAt and ResolutionTimeHours are set
// only while the complaint is in the RESOLVED state.
type Complaint struct {
	ID                  string          `json:"id"`
	Title               string          `json:"title"`
	Description         string          `json:"description"`
	Status              ComplaintStatus `json:"status"`
	Priority            PriorityLevel   `json:"priority"`
	PriorityMetrics     PriorityMetrics `json:"priorityMetrics"`
	Department          Department      `json:"department"`
	CitizenName         string          `json:"citizenName"`
	CitizenID           string          `json:"citizenId"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
	ResolvedAt          *time.Time      `json:"resolvedAt,omitempty"`
	ResolutionTimeHours *float64        `json:"resolutionTimeHours,omitempty"`
	Tags                []string        `json:"tags"`
	Summary             string          `json:"summary"`
	Location            string          `json:"location"`
	ActionPlan          []string        `json:"actionPlan"`
	CitizenMessage      string          `json:"citizenMessage"`
}

// AllStatuses returns the closed status set in display order.
func AllStatuses() []ComplaintStatus {
	return []ComplaintStatus{StatusPending, StatusUnderReview, StatusInProgress, StatusResolved, StatusRejected}
}

// AllPriorityLevels returns the closed priority set, lowest first.
func AllPriorityLevels() []PriorityLevel {
	return []PriorityLevel{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// AllDepartments returns the closed department set, catch-all last.
func AllDepartments() []Department {
	return []Department{
		DepartmentPublicWorks,
		DepartmentSanitation,
		DepartmentUtilities,
		DepartmentSecurity,
		DepartmentHealth,
		DepartmentRoads,
		DepartmentOther,
	}
}

// ParseStatus validates a status string against the closed set.
func ParseStatus(raw string) (ComplaintStatus, bool) {
	candidate := ComplaintStatus(strings.ToUpper(strings.TrimSpace(raw)))
	for _, status := range AllStatuses() {
		if status == candidate {
			return status, true
		}
	}
	return "", false
}

// ParseDepartment maps a classifier category onto the closed department
// set. Matching is a case-sensitive exact match against canonical values;
// anything else lands in the catch-all.
func ParseDepartment(raw string) Department {
	candidate := Department(raw)
	for _, dept := range AllDepartments() {
		if dept == candidate {
			return dept
		}
	}
	return DepartmentOther
}

// ParsePriorityLevel normalizes a classifier level to title case before
// matching, because the model is not guaranteed to echo exact casing. The
// second return reports whether the input was recognized; unrecognized
// input yields the Medium default.
func ParsePriorityLevel(raw string) (PriorityLevel, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return PriorityMedium, false
	}
	normalized := strings.ToUpper(trimmed[:1]) + strings.ToLower(trimmed[1:])
	candidate := PriorityLevel(normalized)
	for _, level := range AllPriorityLevels() {
		if level == candidate {
			return level, true
		}
	}
	return PriorityMedium, false
}
