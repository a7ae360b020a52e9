package service

import (
	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// DashboardStats is the derived, read-only aggregate view. Recomputed on
// every read; nothing here is persisted.
type DashboardStats struct {
	TotalCount        int                    `json:"total_count"`
	ResolvedCount     int                    `json:"resolved_count"`
	HighPriorityCount int                    `json:"high_priority_count"`
	ByDepartment      []DepartmentCount      `json:"by_department"`
	ByStatus          []StatusCount          `json:"by_status"`
	ResolutionSpeed   []DepartmentResolution `json:"resolution_speed"`
}

// DepartmentCount is one bar of the category breakdown.
type DepartmentCount struct {
	Department domain.Department `json:"department"`
	Total      int               `json:"total"`
}

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Status domain.ComplaintStatus `json:"status"`
	Total  int                    `json:"total"`
}

// DepartmentResolution reports average resolution hours among resolved
// records. SampleSize 0 means insufficient data; AverageHours is then
// meaningless and must not be displayed as a real number.
type DepartmentResolution struct {
	Department   domain.Department `json:"department"`
	AverageHours float64           `json:"average_hours"`
	SampleSize   int               `json:"sample_size"`
}

// ComputeStats derives the dashboard aggregates from a collection.
func ComputeStats(complaints []domain.Complaint) DashboardStats {
	stats := DashboardStats{TotalCount: len(complaints)}

	deptTotals := make(map[domain.Department]int)
	statusTotals := make(map[domain.ComplaintStatus]int)
	resolvedHours := make(map[domain.Department][]float64)

	for _, c := range complaints {
		deptTotals[c.Department]++
		statusTotals[c.Status]++
		if c.Status == domain.StatusResolved {
			stats.ResolvedCount++
			if c.ResolutionTimeHours != nil {
				resolvedHours[c.Department] = append(resolvedHours[c.Department], *c.ResolutionTimeHours)
			}
		}
		if c.Priority == domain.PriorityHigh || c.Priority == domain.PriorityCritical {
			stats.HighPriorityCount++
		}
	}

	for _, dept := range domain.AllDepartments() {
		stats.ByDepartment = append(stats.ByDepartment, DepartmentCount{
			Department: dept,
			Total:      deptTotals[dept],
		})

		hours := resolvedHours[dept]
		resolution := DepartmentResolution{Department: dept, SampleSize: len(hours)}
		if len(hours) > 0 {
			var sum float64
			for _, h := range hours {
				sum += h
			}
			resolution.AverageHours = sum / float64(len(hours))
		}
		stats.ResolutionSpeed = append(stats.ResolutionSpeed, resolution)
	}

	for _, status := range domain.AllStatuses() {
		stats.ByStatus = append(stats.ByStatus, StatusCount{
			Status: status,
			Total:  statusTotals[status],
		})
	}

	return stats
}
