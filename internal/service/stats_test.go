package service

import (
	"testing"
	"time"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

func statsFixture() []domain.Complaint {
	created := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolvedAt := created.Add(12 * time.Hour)
	hours12 := 12.0
	hours20 := 20.0

	return []domain.Complaint{
		{
			ID: "CMP-IND-1001", Status: domain.StatusResolved,
			Priority: domain.PriorityHigh, PriorityMetrics: domain.PriorityMetrics{Level: domain.PriorityHigh},
			Department: domain.DepartmentSanitation,
			CreatedAt:  created, UpdatedAt: resolvedAt,
			ResolvedAt: &resolvedAt, ResolutionTimeHours: &hours12,
		},
		{
			ID: "CMP-IND-1002", Status: domain.StatusResolved,
			Priority: domain.PriorityMedium, PriorityMetrics: domain.PriorityMetrics{Level: domain.PriorityMedium},
			Department: domain.DepartmentSanitation,
			CreatedAt:  created, UpdatedAt: resolvedAt,
			ResolvedAt: &resolvedAt, ResolutionTimeHours: &hours20,
		},
		{
			ID: "CMP-IND-1003", Status: domain.StatusPending,
			Priority: domain.PriorityCritical, PriorityMetrics: domain.PriorityMetrics{Level: domain.PriorityCritical},
			Department: domain.DepartmentUtilities,
			CreatedAt:  created, UpdatedAt: created,
		},
		{
			ID: "CMP-IND-1004", Status: domain.StatusInProgress,
			Priority: domain.PriorityLow, PriorityMetrics: domain.PriorityMetrics{Level: domain.PriorityLow},
			Department: domain.DepartmentRoads,
			CreatedAt:  created, UpdatedAt: created,
		},
	}
}

func TestComputeStatsCounts(t *testing.T) {
	stats := ComputeStats(statsFixture())

	if stats.TotalCount != 4 {
		t.Errorf("total = %d, want 4", stats.TotalCount)
	}
	if stats.ResolvedCount != 2 {
		t.Errorf("resolved = %d, want 2", stats.ResolvedCount)
	}
	// High + Critical.
	if stats.HighPriorityCount != 2 {
		t.Errorf("high priority = %d, want 2", stats.HighPriorityCount)
	}
}

func TestComputeStatsCoversEveryDepartmentAndStatus(t *testing.T) {
	stats := ComputeStats(statsFixture())

	if len(stats.ByDepartment) != len(domain.AllDepartments()) {
		t.Fatalf("department breakdown has %d entries", len(stats.ByDepartment))
	}
	if len(stats.ByStatus) != len(domain.AllStatuses()) {
		t.Fatalf("status breakdown has %d entries", len(stats.ByStatus))
	}

	byDept := map[domain.Department]int{}
	for _, entry := range stats.ByDepartment {
		byDept[entry.Department] = entry.Total
	}
	if byDept[domain.DepartmentSanitation] != 2 || byDept[domain.DepartmentUtilities] != 1 || byDept[domain.DepartmentHealth] != 0 {
		t.Errorf("unexpected department totals: %v", byDept)
	}

	byStatus := map[domain.ComplaintStatus]int{}
	for _, entry := range stats.ByStatus {
		byStatus[entry.Status] = entry.Total
	}
	if byStatus[domain.StatusResolved] != 2 || byStatus[domain.StatusPending] != 1 || byStatus[domain.StatusRejected] != 0 {
		t.Errorf("unexpected status totals: %v", byStatus)
	}
}

func TestComputeStatsResolutionSpeed(t *testing.T) {
	stats := ComputeStats(statsFixture())

	byDept := map[domain.Department]DepartmentResolution{}
	for _, entry := range stats.ResolutionSpeed {
		byDept[entry.Department] = entry
	}

	sanitation := byDept[domain.DepartmentSanitation]
	if sanitation.SampleSize != 2 {
		t.Fatalf("sanitation sample size = %d, want 2", sanitation.SampleSize)
	}
	if sanitation.AverageHours != 16 {
		t.Errorf("sanitation average = %v, want 16", sanitation.AverageHours)
	}

	// Departments without resolved records report insufficient data, never
	// a fabricated average.
	utilities := byDept[domain.DepartmentUtilities]
	if utilities.SampleSize != 0 || utilities.AverageHours != 0 {
		t.Errorf("utilities = %+v, want zero sample", utilities)
	}
}

func TestComputeStatsEmptyCollection(t *testing.T) {
	stats := ComputeStats(nil)
	if stats.TotalCount != 0 || stats.ResolvedCount != 0 || stats.HighPriorityCount != 0 {
		t.Errorf("unexpected stats for empty collection: %+v", stats)
	}
	for _, entry := range stats.ResolutionSpeed {
		if entry.SampleSize != 0 {
			t.Errorf("%s reports sample without data", entry.Department)
		}
	}
}
