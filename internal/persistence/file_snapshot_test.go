package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

func TestFileSnapshotBackendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "complaints.json")
	backend := NewFileSnapshotBackend(path)

	if _, found, err := backend.Load(context.Background()); err != nil || found {
		t.Fatalf("fresh backend: found=%v err=%v", found, err)
	}

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	complaints := []domain.Complaint{
		{
			ID:          "CMP-IND-1234",
			Title:       "Overflowing bin",
			Description: "The bin at the corner has been overflowing for days.",
			Status:      domain.StatusPending,
			Priority:    domain.PriorityMedium,
			PriorityMetrics: domain.PriorityMetrics{
				Urgency: 4, Impact: 5, FinalScore: 4.4, Level: domain.PriorityMedium,
			},
			Department:     domain.DepartmentSanitation,
			CitizenName:    "Ravi Kumar",
			CitizenID:      "CIT-9",
			CreatedAt:      created,
			UpdatedAt:      created,
			Tags:           []string{"sanitation", "report"},
			Summary:        "Bin overflowing at the street corner.",
			Location:       "MG Road, Kochi",
			ActionPlan:     []string{"Send a collection truck"},
			CitizenMessage: "A truck will clear the bin today.",
		},
	}

	if err := backend.Save(context.Background(), complaints); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, found, err := backend.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected snapshot to exist after save")
	}
	if len(loaded) != 1 || loaded[0].ID != "CMP-IND-1234" {
		t.Fatalf("unexpected reload: %+v", loaded)
	}
	if loaded[0].Department != domain.DepartmentSanitation || loaded[0].Priority != domain.PriorityMedium {
		t.Errorf("enum fields did not survive round trip: %+v", loaded[0])
	}
	if !loaded[0].CreatedAt.Equal(created) {
		t.Errorf("createdAt = %v, want %v", loaded[0].CreatedAt, created)
	}
}

func TestFileSnapshotBackendOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "complaints.json")
	backend := NewFileSnapshotBackend(path)

	if err := backend.Save(context.Background(), []domain.Complaint{{ID: "CMP-IND-1111"}}); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := backend.Save(context.Background(), []domain.Complaint{}); err != nil {
		t.Fatalf("second save: %v", err)
	}

	loaded, found, err := backend.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty snapshot after overwrite, got %d", len(loaded))
	}
}
