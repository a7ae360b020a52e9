package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// SnapshotBackend persists the whole complaint collection as one ordered
// snapshot. Load reports found=false when no snapshot has ever been
// written, which is distinct from an existing empty collection.
type SnapshotBackend interface {
	Load(ctx context.Context) (complaints []domain.Complaint, found bool, err error)
	Save(ctx context.Context, complaints []domain.Complaint) error
}

// ComplaintStore is the in-memory ordered collection, newest-first. Every
// mutation replaces the slice wholesale and mirrors it to the backend.
// Memory stays the source of truth within a process; a failed mirror write
// is returned to the caller so it can be logged, never applied partially.
type ComplaintStore struct {
	mu         sync.RWMutex
	complaints []domain.Complaint
	backend    SnapshotBackend
	logger     *zap.Logger
}

// NewComplaintStore constructs a store over the given backend.
func NewComplaintStore(backend SnapshotBackend, logger *zap.Logger) *ComplaintStore {
	return &ComplaintStore{
		backend: backend,
		logger:  logger,
	}
}

// Load hydrates the store from the backend, falling back to the seed
// dataset when no snapshot exists. Called once at startup.
func (s *ComplaintStore) Load(ctx context.Context, seed []domain.Complaint) error {
	complaints, found, err := s.backend.Load(ctx)
	if err != nil {
		return err
	}
	if !found {
		s.logger.Info("no complaint snapshot found, seeding demo dataset", zap.Int("count", len(seed)))
		complaints = append([]domain.Complaint{}, seed...)
		if err := s.backend.Save(ctx, complaints); err != nil {
			s.logger.Warn("failed to persist seed snapshot", zap.Error(err))
		}
	}
	s.mu.Lock()
	s.complaints = complaints
	s.mu.Unlock()
	return nil
}

// All returns a copy of the collection, newest-first.
func (s *ComplaintStore) All() []domain.Complaint {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Complaint{}, s.complaints...)
}

// Get returns the complaint with the given id.
func (s *ComplaintStore) Get(id string) (domain.Complaint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.complaints {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Complaint{}, false
}

// Exists reports whether an id is already taken.
func (s *ComplaintStore) Exists(id string) bool {
	_, ok := s.Get(id)
	return ok
}

// Len returns the collection size.
func (s *ComplaintStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.complaints)
}

// Add prepends a new complaint. The returned error reports a snapshot
// write failure only; the in-memory mutation always applies.
func (s *ComplaintStore) Add(ctx context.Context, complaint domain.Complaint) error {
	s.mu.Lock()
	next := make([]domain.Complaint, 0, len(s.complaints)+1)
	next = append(next, complaint)
	next = append(next, s.complaints...)
	s.complaints = next
	snapshot := append([]domain.Complaint{}, next...)
	s.mu.Unlock()

	return s.backend.Save(ctx, snapshot)
}

// Update applies transform to the complaint with the given id under the
// write lock and mirrors the new collection. The transform sees the
// current record, so callers can validate against it without a stale
// read; a transform error aborts the update with nothing applied and is
// returned as-is. Otherwise the returned error reports a snapshot write
// failure only.
func (s *ComplaintStore) Update(ctx context.Context, id string, transform func(*domain.Complaint) error) (domain.Complaint, bool, error) {
	s.mu.Lock()
	index := -1
	for i := range s.complaints {
		if s.complaints[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		s.mu.Unlock()
		return domain.Complaint{}, false, nil
	}

	next := append([]domain.Complaint{}, s.complaints...)
	if err := transform(&next[index]); err != nil {
		s.mu.Unlock()
		return domain.Complaint{}, true, err
	}
	updated := next[index]
	s.complaints = next
	snapshot := append([]domain.Complaint{}, next...)
	s.mu.Unlock()

	return updated, true, s.backend.Save(ctx, snapshot)
}
