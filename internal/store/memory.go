package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// MemoryBackend keeps the snapshot in process memory. Used for tests and
// for running the service without any external store. The snapshot is held
// as the serialized JSON blob so its round-trip behavior matches the
// durable backends exactly.
type MemoryBackend struct {
	mu    sync.Mutex
	blob  []byte
	saved bool
}

// NewMemoryBackend returns an empty backend (no snapshot yet).
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Load(ctx context.Context) ([]domain.Complaint, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.saved {
		return nil, false, nil
	}
	var complaints []domain.Complaint
	if err := json.Unmarshal(b.blob, &complaints); err != nil {
		return nil, false, err
	}
	return complaints, true, nil
}

func (b *MemoryBackend) Save(ctx context.Context, complaints []domain.Complaint) error {
	blob, err := json.Marshal(complaints)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.blob = blob
	b.saved = true
	b.mu.Unlock()
	return nil
}
