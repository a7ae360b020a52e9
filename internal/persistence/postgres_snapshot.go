package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/civicpulse-service/internal/domain"
)

// PostgresSnapshotBackend stores the complaint collection as a single
// JSONB row keyed by slot name in the complaint_snapshots table.
type PostgresSnapshotBackend struct {
	pool *pgxpool.Pool
	slot string
}

// NewPostgresSnapshotBackend wraps an existing pool.
func NewPostgresSnapshotBackend(pg *Postgres, slot string) (*PostgresSnapshotBackend, error) {
	if pg == nil || pg.Pool == nil {
		return nil, ErrNotConfigured
	}
	return &PostgresSnapshotBackend{pool: pg.Pool, slot: slot}, nil
}

func (b *PostgresSnapshotBackend) Load(ctx context.Context) ([]domain.Complaint, bool, error) {
	const query = `SELECT data FROM complaint_snapshots WHERE slot=$1`
	var blob []byte
	err := b.pool.QueryRow(ctx, query, b.slot).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot slot %q: %w", b.slot, err)
	}
	var complaints []domain.Complaint
	if err := json.Unmarshal(blob, &complaints); err != nil {
		return nil, false, fmt.Errorf("decode snapshot slot %q: %w", b.slot, err)
	}
	return complaints, true, nil
}

func (b *PostgresSnapshotBackend) Save(ctx context.Context, complaints []domain.Complaint) error {
	blob, err := json.Marshal(complaints)
	if err != nil {
		return fmt.Errorf("encode snapshot slot %q: %w", b.slot, err)
	}
	const query = `
        INSERT INTO complaint_snapshots (slot, data, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (slot) DO UPDATE SET data=EXCLUDED.data, updated_at=NOW()`
	if _, err := b.pool.Exec(ctx, query, b.slot, blob); err != nil {
		return fmt.Errorf("save snapshot slot %q: %w", b.slot, err)
	}
	return nil
}
