// Package sqlite persists computed subcatchments in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/couchcryptid/catchment-param-service/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS subcatchments (
	id             TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL,
	land_form      TEXT NOT NULL,
	land_cover     TEXT NOT NULL,
	area_ha        REAL NOT NULL,
	catchment_type TEXT NOT NULL,
	processed_at   INTEGER NOT NULL,
	result         TEXT NOT NULL,
	request        BLOB
);

CREATE INDEX IF NOT EXISTS idx_subcatchments_processed_at ON subcatchments(processed_at);
CREATE INDEX IF NOT EXISTS idx_subcatchments_run_id ON subcatchments(run_id);
`

const upsert = `
INSERT INTO subcatchments (id, run_id, land_form, land_cover, area_ha, catchment_type, processed_at, result, request)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	run_id         = excluded.run_id,
	land_form      = excluded.land_form,
	land_cover     = excluded.land_cover,
	area_ha        = excluded.area_ha,
	catchment_type = excluded.catchment_type,
	processed_at   = excluded.processed_at,
	result         = excluded.result,
	request        = excluded.request`

// ResultStore keeps the latest result per subcatchment ID.
// It implements pipeline.BatchLoader.
type ResultStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path with WAL journaling and applies
// the schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*ResultStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &ResultStore{db: db, logger: logger}, nil
}

// LoadBatch upserts every result in one transaction tagged with a fresh run ID.
func (s *ResultStore) LoadBatch(ctx context.Context, results []domain.Subcatchment) error {
	if len(results) == 0 {
		return nil
	}
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, upsert)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for i := range results {
		sc := &results[i]
		data, err := json.Marshal(sc)
		if err != nil {
			return fmt.Errorf("serialize subcatchment %s: %w", sc.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			sc.ID, runID, sc.LandForm.String(), sc.LandCover.String(), sc.AreaHa,
			sc.CatchmentType, sc.ProcessedAt.UnixNano(), string(data), sc.RawPayload,
		); err != nil {
			return fmt.Errorf("upsert subcatchment %s: %w", sc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.logger.Debug("subcatchments stored", "count", len(results), "run_id", runID)
	return nil
}

// Get returns the stored result for id, or an error wrapping domain.ErrNotFound.
func (s *ResultStore) Get(ctx context.Context, id string) (domain.Subcatchment, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT result FROM subcatchments WHERE id = ?`, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Subcatchment{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Subcatchment{}, fmt.Errorf("query subcatchment %s: %w", id, err)
	}
	return decodeResult(data)
}

// Recent returns up to limit results, newest first.
func (s *ResultStore) Recent(ctx context.Context, limit int) ([]domain.Subcatchment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT result FROM subcatchments ORDER BY processed_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Subcatchment, 0, limit)
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		sc, err := decodeResult(data)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// RunID reports which LoadBatch call last wrote id.
func (s *ResultStore) RunID(ctx context.Context, id string) (string, error) {
	var runID string
	err := s.db.QueryRowContext(ctx, `SELECT run_id FROM subcatchments WHERE id = ?`, id).Scan(&runID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return runID, err
}

func (s *ResultStore) Close() error {
	return s.db.Close()
}

func decodeResult(data string) (domain.Subcatchment, error) {
	var sc domain.Subcatchment
	if err := json.Unmarshal([]byte(data), &sc); err != nil {
		return domain.Subcatchment{}, fmt.Errorf("decode stored subcatchment: %w", err)
	}
	return sc, nil
}
