package dataset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"cna/internal/workforce/models"
	"cna/pkg/platform/sentinel"
)

// Postgres persists datasets in PostgreSQL. Record collections are stored as
// JSONB because datasets are read and written wholesale; no query ever
// addresses an individual row.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed dataset store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the datasets table if it does not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS datasets (
			id                 TEXT PRIMARY KEY,
			label              TEXT NOT NULL DEFAULT '',
			imported_at        TIMESTAMPTZ NOT NULL,
			raw_response_count INTEGER NOT NULL DEFAULT 0,
			establishment      JSONB NOT NULL,
			officers           JSONB NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("migrate datasets table: %w", err)
	}
	return nil
}

func (s *Postgres) Create(ctx context.Context, dataset *models.Dataset) error {
	establishment, err := json.Marshal(dataset.Establishment)
	if err != nil {
		return fmt.Errorf("marshal establishment: %w", err)
	}
	officers, err := json.Marshal(dataset.Officers)
	if err != nil {
		return fmt.Errorf("marshal officers: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO datasets (id, label, imported_at, raw_response_count, establishment, officers)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		dataset.ID, dataset.Label, dataset.ImportedAt, dataset.RawResponseCount,
		establishment, officers,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert dataset: %w", err)
	}
	return nil
}

func (s *Postgres) Get(ctx context.Context, id string) (*models.Dataset, error) {
	var (
		dataset       models.Dataset
		establishment []byte
		officers      []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, label, imported_at, raw_response_count, establishment, officers
		FROM datasets WHERE id = $1`, id).
		Scan(&dataset.ID, &dataset.Label, &dataset.ImportedAt, &dataset.RawResponseCount,
			&establishment, &officers)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select dataset: %w", err)
	}

	if err := json.Unmarshal(establishment, &dataset.Establishment); err != nil {
		return nil, fmt.Errorf("unmarshal establishment: %w", err)
	}
	if err := json.Unmarshal(officers, &dataset.Officers); err != nil {
		return nil, fmt.Errorf("unmarshal officers: %w", err)
	}
	return &dataset, nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, label, imported_at, raw_response_count
		FROM datasets ORDER BY imported_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	out := []models.Dataset{}
	for rows.Next() {
		var d models.Dataset
		if err := rows.Scan(&d.ID, &d.Label, &d.ImportedAt, &d.RawResponseCount); err != nil {
			return nil, fmt.Errorf("scan dataset row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Postgres) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
