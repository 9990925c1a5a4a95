package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/util"
)

// ExportRunRepository handles the export history.
type ExportRunRepository struct {
	db *sql.DB
}

// NewExportRunRepository creates a new export run repository.
func NewExportRunRepository(db *sql.DB) *ExportRunRepository {
	return &ExportRunRepository{db: db}
}

// Create records an export run.
func (r *ExportRunRepository) Create(ctx context.Context, tx *sql.Tx, run *models.ExportRun) error {
	if run.ID == "" {
		return errors.New("validation failed: id is required")
	}

	var ex execer = r.db
	if tx != nil {
		ex = tx
	}

	_, err := ex.ExecContext(ctx,
		`INSERT INTO export_runs (id, exported_at, source_dir, creature_count, unresolved_count) VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		util.FormatDateTime(run.ExportedAt),
		run.SourceDir,
		run.CreatureCount,
		run.UnresolvedCount,
	)
	if err != nil {
		return fmt.Errorf("inserting export run: %w", err)
	}

	return nil
}

// Latest returns the most recent export run.
func (r *ExportRunRepository) Latest(ctx context.Context) (*models.ExportRun, error) {
	runs, err := r.list(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("export run: %w", ErrNotFound)
	}
	return runs[0], nil
}

// List returns every export run, newest first.
func (r *ExportRunRepository) List(ctx context.Context) ([]*models.ExportRun, error) {
	return r.list(ctx, -1)
}

func (r *ExportRunRepository) list(ctx context.Context, limit int) ([]*models.ExportRun, error) {
	// UUIDv7 ids break ties between runs in the same second.
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, exported_at, source_dir, creature_count, unresolved_count
		FROM export_runs ORDER BY exported_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing export runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.ExportRun
	for rows.Next() {
		run := &models.ExportRun{}
		var exportedAt string
		if err := rows.Scan(&run.ID, &exportedAt, &run.SourceDir, &run.CreatureCount, &run.UnresolvedCount); err != nil {
			return nil, fmt.Errorf("scanning export run: %w", err)
		}
		if run.ExportedAt, err = util.ParseDateTime(exportedAt); err != nil {
			return nil, fmt.Errorf("parsing exported_at: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}
