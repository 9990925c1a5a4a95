// Package export writes a built catalog into the SQLite snapshot database.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/monsterdex/monsterdex/internal/catalog"
	"github.com/monsterdex/monsterdex/internal/database"
	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/repository"
	"github.com/monsterdex/monsterdex/internal/util"
)

// Service provides catalog export operations.
type Service struct {
	db        *database.DB
	creatures *repository.CreatureRepository
	runs      *repository.ExportRunRepository
	now       func() time.Time
}

// NewService creates a new export service. The database must already be
// migrated.
func NewService(db *database.DB, tax *models.Taxonomy) *Service {
	return &Service{
		db:        db,
		creatures: repository.NewCreatureRepository(db.DB, tax),
		runs:      repository.NewExportRunRepository(db.DB),
		now:       time.Now,
	}
}

// Export replaces the stored snapshot with the contents of cat and records
// the run. Everything happens in one transaction; a failed export leaves the
// previous snapshot in place.
func (s *Service) Export(ctx context.Context, cat *catalog.Catalog, sourceDir string) (*models.ExportRun, error) {
	run := &models.ExportRun{
		ID:              util.NewID(),
		ExportedAt:      s.now().UTC(),
		SourceDir:       sourceDir,
		CreatureCount:   cat.Len(),
		UnresolvedCount: len(cat.Unresolved()),
	}

	err := s.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.creatures.DeleteAll(ctx, tx); err != nil {
			return err
		}

		position := 0
		for c := range cat.Creatures() {
			if err := s.creatures.Create(ctx, tx, c, position); err != nil {
				return err
			}
			position++
		}

		for parent, children := range cat.UsageEntries() {
			if err := s.creatures.SetProduces(ctx, tx, parent, children); err != nil {
				return err
			}
		}

		for child, parents := range cat.ParentEntries() {
			if err := s.creatures.SetParents(ctx, tx, child, parents); err != nil {
				return err
			}
		}

		return s.runs.Create(ctx, tx, run)
	})
	if err != nil {
		return nil, fmt.Errorf("exporting catalog: %w", err)
	}

	slog.Info("catalog exported",
		"run", run.ID,
		"path", s.db.Path(),
		"creatures", run.CreatureCount,
		"unresolved", run.UnresolvedCount,
	)

	return run, nil
}

// Summary describes the stored snapshot.
type Summary struct {
	Latest    *models.ExportRun
	Creatures int
	ByFamily  map[models.Family]int
}

// Summary reports the latest export run and the stored creature counts.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	latest, err := s.runs.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading latest export: %w", err)
	}

	n, err := s.creatures.Count(ctx)
	if err != nil {
		return nil, err
	}

	byFamily, err := s.creatures.CountByFamily(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Latest:    latest,
		Creatures: n,
		ByFamily:  byFamily,
	}, nil
}
