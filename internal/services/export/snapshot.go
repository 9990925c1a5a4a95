package export

import (
	"context"
	"fmt"

	"github.com/monsterdex/monsterdex/internal/database"
	"github.com/monsterdex/monsterdex/internal/models"
)

// Status describes the snapshot file without touching its contents.
type Status struct {
	Migrations []database.Migration
	Runs       []*models.ExportRun
	Stats      *database.Stats
}

// Status reports the schema migrations, every recorded export run (newest
// first) and the file statistics.
func (s *Service) Status(ctx context.Context) (*Status, error) {
	migrations, err := database.Status(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("reading migration status: %w", err)
	}

	runs, err := s.runs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing export runs: %w", err)
	}

	stats, err := s.db.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	return &Status{Migrations: migrations, Runs: runs, Stats: stats}, nil
}

// Lookup reads one creature back from the snapshot, with its resistances
// and breeding relations. Names match case-insensitively.
func (s *Service) Lookup(ctx context.Context, name string) (*models.Creature, error) {
	return s.creatures.GetByName(ctx, name)
}

// ListFamily returns one page of the stored creatures of a family, in
// export order.
func (s *Service) ListFamily(ctx context.Context, family models.Family, page models.Pagination) (*models.CreatureList, error) {
	return s.creatures.List(ctx, models.CreatureFilter{Family: &family}, page)
}
