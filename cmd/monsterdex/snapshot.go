package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/monsterdex/monsterdex/internal/config"
	"github.com/monsterdex/monsterdex/internal/database"
	"github.com/monsterdex/monsterdex/internal/models"
	"github.com/monsterdex/monsterdex/internal/services/export"
	"github.com/monsterdex/monsterdex/internal/util"
)

// snapshot is an open, migrated snapshot database.
type snapshot struct {
	db   *database.DB
	path string
	svc  *export.Service
}

func (s *snapshot) Close() {
	slog.Debug("closing database", "path", s.path)
	if err := s.db.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

// openSnapshot opens the configured snapshot database and brings its schema
// up to date. With mustExist set, a missing file is an error instead of a
// fresh database.
func openSnapshot(ctx context.Context, cfg *config.Config, override string, tax *models.Taxonomy, mustExist bool) (*snapshot, error) {
	if override != "" {
		cfg.Database.Path = override
	}
	path, err := config.DatabasePath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolving database path: %w", err)
	}

	if mustExist {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("no snapshot at %s (run `monsterdex export` first)", path)
		}
	}

	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	result, err := database.Migrate(ctx, db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	if len(result.Applied) > 0 {
		slog.Info("applied migrations",
			"count", len(result.Applied),
			"from_version", result.FromVersion,
			"to_version", result.ToVersion,
		)
	}

	if tax == nil {
		tax = models.DefaultTaxonomy()
	}
	return &snapshot{db: db, path: path, svc: export.NewService(db, tax)}, nil
}

// writeStatus prints the snapshot file, its schema and the recorded exports.
func writeStatus(w io.Writer, st *export.Status) {
	fmt.Fprintf(w, "Snapshot: %s\n", st.Stats.Path)
	fmt.Fprintf(w, "  size:     %d bytes (%d pages of %d)\n", st.Stats.SizeBytes, st.Stats.PageCount, st.Stats.PageSize)
	fmt.Fprintf(w, "  journal:  %s\n", st.Stats.JournalMode)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Schema:")
	for _, m := range st.Migrations {
		state := "pending"
		if m.Applied {
			state = "applied " + util.FormatDateTime(m.AppliedAt)
		}
		fmt.Fprintf(w, "  %03d %-20s %s\n", m.Version, m.Name, state)
	}
	fmt.Fprintln(w)

	if len(st.Runs) == 0 {
		fmt.Fprintln(w, "No exports recorded.")
		return
	}

	fmt.Fprintf(w, "Exports (%d):\n", len(st.Runs))
	for _, run := range st.Runs {
		fmt.Fprintf(w, "  %s  %s  %3d creature(s)  %d unresolved  %s\n",
			util.ShortID(run.ID),
			util.FormatDateTime(run.ExportedAt),
			run.CreatureCount,
			run.UnresolvedCount,
			run.SourceDir,
		)
	}
}
