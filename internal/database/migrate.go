package database

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/monsterdex/monsterdex/internal/util"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// upMarker opens the statement section of a migration file. Anything before
// it is a file comment.
const upMarker = "-- +migrate Up"

// ErrChecksumMismatch is returned when an applied migration no longer matches
// the embedded file of the same version.
var ErrChecksumMismatch = errors.New("applied migration differs from the embedded schema")

// Migration is one embedded schema file.
type Migration struct {
	Version   int
	Name      string
	SQL       string
	Applied   bool
	AppliedAt time.Time
}

// Checksum returns the hex SHA-256 of the migration SQL. It is recorded when
// the migration is applied and verified on every later Migrate.
func (m Migration) Checksum() string {
	sum := sha256.Sum256([]byte(m.SQL))
	return hex.EncodeToString(sum[:])
}

// MigrationResult reports what Migrate did.
type MigrationResult struct {
	Applied     []Migration
	FromVersion int
	ToVersion   int
}

type appliedRow struct {
	checksum  string
	appliedAt time.Time
}

// Migrate applies every embedded migration the database has not seen, in
// version order, each in its own transaction. Already applied migrations are
// checked against their recorded checksum.
func Migrate(ctx context.Context, db *DB) (*MigrationResult, error) {
	migrations, err := embeddedMigrations()
	if err != nil {
		return nil, err
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	result := &MigrationResult{FromVersion: highestVersion(applied)}
	result.ToVersion = result.FromVersion

	for _, mig := range migrations {
		if row, ok := applied[mig.Version]; ok {
			if row.checksum != "" && row.checksum != mig.Checksum() {
				return nil, fmt.Errorf("migration %03d %s: %w", mig.Version, mig.Name, ErrChecksumMismatch)
			}
			continue
		}

		slog.Info("applying migration", "version", mig.Version, "name", mig.Name)
		if err := applyMigration(ctx, db, mig); err != nil {
			return result, fmt.Errorf("migration %03d failed: %w", mig.Version, err)
		}

		mig.Applied = true
		mig.AppliedAt = time.Now().UTC()
		result.Applied = append(result.Applied, mig)
		result.ToVersion = mig.Version
	}

	if len(result.Applied) == 0 {
		slog.Debug("snapshot schema is up to date", "version", result.ToVersion)
	}

	return result, nil
}

// Status lists every embedded migration, marking the applied ones.
func Status(ctx context.Context, db *DB) ([]Migration, error) {
	migrations, err := embeddedMigrations()
	if err != nil {
		return nil, err
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	for i := range migrations {
		if row, ok := applied[migrations[i].Version]; ok {
			migrations[i].Applied = true
			migrations[i].AppliedAt = row.appliedAt
		}
	}
	return migrations, nil
}

// embeddedMigrations reads NNN_name.sql files in version order.
func embeddedMigrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		base, ok := strings.CutSuffix(entry.Name(), ".sql")
		if entry.IsDir() || !ok {
			continue
		}

		prefix, name, ok := strings.Cut(base, "_")
		version, err := strconv.Atoi(prefix)
		if !ok || err != nil || len(prefix) != 3 {
			slog.Warn("skipping invalid migration filename", "name", entry.Name())
			continue
		}

		content, err := fs.ReadFile(migrationsFS, path.Join("migrations", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", entry.Name(), err)
		}

		out = append(out, Migration{
			Version: version,
			Name:    strings.ReplaceAll(name, "_", " "),
			SQL:     migrationBody(string(content)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// migrationBody returns the SQL after the up marker, or the whole file when
// there is no marker.
func migrationBody(content string) string {
	if _, body, ok := strings.Cut(content, upMarker); ok {
		return strings.TrimSpace(body)
	}
	return strings.TrimSpace(content)
}

func appliedMigrations(ctx context.Context, db *DB) (map[int]appliedRow, error) {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TEXT NOT NULL DEFAULT (datetime('now')),
			checksum TEXT
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("creating migrations table: %w", err)
	}

	rows, err := db.QueryContext(ctx, "SELECT version, applied_at, COALESCE(checksum, '') FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]appliedRow)
	for rows.Next() {
		var version int
		var at string
		var row appliedRow
		if err := rows.Scan(&version, &at, &row.checksum); err != nil {
			return nil, fmt.Errorf("scanning migration row: %w", err)
		}
		row.appliedAt, _ = util.ParseDateTime(at)
		applied[version] = row
	}

	return applied, rows.Err()
}

func highestVersion(applied map[int]appliedRow) int {
	v := 0
	for version := range applied {
		v = max(v, version)
	}
	return v
}

func applyMigration(ctx context.Context, db *DB, mig Migration) error {
	return db.WithTransaction(ctx, func(tx *sql.Tx) error {
		for _, stmt := range splitStatements(mig.SQL) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("executing statement: %w\nSQL: %s", err, stmt)
			}
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, name, checksum) VALUES (?, ?, ?)",
			mig.Version, mig.Name, mig.Checksum(),
		)
		if err != nil {
			return fmt.Errorf("recording migration: %w", err)
		}
		return nil
	})
}

// splitStatements breaks migration SQL into statements. A statement ends on
// a line whose last character is a semicolon; whole-line comments are
// dropped.
func splitStatements(sqlText string) []string {
	var statements []string
	var current strings.Builder

	flush := func() {
		stmt := strings.TrimSuffix(strings.TrimSpace(current.String()), ";")
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			statements = append(statements, stmt)
		}
		current.Reset()
	}

	for _, line := range strings.Split(sqlText, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")
		if strings.HasSuffix(trimmed, ";") {
			flush()
		}
	}
	flush()

	return statements
}
