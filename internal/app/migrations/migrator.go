package migrations

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

const trackingTable = "schema_migrations"

// Migrator applies numbered SQL files once each, recording them in schema_migrations.
type Migrator struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewMigrator creates a new migrator
func NewMigrator(db *pgxpool.Pool) *Migrator {
	return &Migrator{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (m *Migrator) ensureTrackingTable(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS `+trackingTable+` (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// Applied returns the set of recorded versions.
func (m *Migrator) Applied(ctx context.Context) (map[string]bool, error) {
	if err := m.ensureTrackingTable(ctx); err != nil {
		return nil, err
	}

	sql, args, err := m.sb.Select("version").From(trackingTable).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}
	rows, err := m.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// VersionOf extracts the version prefix from a migration filename (e.g., "001_init.sql" => "001")
func VersionOf(filePath string) string {
	return strings.SplitN(filepath.Base(filePath), "_", 2)[0]
}

// SQLFiles lists the *.sql files of a directory in execution order.
func SQLFiles(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Pending filters files down to those whose version is not in applied.
func Pending(files []string, applied map[string]bool) []string {
	var out []string
	for _, f := range files {
		if !applied[VersionOf(f)] {
			out = append(out, f)
		}
	}
	return out
}

// MigrateFromDirectory applies every pending SQL file of dirPath in order.
func (m *Migrator) MigrateFromDirectory(ctx context.Context, dirPath string) error {
	files, err := SQLFiles(dirPath)
	if err != nil {
		return err
	}
	applied, err := m.Applied(ctx)
	if err != nil {
		return err
	}

	pending := Pending(files, applied)
	if len(pending) == 0 {
		logger.Debug().Int("applied", len(applied)).Msg("Schema is up to date")
		return nil
	}
	for _, f := range pending {
		if err := m.apply(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

// apply runs one file and records its version in the same transaction.
func (m *Migrator) apply(ctx context.Context, filePath string) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}
	version := VersionOf(filePath)
	logger.Info().Str("file", filepath.Base(filePath)).Msg("Applying migration")

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("migration %s failed: %w", filepath.Base(filePath), err)
	}

	sql, args, err := m.sb.Insert(trackingTable).
		Columns("version", "applied_at").
		Values(version, time.Now()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	logger.Info().Str("version", version).Msg("Migration applied")
	return nil
}
