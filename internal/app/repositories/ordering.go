package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/psychcourse/internal/pkg/logger"
)

// PositionChange moves a single row to a new position within its parent
type PositionChange struct {
	ID       int64
	Position int
}

// deferPositionConstraints lets positions be swapped inside one transaction
const deferPositionConstraints = `SET CONSTRAINTS course_weeks_position_key, course_lessons_position_key DEFERRED`

// buildPositionUpdate builds the statement moving one row of table to a new position
func buildPositionUpdate(sb squirrel.StatementBuilderType, table string, change PositionChange) (string, []any, error) {
	return sb.Update(table).
		Set("position", change.Position).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": change.ID}).
		ToSql()
}

// applyPositionChanges writes every change; a change that matches no row means a concurrent delete
func applyPositionChanges(ctx context.Context, q querier, sb squirrel.StatementBuilderType, table string, changes []PositionChange) error {
	for _, change := range changes {
		sql, args, err := buildPositionUpdate(sb, table, change)
		if err != nil {
			logger.Error().Err(err).Str("table", table).Msg("Error building position update SQL")
			return fmt.Errorf("failed to build position update query: %w", err)
		}

		cmdTag, err := q.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Str("table", table).Int64("id", change.ID).Msg("Error updating position")
			return fmt.Errorf("error updating %s position: %w", table, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%s row %d disappeared during reorder", table, change.ID)
		}
	}
	return nil
}

// compactPositionsSQL renumbers the children of a parent 1..n, touching only rows whose position changes
func compactPositionsSQL(table, parentColumn string) string {
	return fmt.Sprintf(`
		UPDATE %[1]s AS t
		SET position = r.rn, updated_at = NOW()
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position, id) AS rn
			FROM %[1]s
			WHERE %[2]s = $1
		) AS r
		WHERE t.id = r.id AND t.position <> r.rn`, table, parentColumn)
}

// nextPositionSQL selects the position after the last child of a parent
func nextPositionSQL(table, parentColumn string) string {
	return fmt.Sprintf(`SELECT COALESCE(MAX(position), 0) + 1 FROM %s WHERE %s = $1`, table, parentColumn)
}
