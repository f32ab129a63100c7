package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKeyError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "courses_slug_key"}

	assert.True(t, IsDuplicateKeyError(dup))
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("insert: %w", dup)))
	assert.True(t, IsDuplicateConstraintError(dup, "courses_slug_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "course_lessons_slug_key"))
	assert.False(t, IsDuplicateKeyError(errors.New("plain")))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.True(t, IsForeignKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsForeignKeyError(&pgconn.PgError{Code: "23505"}))
}
