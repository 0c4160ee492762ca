package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	emailViolation := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_email_key"}

	assert.True(t, isUniqueViolation(emailViolation, "users_email_key"))
	assert.True(t, isUniqueViolation(emailViolation, ""), "empty constraint matches any unique violation")
	assert.False(t, isUniqueViolation(emailViolation, "users_google_id_key"))

	wrapped := fmt.Errorf("creating user: %w", emailViolation)
	assert.True(t, isUniqueViolation(wrapped, "users_email_key"), "matches through wrapping")

	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: foreignKeyViolationCode}, ""))
	assert.False(t, isUniqueViolation(errors.New("not a pg error"), ""))
	assert.False(t, isUniqueViolation(nil, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	fkViolation := &pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "tasks_project_id_fkey"}

	assert.True(t, isForeignKeyViolation(fkViolation))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("inserting task: %w", fkViolation)))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: uniqueViolationCode}))
	assert.False(t, isForeignKeyViolation(nil))
}
