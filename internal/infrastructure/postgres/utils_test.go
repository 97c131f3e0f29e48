package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

func TestDBError_Clasifica(t *testing.T) {
	assert.NoError(t, dbError("op", nil))
	assert.ErrorIs(t, dbError("get", pgx.ErrNoRows), domain.ErrNotFound)
	assert.ErrorIs(t, dbError("get", fmt.Errorf("scan: %w", pgx.ErrNoRows)), domain.ErrNotFound)

	unique := &pgconn.PgError{Code: "23505", ConstraintName: "simcards_equipment_slot_key"}
	assert.ErrorIs(t, dbError("update simcard", unique), domain.ErrAlreadyInUse)

	fk := &pgconn.PgError{Code: "23503"}
	err := dbError("delete deposit", fk)
	var dbErr *domain.DatabaseError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "23503", dbErr.Code)
	assert.Equal(t, "delete deposit", dbErr.Op)
	assert.True(t, domain.IsDatabaseError(err))

	plain := dbError("ping", errors.New("connection refused"))
	require.True(t, errors.As(plain, &dbErr))
	assert.Empty(t, dbErr.Code)
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", *nullable("x"))
	assert.Equal(t, "", deref(nil))
}
