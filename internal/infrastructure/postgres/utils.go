package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jeanheinriich/agendamentos-sub004/internal/domain"
)

// Querier abstrae pool y tx para que un mismo repositorio sirva dentro y fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// dbError traduce un error de pgx al dominio: sin filas → ErrNotFound, 23505 → ErrAlreadyInUse,
// cualquier otro → DatabaseError con el SQLSTATE.
func dbError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if domain.IsDatabaseError(err) {
		return err
	}
	if isUniqueViolation(err) {
		return domain.ErrAlreadyInUse
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domain.DatabaseError{Op: op, Code: pgErr.Code, Err: err}
	}
	return &domain.DatabaseError{Op: op, Err: err}
}

// nullable devuelve nil para el string vacío.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
