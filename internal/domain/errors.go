package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrAlreadyInUse      = errors.New("el recurso ya está en uso")
	ErrBlocked           = errors.New("el recurso está bloqueado")
	ErrNoDefaultDeposit  = errors.New("el contratante no tiene depósito")
	ErrInvalidTransition = errors.New("paso inválido para el asistente")
)

// ValidationError agrupa errores por campo. Las claves de Fields son los nombres JSON
// del campo y los valores son claves de mensaje (ver pkg/i18n).
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError crea un error vacío listo para acumular campos.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

// Add registra un error para el campo. Solo se conserva el primero.
func (e *ValidationError) Add(field, key string) {
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = key
	}
}

// HasErrors informa si hay al menos un campo con error.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// OrNil devuelve nil cuando no hay errores, para poder hacer `return v.OrNil()`.
func (e *ValidationError) OrNil() error {
	if e == nil || !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validación: " + strings.Join(parts, ", ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// FieldError atajo para un error de un solo campo.
func FieldError(field, key string) error {
	v := NewValidationError()
	v.Add(field, key)
	return v
}

// DatabaseError envuelve un fallo de la capa de persistencia. Code es el SQLSTATE cuando existe.
type DatabaseError struct {
	Op   string
	Code string
	Err  error
}

func (e *DatabaseError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: [%s] %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// IsDatabaseError informa si err proviene de la base de datos.
func IsDatabaseError(err error) bool {
	var dbErr *DatabaseError
	return errors.As(err, &dbErr)
}
