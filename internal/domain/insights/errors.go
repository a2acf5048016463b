package insights

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// Nombres de store usados en StoreError y métricas.
const (
	StoreRelational = "relational"
	StoreDocuments  = "documents"
	StoreGraph      = "graph"
)

// StoreError envuelve una falla de lectura de un adapter. Es fatal para la
// operación: no hay reintentos ni respuesta parcial.
type StoreError struct {
	Store string
	Op    string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s store: %s: %v", e.Store, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsStoreError reporta si err viene de un adapter.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
