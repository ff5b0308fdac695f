package database

import (
	"errors"

	"github.com/lib/pq"
)

// isUniqueViolation reconhece o 23505 (unique_violation) do Postgres.
// Usado onde um índice único é o guard de concorrência: a violação
// vira erro de domínio, não 500.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
