package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUndefinedTable verifica si el error es por una tabla inexistente (42P01).
// Instalaciones antiguas no tienen todas las tablas del reporte.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "42P01" // undefined_table
	}
	return strings.Contains(err.Error(), "42P01")
}

// derefString devuelve "" para columnas de texto NULL.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
