package repos

import (
	"database/sql"
	"errors"
	"strings"

	"tienda/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueColumn reports "table.column" for a unique violation from either
// driver. Unique indexes are named ux_<table>_<column> so Postgres
// constraint names map back the same way.
func uniqueColumn(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return "", false
		}
		return indexColumn(pgErr.TableName, pgErr.ConstraintName), true
	}
	msg := err.Error()
	const marker = "UNIQUE constraint failed: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return "", false
	}
	col := msg[i+len(marker):]
	if j := strings.IndexAny(col, ", )"); j >= 0 {
		col = col[:j]
	}
	return col, true
}

func indexColumn(table, constraint string) string {
	prefix := "ux_" + table + "_"
	if strings.HasPrefix(constraint, prefix) {
		return table + "." + strings.TrimPrefix(constraint, prefix)
	}
	return table + "." + constraint
}

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// unique describes one unique column of a row being written.
type unique struct {
	column string // "table.column"
	field  string
	value  string
}

// conflictOr converts a unique violation on one of cols into a
// *domain.ConflictError; other errors pass through.
func conflictOr(err error, entity domain.Entity, cols ...unique) error {
	col, ok := uniqueColumn(err)
	if !ok {
		return err
	}
	for _, u := range cols {
		if u.column == col {
			return &domain.ConflictError{Entity: entity, Field: u.field, Value: u.value}
		}
	}
	return &domain.ConflictError{Entity: entity, Field: col}
}

// notFound maps sql.ErrNoRows to a typed not-found error.
func notFound(err error, entity domain.Entity, id int64) error {
	if errors.Is(err, sql.ErrNoRows) {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return err
}

// affected turns a zero-row update or delete into a not-found error.
func affected(res sql.Result, err error, entity domain.Entity, id int64) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Entity: entity, ID: id}
	}
	return nil
}
