// Package sqlxrepos implements the record stores on PostgreSQL with plain SQL & sqlx struct scanning.
package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
)

// NewDB wraps an opened PostgreSQL connection pool.
func NewDB(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

// deleteByID deletes the row of `table` having `id`, reporting whether it existed.
func deleteByID(ctx context.Context, db *sqlx.DB, table string, id int) (bool, error) {
	res, err := db.ExecContext(ctx, db.Rebind(`DELETE FROM "`+table+`" WHERE "id" = ?`), id)
	if err != nil {
		return false, err
	}
	cnt, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func isNoRows(err error) bool {
	return errors.Cause(err) == sql.ErrNoRows
}

func jsonText(v interface{}) (types.JSONText, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return types.JSONText(b), nil
}
