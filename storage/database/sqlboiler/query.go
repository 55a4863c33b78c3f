// Package boiledrepos implements the record stores on PostgreSQL with the sqlboiler query builder.
// Rows are mapped by hand (`boil` tags) instead of generated models.
package boiledrepos

import (
	"strings"

	"github.com/volatiletech/sqlboiler/v4/drivers"
	"github.com/volatiletech/sqlboiler/v4/queries"
	"github.com/volatiletech/sqlboiler/v4/queries/qm"
	"github.com/volatiletech/strmangle"

	"github.com/apper-canvas/insta-studyhub-auto/core"
)

// TableNames
var TableNames = struct {
	Course     string
	Assignment string
}{
	Course:     "courses",
	Assignment: "assignments",
}

var dialect = drivers.Dialect{
	LQ: 0x22,
	RQ: 0x22,

	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

// NewQuery initializes a new Query using the passed in QueryMods
func NewQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	return q
}

func quote(ident string) string {
	return string(dialect.LQ) + ident + string(dialect.RQ)
}

func orderBy(ordering ...core.DBOrdering) qm.QueryMod {
	clauses := make([]string, 0, len(ordering))
	for _, ord := range ordering {
		ord.Field = quote(ord.Field)
		clauses = append(clauses, ord.String())
	}
	return qm.OrderBy(strings.Join(clauses, ", "))
}

// insertQuery builds `INSERT INTO "table" ("c1","c2") VALUES ($1,$2) RETURNING *`.
func insertQuery(table string, cols []string) string {
	return "INSERT INTO " + quote(table) +
		" (" + strings.Join(strmangle.IdentQuoteSlice(dialect.LQ, dialect.RQ, cols), ",") + ")" +
		" VALUES (" + strmangle.Placeholders(dialect.UseIndexPlaceholders, len(cols), 1, 1) + ")" +
		" RETURNING *"
}

// updateQuery builds `UPDATE "table" SET "c1"=$1,"c2"=$2 WHERE "id"=$3 RETURNING *`.
func updateQuery(table string, cols []string) string {
	return "UPDATE " + quote(table) +
		" SET " + strmangle.SetParamNames(string(dialect.LQ), string(dialect.RQ), 1, cols) +
		" WHERE " + quote("id") + "=" + strmangle.Placeholders(dialect.UseIndexPlaceholders, 1, len(cols)+1, 1) +
		" RETURNING *"
}

func deleteQuery(table string) string {
	return "DELETE FROM " + quote(table) + " WHERE " + quote("id") + "=$1"
}
