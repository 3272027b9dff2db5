package storage

import (
	"time"

	pg "github.com/go-jet/jet/v2/postgres"
)

// Schema creates snapshot table if it doesn't exist.
const Schema = `
CREATE TABLE IF NOT EXISTS snapshot (
	name       TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);`

// snapshotRow is snapshot table row.
type snapshotRow struct {
	Name      string    `sql:"primary_key" alias:"snapshot.name"`
	Body      string    `alias:"snapshot.body"`
	UpdatedAt time.Time `alias:"snapshot.updated_at"`
}

type snapshotColumns struct {
	pg.Table

	Name      pg.ColumnString
	Body      pg.ColumnString
	UpdatedAt pg.ColumnTimestampz

	AllColumns pg.ColumnList
}

type snapshotTableDef struct {
	snapshotColumns

	EXCLUDED snapshotColumns
}

var snapshotTable = &snapshotTableDef{
	snapshotColumns: newSnapshotColumns("public", "snapshot", ""),
	EXCLUDED:        newSnapshotColumns("", "excluded", ""),
}

func newSnapshotColumns(schemaName, tableName, alias string) snapshotColumns {
	var (
		nameColumn      = pg.StringColumn("name")
		bodyColumn      = pg.StringColumn("body")
		updatedAtColumn = pg.TimestampzColumn("updated_at")
		allColumns      = pg.ColumnList{nameColumn, bodyColumn, updatedAtColumn}
	)

	return snapshotColumns{
		Table:      pg.NewTable(schemaName, tableName, alias, allColumns...),
		Name:       nameColumn,
		Body:       bodyColumn,
		UpdatedAt:  updatedAtColumn,
		AllColumns: allColumns,
	}
}
