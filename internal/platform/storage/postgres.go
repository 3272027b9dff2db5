package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MichalMitros/catalog-stock-monitor/internal/platform/models"

	pg "github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
)

// DefaultSnapshotName is name of snapshot row used by the monitor.
const DefaultSnapshotName = "catalog"

// Postgres stores snapshot as JSON document in snapshot table row.
type Postgres struct {
	db   *sql.DB
	name string
}

// NewPostgres returns new Postgres storing snapshot under provided name.
func NewPostgres(db *sql.DB, name string) Postgres {
	return Postgres{
		db:   db,
		name: name,
	}
}

// Migrate creates snapshot table.
func (p Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("can't create snapshot table: %w", err)
	}

	return nil
}

// Load returns stored snapshot. Missing row is returned as empty snapshot.
func (p Postgres) Load(ctx context.Context) (*models.Snapshot, error) {
	var row snapshotRow

	err := snapshotTable.
		SELECT(snapshotTable.AllColumns).
		WHERE(snapshotTable.Name.EQ(pg.String(p.name))).
		QueryContext(ctx, p.db, &row)
	if errors.Is(err, qrm.ErrNoRows) {
		return emptySnapshot(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't get snapshot from database: %w", err)
	}

	return decodeSnapshot([]byte(row.Body))
}

// Save upserts snapshot row.
func (p Postgres) Save(ctx context.Context, snapshot *models.Snapshot) error {
	body, err := encodeSnapshot(snapshot)
	if err != nil {
		return err
	}

	_, err = snapshotTable.
		INSERT(snapshotTable.AllColumns).
		VALUES(p.name, string(body), time.Now().UTC()).
		ON_CONFLICT(snapshotTable.Name).
		DO_UPDATE(pg.SET(
			snapshotTable.Body.SET(snapshotTable.EXCLUDED.Body),
			snapshotTable.UpdatedAt.SET(snapshotTable.EXCLUDED.UpdatedAt),
		)).
		ExecContext(ctx, p.db)
	if err != nil {
		return fmt.Errorf("%w: can't upsert snapshot: %w", ErrPersistence, err)
	}

	return nil
}
