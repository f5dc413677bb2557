// Package storage implements the durable repositories on top of bun.
// Identifier and timestamp assignment happens here, as explicit pre-persist
// steps on the insert/update paths, never as engine-level hooks.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/goliatone/go-scraps/models"
)

// OpenPostgres opens a bun database handle for the given DSN. The caller owns
// the handle's lifecycle.
func OpenPostgres(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// InitSchema creates the users and scraps tables when they do not exist yet.
// Used by process bootstrap and by the test suites.
func InitSchema(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}

	if _, err := db.NewCreateTable().
		Model((*models.Scrap)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return fmt.Errorf("create scraps table: %w", err)
	}
	return nil
}
