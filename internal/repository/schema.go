package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SchemaVersion is the declared version of the store layout. Bumping it
// drops and recreates every table on the next EnsureSchema call. This is an
// explicit policy: the store trades persistence across upgrades for not
// having to carry migrations.
const SchemaVersion = 3

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		phone         TEXT,
		is_admin      BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS couriers (
		id                   BIGSERIAL PRIMARY KEY,
		courier_number       TEXT NOT NULL UNIQUE,
		status               TEXT NOT NULL,
		place                TEXT,
		delivery_person_name TEXT,
		delivery_person_id   TEXT,
		owner_username       TEXT NOT NULL REFERENCES users(username)
	)`,
	`CREATE TABLE IF NOT EXISTS courier_location (
		id         BIGSERIAL PRIMARY KEY,
		courier_id BIGINT NOT NULL UNIQUE REFERENCES couriers(id) ON DELETE CASCADE,
		location   TEXT
	)`,
	// Declared but not read by any operation; delivery-person lookups use the
	// denormalized courier columns instead. Kept to match the store's shape.
	`CREATE TABLE IF NOT EXISTS delivery_persons (
		id      BIGSERIAL PRIMARY KEY,
		name    TEXT NOT NULL,
		ratings REAL NOT NULL DEFAULT 0.0
	)`,
	`CREATE TABLE IF NOT EXISTS schema_version (
		version INT NOT NULL
	)`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS courier_location`,
	`DROP TABLE IF EXISTS couriers`,
	`DROP TABLE IF EXISTS users`,
	`DROP TABLE IF EXISTS delivery_persons`,
	`DROP TABLE IF EXISTS schema_version`,
}

// EnsureSchema creates the tables on first run and recreates them from
// scratch whenever the stored version differs from SchemaVersion.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stored, err := storedVersion(ctx, pool)
	if err != nil {
		return err
	}

	if stored == SchemaVersion {
		return nil
	}
	if stored > 0 {
		for _, stmt := range dropStatements {
			if _, err := pool.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("drop schema v%d: %w", stored, err)
			}
		}
	}

	for _, stmt := range createStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	if _, err := pool.Exec(ctx, `INSERT INTO schema_version(version) VALUES($1)`, SchemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return nil
}

func storedVersion(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'schema_version')`,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check schema_version table: %w", err)
	}
	if !exists {
		return 0, nil
	}

	var version int
	err = pool.QueryRow(ctx, `SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if err != nil {
		if IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}
