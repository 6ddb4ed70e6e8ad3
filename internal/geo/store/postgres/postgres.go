// Package postgres implements the entity stores over PostgreSQL using
// database/sql with lib/pq. Queries are parameterized; search uses ILIKE
// and sorting goes through a per-entity column whitelist.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"angodata/pkg/platform/sentinel"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// EnsureSchema creates the entity tables when they do not exist yet.
// Sequences start above the seed id range so generated ids never collide
// with seeded rows.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS provinces (
			id         BIGSERIAL PRIMARY KEY,
			nome       TEXT NOT NULL,
			capital    TEXT NOT NULL,
			area_km2   DOUBLE PRECISION NOT NULL DEFAULT 0,
			populacao  BIGINT NOT NULL DEFAULT 0
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS provinces_nome_key ON provinces (LOWER(nome))`,
		`CREATE TABLE IF NOT EXISTS municipalities (
			id              BIGSERIAL PRIMARY KEY,
			nome            TEXT NOT NULL,
			provincia_id    BIGINT NOT NULL REFERENCES provinces (id),
			provincia_nome  TEXT NOT NULL,
			area_km2        DOUBLE PRECISION,
			populacao       BIGINT
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS municipalities_nome_key ON municipalities (provincia_id, LOWER(nome))`,
		`CREATE TABLE IF NOT EXISTS schools (
			id              BIGSERIAL PRIMARY KEY,
			nome            TEXT NOT NULL,
			tipo            TEXT NOT NULL,
			provincia_id    BIGINT NOT NULL REFERENCES provinces (id),
			provincia_nome  TEXT NOT NULL,
			municipio_id    BIGINT NOT NULL REFERENCES municipalities (id),
			municipio       TEXT NOT NULL,
			endereco        TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS markets (
			id              BIGSERIAL PRIMARY KEY,
			nome            TEXT NOT NULL,
			tipo            TEXT NOT NULL,
			provincia_id    BIGINT NOT NULL REFERENCES provinces (id),
			provincia_nome  TEXT NOT NULL,
			municipio       TEXT NOT NULL DEFAULT '',
			especialidade   TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS hospitals (
			id              BIGSERIAL PRIMARY KEY,
			nome            TEXT NOT NULL,
			tipo            TEXT NOT NULL,
			categoria       TEXT NOT NULL DEFAULT '',
			provincia_id    BIGINT NOT NULL REFERENCES provinces (id),
			provincia_nome  TEXT NOT NULL,
			municipio       TEXT NOT NULL DEFAULT '',
			endereco        TEXT NOT NULL DEFAULT ''
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// requireAffected turns a zero-row UPDATE or DELETE into ErrNotFound.
func requireAffected(res sql.Result, entity string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s %d: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, sentinel.ErrNotFound)
	}
	return nil
}

// translateErr maps driver errors onto the store sentinels.
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation, codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", pqErr.Message, sentinel.ErrConflict)
		}
	}
	return err
}
