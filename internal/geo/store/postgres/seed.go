package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"angodata/internal/geo/models"
)

// SeedIfEmpty inserts the starter datasets when the provinces table has no
// rows, then bumps each sequence past the seeded ids. A populated database
// is left untouched.
func SeedIfEmpty(ctx context.Context, db *sql.DB) error {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM provinces`).Scan(&n); err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	for _, p := range models.SeedProvinces() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO provinces (id, nome, capital, area_km2, populacao) VALUES ($1, $2, $3, $4, $5)`,
			p.ID, p.Name, p.Capital, p.AreaKm2, p.Population)
		if err != nil {
			return fmt.Errorf("seed province %q: %w", p.Name, err)
		}
	}
	for _, m := range models.SeedMunicipalities() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO municipalities (id, nome, provincia_id, provincia_nome, area_km2, populacao)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			m.ID, m.Name, m.ProvinceID, m.ProvinceName, m.AreaKm2, m.Population)
		if err != nil {
			return fmt.Errorf("seed municipality %q: %w", m.Name, err)
		}
	}
	for _, sc := range models.SeedSchools() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO schools (id, nome, tipo, provincia_id, provincia_nome, municipio_id, municipio, endereco)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			sc.ID, sc.Name, sc.Type, sc.ProvinceID, sc.ProvinceName,
			sc.MunicipalityID, sc.MunicipalityName, sc.Address)
		if err != nil {
			return fmt.Errorf("seed school %q: %w", sc.Name, err)
		}
	}
	for _, m := range models.SeedMarkets() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO markets (id, nome, tipo, provincia_id, provincia_nome, municipio, especialidade)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			m.ID, m.Name, m.Type, m.ProvinceID, m.ProvinceName, m.MunicipalityName, m.Specialty)
		if err != nil {
			return fmt.Errorf("seed market %q: %w", m.Name, err)
		}
	}
	for _, h := range models.SeedHospitals() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO hospitals (id, nome, tipo, categoria, provincia_id, provincia_nome, municipio, endereco)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			h.ID, h.Name, h.Type, h.Category, h.ProvinceID, h.ProvinceName, h.MunicipalityName, h.Address)
		if err != nil {
			return fmt.Errorf("seed hospital %q: %w", h.Name, err)
		}
	}

	for _, table := range []string{"provinces", "municipalities", "schools", "markets", "hospitals"} {
		query := fmt.Sprintf(
			`SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 1))`,
			table, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("seed sequence %s: %w", table, err)
		}
	}

	return tx.Commit()
}
