package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/pkg/pagination"
)

var municipalitySortColumns = map[string]string{
	"nome":           "nome",
	"provincia_nome": "provincia_nome",
	"area_km2":       "area_km2",
	"populacao":      "populacao",
}

const municipalityColumns = `id, nome, provincia_id, provincia_nome, area_km2, populacao`

type MunicipalityStore struct {
	db *sql.DB
}

func NewMunicipalityStore(db *sql.DB) *MunicipalityStore {
	return &MunicipalityStore{db: db}
}

func scanMunicipality(row interface{ Scan(...any) error }) (models.Municipality, error) {
	var m models.Municipality
	err := row.Scan(&m.ID, &m.Name, &m.ProvinceID, &m.ProvinceName, &m.AreaKm2, &m.Population)
	return m, err
}

func (s *MunicipalityStore) List(ctx context.Context, opts store.ListOptions) ([]models.Municipality, int, error) {
	where, args := pagination.SearchClause(opts.Search, []string{"nome", "provincia_nome"}, 1)
	query := `SELECT ` + municipalityColumns + ` FROM municipalities`
	countQuery := `SELECT COUNT(*) FROM municipalities`
	if where != "" {
		query += " WHERE " + where
		countQuery += " WHERE " + where
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count municipalities: %w", err)
	}

	query += pagination.OrderBy(opts.Sort, municipalitySortColumns, "id")
	if !opts.All {
		limit, offset := pagination.LimitOffset(opts.Page)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list municipalities: %w", err)
	}
	defer rows.Close()

	items := []models.Municipality{}
	for rows.Next() {
		m, err := scanMunicipality(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan municipality: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list municipalities: %w", err)
	}
	return items, total, nil
}

func (s *MunicipalityStore) GetByID(ctx context.Context, id int64) (models.Municipality, error) {
	m, err := scanMunicipality(s.db.QueryRowContext(ctx,
		`SELECT `+municipalityColumns+` FROM municipalities WHERE id = $1`, id))
	if err != nil {
		return models.Municipality{}, fmt.Errorf("get municipality %d: %w", id, translateErr(err))
	}
	return m, nil
}

func (s *MunicipalityStore) GetByProvince(ctx context.Context, provinceID int64) ([]models.Municipality, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+municipalityColumns+` FROM municipalities WHERE provincia_id = $1 ORDER BY id`, provinceID)
	if err != nil {
		return nil, fmt.Errorf("municipalities by province %d: %w", provinceID, err)
	}
	defer rows.Close()

	items := []models.Municipality{}
	for rows.Next() {
		m, err := scanMunicipality(rows)
		if err != nil {
			return nil, fmt.Errorf("scan municipality: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (s *MunicipalityStore) CountByProvince(ctx context.Context, provinceID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM municipalities WHERE provincia_id = $1`, provinceID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count municipalities by province %d: %w", provinceID, err)
	}
	return n, nil
}

func (s *MunicipalityStore) Create(ctx context.Context, municipality *models.Municipality) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO municipalities (nome, provincia_id, provincia_nome, area_km2, populacao)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		municipality.Name, municipality.ProvinceID, municipality.ProvinceName,
		municipality.AreaKm2, municipality.Population,
	).Scan(&municipality.ID)
	if err != nil {
		return fmt.Errorf("create municipality: %w", translateErr(err))
	}
	return nil
}

func (s *MunicipalityStore) Update(ctx context.Context, municipality models.Municipality) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE municipalities
		 SET nome = $1, provincia_id = $2, provincia_nome = $3, area_km2 = $4, populacao = $5
		 WHERE id = $6`,
		municipality.Name, municipality.ProvinceID, municipality.ProvinceName,
		municipality.AreaKm2, municipality.Population, municipality.ID,
	)
	if err != nil {
		return fmt.Errorf("update municipality %d: %w", municipality.ID, translateErr(err))
	}
	return requireAffected(res, "municipality", municipality.ID)
}

func (s *MunicipalityStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM municipalities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete municipality %d: %w", id, translateErr(err))
	}
	return requireAffected(res, "municipality", id)
}
