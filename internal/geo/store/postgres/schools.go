package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/pkg/pagination"
)

var schoolSortColumns = map[string]string{
	"nome":      "nome",
	"tipo":      "tipo",
	"municipio": "municipio",
}

const schoolColumns = `id, nome, tipo, provincia_id, provincia_nome, municipio_id, municipio, endereco`

type SchoolStore struct {
	db *sql.DB
}

func NewSchoolStore(db *sql.DB) *SchoolStore {
	return &SchoolStore{db: db}
}

func scanSchool(row interface{ Scan(...any) error }) (models.School, error) {
	var sc models.School
	err := row.Scan(&sc.ID, &sc.Name, &sc.Type, &sc.ProvinceID, &sc.ProvinceName,
		&sc.MunicipalityID, &sc.MunicipalityName, &sc.Address)
	return sc, err
}

func (s *SchoolStore) List(ctx context.Context, opts store.ListOptions) ([]models.School, int, error) {
	where, args := pagination.SearchClause(opts.Search, []string{"nome", "municipio", "endereco"}, 1)
	query := `SELECT ` + schoolColumns + ` FROM schools`
	countQuery := `SELECT COUNT(*) FROM schools`
	if where != "" {
		query += " WHERE " + where
		countQuery += " WHERE " + where
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count schools: %w", err)
	}

	query += pagination.OrderBy(opts.Sort, schoolSortColumns, "id")
	if !opts.All {
		limit, offset := pagination.LimitOffset(opts.Page)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()

	items := []models.School{}
	for rows.Next() {
		sc, err := scanSchool(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan school: %w", err)
		}
		items = append(items, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list schools: %w", err)
	}
	return items, total, nil
}

func (s *SchoolStore) GetByID(ctx context.Context, id int64) (models.School, error) {
	sc, err := scanSchool(s.db.QueryRowContext(ctx,
		`SELECT `+schoolColumns+` FROM schools WHERE id = $1`, id))
	if err != nil {
		return models.School{}, fmt.Errorf("get school %d: %w", id, translateErr(err))
	}
	return sc, nil
}

func (s *SchoolStore) GetByProvince(ctx context.Context, provinceID int64) ([]models.School, error) {
	return s.queryAll(ctx,
		`SELECT `+schoolColumns+` FROM schools WHERE provincia_id = $1 ORDER BY id`, provinceID)
}

func (s *SchoolStore) GetByMunicipality(ctx context.Context, municipalityID int64) ([]models.School, error) {
	return s.queryAll(ctx,
		`SELECT `+schoolColumns+` FROM schools WHERE municipio_id = $1 ORDER BY id`, municipalityID)
}

func (s *SchoolStore) queryAll(ctx context.Context, query string, arg any) ([]models.School, error) {
	rows, err := s.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("query schools: %w", err)
	}
	defer rows.Close()

	items := []models.School{}
	for rows.Next() {
		sc, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("scan school: %w", err)
		}
		items = append(items, sc)
	}
	return items, rows.Err()
}

func (s *SchoolStore) CountByMunicipality(ctx context.Context, municipalityID int64) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schools WHERE municipio_id = $1`, municipalityID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count schools by municipality %d: %w", municipalityID, err)
	}
	return n, nil
}

func (s *SchoolStore) Create(ctx context.Context, school *models.School) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO schools (nome, tipo, provincia_id, provincia_nome, municipio_id, municipio, endereco)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		school.Name, school.Type, school.ProvinceID, school.ProvinceName,
		school.MunicipalityID, school.MunicipalityName, school.Address,
	).Scan(&school.ID)
	if err != nil {
		return fmt.Errorf("create school: %w", translateErr(err))
	}
	return nil
}

func (s *SchoolStore) Update(ctx context.Context, school models.School) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE schools
		 SET nome = $1, tipo = $2, provincia_id = $3, provincia_nome = $4,
		     municipio_id = $5, municipio = $6, endereco = $7
		 WHERE id = $8`,
		school.Name, school.Type, school.ProvinceID, school.ProvinceName,
		school.MunicipalityID, school.MunicipalityName, school.Address, school.ID,
	)
	if err != nil {
		return fmt.Errorf("update school %d: %w", school.ID, translateErr(err))
	}
	return requireAffected(res, "school", school.ID)
}

func (s *SchoolStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete school %d: %w", id, translateErr(err))
	}
	return requireAffected(res, "school", id)
}
