package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/pkg/pagination"
)

var hospitalSortColumns = map[string]string{
	"nome":      "nome",
	"tipo":      "tipo",
	"categoria": "categoria",
	"municipio": "municipio",
}

const hospitalColumns = `id, nome, tipo, categoria, provincia_id, provincia_nome, municipio, endereco`

type HospitalStore struct {
	db *sql.DB
}

func NewHospitalStore(db *sql.DB) *HospitalStore {
	return &HospitalStore{db: db}
}

func scanHospital(row interface{ Scan(...any) error }) (models.Hospital, error) {
	var h models.Hospital
	err := row.Scan(&h.ID, &h.Name, &h.Type, &h.Category, &h.ProvinceID, &h.ProvinceName,
		&h.MunicipalityName, &h.Address)
	return h, err
}

func (s *HospitalStore) List(ctx context.Context, opts store.ListOptions) ([]models.Hospital, int, error) {
	where, args := pagination.SearchClause(opts.Search, []string{"nome", "municipio", "categoria"}, 1)
	query := `SELECT ` + hospitalColumns + ` FROM hospitals`
	countQuery := `SELECT COUNT(*) FROM hospitals`
	if where != "" {
		query += " WHERE " + where
		countQuery += " WHERE " + where
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count hospitals: %w", err)
	}

	query += pagination.OrderBy(opts.Sort, hospitalSortColumns, "id")
	if !opts.All {
		limit, offset := pagination.LimitOffset(opts.Page)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hospitals: %w", err)
	}
	defer rows.Close()

	items := []models.Hospital{}
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan hospital: %w", err)
		}
		items = append(items, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list hospitals: %w", err)
	}
	return items, total, nil
}

func (s *HospitalStore) GetByID(ctx context.Context, id int64) (models.Hospital, error) {
	h, err := scanHospital(s.db.QueryRowContext(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE id = $1`, id))
	if err != nil {
		return models.Hospital{}, fmt.Errorf("get hospital %d: %w", id, translateErr(err))
	}
	return h, nil
}

func (s *HospitalStore) GetByProvince(ctx context.Context, provinceID int64) ([]models.Hospital, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+hospitalColumns+` FROM hospitals WHERE provincia_id = $1 ORDER BY id`, provinceID)
	if err != nil {
		return nil, fmt.Errorf("hospitals by province %d: %w", provinceID, err)
	}
	defer rows.Close()

	items := []models.Hospital{}
	for rows.Next() {
		h, err := scanHospital(rows)
		if err != nil {
			return nil, fmt.Errorf("scan hospital: %w", err)
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (s *HospitalStore) CountByMunicipalityName(ctx context.Context, name string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM hospitals WHERE LOWER(municipio) = LOWER($1)`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count hospitals by municipality %q: %w", name, err)
	}
	return n, nil
}

func (s *HospitalStore) Create(ctx context.Context, hospital *models.Hospital) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO hospitals (nome, tipo, categoria, provincia_id, provincia_nome, municipio, endereco)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		hospital.Name, hospital.Type, hospital.Category, hospital.ProvinceID,
		hospital.ProvinceName, hospital.MunicipalityName, hospital.Address,
	).Scan(&hospital.ID)
	if err != nil {
		return fmt.Errorf("create hospital: %w", translateErr(err))
	}
	return nil
}

func (s *HospitalStore) Update(ctx context.Context, hospital models.Hospital) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE hospitals
		 SET nome = $1, tipo = $2, categoria = $3, provincia_id = $4,
		     provincia_nome = $5, municipio = $6, endereco = $7
		 WHERE id = $8`,
		hospital.Name, hospital.Type, hospital.Category, hospital.ProvinceID,
		hospital.ProvinceName, hospital.MunicipalityName, hospital.Address, hospital.ID,
	)
	if err != nil {
		return fmt.Errorf("update hospital %d: %w", hospital.ID, translateErr(err))
	}
	return requireAffected(res, "hospital", hospital.ID)
}

func (s *HospitalStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM hospitals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hospital %d: %w", id, translateErr(err))
	}
	return requireAffected(res, "hospital", id)
}
