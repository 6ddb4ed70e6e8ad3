package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/pkg/pagination"
)

var provinceSortColumns = map[string]string{
	"nome":      "nome",
	"capital":   "capital",
	"area_km2":  "area_km2",
	"populacao": "populacao",
}

type ProvinceStore struct {
	db *sql.DB
}

func NewProvinceStore(db *sql.DB) *ProvinceStore {
	return &ProvinceStore{db: db}
}

func (s *ProvinceStore) List(ctx context.Context, opts store.ListOptions) ([]models.Province, int, error) {
	where, args := pagination.SearchClause(opts.Search, []string{"nome", "capital"}, 1)
	query := `SELECT id, nome, capital, area_km2, populacao FROM provinces`
	countQuery := `SELECT COUNT(*) FROM provinces`
	if where != "" {
		query += " WHERE " + where
		countQuery += " WHERE " + where
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count provinces: %w", err)
	}

	query += pagination.OrderBy(opts.Sort, provinceSortColumns, "id")
	if !opts.All {
		limit, offset := pagination.LimitOffset(opts.Page)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list provinces: %w", err)
	}
	defer rows.Close()

	items := []models.Province{}
	for rows.Next() {
		var p models.Province
		if err := rows.Scan(&p.ID, &p.Name, &p.Capital, &p.AreaKm2, &p.Population); err != nil {
			return nil, 0, fmt.Errorf("scan province: %w", err)
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list provinces: %w", err)
	}
	return items, total, nil
}

func (s *ProvinceStore) GetByID(ctx context.Context, id int64) (models.Province, error) {
	var p models.Province
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nome, capital, area_km2, populacao FROM provinces WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Capital, &p.AreaKm2, &p.Population)
	if err != nil {
		return models.Province{}, fmt.Errorf("get province %d: %w", id, translateErr(err))
	}
	return p, nil
}

func (s *ProvinceStore) GetByName(ctx context.Context, name string) (models.Province, error) {
	var p models.Province
	err := s.db.QueryRowContext(ctx,
		`SELECT id, nome, capital, area_km2, populacao FROM provinces WHERE LOWER(nome) = LOWER($1)`, name,
	).Scan(&p.ID, &p.Name, &p.Capital, &p.AreaKm2, &p.Population)
	if err != nil {
		return models.Province{}, fmt.Errorf("get province %q: %w", name, translateErr(err))
	}
	return p, nil
}

func (s *ProvinceStore) Create(ctx context.Context, province *models.Province) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO provinces (nome, capital, area_km2, populacao)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		province.Name, province.Capital, province.AreaKm2, province.Population,
	).Scan(&province.ID)
	if err != nil {
		return fmt.Errorf("create province: %w", translateErr(err))
	}
	return nil
}

func (s *ProvinceStore) Update(ctx context.Context, province models.Province) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE provinces SET nome = $1, capital = $2, area_km2 = $3, populacao = $4 WHERE id = $5`,
		province.Name, province.Capital, province.AreaKm2, province.Population, province.ID,
	)
	if err != nil {
		return fmt.Errorf("update province %d: %w", province.ID, translateErr(err))
	}
	return requireAffected(res, "province", province.ID)
}

func (s *ProvinceStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM provinces WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete province %d: %w", id, translateErr(err))
	}
	return requireAffected(res, "province", id)
}
