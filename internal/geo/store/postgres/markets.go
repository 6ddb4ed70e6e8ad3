package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"angodata/internal/geo/models"
	"angodata/internal/geo/store"
	"angodata/pkg/pagination"
)

var marketSortColumns = map[string]string{
	"nome":          "nome",
	"tipo":          "tipo",
	"municipio":     "municipio",
	"especialidade": "especialidade",
}

const marketColumns = `id, nome, tipo, provincia_id, provincia_nome, municipio, especialidade`

type MarketStore struct {
	db *sql.DB
}

func NewMarketStore(db *sql.DB) *MarketStore {
	return &MarketStore{db: db}
}

func scanMarket(row interface{ Scan(...any) error }) (models.Market, error) {
	var m models.Market
	err := row.Scan(&m.ID, &m.Name, &m.Type, &m.ProvinceID, &m.ProvinceName,
		&m.MunicipalityName, &m.Specialty)
	return m, err
}

func (s *MarketStore) List(ctx context.Context, opts store.ListOptions) ([]models.Market, int, error) {
	where, args := pagination.SearchClause(opts.Search, []string{"nome", "municipio", "especialidade"}, 1)
	query := `SELECT ` + marketColumns + ` FROM markets`
	countQuery := `SELECT COUNT(*) FROM markets`
	if where != "" {
		query += " WHERE " + where
		countQuery += " WHERE " + where
	}

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count markets: %w", err)
	}

	query += pagination.OrderBy(opts.Sort, marketSortColumns, "id")
	if !opts.All {
		limit, offset := pagination.LimitOffset(opts.Page)
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()

	items := []models.Market{}
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan market: %w", err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list markets: %w", err)
	}
	return items, total, nil
}

func (s *MarketStore) GetByID(ctx context.Context, id int64) (models.Market, error) {
	m, err := scanMarket(s.db.QueryRowContext(ctx,
		`SELECT `+marketColumns+` FROM markets WHERE id = $1`, id))
	if err != nil {
		return models.Market{}, fmt.Errorf("get market %d: %w", id, translateErr(err))
	}
	return m, nil
}

func (s *MarketStore) GetByProvince(ctx context.Context, provinceID int64) ([]models.Market, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+marketColumns+` FROM markets WHERE provincia_id = $1 ORDER BY id`, provinceID)
	if err != nil {
		return nil, fmt.Errorf("markets by province %d: %w", provinceID, err)
	}
	defer rows.Close()

	items := []models.Market{}
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (s *MarketStore) CountByMunicipalityName(ctx context.Context, name string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM markets WHERE LOWER(municipio) = LOWER($1)`, name).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count markets by municipality %q: %w", name, err)
	}
	return n, nil
}

func (s *MarketStore) Create(ctx context.Context, market *models.Market) error {
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO markets (nome, tipo, provincia_id, provincia_nome, municipio, especialidade)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		market.Name, market.Type, market.ProvinceID, market.ProvinceName,
		market.MunicipalityName, market.Specialty,
	).Scan(&market.ID)
	if err != nil {
		return fmt.Errorf("create market: %w", translateErr(err))
	}
	return nil
}

func (s *MarketStore) Update(ctx context.Context, market models.Market) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE markets
		 SET nome = $1, tipo = $2, provincia_id = $3, provincia_nome = $4, municipio = $5, especialidade = $6
		 WHERE id = $7`,
		market.Name, market.Type, market.ProvinceID, market.ProvinceName,
		market.MunicipalityName, market.Specialty, market.ID,
	)
	if err != nil {
		return fmt.Errorf("update market %d: %w", market.ID, translateErr(err))
	}
	return requireAffected(res, "market", market.ID)
}

func (s *MarketStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM markets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete market %d: %w", id, translateErr(err))
	}
	return requireAffected(res, "market", id)
}
