// Package store defines the persistence contracts for the reference
// entities. Stores are interface-driven to keep the domain logic testable
// and to allow swapping the in-memory and PostgreSQL backends without
// rewiring business code. Implementations return pkg/platform/sentinel
// errors; services translate those into domain errors.
package store

import (
	"context"

	"angodata/internal/geo/models"
	"angodata/pkg/pagination"
)

// ListOptions carries the uniform listing contract: both backends apply
// the same search, sort and paging semantics.
type ListOptions struct {
	Page   pagination.Params
	Sort   pagination.Sort
	Search string
	// All skips the page window (paginate=false); search and sort still apply.
	All bool
}

type ProvinceStore interface {
	List(ctx context.Context, opts ListOptions) ([]models.Province, int, error)
	GetByID(ctx context.Context, id int64) (models.Province, error)
	GetByName(ctx context.Context, name string) (models.Province, error)
	// Create assigns the next id (max existing + 1) and fails with
	// sentinel.ErrConflict on a duplicate name.
	Create(ctx context.Context, province *models.Province) error
	Update(ctx context.Context, province models.Province) error
	Delete(ctx context.Context, id int64) error
}

type MunicipalityStore interface {
	List(ctx context.Context, opts ListOptions) ([]models.Municipality, int, error)
	GetByID(ctx context.Context, id int64) (models.Municipality, error)
	GetByProvince(ctx context.Context, provinceID int64) ([]models.Municipality, error)
	CountByProvince(ctx context.Context, provinceID int64) (int, error)
	Create(ctx context.Context, municipality *models.Municipality) error
	Update(ctx context.Context, municipality models.Municipality) error
	Delete(ctx context.Context, id int64) error
}

type SchoolStore interface {
	List(ctx context.Context, opts ListOptions) ([]models.School, int, error)
	GetByID(ctx context.Context, id int64) (models.School, error)
	GetByProvince(ctx context.Context, provinceID int64) ([]models.School, error)
	GetByMunicipality(ctx context.Context, municipalityID int64) ([]models.School, error)
	CountByMunicipality(ctx context.Context, municipalityID int64) (int, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, school models.School) error
	Delete(ctx context.Context, id int64) error
}

type MarketStore interface {
	List(ctx context.Context, opts ListOptions) ([]models.Market, int, error)
	GetByID(ctx context.Context, id int64) (models.Market, error)
	GetByProvince(ctx context.Context, provinceID int64) ([]models.Market, error)
	CountByMunicipalityName(ctx context.Context, name string) (int, error)
	Create(ctx context.Context, market *models.Market) error
	Update(ctx context.Context, market models.Market) error
	Delete(ctx context.Context, id int64) error
}

type HospitalStore interface {
	List(ctx context.Context, opts ListOptions) ([]models.Hospital, int, error)
	GetByID(ctx context.Context, id int64) (models.Hospital, error)
	GetByProvince(ctx context.Context, provinceID int64) ([]models.Hospital, error)
	CountByMunicipalityName(ctx context.Context, name string) (int, error)
	Create(ctx context.Context, hospital *models.Hospital) error
	Update(ctx context.Context, hospital models.Hospital) error
	Delete(ctx context.Context, id int64) error
}

// Stores bundles the five entity stores for injection into services.
// The concrete backend is chosen once at startup.
type Stores struct {
	Provinces      ProvinceStore
	Municipalities MunicipalityStore
	Schools        SchoolStore
	Markets        MarketStore
	Hospitals      HospitalStore
}
