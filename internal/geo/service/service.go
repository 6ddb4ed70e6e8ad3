// Package service holds the business rules for the reference entities:
// referential integrity between provinces, municipalities and facilities,
// delete protection, partial updates and the bulk province operations.
// After every mutation the service flushes the snapshot (JSON mode),
// invalidates the response cache, bumps metrics and emits an audit event.
package service

import (
	"context"
	"log/slog"

	"angodata/internal/audit"
	"angodata/internal/geo/store"
	"angodata/internal/platform/metrics"
	authmw "angodata/pkg/platform/middleware/auth"
)

// Invalidator drops cached responses under an entity prefix.
type Invalidator interface {
	Invalidate(ctx context.Context, prefix string)
}

// Deps carries the cross-cutting collaborators shared by every entity
// service. Cache, Audit, Metrics and Persist may be nil; the hooks
// degrade to no-ops.
type Deps struct {
	Stores  store.Stores
	Logger  *slog.Logger
	Metrics *metrics.Metrics
	Audit   *audit.Service
	Cache   Invalidator
	Persist func(ctx context.Context) error
	// UseDatabase gates the bulk operations, which are implemented for
	// the database backend only.
	UseDatabase bool
}

// Services bundles the five entity services.
type Services struct {
	Provinces      *ProvinceService
	Municipalities *MunicipalityService
	Schools        *SchoolService
	Markets        *MarketService
	Hospitals      *HospitalService
}

func New(deps Deps) *Services {
	return &Services{
		Provinces:      &ProvinceService{deps: deps},
		Municipalities: &MunicipalityService{deps: deps},
		Schools:        &SchoolService{deps: deps},
		Markets:        &MarketService{deps: deps},
		Hospitals:      &HospitalService{deps: deps},
	}
}

// committed runs the post-mutation hooks. entity is the cache prefix and
// metric label (plural route name), op the audit action.
func (d Deps) committed(ctx context.Context, entity, op, resourceID string, details map[string]any) {
	if d.Persist != nil {
		if err := d.Persist(ctx); err != nil {
			d.Logger.ErrorContext(ctx, "snapshot flush failed", "entity", entity, "error", err)
		}
	}
	if d.Cache != nil {
		d.Cache.Invalidate(ctx, entity)
	}
	d.Metrics.IncrementMutation(entity, op)

	event := audit.Event{
		Action:       op,
		ResourceType: entity,
		ResourceID:   resourceID,
		Details:      details,
	}
	if claims, ok := authmw.ClaimsFromContext(ctx); ok {
		event.UserID = claims.UserID
		event.Email = claims.Email
	}
	d.Audit.Emit(ctx, event)
}
