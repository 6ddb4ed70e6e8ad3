// Package memory implements the entity stores over mutex-guarded slices.
// It is the default backend: data lives in process and is flushed to JSON
// snapshots by the persistence layer after every mutation.
package memory

import "angodata/internal/geo/models"

// Export is a deep copy of every dataset, taken under each store's lock.
// The persistence layer serializes it to one file per entity.
type Export struct {
	Provinces      []models.Province
	Municipalities []models.Municipality
	Schools        []models.School
	Markets        []models.Market
	Hospitals      []models.Hospital
}

// Bundle groups the five in-memory stores so startup code can restore a
// snapshot and services can persist one atomically enough for a single
// writer process.
type Bundle struct {
	Provinces      *ProvinceStore
	Municipalities *MunicipalityStore
	Schools        *SchoolStore
	Markets        *MarketStore
	Hospitals      *HospitalStore
}

// NewBundle seeds every store with the provided datasets.
func NewBundle(e Export) *Bundle {
	return &Bundle{
		Provinces:      NewProvinceStore(e.Provinces),
		Municipalities: NewMunicipalityStore(e.Municipalities),
		Schools:        NewSchoolStore(e.Schools),
		Markets:        NewMarketStore(e.Markets),
		Hospitals:      NewHospitalStore(e.Hospitals),
	}
}

// SeedExport returns the built-in starter datasets.
func SeedExport() Export {
	return Export{
		Provinces:      models.SeedProvinces(),
		Municipalities: models.SeedMunicipalities(),
		Schools:        models.SeedSchools(),
		Markets:        models.SeedMarkets(),
		Hospitals:      models.SeedHospitals(),
	}
}

// Export copies out every dataset.
func (b *Bundle) Export() Export {
	return Export{
		Provinces:      b.Provinces.All(),
		Municipalities: b.Municipalities.All(),
		Schools:        b.Schools.All(),
		Markets:        b.Markets.All(),
		Hospitals:      b.Hospitals.All(),
	}
}
