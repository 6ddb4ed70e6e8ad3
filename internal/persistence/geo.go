package persistence

import (
	"angodata/internal/geo/store/memory"
)

// Entity file names under DATA_DIR.
const (
	FileProvinces      = "provinces"
	FileMunicipalities = "municipalities"
	FileSchools        = "schools"
	FileMarkets        = "markets"
	FileHospitals      = "hospitals"
	FileUsers          = "users"
)

// SaveExport writes every entity dataset to its own file.
func SaveExport(d *Dir, e memory.Export) error {
	if err := SaveJSON(d, FileProvinces, e.Provinces); err != nil {
		return err
	}
	if err := SaveJSON(d, FileMunicipalities, e.Municipalities); err != nil {
		return err
	}
	if err := SaveJSON(d, FileSchools, e.Schools); err != nil {
		return err
	}
	if err := SaveJSON(d, FileMarkets, e.Markets); err != nil {
		return err
	}
	return SaveJSON(d, FileHospitals, e.Hospitals)
}

// LoadExport reads the snapshot files, falling back to the built-in seed
// for any entity whose file does not exist yet.
func LoadExport(d *Dir) (memory.Export, error) {
	seed := memory.SeedExport()
	e := memory.Export{}

	var err error
	if e.Provinces, err = loadOrSeed(d, FileProvinces, seed.Provinces); err != nil {
		return memory.Export{}, err
	}
	if e.Municipalities, err = loadOrSeed(d, FileMunicipalities, seed.Municipalities); err != nil {
		return memory.Export{}, err
	}
	if e.Schools, err = loadOrSeed(d, FileSchools, seed.Schools); err != nil {
		return memory.Export{}, err
	}
	if e.Markets, err = loadOrSeed(d, FileMarkets, seed.Markets); err != nil {
		return memory.Export{}, err
	}
	if e.Hospitals, err = loadOrSeed(d, FileHospitals, seed.Hospitals); err != nil {
		return memory.Export{}, err
	}
	return e, nil
}

func loadOrSeed[T any](d *Dir, name string, seed []T) ([]T, error) {
	items, ok, err := LoadJSON[T](d, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return seed, nil
	}
	return items, nil
}
