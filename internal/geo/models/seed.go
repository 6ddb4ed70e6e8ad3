package models

// SeedProvinces returns the 18 provinces of Angola used when no snapshot
// or database rows exist yet.
func SeedProvinces() []Province {
	return []Province{
		{ID: 1, Name: "Luanda", Capital: "Luanda", AreaKm2: 18826, Population: 6945386},
		{ID: 2, Name: "Bengo", Capital: "Caxito", AreaKm2: 31371, Population: 356641},
		{ID: 3, Name: "Benguela", Capital: "Benguela", AreaKm2: 39826, Population: 2231385},
		{ID: 4, Name: "Bié", Capital: "Kuito", AreaKm2: 70314, Population: 1455255},
		{ID: 5, Name: "Cabinda", Capital: "Cabinda", AreaKm2: 7270, Population: 716076},
		{ID: 6, Name: "Cuando Cubango", Capital: "Menongue", AreaKm2: 199049, Population: 534002},
		{ID: 7, Name: "Cuanza Norte", Capital: "N'dalatando", AreaKm2: 24110, Population: 443386},
		{ID: 8, Name: "Cuanza Sul", Capital: "Sumbe", AreaKm2: 55660, Population: 1881873},
		{ID: 9, Name: "Cunene", Capital: "Ondjiva", AreaKm2: 78342, Population: 990087},
		{ID: 10, Name: "Huambo", Capital: "Huambo", AreaKm2: 34274, Population: 2019555},
		{ID: 11, Name: "Huíla", Capital: "Lubango", AreaKm2: 79023, Population: 2497422},
		{ID: 12, Name: "Lunda Norte", Capital: "Dundo", AreaKm2: 103760, Population: 862566},
		{ID: 13, Name: "Lunda Sul", Capital: "Saurimo", AreaKm2: 77637, Population: 537587},
		{ID: 14, Name: "Malanje", Capital: "Malanje", AreaKm2: 97602, Population: 986363},
		{ID: 15, Name: "Moxico", Capital: "Luena", AreaKm2: 223023, Population: 758568},
		{ID: 16, Name: "Namibe", Capital: "Moçâmedes", AreaKm2: 58137, Population: 495326},
		{ID: 17, Name: "Uíge", Capital: "Uíge", AreaKm2: 58698, Population: 1483118},
		{ID: 18, Name: "Zaire", Capital: "M'banza Congo", AreaKm2: 40130, Population: 594428},
	}
}

// SeedMunicipalities returns the starter municipality dataset.
func SeedMunicipalities() []Municipality {
	return []Municipality{
		{ID: 1, Name: "Luanda", ProvinceID: 1, ProvinceName: "Luanda"},
		{ID: 2, Name: "Belas", ProvinceID: 1, ProvinceName: "Luanda"},
		{ID: 3, Name: "Cacuaco", ProvinceID: 1, ProvinceName: "Luanda"},
		{ID: 4, Name: "Cazenga", ProvinceID: 1, ProvinceName: "Luanda"},
		{ID: 5, Name: "Icolo e Bengo", ProvinceID: 1, ProvinceName: "Luanda"},
		{ID: 6, Name: "Quiçama", ProvinceID: 1, ProvinceName: "Luanda"},
		{ID: 7, Name: "Viana", ProvinceID: 1, ProvinceName: "Luanda"},
		{ID: 8, Name: "Benguela", ProvinceID: 3, ProvinceName: "Benguela"},
		{ID: 9, Name: "Lobito", ProvinceID: 3, ProvinceName: "Benguela"},
		{ID: 10, Name: "Catumbela", ProvinceID: 3, ProvinceName: "Benguela"},
		{ID: 11, Name: "Huambo", ProvinceID: 10, ProvinceName: "Huambo"},
		{ID: 12, Name: "Caála", ProvinceID: 10, ProvinceName: "Huambo"},
		{ID: 13, Name: "Lubango", ProvinceID: 11, ProvinceName: "Huíla"},
		{ID: 14, Name: "Cabinda", ProvinceID: 5, ProvinceName: "Cabinda"},
		{ID: 15, Name: "Malanje", ProvinceID: 14, ProvinceName: "Malanje"},
	}
}

// SeedSchools returns the starter school dataset. Municipality references
// are by id, normalized against SeedMunicipalities.
func SeedSchools() []School {
	return []School{
		{ID: 1, Name: "Escola Secundária Mutu Ya Kevela", Type: SchoolPublic, ProvinceID: 1, ProvinceName: "Luanda", MunicipalityID: 1, MunicipalityName: "Luanda", Address: "Maianga"},
		{ID: 2, Name: "Colégio São Francisco de Assis", Type: SchoolPrivate, ProvinceID: 1, ProvinceName: "Luanda", MunicipalityID: 2, MunicipalityName: "Belas", Address: "Talatona"},
		{ID: 3, Name: "Instituto Médio Politécnico do Cazenga", Type: SchoolPublic, ProvinceID: 1, ProvinceName: "Luanda", MunicipalityID: 4, MunicipalityName: "Cazenga", Address: "Hoji Ya Henda"},
		{ID: 4, Name: "Escola Secundária Comandante Gika", Type: SchoolPublic, ProvinceID: 3, ProvinceName: "Benguela", MunicipalityID: 8, MunicipalityName: "Benguela", Address: "Centro"},
		{ID: 5, Name: "Escola do II Ciclo do Ensino Secundário do Lobito", Type: SchoolPublic, ProvinceID: 3, ProvinceName: "Benguela", MunicipalityID: 9, MunicipalityName: "Lobito", Address: "Compão"},
		{ID: 6, Name: "Instituto Médio de Economia do Huambo", Type: SchoolPublic, ProvinceID: 10, ProvinceName: "Huambo", MunicipalityID: 11, MunicipalityName: "Huambo", Address: "Centro"},
		{ID: 7, Name: "Escola Secundária da Tchivinguiro", Type: SchoolPublic, ProvinceID: 11, ProvinceName: "Huíla", MunicipalityID: 13, MunicipalityName: "Lubango", Address: "Tchivinguiro"},
		{ID: 8, Name: "Colégio Ekuikui II", Type: SchoolPrivate, ProvinceID: 11, ProvinceName: "Huíla", MunicipalityID: 13, MunicipalityName: "Lubango", Address: "Tchioco"},
	}
}

// SeedMarkets returns the starter market dataset.
func SeedMarkets() []Market {
	return []Market{
		{ID: 1, Name: "Mercado do Roque Santeiro", Type: MarketInformal, ProvinceID: 1, ProvinceName: "Luanda", MunicipalityName: "Luanda", Specialty: "Diversos"},
		{ID: 2, Name: "Mercado dos Kwanzas", Type: MarketFormal, ProvinceID: 1, ProvinceName: "Luanda", MunicipalityName: "Luanda", Specialty: "Alimentação"},
		{ID: 3, Name: "Mercado do Cazenga", Type: MarketInformal, ProvinceID: 1, ProvinceName: "Luanda", MunicipalityName: "Cazenga", Specialty: "Diversos"},
		{ID: 4, Name: "Mercado da Catumbela", Type: MarketMunicipal, ProvinceID: 3, ProvinceName: "Benguela", MunicipalityName: "Catumbela", Specialty: "Alimentação"},
		{ID: 5, Name: "Mercado Central do Lobito", Type: MarketMunicipal, ProvinceID: 3, ProvinceName: "Benguela", MunicipalityName: "Lobito", Specialty: "Diversos"},
		{ID: 6, Name: "Mercado do Huambo", Type: MarketMunicipal, ProvinceID: 10, ProvinceName: "Huambo", MunicipalityName: "Huambo", Specialty: "Alimentação e Artesanato"},
		{ID: 7, Name: "Mercado da Tchavola", Type: MarketInformal, ProvinceID: 11, ProvinceName: "Huíla", MunicipalityName: "Lubango", Specialty: "Diversos"},
	}
}

// SeedHospitals returns the starter hospital dataset.
func SeedHospitals() []Hospital {
	return []Hospital{
		{ID: 1, Name: "Hospital Américo Boavida", Type: HospitalPublic, Category: "Geral", ProvinceID: 1, ProvinceName: "Luanda", MunicipalityName: "Luanda", Address: "Maianga"},
		{ID: 2, Name: "Hospital Josina Machel", Type: HospitalPublic, Category: "Materno-Infantil", ProvinceID: 1, ProvinceName: "Luanda", MunicipalityName: "Luanda", Address: "Samba"},
		{ID: 3, Name: "Clínica Girassol", Type: HospitalPrivate, Category: "Geral", ProvinceID: 1, ProvinceName: "Luanda", MunicipalityName: "Luanda", Address: "Talatona"},
		{ID: 4, Name: "Hospital Provincial do Bengo", Type: HospitalPublic, Category: "Geral", ProvinceID: 2, ProvinceName: "Bengo", MunicipalityName: "Caxito", Address: "Centro"},
		{ID: 5, Name: "Hospital Provincial de Benguela", Type: HospitalPublic, Category: "Geral", ProvinceID: 3, ProvinceName: "Benguela", MunicipalityName: "Benguela", Address: "Centro"},
		{ID: 6, Name: "Hospital Municipal do Lobito", Type: HospitalPublic, Category: "Geral", ProvinceID: 3, ProvinceName: "Benguela", MunicipalityName: "Lobito", Address: "Centro"},
		{ID: 7, Name: "Hospital Central do Huambo", Type: HospitalPublic, Category: "Central", ProvinceID: 10, ProvinceName: "Huambo", MunicipalityName: "Huambo", Address: "Centro"},
		{ID: 8, Name: "Hospital Central da Huíla", Type: HospitalPublic, Category: "Central", ProvinceID: 11, ProvinceName: "Huíla", MunicipalityName: "Lubango", Address: "Centro"},
		{ID: 9, Name: "Hospital Pediátrico David Bernardino", Type: HospitalPublic, Category: "Pediátrico", ProvinceID: 1, ProvinceName: "Luanda", MunicipalityName: "Luanda", Address: "Sambizanga"},
	}
}
