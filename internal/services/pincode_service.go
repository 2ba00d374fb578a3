package services

import (
	"database/sql"

	intconfig "courierdesk/internal/config"
	"courierdesk/internal/domain"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"
)

type PincodeService struct {
	Repo repositories.PincodeRepo
	DB   *sql.DB
}

func (s PincodeService) repo() repositories.PincodeRepo {
	if s.Repo.DB != nil {
		return s.Repo
	}
	db := s.DB
	if db == nil {
		db = intconfig.DB
	}
	return repositories.PincodeRepo{DB: db}
}

// Area is a leaf in the resolver response.
type Area struct {
	Name string `json:"name"`
}

type District struct {
	Areas []Area `json:"areas"`
}

type City struct {
	Districts map[string]District `json:"districts"`
}

// Resolution is the nested serviceability view for one pincode.
type Resolution struct {
	Pincode     string          `json:"pincode"`
	State       string          `json:"state"`
	Serviceable bool            `json:"serviceable"`
	Cities      map[string]City `json:"cities"`
}

// Resolve builds the nested state/city/district/area view. An unknown
// pincode is a soft result: serviceable=false with empty cities, never an
// error.
func (s PincodeService) Resolve(code string) (Resolution, error) {
	if !utils.IsDigits(code, 6) {
		return Resolution{}, domain.ValidationError{Field: "pincode", Msg: "must be exactly 6 digits"}
	}

	entries, err := s.repo().LookupByCode(code)
	if err != nil {
		return Resolution{}, err
	}

	out := Resolution{
		Pincode:     code,
		Serviceable: len(entries) > 0,
		Cities:      map[string]City{},
	}
	for _, e := range entries {
		if out.State == "" {
			out.State = e.State
		}
		city, ok := out.Cities[e.City]
		if !ok {
			city = City{Districts: map[string]District{}}
		}
		dist := city.Districts[e.District]
		dist.Areas = append(dist.Areas, Area{Name: e.Area})
		city.Districts[e.District] = dist
		out.Cities[e.City] = city
	}
	return out, nil
}
