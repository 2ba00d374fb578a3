package services

import (
	"testing"

	"courierdesk/internal/domain"
	"courierdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPincodeResolveNested(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "pincode", "state", "city", "district", "area", "serviceable"}).
		AddRow(1, "560001", "Karnataka", "Bengaluru", "Bengaluru Urban", "MG Road", 1).
		AddRow(2, "560001", "Karnataka", "Bengaluru", "Bengaluru Urban", "Shivajinagar", 1).
		AddRow(3, "560001", "Karnataka", "Bengaluru", "Bengaluru Rural", "Hesaraghatta", 1)
	mock.ExpectQuery("FROM pincodes").WithArgs("560001").WillReturnRows(rows)

	svc := PincodeService{Repo: repositories.PincodeRepo{DB: db}}

	res, err := svc.Resolve("560001")
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if !res.Serviceable || res.State != "Karnataka" {
		t.Fatalf("unexpected result: %+v", res)
	}
	city, ok := res.Cities["Bengaluru"]
	if !ok {
		t.Fatalf("city missing: %+v", res.Cities)
	}
	if len(city.Districts) != 2 {
		t.Fatalf("expected 2 districts, got %d", len(city.Districts))
	}
	if got := len(city.Districts["Bengaluru Urban"].Areas); got != 2 {
		t.Fatalf("expected 2 urban areas, got %d", got)
	}
}

func TestPincodeResolveUnknownIsSoft(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM pincodes").WithArgs("999999").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pincode", "state", "city", "district", "area", "serviceable"}))

	svc := PincodeService{Repo: repositories.PincodeRepo{DB: db}}

	res, err := svc.Resolve("999999")
	if err != nil {
		t.Fatalf("unknown pincode must not error: %v", err)
	}
	if res.Serviceable || len(res.Cities) != 0 {
		t.Fatalf("expected soft non-serviceable result, got %+v", res)
	}
}

func TestPincodeResolveRejectsBadInput(t *testing.T) {
	svc := PincodeService{}
	for _, code := range []string{"", "12345", "1234567", "56000a"} {
		if _, err := svc.Resolve(code); !domain.IsValidation(err) {
			t.Fatalf("code %q: expected validation error, got %v", code, err)
		}
	}
}
