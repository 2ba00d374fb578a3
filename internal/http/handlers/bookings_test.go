package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	intconfig "courierdesk/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func lookupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/bookings/lookup", LookupAddresses)
	return r
}

func TestLookupAddressesResponseShape(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	rows := sqlmock.NewRows([]string{
		"name", "email", "company_name", "flat_building", "locality", "landmark",
		"pincode", "city", "district", "state", "area", "gst_number", "address_type",
	}).AddRow(
		"Asha Rao", "asha@example.com", "", "12 Residency Rd", "Shanthala Nagar", "",
		"560025", "Bengaluru", "Bengaluru Urban", "Karnataka", "Richmond Town", "", "home",
	)
	mock.ExpectQuery("FROM address_book").WithArgs("9876543210", "origin").WillReturnRows(rows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/lookup?phone=9876543210&role=origin", nil)
	lookupTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Addresses []struct {
			Name    string `json:"name"`
			Pincode string `json:"pincode"`
		} `json:"addresses"`
		Found bool `json:"found"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Found || len(body.Addresses) != 1 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if body.Addresses[0].Name != "Asha Rao" || body.Addresses[0].Pincode != "560025" {
		t.Fatalf("unexpected address: %+v", body.Addresses[0])
	}
}

func TestListBookingsRejectsBadDate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/bookings", ListBookings)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings?from=2026-13-45", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body["code"] != "validation_error" {
		t.Fatalf("expected validation_error code, got %v", body["code"])
	}
}

func TestLookupAddressesEmptyList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	mock.ExpectQuery("FROM address_book").WithArgs("9876543210", "destination").
		WillReturnRows(sqlmock.NewRows([]string{
			"name", "email", "company_name", "flat_building", "locality", "landmark",
			"pincode", "city", "district", "state", "area", "gst_number", "address_type",
		}))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/bookings/lookup?phone=9876543210&role=destination", nil)
	lookupTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		Addresses []json.RawMessage `json:"addresses"`
		Found     bool              `json:"found"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if body.Found || body.Addresses == nil || len(body.Addresses) != 0 {
		t.Fatalf("expected empty addresses array, got %s", w.Body.String())
	}
}
