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

func pincodeTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/pincode/:code", ResolvePincode)
	return r
}

func TestResolvePincodeHandler(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	prev := intconfig.DB
	intconfig.DB = db
	defer func() { intconfig.DB = prev }()

	rows := sqlmock.NewRows([]string{"id", "pincode", "state", "city", "district", "area", "serviceable"}).
		AddRow(1, "560001", "Karnataka", "Bengaluru", "Bengaluru Urban", "MG Road", 1)
	mock.ExpectQuery("FROM pincodes").WithArgs("560001").WillReturnRows(rows)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pincode/560001", nil)
	pincodeTestRouter().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	// the resolution is the response body itself, no envelope
	var body struct {
		Pincode     string `json:"pincode"`
		State       string `json:"state"`
		Serviceable bool   `json:"serviceable"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !body.Serviceable || body.State != "Karnataka" || body.Pincode != "560001" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestResolvePincodeHandlerRejectsBadCode(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pincode/12ab", nil)
	pincodeTestRouter().ServeHTTP(w, req)

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
