package repositories

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestBookingEnsureTableAddsColoaderColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.tables").WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
	mock.ExpectQuery("information_schema.columns").WithArgs("bookings", "coloader_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))
	mock.ExpectExec("ALTER TABLE bookings ADD COLUMN coloader_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := (BookingRepo{DB: db}).EnsureTable(); err != nil {
		t.Fatalf("ensure table error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingEnsureTableNoopWhenCurrent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema.tables").WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
	mock.ExpectQuery("information_schema.columns").WithArgs("bookings", "coloader_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("coloader_id"))

	if err := (BookingRepo{DB: db}).EnsureTable(); err != nil {
		t.Fatalf("ensure table error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
