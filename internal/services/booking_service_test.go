package services

import (
	"context"
	"testing"
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func submittableBooking() models.Booking {
	origin := models.Address{
		Name:         "Ravi Kumar",
		MobileNumber: "9876543210",
		Email:        "ravi@example.com",
		FlatBuilding: "12A",
		Locality:     "MG Road",
		Pincode:      "560001",
		City:         "Bengaluru",
		District:     "Bengaluru Urban",
		State:        "Karnataka",
	}
	dest := origin
	dest.Name = "Anita Shah"
	dest.MobileNumber = "9123456780"
	dest.Email = ""
	dest.Pincode = "400001"
	dest.City = "Mumbai"
	dest.District = "Mumbai City"
	dest.State = "Maharashtra"

	return models.Booking{
		Origin:      origin,
		Destination: dest,
		Shipment: models.Shipment{
			NatureOfConsignment: "parcel",
			Mode:                "surface",
			ActualWeight:        5,
			PerKgRate:           utils.Money(1000),
		},
		Package: models.Package{
			TotalPackages:      1,
			ContentDescription: "books",
		},
		Invoice: models.Invoice{
			InvoiceNumber: "INV-77",
			InvoiceValue:  utils.Money(250000),
			AcceptTerms:   true,
		},
		Billing: models.Billing{GST: "No", PartyType: "sender"},
	}
}

func testIdemStore(t *testing.T) *IdempotencyStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, time.Hour)
}

func TestValidatePayloadNormalizesNames(t *testing.T) {
	b := submittableBooking()
	b.Origin.Name = "  Ravi   Kumar "
	b.Destination.Name = "Anita\t Shah"

	if err := (BookingService{}).ValidatePayload(&b); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	if b.Origin.Name != "Ravi Kumar" || b.Destination.Name != "Anita Shah" {
		t.Fatalf("names not normalized: %q / %q", b.Origin.Name, b.Destination.Name)
	}
}

func TestBookingSubmitAllocatesAndReplays(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM consignment_pools").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "next_number", "range_end"}).AddRow(1, 5001, 6000))
	mock.ExpectExec("UPDATE consignment_pools SET next_number").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectExec("INSERT INTO email_outbox").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	// post-commit address book writes, one per party
	mock.ExpectExec("INSERT INTO address_book").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO address_book").
		WillReturnResult(sqlmock.NewResult(2, 1))

	svc := BookingService{
		BookingRepo:     repositories.BookingRepo{DB: db},
		AddressRepo:     repositories.AddressRepo{DB: db},
		ConsignmentRepo: repositories.ConsignmentRepo{DB: db},
		OutboxRepo:      repositories.OutboxRepo{DB: db},
		Idem:            testIdemStore(t),
		DB:              db,
	}

	got, replayed, err := svc.Submit(context.Background(), 7, submittableBooking(), "key-1")
	if err != nil {
		t.Fatalf("submit error: %v", err)
	}
	if replayed {
		t.Fatalf("first submit must not replay")
	}
	if got.ConsignmentNumber != 5001 {
		t.Fatalf("expected consignment 5001, got %d", got.ConsignmentNumber)
	}
	if got.BookingReference == "" || got.Status != models.StatusPending {
		t.Fatalf("unexpected booking state: ref=%q status=%s", got.BookingReference, got.Status)
	}
	// GST No: grand total equals the recomputed freight
	if got.Charges.GrandTotal != got.Charges.Freight {
		t.Fatalf("expected grandTotal == freight, got %s vs %s", got.Charges.GrandTotal, got.Charges.Freight)
	}

	// same key replays without touching the database again
	again, replayed, err := svc.Submit(context.Background(), 7, submittableBooking(), "key-1")
	if err != nil {
		t.Fatalf("replay error: %v", err)
	}
	if !replayed {
		t.Fatalf("second submit with same key must replay")
	}
	if again.BookingReference != got.BookingReference || again.ConsignmentNumber != got.ConsignmentNumber {
		t.Fatalf("replay returned different identifiers")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBookingSubmitExhaustedPool(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	mock.ExpectBegin()
	mock.ExpectQuery("FROM consignment_pools").WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "next_number", "range_end"}))
	mock.ExpectRollback()

	svc := BookingService{
		BookingRepo:     repositories.BookingRepo{DB: db},
		ConsignmentRepo: repositories.ConsignmentRepo{DB: db},
		Idem:            testIdemStore(t),
		DB:              db,
	}

	_, _, err = svc.Submit(context.Background(), 7, submittableBooking(), "key-2")
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict on exhausted pool, got %v", err)
	}
}

func TestBookingSubmitRejectsWrongGrandTotal(t *testing.T) {
	svc := BookingService{Idem: testIdemStore(t)}

	b := submittableBooking()
	b.Charges.GrandTotal = utils.Money(1)
	_, _, err := svc.Submit(context.Background(), 7, b, "key-3")
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangeStatusRejectsIllegalTransition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	payload := `{"bookingReference":"BK-1","consignmentNumber":5001,"status":"pending"}`
	rows := sqlmock.NewRows([]string{"id", "status", "payload", "created_at", "updated_at"}).
		AddRow(42, "pending", payload, time.Now(), time.Now())
	mock.ExpectQuery("FROM bookings").WillReturnRows(rows)

	svc := BookingService{BookingRepo: repositories.BookingRepo{DB: db}, DB: db}

	_, err = svc.ChangeStatus(42, models.StatusDelivered)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict skipping straight to delivered, got %v", err)
	}
}
