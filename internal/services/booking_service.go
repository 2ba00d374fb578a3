package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "courierdesk/internal/config"
	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/metrics"
	"courierdesk/internal/pricing"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"
	"courierdesk/internal/wizard"

	"github.com/google/uuid"
)

type BookingService struct {
	BookingRepo     repositories.BookingRepo
	AddressRepo     repositories.AddressRepo
	ConsignmentRepo repositories.ConsignmentRepo
	OutboxRepo      repositories.OutboxRepo
	Idem            *IdempotencyStore
	DB              *sql.DB
	RequestID       string
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BookingService) bookings() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.db()}
}

func (s BookingService) addresses() repositories.AddressRepo {
	if s.AddressRepo.DB != nil {
		return s.AddressRepo
	}
	return repositories.AddressRepo{DB: s.db()}
}

func (s BookingService) consignments() repositories.ConsignmentRepo {
	if s.ConsignmentRepo.DB != nil {
		return s.ConsignmentRepo
	}
	return repositories.ConsignmentRepo{DB: s.db()}
}

func (s BookingService) outbox() repositories.OutboxRepo {
	if s.OutboxRepo.DB != nil {
		return s.OutboxRepo
	}
	return repositories.OutboxRepo{DB: s.db()}
}

// ValidatePayload runs the full submission checks: every wizard guard plus
// a server-side recompute of derived charge figures. A client-sent grand
// total that disagrees with the recomputed one is rejected.
func (s BookingService) ValidatePayload(b *models.Booking) error {
	b.Origin.Name = utils.NormalizeSpace(b.Origin.Name)
	b.Destination.Name = utils.NormalizeSpace(b.Destination.Name)

	if err := wizard.ValidateAddress(b.Origin, "origin"); err != nil {
		return err
	}
	if err := wizard.ValidateAddress(b.Destination, "destination"); err != nil {
		return err
	}
	if err := wizard.ValidateShipment(b.Shipment, b.Package); err != nil {
		return err
	}
	if err := wizard.ValidateInvoice(b.Invoice); err != nil {
		return err
	}
	if err := wizard.ValidateBilling(b.Billing); err != nil {
		return err
	}

	det := pricing.Compute(pricing.Input{
		Dimensions:   b.Shipment.Dimensions,
		ActualWeight: b.Shipment.ActualWeight,
		PerKgRate:    b.Shipment.PerKgRate,
		Charges:      b.Charges,
		GSTApplies:   b.Billing.GST == "Yes",
		SameState:    b.Origin.State == b.Destination.State,
	})
	if b.Charges.GrandTotal != 0 && b.Charges.GrandTotal != det.GrandTotal {
		return domain.ValidationError{
			Field: "charges.grandTotal",
			Msg:   fmt.Sprintf("expected %s", det.GrandTotal),
		}
	}
	pricing.Apply(b, det)
	return nil
}

// Submit persists a validated booking: consignment allocation, the booking
// row and the confirmation email all commit in one transaction. A repeated
// Idempotency-Key replays the first result.
func (s BookingService) Submit(ctx context.Context, userID int64, b models.Booking, idemKey string) (models.Booking, bool, error) {
	if prev, err := s.Idem.Get(ctx, userID, idemKey); err != nil {
		return b, false, domain.InternalError{Err: err}
	} else if prev != nil {
		b.BookingReference = prev.BookingReference
		b.ConsignmentNumber = prev.ConsignmentNumber
		b.Status = models.StatusPending
		return b, true, nil
	}

	if err := s.ValidatePayload(&b); err != nil {
		return b, false, err
	}

	b.BookingReference = newBookingReference()
	b.Status = models.StatusPending
	b.CustomerID = domain.ID(userID)

	tx, err := s.db().BeginTx(ctx, nil)
	if err != nil {
		return b, false, domain.InternalError{Err: err}
	}
	defer tx.Rollback()

	number, err := s.consignments().AllocateTx(tx, userID)
	if err != nil {
		return b, false, err
	}
	b.ConsignmentNumber = number

	if err := s.bookings().InsertTx(tx, &b); err != nil {
		return b, false, domain.InternalError{Err: err}
	}

	if to := strings.TrimSpace(b.Origin.Email); to != "" {
		subject := fmt.Sprintf("Booking confirmed - consignment #%d", b.ConsignmentNumber)
		if err := s.outbox().EnqueueTx(tx, to, subject, confirmationBody(b)); err != nil {
			return b, false, domain.InternalError{Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return b, false, domain.InternalError{Err: err}
	}

	// Address book and idempotency record are best-effort after commit.
	_ = s.addresses().Upsert(b.Origin.MobileNumber, "origin", b.Origin)
	_ = s.addresses().Upsert(b.Destination.MobileNumber, "destination", b.Destination)
	_ = s.Idem.Set(ctx, userID, idemKey, StoredBooking{
		BookingReference:  b.BookingReference,
		ConsignmentNumber: b.ConsignmentNumber,
	})

	metrics.IncBookingCreated()
	utils.LogEvent(s.RequestID, "booking", "submit",
		fmt.Sprintf("reference=%s consignment=%d", b.BookingReference, b.ConsignmentNumber))
	return b, false, nil
}

// ChangeStatus applies one status transition after checking legality.
func (s BookingService) ChangeStatus(id int64, next models.BookingStatus) (models.Booking, error) {
	if !next.Valid() {
		return models.Booking{}, domain.ValidationError{Field: "status", Msg: "unknown status"}
	}
	b, err := s.bookings().GetByID(id)
	if err != nil {
		return b, err
	}
	if !b.Status.CanTransition(next) {
		return b, domain.ConflictError{
			Resource: "booking",
			Msg:      fmt.Sprintf("cannot move from %s to %s", b.Status, next),
		}
	}
	if err := s.bookings().UpdateStatus(id, next); err != nil {
		return b, err
	}
	b.Status = next
	utils.LogEvent(s.RequestID, "booking", "status_change",
		fmt.Sprintf("id=%d status=%s", id, next))
	return b, nil
}

// Lookup returns prior addresses for a phone/role pair; empty list is a
// normal outcome, not an error.
func (s BookingService) Lookup(ctx context.Context, phone, role string) ([]models.Address, error) {
	if !utils.IsDigits(phone, 10) {
		return nil, domain.ValidationError{Field: "phone", Msg: "must be exactly 10 digits"}
	}
	if role != "origin" && role != "destination" {
		return nil, domain.ValidationError{Field: "role", Msg: "must be origin or destination"}
	}
	return s.addresses().ListByPhoneRole(ctx, phone, role)
}

func newBookingReference() string {
	return "BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

func confirmationBody(b models.Booking) string {
	return fmt.Sprintf(
		"Dear %s,\n\nYour shipment has been booked.\n\nBooking reference: %s\nConsignment number: %d\nFrom: %s, %s %s\nTo: %s, %s %s\nChargeable weight: %.2f kg\nGrand total: %s\n\nThank you.",
		b.Origin.Name,
		b.BookingReference, b.ConsignmentNumber,
		b.Origin.City, b.Origin.State, b.Origin.Pincode,
		b.Destination.City, b.Destination.State, b.Destination.Pincode,
		b.Shipment.ChargeableWeight,
		b.Charges.GrandTotal,
	)
}
