package services

import (
	"strings"
	"testing"
	"time"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/utils"
)

func TestDocsServiceGenerate(t *testing.T) {
	loader := func(id int64) (models.Booking, error) {
		return models.Booking{
			ID:                1,
			BookingReference:  "BK-TEST123",
			ConsignmentNumber: 5001,
			Status:            models.StatusConfirmed,
			CreatedAt:         time.Now(),
			Origin: models.Address{
				Name: "Ravi Kumar", MobileNumber: "9876543210",
				FlatBuilding: "12A", Locality: "MG Road",
				City: "Bengaluru", District: "Bengaluru Urban",
				State: "Karnataka", Pincode: "560001",
			},
			Destination: models.Address{
				Name: "Anita Shah", MobileNumber: "9123456780",
				City: "Mumbai", State: "Maharashtra", Pincode: "400001",
			},
			Shipment: models.Shipment{
				Mode: "surface", Services: "standard",
				NatureOfConsignment: "parcel",
				ActualWeight:        5, ChargeableWeight: 6.4,
			},
			Package: models.Package{TotalPackages: 2},
			Invoice: models.Invoice{InvoiceValue: utils.Money(250000)},
			Billing: models.Billing{PartyType: "sender"},
			Charges: models.Charges{
				Freight:    utils.Money(64000),
				IGST:       utils.Money(11520),
				GSTAmount:  utils.Money(11520),
				GrandTotal: utils.Money(75520),
			},
			Payment: models.Payment{Method: "cash", Status: "paid"},
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateConsignmentNote(1)
	if err != nil {
		t.Fatalf("GenerateConsignmentNote returned error: %v", err)
	}
	if len(pdf) == 0 || filename == "" {
		t.Fatalf("GenerateConsignmentNote returned empty data")
	}
	if !strings.HasPrefix(filename, "CN_5001_") {
		t.Fatalf("unexpected filename %q", filename)
	}

	invoice, invName, err := svc.GenerateInvoice(1)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(invoice) == 0 || invName == "" {
		t.Fatalf("GenerateInvoice returned empty data")
	}
}
