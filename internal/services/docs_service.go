package services

import (
	"bytes"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the consignment note and tax invoice PDFs for a
// booking.
type DocsService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
	Loader      func(int64) (models.Booking, error)
}

func (s DocsService) GenerateConsignmentNote(bookingID int64) ([]byte, string, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_consignment_note", fmt.Sprintf("booking_id=%d", bookingID))
	return buildConsignmentNotePDF(b)
}

func (s DocsService) GenerateInvoice(bookingID int64) ([]byte, string, error) {
	b, err := s.load(bookingID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("booking_id=%d", bookingID))
	return buildBookingInvoicePDF(b)
}

func (s DocsService) load(bookingID int64) (models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(bookingID)
	}
	return s.bookingRepo().GetByID(bookingID)
}

func (s DocsService) bookingRepo() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.DB}
}

func buildConsignmentNotePDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Consignment Note", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "CONSIGNMENT NOTE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Consignment No  : %d", b.ConsignmentNumber),
		fmt.Sprintf("Booking Ref     : %s", safe(b.BookingReference, "-")),
		fmt.Sprintf("Booked On       : %s", utils.FormatDateTime(b.CreatedAt)),
		fmt.Sprintf("Mode / Service  : %s / %s", safe(b.Shipment.Mode, "-"), safe(b.Shipment.Services, "-")),
		fmt.Sprintf("Nature          : %s", safe(b.Shipment.NatureOfConsignment, "-")),
		fmt.Sprintf("Packages        : %d", b.Package.TotalPackages),
		fmt.Sprintf("Actual Wt (kg)  : %.2f", b.Shipment.ActualWeight),
		fmt.Sprintf("Charged Wt (kg) : %.2f", b.Shipment.ChargeableWeight),
	}
	for _, l := range lines {
		pdf.Cell(0, 7, l)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	writeParty(pdf, "Consignor", b.Origin)
	pdf.Ln(4)
	writeParty(pdf, "Consignee", b.Destination)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Declared Value: "+formatRupees(b.Invoice.InvoiceValue))
	pdf.Ln(8)
	if b.Invoice.EWaybillNumber != "" {
		pdf.SetFont("Helvetica", "", 12)
		pdf.Cell(0, 7, "E-Waybill No: "+b.Invoice.EWaybillNumber)
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Carriage is subject to the terms accepted at booking. This note must accompany the consignment in transit.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("CN_%d_%s.pdf", b.ConsignmentNumber, safeFilenamePart(b.BookingReference))
	return buf.Bytes(), filename, nil
}

func buildBookingInvoicePDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tax Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TAX INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%s", safeFilenamePart(b.BookingReference))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "No Invoice  : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date        : "+utils.FormatDateTime(time.Now()))
	pdf.Ln(10)

	billed := b.Origin
	if b.Billing.PartyType == "recipient" {
		billed = b.Destination
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed To:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Name  : "+safe(billed.Name, "-"))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Phone : "+safe(billed.MobileNumber, "-"))
	pdf.Ln(7)
	if billed.GSTNumber != "" {
		pdf.Cell(0, 7, "GSTIN : "+billed.GSTNumber)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Charges:")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	rows := []struct {
		label string
		amt   utils.Money
	}{
		{"Freight", b.Charges.Freight},
		{"AWB", b.Charges.AWB},
		{"Local Collection", b.Charges.LocalCollection},
		{"Door Delivery", b.Charges.DoorDelivery},
		{"Loading/Unloading", b.Charges.LoadingUnloading},
		{"Demurrage", b.Charges.Demurrage},
		{"DDA", b.Charges.DDA},
		{"Hamali", b.Charges.Hamali},
		{"Packing", b.Charges.Packing},
		{"Other", b.Charges.Other},
		{"Fuel Surcharge", b.Charges.FuelAmount},
	}
	for _, r := range rows {
		if r.amt == 0 {
			continue
		}
		pdf.Cell(0, 6, fmt.Sprintf("%-20s %s", r.label, formatRupees(r.amt)))
		pdf.Ln(6)
	}

	pdf.Ln(2)
	if b.Charges.IGST > 0 {
		pdf.Cell(0, 6, "IGST (18%)           "+formatRupees(b.Charges.IGST))
		pdf.Ln(6)
	} else if b.Charges.GSTAmount > 0 {
		pdf.Cell(0, 6, "CGST (9%)            "+formatRupees(b.Charges.CGST))
		pdf.Ln(6)
		pdf.Cell(0, 6, "SGST (9%)            "+formatRupees(b.Charges.SGST))
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Grand Total: "+formatRupees(b.Charges.GrandTotal))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Payment: %s (%s). This invoice covers consignment %d.",
		safe(b.Payment.Method, "-"), safe(b.Payment.Status, "-"), b.ConsignmentNumber), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s.pdf", safeFilenamePart(b.BookingReference))
	return buf.Bytes(), filename, nil
}

func writeParty(pdf *gofpdf.Fpdf, role string, a models.Address) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, role+":")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 11)
	addr := strings.TrimSpace(strings.Join(nonEmpty(a.FlatBuilding, a.Locality, a.Landmark), ", "))
	lines := []string{
		fmt.Sprintf("%s (%s)", safe(a.Name, "-"), safe(a.MobileNumber, "-")),
		safe(addr, "-"),
		fmt.Sprintf("%s, %s, %s - %s", safe(a.City, "-"), safe(a.District, "-"), safe(a.State, "-"), safe(a.Pincode, "-")),
	}
	if a.GSTNumber != "" {
		lines = append(lines, "GSTIN: "+a.GSTNumber)
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(6)
	}
}

func nonEmpty(parts ...string) []string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func formatRupees(v utils.Money) string {
	return "Rs " + v.String()
}
