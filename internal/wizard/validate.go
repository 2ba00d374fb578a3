package wizard

import (
	"strings"

	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/gstin"
	"courierdesk/internal/utils"
)

// ValidateAddress enforces the booking address invariants. The booking
// service reuses it on the final payload so a hand-built submission cannot
// bypass the wizard's guards.
func ValidateAddress(a models.Address, field string) error {
	req := func(name, v string) error {
		if strings.TrimSpace(v) == "" {
			return domain.ValidationError{Field: field + "." + name, Msg: "required"}
		}
		return nil
	}
	if err := req("name", a.Name); err != nil {
		return err
	}
	if !utils.IsDigits(a.MobileNumber, 10) {
		return domain.ValidationError{Field: field + ".mobileNumber", Msg: "must be exactly 10 digits"}
	}
	if err := req("flatBuilding", a.FlatBuilding); err != nil {
		return err
	}
	if err := req("locality", a.Locality); err != nil {
		return err
	}
	if !utils.IsDigits(a.Pincode, 6) {
		return domain.ValidationError{Field: field + ".pincode", Msg: "must be exactly 6 digits"}
	}
	if err := req("city", a.City); err != nil {
		return err
	}
	if err := req("state", a.State); err != nil {
		return err
	}
	if !gstin.Check(a.GSTNumber) {
		if gstin.Partial(a.GSTNumber) {
			return domain.ValidationError{Field: field + ".gstNumber", Msg: "incomplete GSTIN"}
		}
		return domain.ValidationError{Field: field + ".gstNumber", Msg: "invalid GSTIN"}
	}
	return nil
}

func ValidateShipment(s models.Shipment, p models.Package) error {
	if strings.TrimSpace(s.NatureOfConsignment) == "" {
		return domain.ValidationError{Field: "shipment.natureOfConsignment", Msg: "required"}
	}
	if strings.TrimSpace(s.Mode) == "" {
		return domain.ValidationError{Field: "shipment.mode", Msg: "required"}
	}
	if s.ActualWeight <= 0 {
		return domain.ValidationError{Field: "shipment.actualWeight", Msg: "must be greater than zero"}
	}
	if s.PerKgRate <= 0 {
		return domain.ValidationError{Field: "shipment.perKgRate", Msg: "must be greater than zero"}
	}
	for _, d := range s.Dimensions {
		if d.Length < 0 || d.Breadth < 0 || d.Height < 0 {
			return domain.ValidationError{Field: "shipment.dimensions", Msg: "dimensions cannot be negative"}
		}
		switch strings.ToLower(strings.TrimSpace(d.Unit)) {
		case "cm", "mm", "m", "":
		default:
			return domain.ValidationError{Field: "shipment.dimensions", Msg: "unit must be cm, mm or m"}
		}
	}
	if p.TotalPackages <= 0 {
		return domain.ValidationError{Field: "package.totalPackages", Msg: "required"}
	}
	if strings.TrimSpace(p.ContentDescription) == "" {
		return domain.ValidationError{Field: "package.contentDescription", Msg: "required"}
	}
	return nil
}

func ValidateInvoice(inv models.Invoice) error {
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		return domain.ValidationError{Field: "invoice.invoiceNumber", Msg: "required"}
	}
	if inv.InvoiceValue <= 0 {
		return domain.ValidationError{Field: "invoice.invoiceValue", Msg: "must be greater than zero"}
	}
	if inv.InvoiceValue > models.EWaybillThreshold && !utils.IsDigits(inv.EWaybillNumber, 12) {
		return domain.ValidationError{Field: "invoice.eWaybillNumber", Msg: "12-digit e-waybill number required for invoice value above 50,000"}
	}
	if !inv.AcceptTerms {
		return domain.ValidationError{Field: "invoice.acceptTerms", Msg: "terms must be accepted"}
	}
	return nil
}

func ValidateBilling(b models.Billing) error {
	switch b.GST {
	case "Yes":
		if b.BillType != "normal" && b.BillType != "rcm" {
			return domain.ValidationError{Field: "billing.billType", Msg: "must be normal or rcm when GST is Yes"}
		}
	case "No":
	default:
		return domain.ValidationError{Field: "billing.gst", Msg: "must be Yes or No"}
	}
	if b.PartyType != "sender" && b.PartyType != "recipient" {
		return domain.ValidationError{Field: "billing.partyType", Msg: "must be sender or recipient"}
	}
	return nil
}
