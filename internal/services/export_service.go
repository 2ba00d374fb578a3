package services

import (
	"bytes"
	"database/sql"
	"fmt"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"

	"github.com/xuri/excelize/v2"
)

// ExportService writes the bookings register as an xlsx workbook.
type ExportService struct {
	BookingRepo repositories.BookingRepo
	DB          *sql.DB
	RequestID   string
	Loader      func(repositories.ListFilter) ([]models.Booking, error)
}

func (s ExportService) bookingRepo() repositories.BookingRepo {
	if s.BookingRepo.DB != nil {
		return s.BookingRepo
	}
	return repositories.BookingRepo{DB: s.DB}
}

func (s ExportService) load(f repositories.ListFilter) ([]models.Booking, error) {
	if s.Loader != nil {
		return s.Loader(f)
	}
	// the register export is unpaginated; cap at a sane maximum
	f.Page = 1
	f.PageSize = 10000
	list, _, err := s.bookingRepo().List(f)
	return list, err
}

var registerHeaders = []string{
	"Consignment No", "Booking Ref", "Status", "Booked On",
	"Consignor", "Consignor Phone", "From Pincode", "From State",
	"Consignee", "Consignee Phone", "To Pincode", "To State",
	"Mode", "Packages", "Actual Wt (kg)", "Charged Wt (kg)",
	"Freight", "GST", "Grand Total", "Payment",
}

// ExportRegister builds the workbook and returns its bytes and a filename.
func (s ExportService) ExportRegister(filter repositories.ListFilter) ([]byte, string, error) {
	bookings, err := s.load(filter)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range registerHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	last, _ := excelize.CoordinatesToCellName(len(registerHeaders), 1)
	_ = f.SetCellStyle(sheet, "A1", last, headerStyle)

	for i, b := range bookings {
		gst := b.Charges.IGST
		if gst == 0 {
			gst = b.Charges.GSTAmount
		}
		row := []any{
			b.ConsignmentNumber,
			b.BookingReference,
			string(b.Status),
			utils.FormatDateTime(b.CreatedAt),
			b.Origin.Name,
			b.Origin.MobileNumber,
			b.Origin.Pincode,
			b.Origin.State,
			b.Destination.Name,
			b.Destination.MobileNumber,
			b.Destination.Pincode,
			b.Destination.State,
			b.Shipment.Mode,
			b.Package.TotalPackages,
			b.Shipment.ActualWeight,
			b.Shipment.ChargeableWeight,
			b.Charges.Freight.String(),
			gst.String(),
			b.Charges.GrandTotal.String(),
			b.Payment.Status,
		}
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	_ = f.SetColWidth(sheet, "A", "D", 18)
	_ = f.SetColWidth(sheet, "E", "L", 16)
	_ = f.SetColWidth(sheet, "M", "T", 14)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("write workbook: %w", err)
	}

	utils.LogEvent(s.RequestID, "export", "bookings_register", fmt.Sprintf("rows=%d", len(bookings)))
	filename := fmt.Sprintf("bookings_register_%s.xlsx", utils.NowStamp())
	return buf.Bytes(), filename, nil
}
