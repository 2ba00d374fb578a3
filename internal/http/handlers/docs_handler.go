package handlers

import (
	"net/http"

	"courierdesk/internal/http/middleware"
	"courierdesk/internal/repositories"
	"courierdesk/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/bookings/:id/consignment-note
func GetConsignmentNotePDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.DocsService{
		BookingRepo: repositories.BookingRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateConsignmentNote(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/bookings/:id/invoice
func GetBookingInvoicePDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	svc := services.DocsService{
		BookingRepo: repositories.BookingRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateInvoice(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
