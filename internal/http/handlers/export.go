package handlers

import (
	"net/http"

	"courierdesk/internal/http/middleware"
	"courierdesk/internal/repositories"
	"courierdesk/internal/services"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// GET /api/bookings/export?from=&to=&status=
func ExportBookings(c *gin.Context) {
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}
	svc := services.ExportService{
		BookingRepo: repositories.BookingRepo{},
		RequestID:   middleware.GetRequestID(c),
	}
	data, filename, err := svc.ExportRegister(repositories.ListFilter{
		Status:   c.Query("status"),
		FromDate: from,
		ToDate:   to,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
