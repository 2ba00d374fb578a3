package handlers

import (
	"net/http"
	"strings"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/http/middleware"
	"courierdesk/internal/repositories"
	"courierdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		BookingRepo:     repositories.BookingRepo{},
		AddressRepo:     repositories.AddressRepo{},
		ConsignmentRepo: repositories.ConsignmentRepo{},
		OutboxRepo:      repositories.OutboxRepo{},
		Idem:            idemStore,
		RequestID:       middleware.GetRequestID(c),
	}
}

// POST /api/bookings
func CreateBooking(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	var b models.Booking
	if !BindJSONOrError(c, &b) {
		return
	}

	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	booking, replayed, err := bookingService(c).Submit(c.Request.Context(), int64(rc.UserID), b, idemKey)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{
		"success":  true,
		"replayed": replayed,
		"booking": gin.H{
			"bookingReference":  booking.BookingReference,
			"consignmentNumber": booking.ConsignmentNumber,
		},
	})
}

// GET /api/bookings
func ListBookings(c *gin.Context) {
	page, size := pageParams(c)
	from, ok := dateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := dateQuery(c, "to")
	if !ok {
		return
	}
	filter := repositories.ListFilter{
		Status:   c.Query("status"),
		Phone:    c.Query("phone"),
		FromDate: from,
		ToDate:   to,
		Page:     page,
		PageSize: size,
	}

	bookings, total, err := repositories.BookingRepo{}.List(filter)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":     bookings,
		"page":     page,
		"pageSize": size,
		"total":    total,
	})
}

// GET /api/bookings/:id
func GetBooking(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := repositories.BookingRepo{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

type statusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/bookings/:id/status
func UpdateBookingStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req statusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	b, err := bookingService(c).ChangeStatus(id, models.BookingStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": b})
}

// GET /api/bookings/lookup?phone=&role=
func LookupAddresses(c *gin.Context) {
	addrs, err := bookingService(c).Lookup(c.Request.Context(), c.Query("phone"), c.Query("role"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if addrs == nil {
		addrs = []models.Address{}
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addrs, "found": len(addrs) > 0})
}
