package api

import (
	"log"
	stdhttp "net/http"

	intconfig "courierdesk/internal/config"
	h "courierdesk/internal/http/handlers"
	"courierdesk/internal/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	secret := []byte(env.JWTSecret)
	authed := middleware.RequireAuth(secret)
	staff := middleware.RequireRoles("office", "admin")
	admin := middleware.RequireRoles("admin")

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", h.Health)
		apiGroup.GET("/db-check", h.DBCheck)
		apiGroup.GET("/routes", h.Routes)

		// Auth
		auth := apiGroup.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// OTP
		otp := apiGroup.Group("/otp")
		otp.POST("/send", h.SendOTP)
		otp.POST("/verify", h.VerifyOTP)

		// Public pincode resolver
		apiGroup.GET("/pincode/:code", h.ResolvePincode)

		// Bookings
		bookings := apiGroup.Group("/bookings", authed)
		bookings.GET("/lookup", h.LookupAddresses)
		bookings.POST("/upload-images", h.UploadBookingImages)
		bookings.POST("", h.CreateBooking)
		bookings.GET("", staff, h.ListBookings)
		bookings.GET("/export", staff, h.ExportBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", staff, h.UpdateBookingStatus)
		bookings.GET("/:id/consignment-note", h.GetConsignmentNotePDF)
		bookings.GET("/:id/invoice", h.GetBookingInvoicePDF)

		// Wizard drafts
		wiz := apiGroup.Group("/wizard/drafts", authed)
		wiz.POST("", h.CreateDraft)
		wiz.GET("/:id", h.GetDraft)
		wiz.DELETE("/:id", h.DiscardDraft)
		wiz.POST("/:id/phone", h.SetDraftPhone)
		wiz.POST("/:id/reset-phone", h.ResetDraftPhone)
		wiz.POST("/:id/select-address", h.SelectDraftAddress)
		wiz.POST("/:id/confirm-address", h.ConfirmDraftAddress)
		wiz.POST("/:id/manual-address", h.SetDraftManualAddress)
		wiz.POST("/:id/shipment", h.SetDraftShipment)
		wiz.POST("/:id/invoice", h.SetDraftInvoice)
		wiz.POST("/:id/billing", h.SetDraftBilling)
		wiz.POST("/:id/advance", h.AdvanceDraft)
		wiz.POST("/:id/back", h.BackDraft)
		wiz.POST("/:id/submit", h.SubmitDraft)

		// Consignment number pools
		consignments := apiGroup.Group("/consignments", authed)
		consignments.GET("/assignments", h.GetConsignmentAssignments)
		consignments.POST("/assignments", admin, h.AssignConsignmentRange)

		// Admin reference data
		pincodes := apiGroup.Group("/pincodes", authed, staff)
		pincodes.GET("", h.GetPincodes)
		pincodes.POST("", h.CreatePincode)
		pincodes.PUT("/:id", h.UpdatePincode)
		pincodes.DELETE("/:id", h.DeletePincode)

		coloaders := apiGroup.Group("/coloaders", authed, staff)
		coloaders.GET("", h.GetColoaders)
		coloaders.GET("/:id", h.GetColoaderByID)
		coloaders.POST("", h.CreateColoader)
		coloaders.PUT("/:id", h.UpdateColoader)
		coloaders.DELETE("/:id", h.DeleteColoader)

		employees := apiGroup.Group("/employees", authed, admin)
		employees.GET("", h.GetEmployees)
		employees.POST("", h.CreateEmployee)
		employees.PUT("/:id", h.UpdateEmployee)
		employees.DELETE("/:id", h.DeleteEmployee)

		pricing := apiGroup.Group("/pricing", authed)
		pricing.GET("/rate", h.GetLaneRate)
		pricing.GET("/corporate", staff, h.GetCorporatePricing)
		pricing.POST("/corporate", staff, h.CreateCorporatePricing)
		pricing.PUT("/corporate/:id", staff, h.UpdateCorporatePricing)
		pricing.DELETE("/corporate/:id", staff, h.DeleteCorporatePricing)
		pricing.GET("/customer", staff, h.GetCustomerPricing)
		pricing.POST("/customer", staff, h.CreateCustomerPricing)
		pricing.PUT("/customer/:id", staff, h.UpdateCustomerPricing)
		pricing.DELETE("/customer/:id", staff, h.DeleteCustomerPricing)
	}

	h.SetRouter(r)
	return r
}
