package handlers

import (
	"net/http"
	"strings"

	"courierdesk/internal/domain/models"
	"courierdesk/internal/wizard"

	"github.com/gin-gonic/gin"
)

// Wizard drafts live in Redis keyed by a server-issued id; every mutation
// loads, applies, recomputes pricing and saves back.

// POST /api/wizard/drafts
func CreateDraft(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	if draftStore == nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "draft store unavailable", nil)
		return
	}
	d := wizard.NewDraft(int64(rc.UserID))
	if err := draftStore.Set(c.Request.Context(), d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": d})
}

// GET /api/wizard/drafts/:id
func GetDraft(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}

// DELETE /api/wizard/drafts/:id
func DiscardDraft(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	if err := draftStore.Clear(c.Request.Context(), d.ID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type draftPhoneRequest struct {
	Role  string `json:"role"`
	Phone string `json:"phone"`
}

// POST /api/wizard/drafts/:id/phone
// Runs the address lookup for the phone and branches the party sub-state.
func SetDraftPhone(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftPhoneRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	found, err := bookingService(c).Lookup(c.Request.Context(), req.Phone, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := d.SetPhone(req.Role, req.Phone, found); err != nil {
		RespondDomainError(c, err)
		return
	}
	saveDraft(c, d)
}

type draftRoleRequest struct {
	Role string `json:"role"`
}

// POST /api/wizard/drafts/:id/reset-phone
func ResetDraftPhone(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftRoleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := d.ResetPhone(req.Role); err != nil {
		RespondDomainError(c, err)
		return
	}
	saveDraft(c, d)
}

type draftSelectRequest struct {
	Role  string `json:"role"`
	Index int    `json:"index"`
}

// POST /api/wizard/drafts/:id/select-address
func SelectDraftAddress(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftSelectRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := d.SelectAddress(req.Role, req.Index); err != nil {
		RespondDomainError(c, err)
		return
	}
	saveDraft(c, d)
}

// POST /api/wizard/drafts/:id/confirm-address
func ConfirmDraftAddress(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftRoleRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := d.ConfirmAddress(req.Role); err != nil {
		RespondDomainError(c, err)
		return
	}
	saveDraft(c, d)
}

type draftManualRequest struct {
	Role    string         `json:"role"`
	Address models.Address `json:"address"`
}

// POST /api/wizard/drafts/:id/manual-address
func SetDraftManualAddress(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftManualRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := d.UseManualAddress(req.Role, req.Address); err != nil {
		RespondDomainError(c, err)
		return
	}
	saveDraft(c, d)
}

type draftShipmentRequest struct {
	Shipment models.Shipment `json:"shipment"`
	Package  models.Package  `json:"package"`
}

// POST /api/wizard/drafts/:id/shipment
func SetDraftShipment(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftShipmentRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	d.SetShipment(req.Shipment, req.Package)
	saveDraft(c, d)
}

// POST /api/wizard/drafts/:id/invoice
func SetDraftInvoice(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req models.Invoice
	if !BindJSONOrError(c, &req) {
		return
	}
	d.SetInvoice(req)
	saveDraft(c, d)
}

type draftBillingRequest struct {
	Billing models.Billing `json:"billing"`
	Charges models.Charges `json:"charges"`
}

// POST /api/wizard/drafts/:id/billing
func SetDraftBilling(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftBillingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	d.SetBilling(req.Billing, req.Charges)
	saveDraft(c, d)
}

// POST /api/wizard/drafts/:id/advance
// A failing step guard is returned as a validation error and the draft
// stays where it was.
func AdvanceDraft(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	if err := d.Advance(); err != nil {
		RespondDomainError(c, err)
		return
	}
	saveDraft(c, d)
}

type draftBackRequest struct {
	To string `json:"to"`
}

// POST /api/wizard/drafts/:id/back
func BackDraft(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	var req draftBackRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := d.Back(wizard.Step(req.To)); err != nil {
		RespondDomainError(c, err)
		return
	}
	saveDraft(c, d)
}

// POST /api/wizard/drafts/:id/submit
// Turns a completed draft into a booking and discards the draft.
func SubmitDraft(c *gin.Context) {
	d, ok := loadDraft(c)
	if !ok {
		return
	}
	if !d.Complete() {
		respondError(c, http.StatusBadRequest, "validation_error", "draft has not reached preview", nil)
		return
	}

	idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
	booking, replayed, err := bookingService(c).Submit(c.Request.Context(), d.UserID, d.ToBooking(), idemKey)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	_ = draftStore.Clear(c.Request.Context(), d.ID)

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

func loadDraft(c *gin.Context) (*wizard.Draft, bool) {
	if draftStore == nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "draft store unavailable", nil)
		return nil, false
	}
	rc, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	id := c.Param("id")
	d, err := draftStore.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	if d == nil || d.UserID != int64(rc.UserID) {
		respondError(c, http.StatusNotFound, "not_found", "draft not found", nil)
		return nil, false
	}
	return d, true
}

func saveDraft(c *gin.Context, d *wizard.Draft) {
	if err := draftStore.Set(c.Request.Context(), d); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": d})
}
