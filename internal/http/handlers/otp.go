package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type otpSendRequest struct {
	Channel string `json:"channel"`
	To      string `json:"to"`
}

type otpVerifyRequest struct {
	To   string `json:"to"`
	Code string `json:"code"`
}

// POST /api/otp/send
func SendOTP(c *gin.Context) {
	if otpSvc == nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "otp service unavailable", nil)
		return
	}
	var req otpSendRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := otpSvc.Send(c.Request.Context(), req.Channel, req.To); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "code sent"})
}

// POST /api/otp/verify
func VerifyOTP(c *gin.Context) {
	if otpSvc == nil {
		respondError(c, http.StatusInternalServerError, "internal_error", "otp service unavailable", nil)
		return
	}
	var req otpVerifyRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := otpSvc.Verify(c.Request.Context(), req.To, req.Code); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "verified": true})
}
