package handlers

import (
	"net/http"

	"courierdesk/internal/http/middleware"
	"courierdesk/internal/repositories"
	"courierdesk/internal/services"

	"github.com/gin-gonic/gin"
)

func consignmentService(c *gin.Context) services.ConsignmentService {
	return services.ConsignmentService{
		Repo:      repositories.ConsignmentRepo{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/consignments/assignments
// Pre-submit check: tells the caller whether they still have unused
// consignment numbers.
func GetConsignmentAssignments(c *gin.Context) {
	rc, ok := currentUser(c)
	if !ok {
		return
	}
	sum, err := consignmentService(c).Availability(int64(rc.UserID))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"hasAssignment": sum.HasAssignment,
		"summary":       gin.H{"availableCount": sum.AvailableCount},
	})
}

type assignRequest struct {
	UserID int64 `json:"userId"`
	Start  int64 `json:"start"`
	End    int64 `json:"end"`
}

// POST /api/consignments/assignments (admin)
func AssignConsignmentRange(c *gin.Context) {
	var req assignRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.UserID <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "userId is required", nil)
		return
	}
	pool, err := consignmentService(c).Assign(req.UserID, req.Start, req.End)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": pool})
}
