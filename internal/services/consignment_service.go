package services

import (
	"database/sql"
	"fmt"

	intconfig "courierdesk/internal/config"
	"courierdesk/internal/domain/models"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"
)

type ConsignmentService struct {
	Repo      repositories.ConsignmentRepo
	DB        *sql.DB
	RequestID string
}

func (s ConsignmentService) repo() repositories.ConsignmentRepo {
	if s.Repo.DB != nil {
		return s.Repo
	}
	db := s.DB
	if db == nil {
		db = intconfig.DB
	}
	return repositories.ConsignmentRepo{DB: db}
}

// AssignmentSummary is the pre-submit availability check.
type AssignmentSummary struct {
	HasAssignment  bool  `json:"hasAssignment"`
	AvailableCount int64 `json:"availableCount"`
}

func (s ConsignmentService) Availability(userID int64) (AssignmentSummary, error) {
	pools, err := s.repo().ListByUser(userID)
	if err != nil {
		return AssignmentSummary{}, err
	}
	out := AssignmentSummary{HasAssignment: len(pools) > 0}
	for _, p := range pools {
		out.AvailableCount += p.Available()
	}
	return out, nil
}

// Assign gives a user a fresh consignment number range.
func (s ConsignmentService) Assign(userID, start, end int64) (models.ConsignmentPool, error) {
	p, err := s.repo().Assign(userID, start, end)
	if err != nil {
		return p, err
	}
	utils.LogEvent(s.RequestID, "consignment", "assign",
		fmt.Sprintf("user_id=%d range=%d-%d", userID, start, end))
	return p, nil
}
