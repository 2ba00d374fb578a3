package repositories

import (
	"database/sql"
	"fmt"

	intconfig "courierdesk/internal/config"
	intdb "courierdesk/internal/db"
	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
)

// ConsignmentRepo manages per-user consignment number pools. Allocation
// happens under a row lock inside the booking transaction so two concurrent
// submissions can never draw the same number.
type ConsignmentRepo struct {
	DB *sql.DB
}

func (r ConsignmentRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ConsignmentRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "consignment_pools") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS consignment_pools (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	user_id BIGINT NOT NULL,
	range_start BIGINT NOT NULL,
	range_end BIGINT NOT NULL,
	next_number BIGINT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	KEY idx_user (user_id),
	KEY idx_range (range_start, range_end)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

// ListByUser returns all pools assigned to the user, oldest first.
func (r ConsignmentRepo) ListByUser(userID int64) ([]models.ConsignmentPool, error) {
	rows, err := r.db().Query(`
		SELECT id, user_id, range_start, range_end, next_number, created_at
		FROM consignment_pools
		WHERE user_id = ?
		ORDER BY range_start
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ConsignmentPool{}
	for rows.Next() {
		var p models.ConsignmentPool
		if err := rows.Scan(&p.ID, &p.UserID, &p.Start, &p.End, &p.Next, &p.Created); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AllocateTx draws the next unused number for the user under FOR UPDATE.
// Exhausted pools return a conflict so the caller can surface it before or
// during submission.
func (r ConsignmentRepo) AllocateTx(tx *sql.Tx, userID int64) (int64, error) {
	var poolID, next, end int64
	err := tx.QueryRow(`
		SELECT id, next_number, range_end
		FROM consignment_pools
		WHERE user_id = ? AND next_number <= range_end
		ORDER BY range_start
		LIMIT 1
		FOR UPDATE
	`, userID).Scan(&poolID, &next, &end)
	if err == sql.ErrNoRows {
		return 0, domain.ConflictError{Resource: "consignment pool", Msg: "no unused consignment numbers assigned"}
	}
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`
		UPDATE consignment_pools SET next_number = next_number + 1 WHERE id = ?
	`, poolID); err != nil {
		return 0, err
	}
	return next, nil
}

// Assign registers a new [start,end] range for a user after checking the
// range does not overlap any existing pool.
func (r ConsignmentRepo) Assign(userID, start, end int64) (models.ConsignmentPool, error) {
	var p models.ConsignmentPool
	if start <= 0 || end < start {
		return p, domain.ValidationError{Field: "range", Msg: "start must be positive and end >= start"}
	}

	var overlap int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM consignment_pools
		WHERE range_start <= ? AND range_end >= ?
	`, end, start).Scan(&overlap)
	if err != nil {
		return p, err
	}
	if overlap > 0 {
		return p, domain.ConflictError{Resource: "consignment pool", Msg: "range overlaps an existing assignment"}
	}

	res, err := r.db().Exec(`
		INSERT INTO consignment_pools (user_id, range_start, range_end, next_number)
		VALUES (?, ?, ?, ?)
	`, userID, start, end, start)
	if err != nil {
		return p, err
	}
	id, _ := res.LastInsertId()
	return models.ConsignmentPool{ID: domain.ID(id), UserID: domain.ID(userID), Start: start, End: end, Next: start}, nil
}
