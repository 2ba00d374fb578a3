package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	intconfig "courierdesk/internal/config"
	intdb "courierdesk/internal/db"
	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
)

type PincodeRepo struct {
	DB *sql.DB
}

func (r PincodeRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r PincodeRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "pincodes") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS pincodes (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	pincode VARCHAR(10) NOT NULL,
	state VARCHAR(100) NOT NULL,
	city VARCHAR(100) NOT NULL,
	district VARCHAR(100) NOT NULL,
	area VARCHAR(150) NOT NULL,
	serviceable TINYINT(1) NOT NULL DEFAULT 1,
	UNIQUE KEY uniq_pin_area (pincode, city, district, area),
	KEY idx_pincode (pincode)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

// LookupByCode returns every serviceable area row for a pincode.
func (r PincodeRepo) LookupByCode(code string) ([]models.PincodeEntry, error) {
	rows, err := r.db().Query(`
		SELECT id, pincode, state, city, district, area, serviceable
		FROM pincodes
		WHERE pincode = ? AND serviceable = 1
		ORDER BY city, district, area
	`, strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPincodeRows(rows)
}

// List supports the admin screen: optional q matches pincode prefix, city or
// area substring.
func (r PincodeRepo) List(q string, page, size int) ([]models.PincodeEntry, int, error) {
	where := "1=1"
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = "(pincode LIKE ? OR city LIKE ? OR district LIKE ? OR area LIKE ?)"
		like := "%" + q + "%"
		args = append(args, q+"%", like, like, like)
	}

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM pincodes WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	args = append(args, size, (page-1)*size)

	rows, err := r.db().Query(`
		SELECT id, pincode, state, city, district, area, serviceable
		FROM pincodes
		WHERE `+where+`
		ORDER BY pincode, city, area
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := scanPincodeRows(rows)
	return out, total, err
}

func (r PincodeRepo) Create(e models.PincodeEntry) (models.PincodeEntry, error) {
	res, err := r.db().Exec(`
		INSERT INTO pincodes (pincode, state, city, district, area, serviceable)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Pincode, e.State, e.City, e.District, e.Area, e.Serviceable)
	if err != nil {
		if isDuplicate(err) {
			return e, domain.ConflictError{Resource: "pincode", Msg: "area already exists for this pincode"}
		}
		return e, err
	}
	id, _ := res.LastInsertId()
	e.ID = domain.ID(id)
	return e, nil
}

func (r PincodeRepo) Update(id int64, e models.PincodeEntry) error {
	res, err := r.db().Exec(`
		UPDATE pincodes
		SET pincode = ?, state = ?, city = ?, district = ?, area = ?, serviceable = ?
		WHERE id = ?
	`, e.Pincode, e.State, e.City, e.District, e.Area, e.Serviceable, id)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "pincode", Msg: "area already exists for this pincode"}
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "pincode"}
	}
	return nil
}

func (r PincodeRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM pincodes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "pincode"}
	}
	return nil
}

func scanPincodeRows(rows *sql.Rows) ([]models.PincodeEntry, error) {
	out := []models.PincodeEntry{}
	for rows.Next() {
		var e models.PincodeEntry
		if err := rows.Scan(&e.ID, &e.Pincode, &e.State, &e.City, &e.District, &e.Area, &e.Serviceable); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// isDuplicate detects MySQL duplicate-key errors without importing the
// driver's error type everywhere.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
