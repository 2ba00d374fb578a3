package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	intconfig "courierdesk/internal/config"
	intdb "courierdesk/internal/db"
	"courierdesk/internal/domain/models"
)

// AddressRepo is the per-phone address book behind the booking form's
// auto-fill. Every successful booking upserts its origin and destination
// here keyed by (phone, role).
type AddressRepo struct {
	DB *sql.DB
}

func (r AddressRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r AddressRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "address_book") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS address_book (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	phone VARCHAR(20) NOT NULL,
	role VARCHAR(20) NOT NULL,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NULL,
	company_name VARCHAR(255) NULL,
	flat_building VARCHAR(255) NOT NULL,
	locality VARCHAR(255) NOT NULL,
	landmark VARCHAR(255) NULL,
	pincode VARCHAR(10) NOT NULL,
	city VARCHAR(100) NOT NULL,
	district VARCHAR(100) NOT NULL,
	state VARCHAR(100) NOT NULL,
	area VARCHAR(150) NULL,
	gst_number VARCHAR(20) NULL,
	address_type VARCHAR(50) NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_phone_role_addr (phone, role, pincode, flat_building, locality),
	KEY idx_phone_role (phone, role)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

// ListByPhoneRole honors ctx so a superseded lookup stops at the driver
// instead of delivering a stale result.
func (r AddressRepo) ListByPhoneRole(ctx context.Context, phone, role string) ([]models.Address, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT name, COALESCE(email,''), COALESCE(company_name,''),
		       flat_building, locality, COALESCE(landmark,''),
		       pincode, city, district, state, COALESCE(area,''),
		       COALESCE(gst_number,''), COALESCE(address_type,'')
		FROM address_book
		WHERE phone = ? AND role = ?
		ORDER BY updated_at DESC
		LIMIT 20
	`, strings.TrimSpace(phone), strings.TrimSpace(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Address{}
	for rows.Next() {
		a := models.Address{MobileNumber: phone}
		if err := rows.Scan(
			&a.Name, &a.Email, &a.CompanyName,
			&a.FlatBuilding, &a.Locality, &a.Landmark,
			&a.Pincode, &a.City, &a.District, &a.State, &a.Area,
			&a.GSTNumber, &a.AddressType,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Upsert records an address under (phone, role). Duplicate locations only
// refresh updated_at so the newest-first ordering stays meaningful.
func (r AddressRepo) Upsert(phone, role string, a models.Address) error {
	_, err := r.db().Exec(`
		INSERT INTO address_book
			(phone, role, name, email, company_name, flat_building, locality,
			 landmark, pincode, city, district, state, area, gst_number, address_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			email = VALUES(email),
			gst_number = VALUES(gst_number),
			updated_at = CURRENT_TIMESTAMP
	`,
		strings.TrimSpace(phone), strings.TrimSpace(role),
		a.Name, intdb.NullIfEmpty(a.Email), intdb.NullIfEmpty(a.CompanyName),
		a.FlatBuilding, a.Locality, intdb.NullIfEmpty(a.Landmark),
		a.Pincode, a.City, a.District, a.State, intdb.NullIfEmpty(a.Area),
		intdb.NullIfEmpty(a.GSTNumber), intdb.NullIfEmpty(a.AddressType),
	)
	return err
}
