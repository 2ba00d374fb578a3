package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	intconfig "courierdesk/internal/config"
	intdb "courierdesk/internal/db"
	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
)

// BookingRepo persists bookings. Searchable fields get their own columns;
// the full aggregate travels in the payload JSON column so nothing from the
// wizard is lost.
type BookingRepo struct {
	DB *sql.DB
}

func (r BookingRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "bookings") {
		// coloader_id was added after the first schema; older tables get it
		// in place
		if !intdb.HasColumn(db, "bookings", "coloader_id") {
			_, err := db.Exec(`ALTER TABLE bookings ADD COLUMN coloader_id BIGINT NULL AFTER customer_id`)
			return err
		}
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_reference VARCHAR(40) NOT NULL,
	consignment_number BIGINT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	customer_id BIGINT NULL,
	coloader_id BIGINT NULL,
	origin_phone VARCHAR(20) NOT NULL,
	origin_pincode VARCHAR(10) NOT NULL,
	origin_state VARCHAR(100) NOT NULL,
	dest_phone VARCHAR(20) NOT NULL,
	dest_pincode VARCHAR(10) NOT NULL,
	dest_state VARCHAR(100) NOT NULL,
	chargeable_weight DOUBLE NOT NULL DEFAULT 0,
	grand_total BIGINT NOT NULL DEFAULT 0,
	payload JSON NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_reference (booking_reference),
	UNIQUE KEY uniq_consignment (consignment_number),
	KEY idx_status (status),
	KEY idx_origin_phone (origin_phone),
	KEY idx_created (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

// InsertTx writes a booking inside an open transaction so consignment
// allocation and the booking row commit together.
func (r BookingRepo) InsertTx(tx *sql.Tx, b *models.Booking) error {
	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	res, err := tx.Exec(`
		INSERT INTO bookings
			(booking_reference, consignment_number, status, customer_id, coloader_id,
			 origin_phone, origin_pincode, origin_state,
			 dest_phone, dest_pincode, dest_state,
			 chargeable_weight, grand_total, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		b.BookingReference, b.ConsignmentNumber, string(b.Status),
		nullID(b.CustomerID), nullID(b.ColoaderID),
		b.Origin.MobileNumber, b.Origin.Pincode, b.Origin.State,
		b.Destination.MobileNumber, b.Destination.Pincode, b.Destination.State,
		b.Shipment.ChargeableWeight, int64(b.Charges.GrandTotal), payload,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = domain.ID(id)
	return nil
}

func (r BookingRepo) GetByID(id int64) (models.Booking, error) {
	return r.getWhere("id = ?", id)
}

func (r BookingRepo) GetByReference(ref string) (models.Booking, error) {
	return r.getWhere("booking_reference = ?", strings.TrimSpace(ref))
}

func (r BookingRepo) getWhere(where string, arg any) (models.Booking, error) {
	var (
		b       models.Booking
		id      int64
		status  string
		payload []byte
		created time.Time
		updated time.Time
	)
	err := r.db().QueryRow(`
		SELECT id, status, payload, created_at, updated_at
		FROM bookings
		WHERE `+where+`
		LIMIT 1
	`, arg).Scan(&id, &status, &payload, &created, &updated)
	if err == sql.ErrNoRows {
		return b, domain.NotFoundError{Resource: "booking"}
	}
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal(payload, &b); err != nil {
		return b, fmt.Errorf("unmarshal booking payload: %w", err)
	}
	b.ID = domain.ID(id)
	b.Status = models.BookingStatus(status)
	b.CreatedAt = created
	b.UpdatedAt = updated
	return b, nil
}

// ListFilter narrows the bookings register.
type ListFilter struct {
	Status   string
	Phone    string
	FromDate string // YYYY-MM-DD, inclusive
	ToDate   string
	Page     int
	PageSize int
}

func (r BookingRepo) List(f ListFilter) ([]models.Booking, int, error) {
	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "status = ?")
		args = append(args, s)
	}
	if p := strings.TrimSpace(f.Phone); p != "" {
		where = append(where, "(origin_phone = ? OR dest_phone = ?)")
		args = append(args, p, p)
	}
	if d := strings.TrimSpace(f.FromDate); d != "" {
		where = append(where, "created_at >= ?")
		args = append(args, d+" 00:00:00")
	}
	if d := strings.TrimSpace(f.ToDate); d != "" {
		where = append(where, "created_at <= ?")
		args = append(args, d+" 23:59:59")
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db().QueryRow(`SELECT COUNT(*) FROM bookings WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 || size > 200 {
		size = 20
	}
	args = append(args, size, (page-1)*size)

	rows, err := r.db().Query(`
		SELECT id, status, payload, created_at, updated_at
		FROM bookings
		WHERE `+cond+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var (
			id      int64
			status  string
			payload []byte
			created time.Time
			updated time.Time
		)
		if err := rows.Scan(&id, &status, &payload, &created, &updated); err != nil {
			return nil, 0, err
		}
		var b models.Booking
		if err := json.Unmarshal(payload, &b); err != nil {
			return nil, 0, err
		}
		b.ID = domain.ID(id)
		b.Status = models.BookingStatus(status)
		b.CreatedAt = created
		b.UpdatedAt = updated
		out = append(out, b)
	}
	return out, total, rows.Err()
}

// UpdateStatus persists a status change and keeps payload JSON in sync.
func (r BookingRepo) UpdateStatus(id int64, status models.BookingStatus) error {
	res, err := r.db().Exec(`
		UPDATE bookings
		SET status = ?,
		    payload = JSON_SET(payload, '$.status', ?)
		WHERE id = ?
	`, string(status), string(status), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func nullID(id domain.ID) any {
	if id == 0 {
		return nil
	}
	return int64(id)
}
