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

type ColoaderRepo struct {
	DB *sql.DB
}

func (r ColoaderRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r ColoaderRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "coloaders") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS coloaders (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	contact_person VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	email VARCHAR(255) NULL,
	gst_number VARCHAR(20) NULL,
	city VARCHAR(100) NOT NULL,
	state VARCHAR(100) NOT NULL,
	active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_name_city (name, city)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

func (r ColoaderRepo) List(q string) ([]models.Coloader, error) {
	where := "1=1"
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = "(name LIKE ? OR city LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	rows, err := r.db().Query(`
		SELECT id, name, contact_person, phone, COALESCE(email,''),
		       COALESCE(gst_number,''), city, state, active, created_at
		FROM coloaders
		WHERE `+where+`
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Coloader{}
	for rows.Next() {
		var c models.Coloader
		if err := rows.Scan(&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email,
			&c.GSTNumber, &c.City, &c.State, &c.Active, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r ColoaderRepo) GetByID(id int64) (models.Coloader, error) {
	var c models.Coloader
	err := r.db().QueryRow(`
		SELECT id, name, contact_person, phone, COALESCE(email,''),
		       COALESCE(gst_number,''), city, state, active, created_at
		FROM coloaders WHERE id = ? LIMIT 1
	`, id).Scan(&c.ID, &c.Name, &c.ContactPerson, &c.Phone, &c.Email,
		&c.GSTNumber, &c.City, &c.State, &c.Active, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return c, domain.NotFoundError{Resource: "coloader"}
	}
	return c, err
}

func (r ColoaderRepo) Create(c models.Coloader) (models.Coloader, error) {
	res, err := r.db().Exec(`
		INSERT INTO coloaders (name, contact_person, phone, email, gst_number, city, state, active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, c.Name, c.ContactPerson, c.Phone, intdb.NullIfEmpty(c.Email),
		intdb.NullIfEmpty(c.GSTNumber), c.City, c.State, c.Active)
	if err != nil {
		if isDuplicate(err) {
			return c, domain.ConflictError{Resource: "coloader", Msg: "name already registered in this city"}
		}
		return c, err
	}
	id, _ := res.LastInsertId()
	c.ID = domain.ID(id)
	return c, nil
}

func (r ColoaderRepo) Update(id int64, c models.Coloader) error {
	res, err := r.db().Exec(`
		UPDATE coloaders
		SET name = ?, contact_person = ?, phone = ?, email = ?, gst_number = ?,
		    city = ?, state = ?, active = ?
		WHERE id = ?
	`, c.Name, c.ContactPerson, c.Phone, intdb.NullIfEmpty(c.Email),
		intdb.NullIfEmpty(c.GSTNumber), c.City, c.State, c.Active, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "coloader"}
	}
	return nil
}

func (r ColoaderRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM coloaders WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "coloader"}
	}
	return nil
}
