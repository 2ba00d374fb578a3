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

type EmployeeRepo struct {
	DB *sql.DB
}

func (r EmployeeRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r EmployeeRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "employees") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS employees (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL,
	email VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'office',
	branch VARCHAR(100) NOT NULL DEFAULT '',
	active TINYINT(1) NOT NULL DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

func (r EmployeeRepo) List(q string) ([]models.Employee, error) {
	where := "1=1"
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = "(name LIKE ? OR email LIKE ? OR branch LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	rows, err := r.db().Query(`
		SELECT id, name, phone, email, role, branch, active, created_at
		FROM employees
		WHERE `+where+`
		ORDER BY name
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Employee{}
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.Role, &e.Branch, &e.Active, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r EmployeeRepo) GetByID(id int64) (models.Employee, error) {
	var e models.Employee
	err := r.db().QueryRow(`
		SELECT id, name, phone, email, role, branch, active, created_at
		FROM employees WHERE id = ? LIMIT 1
	`, id).Scan(&e.ID, &e.Name, &e.Phone, &e.Email, &e.Role, &e.Branch, &e.Active, &e.CreatedAt)
	if err == sql.ErrNoRows {
		return e, domain.NotFoundError{Resource: "employee"}
	}
	return e, err
}

func (r EmployeeRepo) Create(e models.Employee) (models.Employee, error) {
	res, err := r.db().Exec(`
		INSERT INTO employees (name, phone, email, role, branch, active)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Name, e.Phone, e.Email, e.Role, e.Branch, e.Active)
	if err != nil {
		if isDuplicate(err) {
			return e, domain.ConflictError{Resource: "employee", Msg: "email already registered"}
		}
		return e, err
	}
	id, _ := res.LastInsertId()
	e.ID = domain.ID(id)
	return e, nil
}

func (r EmployeeRepo) Update(id int64, e models.Employee) error {
	res, err := r.db().Exec(`
		UPDATE employees
		SET name = ?, phone = ?, email = ?, role = ?, branch = ?, active = ?
		WHERE id = ?
	`, e.Name, e.Phone, e.Email, e.Role, e.Branch, e.Active, id)
	if err != nil {
		if isDuplicate(err) {
			return domain.ConflictError{Resource: "employee", Msg: "email already registered"}
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "employee"}
	}
	return nil
}

func (r EmployeeRepo) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.NotFoundError{Resource: "employee"}
	}
	return nil
}
