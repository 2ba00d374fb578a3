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

type UserRepo struct {
	DB *sql.DB
}

func (r UserRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "users") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS users (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(255) NOT NULL,
	phone VARCHAR(20) NOT NULL DEFAULT '',
	password_hash VARCHAR(255) NOT NULL,
	role VARCHAR(50) NOT NULL DEFAULT 'customer',
	status VARCHAR(20) NOT NULL DEFAULT 'active',
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_username (username),
	UNIQUE KEY uniq_email (email)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

// GetByLogin matches email or username and also returns the password hash.
func (r UserRepo) GetByLogin(login string) (models.AppUser, string, error) {
	var (
		u    models.AppUser
		hash string
	)
	err := r.db().QueryRow(`
		SELECT id, name, username, email, phone, password_hash, role, status, created_at
		FROM users
		WHERE email = ? OR username = ?
		LIMIT 1
	`, login, login).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &hash, &u.Role, &u.Status, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return u, "", domain.NotFoundError{Resource: "user"}
	}
	return u, hash, err
}

func (r UserRepo) GetByID(id int64) (models.AppUser, error) {
	var u models.AppUser
	err := r.db().QueryRow(`
		SELECT id, name, username, email, phone, role, status, created_at
		FROM users WHERE id = ? LIMIT 1
	`, id).Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.Phone, &u.Role, &u.Status, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return u, domain.NotFoundError{Resource: "user"}
	}
	return u, err
}

func (r UserRepo) Exists(email, username string) (bool, error) {
	var n int
	err := r.db().QueryRow(`
		SELECT COUNT(*) FROM users WHERE email = ? OR username = ?
	`, email, username).Scan(&n)
	return n > 0, err
}

func (r UserRepo) Create(u models.AppUser, passwordHash string) (models.AppUser, error) {
	role := strings.TrimSpace(u.Role)
	if role == "" {
		role = "customer"
	}
	res, err := r.db().Exec(`
		INSERT INTO users (name, username, email, phone, password_hash, role, status)
		VALUES (?, ?, ?, ?, ?, ?, 'active')
	`, u.Name, u.Username, u.Email, u.Phone, passwordHash, role)
	if err != nil {
		if isDuplicate(err) {
			return u, domain.ConflictError{Resource: "user", Msg: "email or username already registered"}
		}
		return u, err
	}
	id, _ := res.LastInsertId()
	u.ID = domain.ID(id)
	u.Role = role
	u.Status = "active"
	return u, nil
}
