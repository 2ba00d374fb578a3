package models

import (
	"time"

	"courierdesk/internal/domain"
)

// AppUser mirrors the users table minus the password hash.
type AppUser struct {
	ID        domain.ID `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"` // admin / office / customer
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmailJob is one pending row in the email outbox.
type EmailJob struct {
	ID          domain.ID  `json:"id"`
	Recipient   string     `json:"recipient"`
	Subject     string     `json:"subject"`
	Body        string     `json:"body"`
	Status      string     `json:"status"` // pending / sent / failed
	RetryCount  int        `json:"retryCount"`
	LastError   string     `json:"lastError,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
	NextRetryAt *time.Time `json:"nextRetryAt,omitempty"`
}
