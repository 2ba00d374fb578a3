package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	intconfig "courierdesk/internal/config"
	intdb "courierdesk/internal/db"
	"courierdesk/internal/domain"
	"courierdesk/internal/domain/models"
)

// OutboxRepo is the transactional email queue. Rows are enqueued inside the
// business transaction and drained by the notify worker.
type OutboxRepo struct {
	DB *sql.DB
}

func (r OutboxRepo) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r OutboxRepo) EnsureTable() error {
	db := r.db()
	if db == nil {
		return fmt.Errorf("db not available")
	}
	if intdb.HasTable(db, "email_outbox") {
		return nil
	}
	ddl := `
CREATE TABLE IF NOT EXISTS email_outbox (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	recipient VARCHAR(255) NOT NULL,
	subject VARCHAR(255) NOT NULL,
	body TEXT NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	last_error TEXT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	processed_at TIMESTAMP NULL,
	next_retry_at TIMESTAMP NULL,
	KEY idx_status_retry (status, next_retry_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
`
	_, err := db.Exec(ddl)
	return err
}

// EnqueueTx adds a pending email inside an open transaction.
func (r OutboxRepo) EnqueueTx(tx *sql.Tx, recipient, subject, body string) error {
	_, err := tx.Exec(`
		INSERT INTO email_outbox (recipient, subject, body, status)
		VALUES (?, ?, ?, 'pending')
	`, recipient, subject, body)
	return err
}

// Enqueue adds a pending email outside any transaction (OTP etc.).
func (r OutboxRepo) Enqueue(recipient, subject, body string) error {
	_, err := r.db().Exec(`
		INSERT INTO email_outbox (recipient, subject, body, status)
		VALUES (?, ?, ?, 'pending')
	`, recipient, subject, body)
	return err
}

// FetchPending returns due pending jobs, oldest first.
func (r OutboxRepo) FetchPending(ctx context.Context, limit int) ([]models.EmailJob, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db().QueryContext(ctx, `
		SELECT id, recipient, subject, body, status, retry_count,
		       COALESCE(last_error, ''), created_at, processed_at, next_retry_at
		FROM email_outbox
		WHERE status = 'pending'
		  AND (next_retry_at IS NULL OR next_retry_at <= NOW())
		ORDER BY id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.EmailJob{}
	for rows.Next() {
		var j models.EmailJob
		if err := rows.Scan(&j.ID, &j.Recipient, &j.Subject, &j.Body, &j.Status,
			&j.RetryCount, &j.LastError, &j.CreatedAt, &j.ProcessedAt, &j.NextRetryAt); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r OutboxRepo) MarkSent(ctx context.Context, id domain.ID) error {
	_, err := r.db().ExecContext(ctx, `
		UPDATE email_outbox
		SET status = 'sent', processed_at = NOW(), last_error = NULL
		WHERE id = ?
	`, int64(id))
	return err
}

// MarkFailed schedules a retry with backoff, or gives up after maxRetries.
func (r OutboxRepo) MarkFailed(ctx context.Context, id domain.ID, sendErr error, maxRetries int, backoff time.Duration) error {
	msg := ""
	if sendErr != nil {
		msg = sendErr.Error()
	}
	_, err := r.db().ExecContext(ctx, `
		UPDATE email_outbox
		SET retry_count = retry_count + 1,
		    last_error = ?,
		    status = IF(retry_count + 1 >= ?, 'failed', 'pending'),
		    next_retry_at = DATE_ADD(NOW(), INTERVAL ? SECOND)
		WHERE id = ?
	`, msg, maxRetries, int64(backoff.Seconds()), int64(id))
	return err
}
