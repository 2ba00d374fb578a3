package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"courierdesk/internal/mail"
	"courierdesk/internal/metrics"
	"courierdesk/internal/repositories"
	"courierdesk/internal/utils"
)

// OutboxWorker drains the email outbox in the background. Sends are
// retried with a fixed backoff until MaxRetries, then the row is parked
// as failed.
type OutboxWorker struct {
	Repo       repositories.OutboxRepo
	Mailer     mail.Mailer
	DB         *sql.DB
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
	Backoff    time.Duration
}

func (w OutboxWorker) repo() repositories.OutboxRepo {
	if w.Repo.DB != nil {
		return w.Repo
	}
	return repositories.OutboxRepo{DB: w.DB}
}

func (w OutboxWorker) interval() time.Duration {
	if w.Interval <= 0 {
		return 15 * time.Second
	}
	return w.Interval
}

func (w OutboxWorker) batchSize() int {
	if w.BatchSize <= 0 {
		return 20
	}
	return w.BatchSize
}

func (w OutboxWorker) maxRetries() int {
	if w.MaxRetries <= 0 {
		return 5
	}
	return w.MaxRetries
}

func (w OutboxWorker) backoff() time.Duration {
	if w.Backoff <= 0 {
		return 2 * time.Minute
	}
	return w.Backoff
}

// Run polls until ctx is cancelled.
func (w OutboxWorker) Run(ctx context.Context) {
	utils.LogEvent("", "outbox", "start", fmt.Sprintf("interval=%s batch=%d", w.interval(), w.batchSize()))
	ticker := time.NewTicker(w.interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			utils.LogEvent("", "outbox", "stop", "context cancelled")
			return
		case <-ticker.C:
			if n, err := w.DrainOnce(ctx); err != nil {
				utils.LogEvent("", "outbox", "drain_error", err.Error())
			} else if n > 0 {
				utils.LogEvent("", "outbox", "drained", fmt.Sprintf("sent_or_failed=%d", n))
			}
		}
	}
}

// DrainOnce processes a single batch and reports how many rows it touched.
func (w OutboxWorker) DrainOnce(ctx context.Context) (int, error) {
	repo := w.repo()
	jobs, err := repo.FetchPending(ctx, w.batchSize())
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, job := range jobs {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if w.Mailer == nil {
			return processed, fmt.Errorf("no mailer configured")
		}
		if err := w.Mailer.Send(job.Recipient, job.Subject, job.Body); err != nil {
			metrics.IncEmail("failed")
			if mErr := repo.MarkFailed(ctx, job.ID, err, w.maxRetries(), w.backoff()); mErr != nil {
				utils.LogEvent("", "outbox", "mark_failed_error", mErr.Error())
			}
			processed++
			continue
		}
		metrics.IncEmail("sent")
		if err := repo.MarkSent(ctx, job.ID); err != nil {
			utils.LogEvent("", "outbox", "mark_sent_error", err.Error())
		}
		processed++
	}
	return processed, nil
}
