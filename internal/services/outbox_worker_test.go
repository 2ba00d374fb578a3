package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"courierdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

type flakyMailer struct {
	failFor string
	sent    []string
}

func (m *flakyMailer) Send(to, _, _ string) error {
	if to == m.failFor {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func TestOutboxDrainOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "recipient", "subject", "body", "status", "retry_count",
		"last_error", "created_at", "processed_at", "next_retry_at",
	}).
		AddRow(1, "ok@example.com", "Booking confirmed", "body", "pending", 0, "", now, nil, nil).
		AddRow(2, "down@example.com", "Booking confirmed", "body", "pending", 2, "", now, nil, nil)
	mock.ExpectQuery("FROM email_outbox").WillReturnRows(rows)

	mock.ExpectExec("UPDATE email_outbox").WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// failed send bumps retry_count and schedules the retry
	mock.ExpectExec("UPDATE email_outbox").
		WithArgs("smtp unavailable", 5, sqlmock.AnyArg(), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mailer := &flakyMailer{failFor: "down@example.com"}
	w := OutboxWorker{Repo: repositories.OutboxRepo{DB: db}, Mailer: mailer, DB: db}

	n, err := w.DrainOnce(context.Background())
	if err != nil {
		t.Fatalf("drain error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows touched, got %d", n)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ok@example.com" {
		t.Fatalf("unexpected deliveries: %v", mailer.sent)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOutboxRunStopsOnCancel(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()
	mock.MatchExpectationsInOrder(false)

	w := OutboxWorker{
		Repo:     repositories.OutboxRepo{DB: db},
		Mailer:   &flakyMailer{},
		DB:       db,
		Interval: time.Hour, // never ticks during the test
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("worker did not stop on cancel")
	}
}
