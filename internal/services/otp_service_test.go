package services

import (
	"context"
	"testing"

	"courierdesk/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type captureMailer struct {
	to   string
	body string
}

func (m *captureMailer) Send(to, _, body string) error {
	m.to = to
	m.body = body
	return nil
}

func otpFixture(t *testing.T) (*OTPService, *miniredis.Miniredis, *captureMailer) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	mailer := &captureMailer{}
	return &OTPService{Client: client, Mailer: mailer}, mr, mailer
}

func TestOTPSendAndVerify(t *testing.T) {
	svc, mr, mailer := otpFixture(t)
	ctx := context.Background()

	if err := svc.Send(ctx, "email", "user@example.com"); err != nil {
		t.Fatalf("send error: %v", err)
	}
	if mailer.to != "user@example.com" {
		t.Fatalf("code not delivered, mailer got %q", mailer.to)
	}

	code, err := mr.Get("otp_code:user@example.com")
	if err != nil || len(code) != 6 {
		t.Fatalf("stored code = %q, err = %v", code, err)
	}

	if err := svc.Verify(ctx, "user@example.com", "000001"); !domain.IsValidation(err) {
		t.Fatalf("wrong code must fail validation, got %v", err)
	}
	if err := svc.Verify(ctx, "user@example.com", code); err != nil {
		t.Fatalf("verify error: %v", err)
	}
	// single use
	if err := svc.Verify(ctx, "user@example.com", code); !domain.IsValidation(err) {
		t.Fatalf("reused code must fail, got %v", err)
	}
}

func TestOTPSendRateLimited(t *testing.T) {
	svc, _, _ := otpFixture(t)
	ctx := context.Background()

	for i := 0; i < otpSendsPerMinute; i++ {
		if err := svc.Send(ctx, "email", "burst@example.com"); err != nil {
			t.Fatalf("send %d error: %v", i, err)
		}
	}
	if err := svc.Send(ctx, "email", "burst@example.com"); !domain.IsRateLimit(err) {
		t.Fatalf("expected rate limit, got %v", err)
	}
	// a different destination is unaffected
	if err := svc.Send(ctx, "email", "other@example.com"); err != nil {
		t.Fatalf("other destination blocked: %v", err)
	}
}

func TestOTPSendRejectsBadDestinations(t *testing.T) {
	svc, _, _ := otpFixture(t)
	ctx := context.Background()

	if err := svc.Send(ctx, "email", "not-an-email"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Send(ctx, "sms", "12345"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for short number, got %v", err)
	}
	if err := svc.Send(ctx, "carrier-pigeon", "user@example.com"); !domain.IsValidation(err) {
		t.Fatalf("expected validation error for unknown channel, got %v", err)
	}
}

func TestOTPSMSDestinationNormalized(t *testing.T) {
	svc, mr, _ := otpFixture(t)
	ctx := context.Background()

	// formatted and bare variants address the same code
	if err := svc.Send(ctx, "sms", "98765-43210"); err != nil {
		t.Fatalf("send error: %v", err)
	}
	code, err := mr.Get("otp_code:9876543210")
	if err != nil || len(code) != 6 {
		t.Fatalf("stored code = %q, err = %v", code, err)
	}
	if err := svc.Verify(ctx, "98765 43210", code); err != nil {
		t.Fatalf("verify with formatted number: %v", err)
	}
}

func TestOTPVerifyExpired(t *testing.T) {
	svc, mr, _ := otpFixture(t)
	ctx := context.Background()

	if err := svc.Send(ctx, "email", "user@example.com"); err != nil {
		t.Fatalf("send error: %v", err)
	}
	mr.FastForward(svc.ttl() * 2)

	code := "123456"
	if err := svc.Verify(ctx, "user@example.com", code); !domain.IsValidation(err) {
		t.Fatalf("expected validation error after expiry, got %v", err)
	}
}
