package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"courierdesk/internal/domain"
	"courierdesk/internal/mail"
	"courierdesk/internal/utils"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// OTPService issues and verifies 6-digit single-use codes. Codes live in
// Redis with a short TTL; sends are rate limited per destination.
type OTPService struct {
	Client    *redis.Client
	Mailer    mail.Mailer
	TTL       time.Duration
	RequestID string

	limiters sync.Map // destination -> *rate.Limiter
}

const otpSendsPerMinute = 3

func (s *OTPService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return 5 * time.Minute
}

func (s *OTPService) limiter(dest string) *rate.Limiter {
	if v, ok := s.limiters.Load(dest); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}
	lim := rate.NewLimiter(rate.Limit(float64(otpSendsPerMinute)/60.0), otpSendsPerMinute)
	actual, loaded := s.limiters.LoadOrStore(dest, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

func otpKey(dest string) string {
	return "otp_code:" + dest
}

// normalizeDest lowercases emails and strips formatting from phone numbers
// so "98765-43210" and "9876543210" address the same code.
func normalizeDest(dest string) string {
	dest = strings.TrimSpace(strings.ToLower(dest))
	if strings.Contains(dest, "@") {
		return dest
	}
	return utils.DigitsOnly(dest)
}

// Send generates a code, stores it with TTL and delivers it. channel is
// "email" today; "sms" destinations are accepted but delivery is left to
// the SMS collaborator.
func (s *OTPService) Send(ctx context.Context, channel, dest string) error {
	dest = normalizeDest(dest)
	if dest == "" {
		return domain.ValidationError{Field: "to", Msg: "required"}
	}
	switch channel {
	case "email":
		if !strings.Contains(dest, "@") {
			return domain.ValidationError{Field: "to", Msg: "invalid email address"}
		}
	case "sms":
		if !utils.IsDigits(dest, 10) {
			return domain.ValidationError{Field: "to", Msg: "must be a 10-digit mobile number"}
		}
	default:
		return domain.ValidationError{Field: "channel", Msg: "must be email or sms"}
	}

	if !s.limiter(dest).Allow() {
		return domain.RateLimitError{Msg: "too many OTP requests, try again later"}
	}

	code, err := generateOTP()
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if err := s.Client.Set(ctx, otpKey(dest), code, s.ttl()).Err(); err != nil {
		return domain.InternalError{Err: fmt.Errorf("store otp: %w", err)}
	}

	if channel == "email" && s.Mailer != nil {
		body := fmt.Sprintf("Your verification code is %s. It expires in %d minutes.",
			code, int(s.ttl().Minutes()))
		if err := s.Mailer.Send(dest, "Your verification code", body); err != nil {
			return domain.InternalError{Err: fmt.Errorf("send otp: %w", err)}
		}
	}

	utils.LogEvent(s.RequestID, "otp", "send", "channel="+channel)
	return nil
}

// Verify consumes the code on success; a code can be used once.
func (s *OTPService) Verify(ctx context.Context, dest, code string) error {
	dest = normalizeDest(dest)
	if !utils.IsDigits(code, 6) {
		return domain.ValidationError{Field: "code", Msg: "must be 6 digits"}
	}
	stored, err := s.Client.Get(ctx, otpKey(dest)).Result()
	if err == redis.Nil {
		return domain.ValidationError{Field: "code", Msg: "expired or not requested"}
	}
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return domain.ValidationError{Field: "code", Msg: "incorrect code"}
	}
	_ = s.Client.Del(ctx, otpKey(dest)).Err()
	return nil
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
