package handlers

import (
	"time"

	intconfig "courierdesk/internal/config"
	"courierdesk/internal/mail"
	"courierdesk/internal/services"
	"courierdesk/internal/storage"
	"courierdesk/internal/wizard"

	"github.com/redis/go-redis/v9"
)

// Shared collaborators that outlive a single request. Repositories are
// built per-request against the shared DB pool; these carry state (redis
// connections, OTP limiters) and are wired once from main.
var (
	jwtSecret   []byte
	objectStore storage.ObjectStore
	appMailer   mail.Mailer
	draftStore  *wizard.Store
	idemStore   *services.IdempotencyStore
	otpSvc      *services.OTPService
)

// Configure wires the long-lived collaborators. Passing a nil redis client
// or store leaves the matching feature disabled; the handlers respond with
// an internal error if hit.
func Configure(env intconfig.Env, client *redis.Client, store storage.ObjectStore, mailer mail.Mailer) {
	jwtSecret = []byte(env.JWTSecret)
	objectStore = store
	appMailer = mailer
	if client != nil {
		draftStore = wizard.NewStore(client, 24*time.Hour)
		idemStore = services.NewIdempotencyStore(client, 24*time.Hour)
		otpSvc = &services.OTPService{Client: client, Mailer: mailer}
	}
}
