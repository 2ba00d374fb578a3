package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "courierdesk/internal/config"
	router "courierdesk/internal/http"
	"courierdesk/internal/http/handlers"
	"courierdesk/internal/mail"
	"courierdesk/internal/metrics"
	"courierdesk/internal/repositories"
	"courierdesk/internal/services"
	"courierdesk/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	if err := ensureSchema(); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	metrics.Register()

	redisClient := intconfig.NewRedisClient(env)
	defer redisClient.Close()

	var mailer mail.Mailer = mail.LogMailer{}
	if env.SMTPHost != "" {
		m, err := mail.NewSMTPMailer(env)
		if err != nil {
			log.Printf("warning: smtp mailer disabled: %v", err)
		} else {
			mailer = m
		}
	}

	var store storage.ObjectStore
	if r2, err := storage.NewR2Store(env); err != nil {
		log.Printf("warning: object storage disabled: %v", err)
	} else {
		store = r2
	}

	handlers.Configure(env, redisClient, store, mailer)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker := services.OutboxWorker{
		Repo:   repositories.OutboxRepo{},
		Mailer: mailer,
	}
	go worker.Run(workerCtx)

	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped cleanly.")
}

func ensureSchema() error {
	steps := []func() error{
		repositories.UserRepo{}.EnsureTable,
		repositories.BookingRepo{}.EnsureTable,
		repositories.AddressRepo{}.EnsureTable,
		repositories.PincodeRepo{}.EnsureTable,
		repositories.ColoaderRepo{}.EnsureTable,
		repositories.EmployeeRepo{}.EnsureTable,
		repositories.PricingRepo{}.EnsureTables,
		repositories.ConsignmentRepo{}.EnsureTable,
		repositories.OutboxRepo{}.EnsureTable,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
