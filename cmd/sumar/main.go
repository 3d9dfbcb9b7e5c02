package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sumarplus/backend/internal/api"
	"github.com/sumarplus/backend/internal/config"
	"github.com/sumarplus/backend/internal/notify"
	"github.com/sumarplus/backend/internal/repository"
	"github.com/sumarplus/backend/internal/repository/memory"
	"github.com/sumarplus/backend/internal/repository/postgres"
	"github.com/sumarplus/backend/internal/service"
	"github.com/sumarplus/backend/pkg/logger"
)

func main() {
	// .env is optional; real deployments configure the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	l.Info("Starting Sumar+ backend...")

	// Repositories
	var (
		userRepo     repository.UserRepository
		campaignRepo repository.CampaignRepository
		commentRepo  repository.CommentRepository
		donationRepo repository.DonationRepository
		categoryRepo repository.CategoryRepository
	)

	if cfg.StorageBackend == config.StoragePostgres {
		db, err := config.NewDatabase(cfg.DatabaseURL, l)
		if err != nil {
			l.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Migrate(cfg.MigrationsPath); err != nil {
			l.Fatalf("Failed to run migrations: %v", err)
		}

		userRepo = postgres.NewUserRepository(db.DB)
		campaignRepo = postgres.NewCampaignRepository(db.DB)
		commentRepo = postgres.NewCommentRepository(db.DB)
		donationRepo = postgres.NewDonationRepository(db.DB)
		categoryRepo = postgres.NewCategoryRepository(db.DB)
	} else {
		l.Warn("Using in-memory storage; all data is lost on shutdown")
		store := memory.NewStore()
		userRepo = store.Users()
		campaignRepo = store.Campaigns()
		commentRepo = store.Comments()
		donationRepo = store.Donations()
		categoryRepo = store.Categories()
	}

	// Service layer
	svc := service.New(l, userRepo, campaignRepo, commentRepo, donationRepo, categoryRepo)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		l.Info("Received shutdown signal...")
		cancel()
	}()

	// Optional Telegram notifier
	if cfg.NotificationsEnabled() {
		notifier, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID, l)
		if err != nil {
			l.Fatalf("Failed to create Telegram notifier: %v", err)
		}
		svc.SetNotifier(notifier)
		go notifier.Start(ctx)
	}

	// HTTP server
	apiServer := api.NewServer(svc, l)
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: apiServer.Handler(),
	}

	go func() {
		l.Infof("HTTP server listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Errorf("HTTP server error: %v", err)
			cancel()
		}
	}()

	l.Info("Sumar+ backend started successfully")

	<-ctx.Done()

	l.Info("Shutting down HTTP server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		l.Errorf("HTTP server shutdown error: %v", err)
	}

	l.Info("Sumar+ backend stopped")
}
