package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/softtronics/msw-portal/internal/api"
	"github.com/softtronics/msw-portal/internal/core/ports"
	"github.com/softtronics/msw-portal/internal/core/service"
	"github.com/softtronics/msw-portal/internal/infrastructure/config"
	mongodb "github.com/softtronics/msw-portal/internal/infrastructure/db/mongo"
	redisdb "github.com/softtronics/msw-portal/internal/infrastructure/db/redis"
	"github.com/softtronics/msw-portal/internal/infrastructure/erp"
	"github.com/softtronics/msw-portal/internal/infrastructure/mail"
	"github.com/softtronics/msw-portal/internal/infrastructure/otp"
	"github.com/softtronics/msw-portal/internal/infrastructure/scheduler"
	"github.com/softtronics/msw-portal/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet; stderr is all we have.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	tokenRepo := mongodb.NewTokenRepository(db)
	mirrorRepo := mongodb.NewMirrorRepository(db)

	// --- Challenge store: in-process by default, Redis when scaled out ---
	var challenges ports.ChallengeStore
	if cfg.Auth.OTPBackend == "redis" {
		challenges = redisdb.NewChallengeStore(rdb, cfg.Auth.OTPTTL)
	} else {
		challenges = otp.NewMemoryStore(cfg.Auth.OTPTTL)
	}

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		FromName:    cfg.SMTP.FromName,
		FromAddress: cfg.SMTP.FromAddress,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client failed")
	}

	// --- Core services ---
	issuer := service.NewTokenIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	sessions := service.NewSessionService(userRepo, tokenRepo, challenges, mailer, issuer, cfg.Auth.CallTimeout, log)
	users := service.NewUserService(userRepo, tokenRepo, cfg.AdminUsername, log)

	// --- Mirror jobs ---
	if cfg.Jobs.Enabled {
		erpClient := erp.NewClient(erp.Config{
			BaseURL:         cfg.ERP.BaseURL,
			Username:        cfg.ERP.Username,
			Password:        cfg.ERP.Password,
			InventoryPath:   cfg.ERP.InventoryPath,
			TransactionPath: cfg.ERP.TransactionPath,
			Timeout:         cfg.ERP.Timeout,
		})
		mirror := service.NewMirrorService(erpClient, mirrorRepo, log)

		sched := scheduler.New(log)
		jobs := []struct {
			spec string
			name string
			run  func(context.Context) error
		}{
			{cfg.Jobs.MirrorSpec, "inventory_mirror", mirror.RefreshInventory},
			{cfg.Jobs.MirrorSpec, "transaction_mirror", mirror.RefreshTransactions},
			{cfg.Jobs.ArchiveSpec, "inventory_archive", mirror.ArchiveInventory},
			{cfg.Jobs.ArchiveSpec, "transaction_archive", mirror.ArchiveTransactions},
		}
		for _, j := range jobs {
			if err := sched.Register(j.spec, j.name, cfg.Jobs.Timeout, j.run); err != nil {
				log.Fatal().Err(err).Str("job", j.name).Msg("job registration failed")
			}
		}
		sched.Start()
		defer sched.Stop()
	}

	// --- HTTP server ---
	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Users:    users,
		Issuer:   issuer,
		Mongo:    db,
		Redis:    rdb,
		Log:      log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server running")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
