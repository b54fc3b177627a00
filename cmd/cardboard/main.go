package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/kanbanhq/cardboard/internal/application/auth"
	"github.com/kanbanhq/cardboard/internal/application/cards"
	"github.com/kanbanhq/cardboard/internal/application/ports"
	"github.com/kanbanhq/cardboard/internal/config"
	infraauth "github.com/kanbanhq/cardboard/internal/infrastructure/auth"
	httprouter "github.com/kanbanhq/cardboard/internal/infrastructure/http"
	"github.com/kanbanhq/cardboard/internal/infrastructure/http/handlers"
	"github.com/kanbanhq/cardboard/internal/infrastructure/http/middleware"
	"github.com/kanbanhq/cardboard/internal/infrastructure/mail"
	"github.com/kanbanhq/cardboard/internal/infrastructure/persistence/postgres"
	"github.com/kanbanhq/cardboard/internal/infrastructure/queue"
	"github.com/kanbanhq/cardboard/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	// Delivery mailer: SMTP when configured, log-only otherwise.
	var delivery ports.Mailer
	if cfg.SMTP.Host != "" {
		delivery = mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	} else {
		delivery = mail.NewLogMailer(log)
	}

	// With Redis, sending goes through the Asynq queue; the worker drains
	// it with the delivery mailer.
	mailer := delivery
	var worker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		enqueuer := queue.NewEnqueuer(asynqOpt, log)
		defer enqueuer.Close()
		mailer = enqueuer
		worker = queue.NewWorker(asynqOpt, delivery, log)
		go func() {
			if err := worker.Run(); err != nil {
				log.Warn().Err(err).Msg("mail worker stopped")
			}
		}()
	}

	userRepo := postgres.NewUserRepository(pool)
	cardRepo := postgres.NewCardRepository(pool)

	hasher := security.NewArgon2Hasher(security.Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience, cfg.JWT.Expiry)

	authHandler := handlers.NewAuthHandler(
		auth.NewLogin(userRepo, hasher, issuer),
		auth.NewSignup(userRepo, hasher, issuer),
		auth.NewForgotPassword(userRepo, mailer, log),
		auth.NewResetPassword(userRepo, hasher, issuer),
		log,
	)
	cardHandler := handlers.NewCardHandler(
		cards.NewCreateCard(cardRepo),
		cards.NewListCards(cardRepo),
		log,
	)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:   authHandler,
		CardHandler:   cardHandler,
		HealthHandler: healthHandler,
		Log:           log,
		Secure:        middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment)),
		Metrics:       true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if worker != nil {
		worker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
