package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/carebridge/healthcare-backend/internal/api"
	"github.com/carebridge/healthcare-backend/internal/auth"
	"github.com/carebridge/healthcare-backend/internal/bloodbank"
	"github.com/carebridge/healthcare-backend/internal/chat"
	"github.com/carebridge/healthcare-backend/internal/config"
	"github.com/carebridge/healthcare-backend/internal/db"
	"github.com/carebridge/healthcare-backend/internal/directory"
	"github.com/carebridge/healthcare-backend/internal/pharmacy"
	redisclient "github.com/carebridge/healthcare-backend/internal/redis"
	"github.com/carebridge/healthcare-backend/internal/scheduling"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("config load error: " + err.Error())
	}

	log := newLogger(cfg.Env)
	defer log.Sync()

	log.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort),
	)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal("postgres connection error", zap.Error(err))
	}
	defer pgPool.Close()
	log.Info("connected to Postgres")

	migCtx, cancelMig := context.WithTimeout(rootCtx, 30*time.Second)
	err = db.Migrate(migCtx, pgPool)
	cancelMig()
	if err != nil {
		log.Fatal("migration error", zap.Error(err))
	}
	log.Info("database migrations applied")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal("redis connection error", zap.Error(err))
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn("error closing redis", zap.Error(err))
		}
	}()
	log.Info("connected to Redis")

	locker := redisclient.NewRedisScheduleLocker(rdb, cfg.LockTTL)

	authSvc := auth.NewService(auth.NewPgRepository(pgPool), cfg.JWTSecret, cfg.TokenTTL, log)
	schedulingSvc := scheduling.NewService(scheduling.NewPgRepository(pgPool), locker, log)
	directorySvc := directory.NewService(directory.NewPgRepository(pgPool))
	bloodBankSvc := bloodbank.NewService(bloodbank.NewPgRepository(pgPool))
	pharmacySvc := pharmacy.NewService(pharmacy.NewPgRepository(pgPool))
	chatSvc := chat.NewService(
		chat.NewPgRepository(pgPool),
		chat.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel),
		log,
	)

	bootCtx, cancelBoot := context.WithTimeout(rootCtx, 10*time.Second)
	err = authSvc.EnsureSuperAdmin(bootCtx, cfg.SuperAdminEmail, cfg.SuperAdminPass)
	cancelBoot()
	if err != nil {
		log.Fatal("super admin bootstrap error", zap.Error(err))
	}

	router := api.NewRouter(api.RouterConfig{
		Auth:        authSvc,
		Scheduling:  schedulingSvc,
		Directory:   directorySvc,
		BloodBank:   bloodBankSvc,
		Pharmacy:    pharmacySvc,
		Chat:        chatSvc,
		PgPool:      pgPool,
		Redis:       rdb,
		Log:         log,
		JWTSecret:   cfg.JWTSecret,
		CORSOrigins: cfg.CORSOrigins,
		Env:         cfg.Env,
		Version:     version,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  90 * time.Second,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server error", zap.Error(err))
		}
	}()

	<-rootCtx.Done()
	log.Info("shutting down api-server")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown error", zap.Error(err))
	}
}

func newLogger(env string) *zap.Logger {
	if env == "prod" {
		log, err := zap.NewProduction()
		if err != nil {
			panic(err)
		}
		return log
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	return log
}
