package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	httpctx "github.com/dtroode/tasktracker-server/internal/api/http/context"
	"github.com/dtroode/tasktracker-server/internal/api/http/router"
	httpServer "github.com/dtroode/tasktracker-server/internal/api/http/server"
	"github.com/dtroode/tasktracker-server/internal/config"
	"github.com/dtroode/tasktracker-server/internal/logger"
	"github.com/dtroode/tasktracker-server/internal/model"
	"github.com/dtroode/tasktracker-server/internal/password"
	"github.com/dtroode/tasktracker-server/internal/ratelimit"
	"github.com/dtroode/tasktracker-server/internal/repository/memory"
	"github.com/dtroode/tasktracker-server/internal/repository/postgres"
	"github.com/dtroode/tasktracker-server/internal/server"
	"github.com/dtroode/tasktracker-server/internal/service"
	storage "github.com/dtroode/tasktracker-server/internal/storage/minio"
	"github.com/dtroode/tasktracker-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

type stores struct {
	users  model.UserStore
	tasks  model.TaskStore
	pinger model.Pinger
	close  func() error
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	st, err := newStores(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	hasher, err := password.NewBcrypt(cfg.Password.BcryptCost)
	if err != nil {
		logger.Fatal("failed to initialize password hasher", "error", err)
	}
	if hasher.Cost() != cfg.Password.BcryptCost {
		logger.Warn("bcrypt cost out of range, using default", "configured", cfg.Password.BcryptCost, "cost", hasher.Cost())
	}
	tokenManager := token.NewJWT(cfg.JWT.Secret)

	limiter, closeLimiter := newRateLimiter(ctx, cfg, logger)
	defer closeLimiter()

	archive := newArchive(ctx, cfg.Storage, logger)

	authService := service.NewAuth(st.users, hasher, tokenManager, cfg.JWT.TTL, logger)
	userService := service.NewUser(st.users, logger)
	taskService := service.NewTask(st.tasks, archive, cfg.Task.DescriptionMaxLen, logger)

	r := router.New(
		authService,
		userService,
		taskService,
		tokenManager,
		limiter,
		st.pinger,
		httpctx.NewManager(),
		router.Options{AllowedOrigins: cfg.HTTP.AllowedOrigins, TrustProxy: cfg.HTTP.TrustProxy},
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port))
	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func newStores(ctx context.Context, cfg config.Database) (stores, error) {
	if cfg.InMemory {
		store := memory.NewStore()
		return stores{
			users:  store.Users(),
			tasks:  store.Tasks(),
			pinger: store,
			close:  func() error { return nil },
		}, nil
	}

	db, err := postgres.NewConection(ctx, cfg.DSN)
	if err != nil {
		return stores{}, err
	}
	return stores{
		users:  postgres.NewUserRepository(db),
		tasks:  postgres.NewTaskRepository(db),
		pinger: db,
		close:  db.Close,
	}, nil
}

// newRateLimiter returns nil when throttling is disabled. A configured Redis
// address selects the shared fixed-window limiter.
func newRateLimiter(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.RateLimiter, func()) {
	if !cfg.RateLimit.Enabled {
		logger.Warn("rate limiting disabled")
		return nil, func() {}
	}

	if cfg.Redis.Addr == "" {
		return ratelimit.NewMemoryLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, rate limiting fails open until it recovers", "addr", cfg.Redis.Addr, "error", err)
	}

	return ratelimit.NewRedisLimiter(client, cfg.RateLimit.Requests, cfg.RateLimit.Window), func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close redis client", "error", err)
		}
	}
}

// newArchive returns nil unless export archiving is enabled and reachable.
func newArchive(ctx context.Context, cfg config.Storage, logger *logger.Logger) model.Storage {
	if !cfg.Enabled {
		return nil
	}

	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}
	return storageClient
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
