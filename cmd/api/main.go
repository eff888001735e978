package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coach-platform/internal/audit"
	"github.com/BruksfildServices01/coach-platform/internal/config"
	dbpkg "github.com/BruksfildServices01/coach-platform/internal/db"
	domainUpload "github.com/BruksfildServices01/coach-platform/internal/domain/upload"
	infraRepo "github.com/BruksfildServices01/coach-platform/internal/infra/repository"
	"github.com/BruksfildServices01/coach-platform/internal/logger"
	"github.com/BruksfildServices01/coach-platform/internal/middleware"
	"github.com/BruksfildServices01/coach-platform/internal/notify"
	"github.com/BruksfildServices01/coach-platform/internal/routes"
	"github.com/BruksfildServices01/coach-platform/internal/storage"
	"github.com/BruksfildServices01/coach-platform/internal/upload"
	"github.com/BruksfildServices01/coach-platform/internal/validators"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg)
	defer log.Sync() //nolint:errcheck

	if err := cfg.Validate(); err != nil {
		log.Fatal("invalid config", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal("database", zap.Error(err))
	}

	if cfg.AutoMigrate {
		migrator, err := dbpkg.NewMigrator(db, log)
		if err != nil {
			log.Fatal("migrator", zap.Error(err))
		}
		if err := migrator.Up(ctx); err != nil {
			log.Fatal("migrate", zap.Error(err))
		}
	}

	validators.Setup()

	// ======================================================
	// INFRA
	// ======================================================
	auditRepo := infraRepo.NewAuditGormRepository(db)
	dispatcher := audit.NewDispatcher(audit.New(auditRepo), log)
	notifier := notify.New(infraRepo.NewNotificationGormRepository(db), log)

	var backend storage.Backend
	if cfg.S3Bucket != "" {
		backend = storage.NewS3(cfg)
		log.Info("object storage", zap.String("backend", "s3"), zap.String("bucket", cfg.S3Bucket))
	} else {
		backend = storage.NewMemory(cfg.PublicBaseURL)
		log.Warn("S3_BUCKET not set, files are kept in memory")
	}

	store, closeStore, err := uploadStore(cfg)
	if err != nil {
		log.Fatal("upload store", zap.Error(err))
	}
	defer closeStore()

	files := infraRepo.NewFileGormRepository(db)
	uploads := upload.NewManager(
		store,
		backend,
		files,
		dispatcher,
		log,
		cfg.UploadMaxChunkBytes,
		cfg.UploadIdleTTL,
	)
	go uploads.RunSweeper(ctx, cfg.UploadSweepInterval)

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Log:      log,
		Audit:    dispatcher,
		Notifier: notifier,
		Storage:  backend,
		Uploads:  uploads,
		Files:    files,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	dispatcher.Close()
}

// uploadStore picks the chunk state backend. Redis lets several API
// instances share in-flight uploads.
func uploadStore(cfg *config.Config) (domainUpload.Store, func(), error) {
	if cfg.UploadStore != config.UploadStoreRedis {
		return upload.NewMemoryStore(), func() {}, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, err
	}

	return upload.NewRedisStore(rdb, cfg.UploadIdleTTL), func() { _ = rdb.Close() }, nil
}
