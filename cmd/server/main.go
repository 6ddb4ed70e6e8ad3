package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"angodata/internal/audit"
	"angodata/internal/auth"
	geohandler "angodata/internal/geo/handler"
	"angodata/internal/geo/service"
	"angodata/internal/geo/store"
	"angodata/internal/geo/store/memory"
	"angodata/internal/geo/store/postgres"
	"angodata/internal/jwttoken"
	"angodata/internal/persistence"
	"angodata/internal/platform/cache"
	"angodata/internal/platform/config"
	"angodata/internal/platform/httpserver"
	"angodata/internal/platform/logger"
	"angodata/internal/platform/metrics"
	platformredis "angodata/internal/platform/redis"
)

// main wires the backend once at startup and keeps the server lifecycle
// small. Business rules live in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	auditSvc := newAuditService(cfg, log)
	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	ctx := context.Background()

	var (
		stores      store.Stores
		userStore   auth.UserStore
		geoPersist  func(ctx context.Context) error
		userPersist func(ctx context.Context) error
	)

	if cfg.UseDatabase {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("database unreachable", "error", err)
			os.Exit(1)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			log.Error("ensure schema", "error", err)
			os.Exit(1)
		}
		if err := auth.EnsureUserSchema(ctx, db); err != nil {
			log.Error("ensure user schema", "error", err)
			os.Exit(1)
		}
		if err := postgres.SeedIfEmpty(ctx, db); err != nil {
			log.Error("seed database", "error", err)
			os.Exit(1)
		}
		stores = store.Stores{
			Provinces:      postgres.NewProvinceStore(db),
			Municipalities: postgres.NewMunicipalityStore(db),
			Schools:        postgres.NewSchoolStore(db),
			Markets:        postgres.NewMarketStore(db),
			Hospitals:      postgres.NewHospitalStore(db),
		}
		userStore = auth.NewPostgresUserStore(db)
		log.Info("backend selected", "backend", "postgres")
	} else {
		dir, err := persistence.NewDir(cfg.DataDir)
		if err != nil {
			log.Error("prepare data dir", "error", err, "path", cfg.DataDir)
			os.Exit(1)
		}
		export, err := persistence.LoadExport(dir)
		if err != nil {
			log.Error("load snapshot", "error", err)
			os.Exit(1)
		}
		bundle := memory.NewBundle(export)
		stores = store.Stores{
			Provinces:      bundle.Provinces,
			Municipalities: bundle.Municipalities,
			Schools:        bundle.Schools,
			Markets:        bundle.Markets,
			Hospitals:      bundle.Hospitals,
		}

		users, _, err := persistence.LoadJSON[auth.User](dir, persistence.FileUsers)
		if err != nil {
			log.Error("load users snapshot", "error", err)
			os.Exit(1)
		}
		memUsers := auth.NewMemoryUserStore(users)
		userStore = memUsers

		geoPersist = func(ctx context.Context) error {
			return persistence.SaveExport(dir, bundle.Export())
		}
		userPersist = func(ctx context.Context) error {
			all, err := memUsers.List(ctx)
			if err != nil {
				return err
			}
			return persistence.SaveJSON(dir, persistence.FileUsers, all)
		}
		log.Info("backend selected", "backend", "memory", "data_dir", cfg.DataDir)
	}

	responseCache, cacheBackend := newResponseCache(cfg, log, m)

	services := service.New(service.Deps{
		Stores:      stores,
		Logger:      log,
		Metrics:     m,
		Audit:       auditSvc,
		Cache:       responseCache,
		Persist:     geoPersist,
		UseDatabase: cfg.UseDatabase,
	})
	authSvc := auth.NewService(userStore, tokens, log, m, auditSvc, userPersist)

	storageBackend := "memory"
	if cfg.UseDatabase {
		storageBackend = "postgres"
	}
	router := geohandler.NewRouter(geohandler.Deps{
		Services:       services,
		Auth:           authSvc,
		Tokens:         tokens,
		Audit:          auditSvc,
		Cache:          responseCache,
		Logger:         log,
		StorageBackend: storageBackend,
		CacheBackend:   cacheBackend,
	})

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting angodata", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// newAuditService opens the JSONL audit trail, falling back to an
// in-memory store when the file cannot be created.
func newAuditService(cfg config.Server, log *slog.Logger) *audit.Service {
	fileStore, err := audit.NewFileStore(cfg.AuditLogPath)
	if err != nil {
		log.Warn("audit file unavailable, events held in memory", "path", cfg.AuditLogPath, "error", err)
		return audit.NewService(audit.NewMemoryStore(), log)
	}
	return audit.NewService(fileStore, log)
}

// newResponseCache picks Redis when configured and reachable, otherwise
// the in-process cache. A Redis failure at startup is not fatal.
func newResponseCache(cfg config.Server, log *slog.Logger, m *metrics.Metrics) (*cache.ResponseCache, string) {
	var backend cache.Cache = cache.NewMemory()
	name := "memory"
	if cfg.UseRedis {
		client, err := platformredis.New(cfg.Redis)
		switch {
		case err != nil:
			log.Warn("redis unavailable, using in-process cache", "error", err)
		case client != nil:
			backend = cache.NewRedis(client)
			name = "redis"
			log.Info("response cache backend", "backend", name)
		}
	}
	return cache.NewResponseCache(backend, cfg.CacheTTL, cfg.UseDatabase, log, m), name
}
