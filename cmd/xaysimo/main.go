package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/xaysimo/xaysimo/internal/apperrors"
	"github.com/xaysimo/xaysimo/internal/core/services"
	"github.com/xaysimo/xaysimo/internal/handlers"
	"github.com/xaysimo/xaysimo/internal/middleware"
	"github.com/xaysimo/xaysimo/internal/mirror"
	"github.com/xaysimo/xaysimo/internal/platform/config"
	"github.com/xaysimo/xaysimo/internal/repositories/boltkv"
	"github.com/xaysimo/xaysimo/internal/store"
	"github.com/xaysimo/xaysimo/internal/utils"
)

// @title Xaysimo ERP API
// @version 1.0
// @description Retail ERP backend: point of sale, inventory, debtors and financial statements over a single shared document.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := boltkv.NewDocumentRepository(cfg.DataPath)
	if err != nil {
		logger.Error("Failed to open local document store", slog.String("path", cfg.DataPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("Local document store opened", slog.String("path", cfg.DataPath))

	documentStore, err := store.New(ctx, repo, logger)
	if err != nil {
		logger.Error("Failed to initialize document store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	syncer := setupMirror(ctx, cfg, documentStore, logger)
	if syncer != nil {
		defer syncer.Close()
		documentStore.SetOnCommit(syncer.Notify)
	}

	serviceContainer := services.NewServiceContainer(documentStore, cfg)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	r.Use(cors.New(corsConfig))

	posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	defer posthogClient.Close()
	r.Use(middleware.PosthogMiddleware(posthogClient))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, documentStore, syncer)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// setupMirror builds the configured remote mirror and its sync engine, and
// recovers the document from the remote when the local store starts empty.
// Returns nil when no mirror is configured.
func setupMirror(ctx context.Context, cfg *config.Config, documentStore *store.Store, logger *slog.Logger) *mirror.Syncer {
	var m mirror.Mirror
	switch cfg.MirrorKind {
	case "postgres":
		pg, err := mirror.NewPostgres(ctx, cfg.MirrorPGURL)
		if err != nil {
			logger.Error("Failed to connect to the postgres mirror, continuing local-only", slog.String("error", err.Error()))
			return nil
		}
		m = pg
	case "gist":
		m = mirror.NewGist(cfg.MirrorGistToken, cfg.MirrorGistID)
	default:
		return nil
	}

	syncer := mirror.NewSyncer(m, cfg.SyncDebounce, logger)

	// A fresh local document with a populated remote means this is a new
	// device joining an existing business: adopt the remote state.
	snapshot := documentStore.Snapshot()
	if len(snapshot.Transactions) == 0 && len(snapshot.Products) == 0 {
		remote, err := syncer.Recover(ctx)
		switch {
		case err == nil:
			if err := documentStore.Replace(ctx, remote); err != nil {
				logger.Error("Failed to adopt remote document", slog.String("error", err.Error()))
			} else {
				logger.Info("Recovered document from remote mirror", slog.String("mirror", m.Name()))
			}
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Info("No remote document to recover", slog.String("mirror", m.Name()))
		default:
			logger.Warn("Remote recovery failed, continuing with local document", slog.String("error", err.Error()))
		}
	}
	return syncer
}
