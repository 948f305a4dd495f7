package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"ghostcheck/backend/internal/analysis"
	"ghostcheck/backend/internal/api"
	"ghostcheck/backend/internal/extract"
	"ghostcheck/backend/internal/session"
	"ghostcheck/backend/pkg/config"
	"ghostcheck/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load configuration: %v", err))
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting HTTP API server...")

	// Initialize dependencies
	extractor := extract.New(extract.Options{
		ListFields:     cfg.ListFields,
		ProfileBaseURL: cfg.ProfileBaseURL,
	})
	analyzer := analysis.NewAnalyzer(extractor, analysis.Options{
		Workers:       cfg.MaxWorkers,
		MaxEntryBytes: cfg.MaxEntryBytes(),
	}, log.Named("analysis"))
	handler := api.NewHandler(analyzer, session.NewStore(), cfg.MaxUploadBytes(), log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := newServer(cfg, api.NewRouter(handler))

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("addr", srv.Addr))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// newServer applies listen address and timeouts. Uploads can be large, so the
// read timeout is generous.
func newServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Minute,
		IdleTimeout:       2 * time.Minute,
	}
}
