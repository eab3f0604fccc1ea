package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MatteoMarello/bidpilot-mvp/internal/decision"
	decisionhandler "github.com/MatteoMarello/bidpilot-mvp/internal/decision/handler"
	"github.com/MatteoMarello/bidpilot-mvp/internal/decision/metrics"
	"github.com/MatteoMarello/bidpilot-mvp/internal/platform/config"
	"github.com/MatteoMarello/bidpilot-mvp/internal/platform/httpserver"
	"github.com/MatteoMarello/bidpilot-mvp/internal/platform/logger"
	"github.com/MatteoMarello/bidpilot-mvp/internal/platform/middleware"
	"github.com/MatteoMarello/bidpilot-mvp/internal/profile"
)

// main wires configuration, the company profile, and the decision service
// into an HTTP server. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.ParseLevel(cfg.LogLevel))

	companyProfile, err := profile.Load(cfg.ProfilePath)
	if err != nil {
		log.Error("failed to load company profile", "path", cfg.ProfilePath, "error", err)
		os.Exit(1)
	}

	store := decision.NewMemoryStore()
	m := metrics.New()
	svc := decision.NewService(store, log, m)
	h := decisionhandler.New(svc, log, companyProfile)

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())
	h.Register(router)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting bidpilot server", "addr", cfg.Addr, "profile", companyProfile.LegalName)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
