package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/haikuwriter/internal/api"
	"github.com/dgallion1/haikuwriter/internal/config"
	"github.com/dgallion1/haikuwriter/internal/corpus"
	"github.com/dgallion1/haikuwriter/internal/generator"
	"github.com/dgallion1/haikuwriter/internal/haiku"
	"github.com/dgallion1/haikuwriter/internal/library"
	"github.com/dgallion1/haikuwriter/internal/logging"
	"github.com/dgallion1/haikuwriter/internal/metrics"
	"github.com/dgallion1/haikuwriter/internal/pipeline"
	"github.com/dgallion1/haikuwriter/internal/stats"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.Load()
	log := logging.New(os.Stdout, cfg.LogFormat, logging.ParseLevel(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manifest, err := corpus.LoadManifest(cfg.CorpusManifest)
	if err != nil {
		log.Error("load corpus manifest", "path", cfg.CorpusManifest, "error", err)
		os.Exit(1)
	}
	lib, err := library.New(cfg.CorpusDir, manifest, cfg.CorpusCacheSize, cfg.PDFFallbackPdftotext, log.With("component", "library"))
	if err != nil {
		log.Error("open corpus library", "dir", cfg.CorpusDir, "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	st := stats.NewWindow(cfg.StatsWindow)
	engine := haiku.NewEngine(haiku.WithMaxAttempts(cfg.MaxLineAttempts))
	svc := generator.NewService(lib, engine, st, metrics.New(reg), log.With("component", "generator"))

	if len(cfg.DefaultCorpora) > 0 {
		if err := svc.Select(cfg.DefaultCorpora...); err != nil {
			log.Warn("default corpora not loaded", "corpora", cfg.DefaultCorpora, "error", err)
		}
	}

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, svc, log.With("component", "pipeline"))
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(svc, lib, orch, st, reg, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting haikuwriter", "port", cfg.Port, "corpora", len(lib.Names()))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
