package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/clinsum/internal/api"
	"github.com/dgallion1/clinsum/internal/config"
	"github.com/dgallion1/clinsum/internal/docstore"
	"github.com/dgallion1/clinsum/internal/report"
	"github.com/dgallion1/clinsum/internal/summarize"
	"github.com/dgallion1/clinsum/internal/taxonomy"
	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	store := docstore.NewClient(cfg.ElasticURL, cfg.ElasticUser, cfg.ElasticPassword)
	for _, index := range []string{cfg.SummarizationIndex, cfg.DiagnosesIndex} {
		if err := store.EnsureIndex(ctx, index); err != nil {
			log.Error("index bootstrap failed", "index", index, "error", err)
			os.Exit(1)
		}
	}

	prompts, err := summarize.LoadPrompts(cfg.PromptFile)
	if err != nil {
		log.Error("prompt catalog load failed", "file", cfg.PromptFile, "error", err)
		os.Exit(1)
	}

	llm := summarize.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	llm.Stats = summarize.NewStats(cfg.StatsWindow)

	// Initialize services.
	anonymizer := report.NewAnonymizer(cfg.SectionTitles)
	summarizer := summarize.NewService(store, llm, prompts, cfg.SummarizationIndex, log)
	diagnoses := taxonomy.NewService(store, cfg.DiagnosesIndex, log)

	// Initialize HTTP server.
	srv := api.NewServer(anonymizer, summarizer, diagnoses, llm, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		llm.Close()
		store.Close()
	}()

	log.Info("starting clinsum", "port", cfg.Port, "model", llm.Model())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
