// cmd/server/main.go
package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"github.com/promptrefiner/promptrefiner/internal/auth"
	"github.com/promptrefiner/promptrefiner/internal/config"
	"github.com/promptrefiner/promptrefiner/internal/enrich"
	"github.com/promptrefiner/promptrefiner/internal/llm"
	"github.com/promptrefiner/promptrefiner/internal/refiner"
	"github.com/promptrefiner/promptrefiner/internal/server"
	"github.com/promptrefiner/promptrefiner/internal/usage"
)

func main() {
	// Optional .env for local development; the environment wins otherwise.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var provider llm.Provider
	switch cfg.LLM.Provider {
	case "openai":
		provider, err = llm.NewOpenAI(&cfg.LLM)
	default: // "gemini"
		provider, err = llm.NewGemini(ctx, &cfg.LLM)
	}
	if err != nil {
		log.Fatalf("failed to create LLM provider: %v", err)
	}

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		log.Fatalf("failed to create session verifier: %v", err)
	}

	similar, err := enrich.NewSimilar(cfg.Enrich)
	if err != nil {
		log.Fatalf("failed to create similarity adapter: %v", err)
	}

	ref := refiner.New(
		provider,
		usage.NewGate(usage.NewMemoryStore()),
		enrich.NewWebSearch(cfg.Enrich),
		similar,
		enrich.NewLiveDocs(cfg.Enrich),
	)

	srv := server.New(*cfg, ref, verifier)
	slog.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port, "provider", cfg.LLM.Provider)
	if err := srv.Run(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
