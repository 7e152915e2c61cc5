package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	expensebot "github.com/w-h-a/expensebot"
	"github.com/w-h-a/expensebot/dataset"
	"github.com/w-h-a/expensebot/embedder"
	openaiembedder "github.com/w-h-a/expensebot/embedder/openai"
	"github.com/w-h-a/expensebot/generator"
	anthropicgenerator "github.com/w-h-a/expensebot/generator/anthropic"
	googlegenerator "github.com/w-h-a/expensebot/generator/google"
	openaigenerator "github.com/w-h-a/expensebot/generator/openai"
	httphandlers "github.com/w-h-a/expensebot/internal/handlers/http"
	"github.com/w-h-a/expensebot/moderation"
	openaimoderation "github.com/w-h-a/expensebot/moderation/openai"
	"github.com/w-h-a/expensebot/record"
	"github.com/w-h-a/expensebot/record/memory"
	"github.com/w-h-a/expensebot/record/postgres"
	"github.com/w-h-a/expensebot/server"
	httpserver "github.com/w-h-a/expensebot/server/http"
)

var (
	cfg struct {
		// Server config
		Address string `help:"Address for the http server" default:":8080"`

		// Generator config
		Provider     string `help:"Model provider (openai, anthropic, or google)" default:"openai"`
		GeneratorKey string `help:"API Key for the generator" env:"GENERATOR_API_KEY" default:""`
		Generator    string `help:"Model identifier for generator" default:"gpt-4o-mini"`

		// Embedder config
		EmbedderKey string `help:"API Key for the embedder" env:"EMBEDDER_API_KEY" default:""`
		Embedder    string `help:"Model identifier for embedder" default:"text-embedding-3-small"`

		// Record config
		RecordsLocation string `help:"Optional postgres connection string for records" default:""`

		// Moderation config
		Moderate      bool   `help:"Run a moderation pre-check on every query" default:"true"`
		ModerationKey string `help:"API Key for the moderator" env:"MODERATION_API_KEY" default:""`

		// Assistant config
		MaxTurns     int    `help:"Number of turns the assistant is allowed to take per query" default:"3"`
		SystemPrompt string `help:"Optional system prompt override" default:""`
	}
)

func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)

	ctx := context.Background()

	// Create record repository
	var repo record.Repository
	if len(strings.TrimSpace(cfg.RecordsLocation)) > 0 {
		repo = postgres.NewRepository(
			record.WithLocation(cfg.RecordsLocation),
		)
	} else {
		repo = memory.NewRepository(
			record.WithRecords(append(dataset.Emails(), dataset.Policies()...)...),
		)
	}

	// Create model
	var model generator.Generator
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		model = anthropicgenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.Generator),
		)
	case "google":
		model = googlegenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.Generator),
		)
	default:
		model = openaigenerator.NewGenerator(
			generator.WithApiKey(cfg.GeneratorKey),
			generator.WithModel(cfg.Generator),
		)
	}

	// Create embedder
	emb := openaiembedder.NewEmbedder(
		embedder.WithApiKey(cfg.EmbedderKey),
		embedder.WithModel(cfg.Embedder),
	)

	// Create bot
	botOpts := []expensebot.Option{
		expensebot.WithMaxIterations(cfg.MaxTurns),
		expensebot.WithSystemPrompt(cfg.SystemPrompt),
		expensebot.WithCategories(dataset.EmailCategories()...),
		expensebot.WithSenders(dataset.EmailSenders()...),
	}

	if cfg.Moderate {
		botOpts = append(botOpts, expensebot.WithModerator(
			openaimoderation.NewModerator(
				moderation.WithApiKey(cfg.ModerationKey),
			),
		))
	}

	bot := expensebot.New(model, emb, repo, botOpts...)

	if err := bot.Initialize(ctx); err != nil {
		log.Fatalf("failed to initialize vector index: %v", err)
	}

	// Create server
	srv := httpserver.NewServer(
		server.WithAddress(cfg.Address),
		server.WithHandler(httphandlers.Router(bot.Service())),
		httpserver.WithMiddleware(requestLogger),
	)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("failed to stop server", "error", err)
		}
	}()

	if err := srv.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.InfoContext(r.Context(), "handled request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
