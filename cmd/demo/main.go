package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	expensebot "github.com/w-h-a/expensebot"
	"github.com/w-h-a/expensebot/dataset"
	"github.com/w-h-a/expensebot/embedder"
	openaiembedder "github.com/w-h-a/expensebot/embedder/openai"
	"github.com/w-h-a/expensebot/generator"
	openaigenerator "github.com/w-h-a/expensebot/generator/openai"
	"github.com/w-h-a/expensebot/record"
	"github.com/w-h-a/expensebot/record/memory"
)

var (
	cfg struct {
		// Generator config
		GeneratorKey string `help:"API Key for the generator" env:"GENERATOR_API_KEY" default:""`
		Generator    string `help:"Model identifier for generator" default:"gpt-4o-mini"`

		// Embedder config
		EmbedderKey string `help:"API Key for the embedder" env:"EMBEDDER_API_KEY" default:""`
		Embedder    string `help:"Model identifier for embedder" default:"text-embedding-3-small"`

		// Assistant config
		MaxTurns int `help:"Number of turns the assistant is allowed to take per query" default:"3"`
	}
)

func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)

	ctx := context.Background()

	repo := memory.NewRepository(
		record.WithRecords(append(dataset.Emails(), dataset.Policies()...)...),
	)

	model := openaigenerator.NewGenerator(
		generator.WithApiKey(cfg.GeneratorKey),
		generator.WithModel(cfg.Generator),
	)

	emb := openaiembedder.NewEmbedder(
		embedder.WithApiKey(cfg.EmbedderKey),
		embedder.WithModel(cfg.Embedder),
	)

	bot := expensebot.New(
		model,
		emb,
		repo,
		expensebot.WithMaxIterations(cfg.MaxTurns),
		expensebot.WithCategories(dataset.EmailCategories()...),
		expensebot.WithSenders(dataset.EmailSenders()...),
	)

	fmt.Println("--- Expense Assistant Demo ---")

	fmt.Print("⏳ Indexing records...")
	if err := bot.Initialize(ctx); err != nil {
		log.Fatalf("❌ failed to index records: %v", err)
	}
	fmt.Println(" done")

	fmt.Println("Ask about your expenses ('exit' to quit). For example:")
	for _, example := range bot.Service().SearchOptions().Examples {
		fmt.Printf("  - %s\n", example)
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\nYou: ")

		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if len(input) == 0 {
			continue
		}
		if strings.EqualFold(input, "exit") {
			break
		}

		start := time.Now()

		answer, err := bot.Ask(ctx, input, "")
		if err != nil {
			log.Printf("❌ assistant error: %v", err)
			continue
		}

		fmt.Printf("Assistant (%s): %s\n", time.Since(start).Round(time.Millisecond), answer.Text)

		if answer.TotalAmount != nil {
			fmt.Printf("   total: $%.2f across %d record(s)\n", *answer.TotalAmount, len(answer.MatchedRecords))
		}
	}
}
