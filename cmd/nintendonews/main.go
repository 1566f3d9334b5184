package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/pevans/nintendonews/config"
	"github.com/pevans/nintendonews/fetch"
	"github.com/pevans/nintendonews/news"
	"github.com/pevans/nintendonews/pipeline"
	"github.com/pevans/nintendonews/ratelimit"
	"github.com/pevans/nintendonews/scrape"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	// A .env file, when present, seeds the environment before flags read it.
	_ = godotenv.Load()

	var (
		cfgPath string
		limit   int
		asJSON  bool
	)
	flag.StringVar(&cfgPath, "config", getEnv("NINTENDONEWS_CONFIG", "config.yaml"), "path to YAML config")
	flag.IntVar(&limit, "limit", 0, "maximum number of items (0 uses the config default)")
	flag.BoolVar(&asJSON, "json", false, "print items as JSON")
	flag.Parse()

	if os.Getenv("DEBUG") != "" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if limit <= 0 {
		limit = cfg.Source.Limit
	}

	extractor, err := scrape.New(cfg.Source.ListingURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid listing URL: %v\n", err)
		os.Exit(1)
	}

	client := fetch.NewClient(cfg.Fetch.UserAgent, cfg.Fetch.Timeout.Std())
	bucket := ratelimit.NewBucket(cfg.Rate.BucketSize, cfg.Rate.Refill.Std(), cfg.Rate.Spacing.Std(), nil)
	fetcher := ratelimit.NewFetcher(bucket, client.Get)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := pipeline.New(fetcher, extractor, cfg.Source.ListingURL, slog.Default())
	items := p.Run(ctx, limit)

	if len(items) == 0 {
		fmt.Println("No items found.")
		return
	}

	if asJSON {
		printJSON(items)
		return
	}
	printTable(items)
}

func printJSON(items []news.Item) {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to encode items: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}

func printTable(items []news.Item) {
	fmt.Printf("%-10s %-60s %s\n", "DATE", "TITLE", "LINK")
	fmt.Println("----------------------------------------------------------------------------------------------------")

	for _, item := range items {
		fmt.Printf("%-10s %-60s %s\n", truncate(item.Date, 10), truncate(item.Title, 60), item.Link)
	}
}

// truncate shortens s to max characters, ellipsized.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
