// hpsearch builds (or loads) the index and answers a single query from
// the command line, printing the ranked passages. Useful for scripting
// and for checking retrieval quality without the chat layer.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/config"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/embedding"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/logger"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/service"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath string
		k       int
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file")
	flag.IntVar(&k, "k", 0, "Number of passages to return (default from config)")
	flag.Parse()

	query := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if query == "" {
		fmt.Println("Usage: hpsearch [--config=config.yaml] [--k=5] your question here")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	embedder := embedding.Select(embedding.RemoteConfig{
		Endpoint:  cfg.Embedding.Endpoint,
		APIKeyEnv: cfg.Embedding.APIKeyEnv,
		Model:     cfg.Embedding.Model,
		Timeout:   time.Duration(cfg.Embedding.TimeoutSecs) * time.Second,
	}, zl)

	svc := service.New(cfg, embedder, zl)
	if err := svc.Open(); err != nil {
		zl.Fatal("failed to open retrieval index", zap.Error(err))
	}

	results, err := svc.Results(query, k)
	if err != nil {
		zl.Fatal("search failed", zap.Error(err))
	}
	if len(results) == 0 {
		fmt.Println(service.NoPassagesFound)
		return
	}
	for i, res := range results {
		fmt.Printf("#%d  score=%.4f  chapter %s", i+1, res.Score, res.Passage.Meta.Chapter)
		if res.Passage.Meta.Title != "" {
			fmt.Printf(" (%s)", res.Passage.Meta.Title)
		}
		fmt.Printf("\n%s\n", res.Passage.Text)
		if i < len(results)-1 {
			fmt.Println("---")
		}
	}
}
