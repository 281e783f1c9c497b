package main

import (
	"flag"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Kalrakhush/HarryPotter-Rag/internal/chat"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/config"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/embedding"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/logger"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/service"
	"github.com/Kalrakhush/HarryPotter-Rag/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/hprag/config.yaml if not provided)")
	flag.Parse()

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
	zl.Info("opening retrieval index",
		zap.String("document", cfg.Document.Path),
		zap.String("index_dir", cfg.Document.IndexDir),
	)
	if err := svc.Open(); err != nil {
		zl.Fatal("failed to open retrieval index", zap.Error(err))
	}

	// Pass nil interface (not a typed nil pointer) when chat is not
	// configured, so the TUI's nil check holds.
	var answerer tui.Answerer
	if a := chat.New(cfg.Chat); a != nil {
		answerer = a
	} else {
		zl.Info("chat API key not set, showing raw passages instead of character answers")
	}

	m := tui.New(svc, answerer, cfg.Chat.Characters, cfg.Retrieval.TopK)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		zl.Fatal("tui exited with error", zap.Error(err))
	}
}
