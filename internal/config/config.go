package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DocumentConfig locates the source book and the persisted index.
type DocumentConfig struct {
	Path     string `yaml:"path"`
	IndexDir string `yaml:"index_dir"`
}

// ChunkerConfig bounds passage size and cross-passage overlap, both in
// characters.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

// NormalizerConfig lists recurring header/footer phrases to strip,
// matched case-insensitively as full lines.
type NormalizerConfig struct {
	HeaderFooters []string `yaml:"header_footers"`
}

// EmbeddingConfig configures the remote embedding endpoint. An empty
// endpoint selects the local TF-IDF fallback without probing.
type EmbeddingConfig struct {
	Endpoint    string `yaml:"endpoint"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// RetrievalConfig holds query-time settings.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// ChatConfig configures the character-voiced answer layer. It is thin
// glue over an OpenAI-compatible chat endpoint; retrieval works
// without it.
type ChatConfig struct {
	Endpoint    string   `yaml:"endpoint"`
	APIKeyEnv   string   `yaml:"api_key_env"`
	Model       string   `yaml:"model"`
	TimeoutSecs int      `yaml:"timeout_secs"`
	Characters  []string `yaml:"characters"`
}

// LoggingConfig selects the logger environment and level.
type LoggingConfig struct {
	Env   string `yaml:"env"`
	Level string `yaml:"level"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Document   DocumentConfig   `yaml:"document"`
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Normalizer NormalizerConfig `yaml:"normalizer"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Retrieval  RetrievalConfig  `yaml:"retrieval"`
	Chat       ChatConfig       `yaml:"chat"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Load reads a config from a specified path. If the file does not
// exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then
// ~/.config/hprag/config.yaml. If neither exists, it writes defaults
// to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as
// needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "hprag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Document: DocumentConfig{
			Path:     filepath.Join("data", "harry_potter.pdf"),
			IndexDir: filepath.Join("data", "index"),
		},
		Normalizer: NormalizerConfig{
			// both apostrophe forms: editions typeset the title with
			// either a straight or a curly quote
			HeaderFooters: []string{
				"Harry Potter and the Sorcerer's Stone",
				"Harry Potter and the Sorcerer’s Stone",
				"J.K. Rowling",
			},
		},
		Chat: ChatConfig{
			Characters: []string{
				"Harry Potter", "Hermione Granger", "Ron Weasley",
				"Albus Dumbledore", "Severus Snape", "Draco Malfoy",
				"Luna Lovegood", "Rubeus Hagrid", "Minerva McGonagall",
				"Sirius Black",
			},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Document.Path == "" {
		cfg.Document.Path = filepath.Join("data", "harry_potter.pdf")
	}
	if cfg.Document.IndexDir == "" {
		cfg.Document.IndexDir = filepath.Join("data", "index")
	}
	if cfg.Chunker.ChunkSize <= 0 {
		cfg.Chunker.ChunkSize = 1000
	}
	if cfg.Chunker.ChunkOverlap <= 0 {
		cfg.Chunker.ChunkOverlap = 200
	}
	if cfg.Retrieval.TopK <= 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "text-embedding-3-small"
	}
	if cfg.Embedding.TimeoutSecs <= 0 {
		cfg.Embedding.TimeoutSecs = 30
	}
	if cfg.Chat.APIKeyEnv == "" {
		cfg.Chat.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "gpt-4o-mini"
	}
	if cfg.Chat.TimeoutSecs <= 0 {
		cfg.Chat.TimeoutSecs = 60
	}
	if len(cfg.Chat.Characters) == 0 {
		cfg.Chat.Characters = []string{"Albus Dumbledore"}
	}
	if cfg.Logging.Env == "" {
		cfg.Logging.Env = "local"
	}
}
