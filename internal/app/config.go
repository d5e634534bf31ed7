package app

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GeminiAPIKey   string   `yaml:"gemini_api_key"`
	EmbeddingModel string   `yaml:"embedding_model"`
	AnswerModel    string   `yaml:"answer_model"`
	CorpusPaths    []string `yaml:"corpus_paths"`
	IndexDir       string   `yaml:"index_dir"`
	ArchiveDir     string   `yaml:"archive_dir"`
	UsersFile      string   `yaml:"users_file"`
	RetrievalDepth int      `yaml:"retrieval_depth"`
	AnswerTimeout  int      `yaml:"answer_timeout_seconds"`
}

func DefaultConfig() Config {
	return Config{
		EmbeddingModel: "gemini-embedding-001",
		AnswerModel:    "gemini-2.0-flash-exp",
		CorpusPaths:    []string{"qa_data.txt", "llama2-deep-dataset.txt"},
		IndexDir:       "chroma_db",
		ArchiveDir:     defaultDataPath("archive"),
		UsersFile:      "users_db.json",
		RetrievalDepth: 8,
		AnswerTimeout:  60,
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = "gemini-embedding-001"
	}
	if cfg.AnswerModel == "" {
		cfg.AnswerModel = "gemini-2.0-flash-exp"
	}
	if cfg.IndexDir == "" {
		cfg.IndexDir = "chroma_db"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = defaultDataPath("archive")
	}
	if cfg.UsersFile == "" {
		cfg.UsersFile = "users_db.json"
	}
	if cfg.RetrievalDepth <= 0 {
		cfg.RetrievalDepth = 8
	}
	if cfg.AnswerTimeout <= 0 {
		cfg.AnswerTimeout = 60
	}
	return cfg, nil
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "mapa", "config.yml")
}

func defaultDataPath(name string) string {
	if base := os.Getenv("XDG_DATA_HOME"); base != "" {
		return filepath.Join(base, "mapa", name)
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "mapa", name)
	}
	return filepath.Join(os.TempDir(), "mapa", name)
}
