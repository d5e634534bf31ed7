package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.yml"))
	if err != nil {
		t.Fatalf("LoadConfig = %v", err)
	}
	if cfg.EmbeddingModel != "gemini-embedding-001" {
		t.Fatalf("EmbeddingModel = %q", cfg.EmbeddingModel)
	}
	if cfg.RetrievalDepth != 8 {
		t.Fatalf("RetrievalDepth = %d, want 8", cfg.RetrievalDepth)
	}
	if cfg.AnswerTimeout != 60 {
		t.Fatalf("AnswerTimeout = %d, want 60", cfg.AnswerTimeout)
	}
}

func TestLoadConfig_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")

	cfg := DefaultConfig()
	cfg.GeminiAPIKey = "test-key"
	cfg.CorpusPaths = []string{"handbook.txt"}
	cfg.RetrievalDepth = 4
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig = %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig = %v", err)
	}
	if loaded.GeminiAPIKey != "test-key" {
		t.Fatalf("GeminiAPIKey = %q", loaded.GeminiAPIKey)
	}
	if len(loaded.CorpusPaths) != 1 || loaded.CorpusPaths[0] != "handbook.txt" {
		t.Fatalf("CorpusPaths = %v", loaded.CorpusPaths)
	}
	if loaded.RetrievalDepth != 4 {
		t.Fatalf("RetrievalDepth = %d", loaded.RetrievalDepth)
	}
}

func TestLoadConfig_FillsZeroValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("gemini_api_key: k\nretrieval_depth: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig = %v", err)
	}
	if cfg.RetrievalDepth != 8 {
		t.Fatalf("RetrievalDepth = %d, want backfilled 8", cfg.RetrievalDepth)
	}
	if cfg.AnswerModel == "" || cfg.IndexDir == "" {
		t.Fatal("zero values should be backfilled with defaults")
	}
}
