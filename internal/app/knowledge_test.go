package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philippgille/chromem-go"
)

// localEmbedder is a cheap deterministic stand-in for the Gemini embedding
// API: a letter-frequency vector, normalized. Good enough for similarity
// over small test corpora, and it keeps the tests offline.
func localEmbedder() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		text = strings.TrimPrefix(text, queryTaskPrefix)
		v := make([]float32, 32)
		v[0] = 0.1
		for _, r := range strings.ToLower(text) {
			if r >= 'a' && r <= 'z' {
				v[1+int(r-'a')%31]++
			}
		}
		normalize(v)
		return v, nil
	}
}

func testKnowledgeBase(t *testing.T) *KnowledgeBase {
	t.Helper()
	kb, err := OpenKnowledgeBase(filepath.Join(t.TempDir(), "index"), localEmbedder(), NewLogger(io.Discard))
	if err != nil {
		t.Fatalf("OpenKnowledgeBase = %v", err)
	}
	return kb
}

func writeCorpusFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestKnowledgeBase_EmptyIndexIsNotReady(t *testing.T) {
	kb := testKnowledgeBase(t)
	if kb.Ready() {
		t.Fatal("empty index reports ready")
	}
	if _, err := kb.Retrieve(context.Background(), "anything", 3); !errors.Is(err, ErrNotReady) {
		t.Fatalf("Retrieve on empty index = %v, want ErrNotReady", err)
	}
}

func TestKnowledgeBase_IngestAndRetrieve(t *testing.T) {
	kb := testKnowledgeBase(t)
	dir := t.TempDir()
	handbook := writeCorpusFile(t, dir, "handbook.txt",
		"Enrollment for the first term opens in July. Bring your student ID to the registrar.")
	fees := writeCorpusFile(t, dir, "fees.txt",
		"Tuition fees are payable per term. Scholarships cover up to full tuition.")

	chunks, err := kb.Ingest(context.Background(), []string{handbook, fees})
	if err != nil {
		t.Fatalf("Ingest = %v", err)
	}
	if chunks == 0 {
		t.Fatal("Ingest indexed zero chunks")
	}
	if !kb.Ready() {
		t.Fatal("index should be ready after ingest")
	}

	passages, err := kb.Retrieve(context.Background(), "enrollment registrar student", 1)
	if err != nil {
		t.Fatalf("Retrieve = %v", err)
	}
	if len(passages) != 1 {
		t.Fatalf("got %d passages, want 1", len(passages))
	}
	if passages[0].Source == "" || passages[0].Text == "" {
		t.Fatalf("passage missing source or text: %+v", passages[0])
	}
}

func TestKnowledgeBase_MissingCorpusFilesSkipped(t *testing.T) {
	kb := testKnowledgeBase(t)
	dir := t.TempDir()
	present := writeCorpusFile(t, dir, "present.txt", "The library is open until ten in the evening.")

	if _, err := kb.Ingest(context.Background(), []string{
		filepath.Join(dir, "missing.txt"),
		present,
	}); err != nil {
		t.Fatalf("Ingest with one missing path = %v, want skip", err)
	}
	if !kb.Ready() {
		t.Fatal("present file should still be indexed")
	}
}

func TestKnowledgeBase_AllCorpusMissingIsNotReady(t *testing.T) {
	kb := testKnowledgeBase(t)
	_, err := kb.Ingest(context.Background(), []string{"nope.txt", "also-gone.txt"})
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("Ingest with no corpus = %v, want ErrNotReady", err)
	}
	if kb.Ready() {
		t.Fatal("index must stay not-ready")
	}
}

func TestKnowledgeBase_RetrieveClampsDepth(t *testing.T) {
	kb := testKnowledgeBase(t)
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "one.txt", "A single short document.")
	if _, err := kb.Ingest(context.Background(), []string{path}); err != nil {
		t.Fatal(err)
	}

	// Asking for more passages than the index holds must not error.
	passages, err := kb.Retrieve(context.Background(), "document", 8)
	if err != nil {
		t.Fatalf("Retrieve = %v", err)
	}
	if len(passages) == 0 {
		t.Fatal("expected at least one passage")
	}
}

func TestKnowledgeBase_WarmStartKeepsIndex(t *testing.T) {
	indexDir := filepath.Join(t.TempDir(), "index")
	logger := NewLogger(io.Discard)

	kb, err := OpenKnowledgeBase(indexDir, localEmbedder(), logger)
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	path := writeCorpusFile(t, dir, "doc.txt", "Campus shuttles run every fifteen minutes.")
	if _, err := kb.Ingest(context.Background(), []string{path}); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenKnowledgeBase(indexDir, localEmbedder(), logger)
	if err != nil {
		t.Fatalf("reopen = %v", err)
	}
	if !reopened.Ready() {
		t.Fatal("persisted index lost across reopen")
	}
}

func TestKnowledgeBase_RebuildDropsOldChunks(t *testing.T) {
	kb := testKnowledgeBase(t)
	dir := t.TempDir()
	old := writeCorpusFile(t, dir, "old.txt", "The old gymnasium schedule no longer applies.")
	if _, err := kb.Ingest(context.Background(), []string{old}); err != nil {
		t.Fatalf("Ingest = %v", err)
	}

	fresh := writeCorpusFile(t, dir, "fresh.txt", "The new gymnasium opens at six in the morning.")
	if _, err := kb.Rebuild(context.Background(), []string{fresh}); err != nil {
		t.Fatalf("Rebuild = %v", err)
	}

	passages, err := kb.Retrieve(context.Background(), "gymnasium", 100)
	if err != nil {
		t.Fatalf("Retrieve = %v", err)
	}
	for _, p := range passages {
		if p.Source == "old.txt" {
			t.Fatalf("rebuild kept a chunk from the old corpus: %+v", p)
		}
	}
}
