package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/philippgille/chromem-go"
)

const collectionName = "campus_docs"

// Passage is one retrieved context snippet.
type Passage struct {
	Source string
	Text   string
	Score  float32
}

// Retriever is the retrieval capability handed to the query path. It is
// absent (nil) until the knowledge base finishes constructing.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]Passage, error)
}

// KnowledgeBase wraps a persistent chromem-go collection over the fixed
// document corpus. Construction is expensive (embedding every chunk), so
// the application opens it once per process and shares the instance.
type KnowledgeBase struct {
	mu         sync.RWMutex
	db         *chromem.DB
	collection *chromem.Collection
	embFunc    chromem.EmbeddingFunc
	logger     *Logger
}

// OpenKnowledgeBase loads the index directory, creating it when missing.
// Previously embedded chunks are picked up from disk, so a warm start does
// not re-embed the corpus.
func OpenKnowledgeBase(indexDir string, embFunc chromem.EmbeddingFunc, logger *Logger) (*KnowledgeBase, error) {
	db, err := chromem.NewPersistentDB(indexDir, true)
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}
	collection, err := db.GetOrCreateCollection(collectionName, nil, embFunc)
	if err != nil {
		return nil, fmt.Errorf("open collection: %w", err)
	}
	kb := &KnowledgeBase{
		db:         db,
		collection: collection,
		embFunc:    embFunc,
		logger:     logger,
	}
	logger.Info("knowledge base opened", map[string]interface{}{
		"index_dir": indexDir,
		"chunks":    collection.Count(),
	})
	return kb, nil
}

// Ingest reads the corpus files, splits them into overlapping chunks and
// embeds them into the collection. Missing paths are skipped with a log
// line; only an entirely absent corpus is reported to the caller, since
// that leaves the application without a retrieval capability.
func (kb *KnowledgeBase) Ingest(ctx context.Context, paths []string) (int, error) {
	var docs []chromem.Document
	loaded := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			kb.logger.Warn("corpus file skipped", map[string]interface{}{
				"path": path, "error": err.Error(),
			})
			continue
		}
		loaded++
		source := filepath.Base(path)
		for i, chunk := range SplitText(string(data), defaultChunkSize, defaultChunkOverlap) {
			docs = append(docs, chromem.Document{
				ID:       fmt.Sprintf("%s#%d", source, i),
				Metadata: map[string]string{"source": source},
				Content:  chunk,
			})
		}
	}
	if loaded == 0 {
		return 0, fmt.Errorf("no corpus documents found: %w", ErrNotReady)
	}
	if len(docs) == 0 {
		return 0, fmt.Errorf("corpus documents are empty: %w", ErrNotReady)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()
	if err := kb.collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return 0, fmt.Errorf("index corpus: %w", err)
	}
	kb.logger.Info("corpus ingested", map[string]interface{}{
		"files": loaded, "chunks": len(docs),
	})
	return len(docs), nil
}

// Rebuild drops the collection and ingests the corpus from scratch. Used
// by the ingest command; a normal start reuses whatever is on disk.
func (kb *KnowledgeBase) Rebuild(ctx context.Context, paths []string) (int, error) {
	kb.mu.Lock()
	if err := kb.db.DeleteCollection(collectionName); err != nil {
		kb.mu.Unlock()
		return 0, fmt.Errorf("drop collection: %w", err)
	}
	collection, err := kb.db.GetOrCreateCollection(collectionName, nil, kb.embFunc)
	if err != nil {
		kb.mu.Unlock()
		return 0, fmt.Errorf("recreate collection: %w", err)
	}
	kb.collection = collection
	kb.mu.Unlock()
	return kb.Ingest(ctx, paths)
}

// Ready reports whether the index holds any chunks at all.
func (kb *KnowledgeBase) Ready() bool {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return kb.collection.Count() > 0
}

// Retrieve returns the k most similar passages for a query. When the index
// is empty it returns ErrNotReady and performs no embedding call.
func (kb *KnowledgeBase) Retrieve(ctx context.Context, query string, k int) ([]Passage, error) {
	kb.mu.RLock()
	defer kb.mu.RUnlock()

	count := kb.collection.Count()
	if count == 0 {
		return nil, ErrNotReady
	}
	if k <= 0 || k > count {
		k = count
	}
	results, err := kb.collection.Query(ctx, queryTaskPrefix+query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}
	passages := make([]Passage, 0, len(results))
	for _, res := range results {
		passages = append(passages, Passage{
			Source: res.Metadata["source"],
			Text:   res.Content,
			Score:  res.Similarity,
		})
	}
	return passages, nil
}
