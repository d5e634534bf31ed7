package app

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/philippgille/chromem-go"
	"google.golang.org/genai"
)

const (
	// Output dimensionality for embeddings (MRL optimized).
	embeddingDimension = 768

	// Embedding task types. Queries are marked with a prefix so one
	// EmbeddingFunc can serve both indexing and retrieval.
	taskTypeDocument = "RETRIEVAL_DOCUMENT"
	taskTypeQuery    = "RETRIEVAL_QUERY"
	queryTaskPrefix  = "QUERY_TASK:"
)

// GeminiEmbedder returns a chromem embedding function backed by Gemini's
// embedding API. Text carrying the query prefix is embedded with the
// RETRIEVAL_QUERY task type, everything else as RETRIEVAL_DOCUMENT.
func GeminiEmbedder(client *genai.Client, modelName string) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		taskType := taskTypeDocument
		if strings.HasPrefix(text, queryTaskPrefix) {
			taskType = taskTypeQuery
			text = strings.TrimPrefix(text, queryTaskPrefix)
		}
		contents := []*genai.Content{{Parts: []*genai.Part{{Text: text}}}}
		dim := int32(embeddingDimension)
		res, err := client.Models.EmbedContent(ctx, modelName, contents, &genai.EmbedContentConfig{
			TaskType:             taskType,
			OutputDimensionality: &dim,
		})
		if err != nil {
			return nil, fmt.Errorf("embedding failed: %w", err)
		}
		if len(res.Embeddings) == 0 {
			return nil, fmt.Errorf("no embeddings returned")
		}
		normalize(res.Embeddings[0].Values)
		return res.Embeddings[0].Values, nil
	}
}

// normalize performs L2 normalization so embeddings sit on the unit sphere.
func normalize(v []float32) {
	var sum float64
	for _, val := range v {
		sum += float64(val * val)
	}
	magnitude := float32(math.Sqrt(sum))
	if magnitude <= 0 {
		return
	}
	for i := range v {
		v[i] /= magnitude
	}
}
