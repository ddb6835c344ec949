package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/pkg/logger"

	"go.uber.org/zap"
)

// Embedder turns text into embedding vectors. Implemented by the AI service's
// OpenAI-compatible client.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// embedBatchSize keeps individual embedding requests small enough for the
// hosted model's payload limits.
const embedBatchSize = 30

// ScoredChunk is one retrieval hit with its cosine similarity to the query.
type ScoredChunk struct {
	Chunk model.CorpusChunk
	Score float64
}

// VectorStore persists corpus chunks with their embeddings through gorm and
// ranks them by cosine similarity in memory. The corpus is small (one course's
// PDFs), so a full scan per query is cheap and avoids a dedicated vector
// database.
type VectorStore struct {
	corpus   *repository.CorpusRepository
	embedder Embedder
	splitter *Splitter
}

func NewVectorStore(corpus *repository.CorpusRepository, embedder Embedder, splitter *Splitter) *VectorStore {
	return &VectorStore{corpus: corpus, embedder: embedder, splitter: splitter}
}

// IndexDocument chunks the document's pages, embeds the chunks in batches and
// replaces the document's chunk set. Returns the number of chunks indexed.
func (v *VectorStore) IndexDocument(ctx context.Context, doc *model.CorpusDocument, pages []PageText) (int, error) {
	var chunks []model.CorpusChunk
	var texts []string

	for _, page := range pages {
		for _, piece := range v.splitter.Split(page.Text) {
			chunks = append(chunks, model.CorpusChunk{
				DocumentID: doc.ID,
				PageStart:  page.Page,
				PageEnd:    page.Page,
				Content:    piece,
			})
			texts = append(texts, piece)
		}
	}
	if len(chunks) == 0 {
		return 0, fmt.Errorf("document %s produced no chunks", doc.Filename)
	}

	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}

		vectors, err := v.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return 0, fmt.Errorf("embed batch %d: %w", start/embedBatchSize+1, err)
		}
		if len(vectors) != end-start {
			return 0, fmt.Errorf("embed batch %d: got %d vectors for %d texts", start/embedBatchSize+1, len(vectors), end-start)
		}

		for i, vec := range vectors {
			encoded, err := json.Marshal(vec)
			if err != nil {
				return 0, err
			}
			chunks[start+i].Embedding = string(encoded)
		}
	}

	if err := v.corpus.ReplaceChunks(doc.ID, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Search embeds the query and returns the topK most similar chunks.
func (v *VectorStore) Search(ctx context.Context, query string, topK int) ([]ScoredChunk, error) {
	vectors, err := v.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embed query: got %d vectors", len(vectors))
	}
	queryVec := vectors[0]

	chunks, err := v.corpus.AllChunks()
	if err != nil {
		return nil, err
	}

	scored := make([]ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		var vec []float32
		if err := json.Unmarshal([]byte(chunk.Embedding), &vec); err != nil {
			if logger.Log != nil {
				logger.Log.Warn("skipping chunk with unreadable embedding",
					zap.Uint("chunk_id", chunk.ID), zap.Error(err))
			}
			continue
		}
		score := cosineSimilarity(queryVec, vec)
		if math.IsNaN(score) {
			continue
		}
		scored = append(scored, ScoredChunk{Chunk: chunk, Score: score})
	}

	sort.Slice(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if topK > 0 && len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return math.NaN()
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
