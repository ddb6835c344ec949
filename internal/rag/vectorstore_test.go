package rag

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// keywordEmbedder maps texts onto fixed axes so similarity is predictable.
type keywordEmbedder struct{}

func (keywordEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		switch {
		case strings.Contains(text, "ciclos"):
			out[i] = []float32{1, 0, 0}
		case strings.Contains(text, "arreglos"):
			out[i] = []float32{0, 1, 0}
		default:
			out[i] = []float32{0, 0, 1}
		}
	}
	return out, nil
}

func testStore(t *testing.T) (*VectorStore, *repository.CorpusRepository) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&model.CorpusDocument{}, &model.CorpusChunk{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	corpus := repository.NewCorpusRepository(db)
	return NewVectorStore(corpus, keywordEmbedder{}, NewSplitter(100, 0)), corpus
}

func TestIndexDocumentAndSearch(t *testing.T) {
	store, corpus := testStore(t)
	ctx := context.Background()

	doc := &model.CorpusDocument{Filename: "curso.pdf", StoragePath: "curso.pdf"}
	if err := corpus.CreateDocument(doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	pages := []PageText{
		{Page: 1, Text: "los ciclos repiten instrucciones"},
		{Page: 2, Text: "los arreglos guardan colecciones"},
	}
	count, err := store.IndexDocument(ctx, doc, pages)
	if err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}
	if count != 2 {
		t.Fatalf("indexed %d chunks, want 2", count)
	}

	hits, err := store.Search(ctx, "como funcionan los ciclos", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Chunk.PageStart != 1 {
		t.Errorf("top hit is page %d, want page 1", hits[0].Chunk.PageStart)
	}
	if hits[0].Chunk.Document.Filename != "curso.pdf" {
		t.Errorf("top hit document = %q, want curso.pdf", hits[0].Chunk.Document.Filename)
	}
}

func TestIndexDocumentReplacesChunks(t *testing.T) {
	store, corpus := testStore(t)
	ctx := context.Background()

	doc := &model.CorpusDocument{Filename: "curso.pdf", StoragePath: "curso.pdf"}
	if err := corpus.CreateDocument(doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	first := []PageText{{Page: 1, Text: "version vieja del material"}}
	if _, err := store.IndexDocument(ctx, doc, first); err != nil {
		t.Fatalf("first IndexDocument: %v", err)
	}

	second := []PageText{{Page: 1, Text: "los ciclos repiten instrucciones"}}
	if _, err := store.IndexDocument(ctx, doc, second); err != nil {
		t.Fatalf("second IndexDocument: %v", err)
	}

	chunks, err := corpus.AllChunks()
	if err != nil {
		t.Fatalf("AllChunks: %v", err)
	}
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks after re-index, want 1", len(chunks))
	}
	if chunks[0].Content != "los ciclos repiten instrucciones" {
		t.Errorf("surviving chunk = %q, want the re-indexed text", chunks[0].Content)
	}
}

func TestIndexDocumentEmptyPages(t *testing.T) {
	store, corpus := testStore(t)

	doc := &model.CorpusDocument{Filename: "vacio.pdf", StoragePath: "vacio.pdf"}
	if err := corpus.CreateDocument(doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	if _, err := store.IndexDocument(context.Background(), doc, nil); err == nil {
		t.Error("expected an error for a document with no extractable text")
	}
}

func TestSearchTopKLimit(t *testing.T) {
	store, corpus := testStore(t)
	ctx := context.Background()

	doc := &model.CorpusDocument{Filename: "curso.pdf", StoragePath: "curso.pdf"}
	if err := corpus.CreateDocument(doc); err != nil {
		t.Fatalf("create document: %v", err)
	}

	pages := []PageText{
		{Page: 1, Text: "los ciclos repiten instrucciones"},
		{Page: 2, Text: "mas sobre ciclos anidados"},
		{Page: 3, Text: "los arreglos guardan colecciones"},
	}
	if _, err := store.IndexDocument(ctx, doc, pages); err != nil {
		t.Fatalf("IndexDocument: %v", err)
	}

	hits, err := store.Search(ctx, "ciclos", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	for i := 1; i < len(hits); i++ {
		if hits[i].Score > hits[i-1].Score {
			t.Errorf("hits out of order: %f before %f", hits[i-1].Score, hits[i].Score)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("identical vectors: similarity = %f, want 1", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got > 0.001 {
		t.Errorf("orthogonal vectors: similarity = %f, want 0", got)
	}
}
