package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/rag"
	"tutorbot_backend/internal/repository"
	"tutorbot_backend/internal/util"
	"tutorbot_backend/pkg/logger"

	"go.uber.org/zap"
)

// CorpusService manages the RAG source documents: registering uploaded PDFs
// and pushing pending ones through extract-chunk-embed-index.
type CorpusService struct {
	corpus  *repository.CorpusRepository
	storage *StorageService
	store   *rag.VectorStore
}

func NewCorpusService(corpus *repository.CorpusRepository, storage *StorageService, store *rag.VectorStore) *CorpusService {
	return &CorpusService{corpus: corpus, storage: storage, store: store}
}

// Upload stores the PDF and registers it as pending ingestion.
func (s *CorpusService) Upload(ctx context.Context, filename string, reader io.Reader, size int64) (*model.CorpusDocument, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return nil, util.PreconditionError("Solo se aceptan documentos PDF para el corpus.")
	}

	existing, err := s.corpus.FindDocumentByFilename(filename)
	if err != nil {
		return nil, util.StoreError(err)
	}
	if existing != nil {
		return nil, util.PreconditionError(fmt.Sprintf("El documento '%s' ya está registrado.", filename))
	}

	path, err := s.storage.Provider.Upload(ctx, filename, reader, size, "application/pdf")
	if err != nil {
		return nil, util.StoreError(fmt.Errorf("store corpus pdf: %w", err))
	}

	doc := &model.CorpusDocument{
		Filename:    filename,
		StoragePath: path,
		State:       model.IngestPending,
	}
	if err := s.corpus.CreateDocument(doc); err != nil {
		return nil, util.StoreError(err)
	}
	return doc, nil
}

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	Indexed int `json:"indexed"`
	Failed  int `json:"failed"`
	Chunks  int `json:"chunks"`
}

// IngestPending runs the pipeline over every pending document. A document
// that fails is marked failed and does not stop the rest.
func (s *CorpusService) IngestPending(ctx context.Context) (*IngestResult, error) {
	docs, err := s.corpus.PendingDocuments()
	if err != nil {
		return nil, util.StoreError(err)
	}

	result := &IngestResult{}
	for i := range docs {
		doc := &docs[i]
		chunks, err := s.ingestOne(ctx, doc)
		if err != nil {
			result.Failed++
			logger.Log.Error("corpus ingestion failed",
				zap.String("filename", doc.Filename), zap.Error(err))
			if markErr := s.corpus.MarkFailed(doc.ID, err); markErr != nil {
				logger.Log.Error("failed to mark document failed", zap.Error(markErr))
			}
			continue
		}
		result.Indexed++
		result.Chunks += chunks
	}
	return result, nil
}

func (s *CorpusService) ingestOne(ctx context.Context, doc *model.CorpusDocument) (int, error) {
	path, cleanup, err := s.storage.Provider.Fetch(ctx, doc.Filename)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", doc.Filename, err)
	}
	defer cleanup()

	pages, err := rag.LoadPDF(path)
	if err != nil {
		return 0, err
	}

	chunks, err := s.store.IndexDocument(ctx, doc, pages)
	if err != nil {
		return 0, err
	}

	if err := s.corpus.MarkIndexed(doc.ID, pages[len(pages)-1].Page); err != nil {
		return 0, err
	}

	logger.Log.Info("corpus document indexed",
		zap.String("filename", doc.Filename),
		zap.Int("pages", len(pages)),
		zap.Int("chunks", chunks))
	return chunks, nil
}

// Documents lists all registered corpus documents.
func (s *CorpusService) Documents() ([]model.CorpusDocument, error) {
	docs, err := s.corpus.AllDocuments()
	if err != nil {
		return nil, util.StoreError(err)
	}
	return docs, nil
}
