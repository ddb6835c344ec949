package repository

import (
	"errors"

	"tutorbot_backend/internal/model"

	"gorm.io/gorm"
)

type CorpusRepository struct {
	DB *gorm.DB
}

func NewCorpusRepository(db *gorm.DB) *CorpusRepository {
	return &CorpusRepository{DB: db}
}

func (r *CorpusRepository) CreateDocument(doc *model.CorpusDocument) error {
	return r.DB.Create(doc).Error
}

// FindDocumentByFilename returns (nil, nil) when no document is registered
// under the filename.
func (r *CorpusRepository) FindDocumentByFilename(filename string) (*model.CorpusDocument, error) {
	var doc model.CorpusDocument
	err := r.DB.Where("filename = ?", filename).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *CorpusRepository) PendingDocuments() ([]model.CorpusDocument, error) {
	var docs []model.CorpusDocument
	err := r.DB.Where("state = ?", model.IngestPending).Find(&docs).Error
	return docs, err
}

func (r *CorpusRepository) AllDocuments() ([]model.CorpusDocument, error) {
	var docs []model.CorpusDocument
	err := r.DB.Order("filename ASC").Find(&docs).Error
	return docs, err
}

func (r *CorpusRepository) MarkIndexed(docID uint, pages int) error {
	return r.DB.Model(&model.CorpusDocument{}).
		Where("id = ?", docID).
		Updates(map[string]interface{}{"state": model.IngestIndexed, "pages": pages, "error": ""}).Error
}

func (r *CorpusRepository) MarkFailed(docID uint, cause error) error {
	return r.DB.Model(&model.CorpusDocument{}).
		Where("id = ?", docID).
		Updates(map[string]interface{}{"state": model.IngestFailed, "error": cause.Error()}).Error
}

// ReplaceChunks swaps the document's chunk set atomically, so re-ingesting a
// document never leaves a mix of old and new chunks.
func (r *CorpusRepository) ReplaceChunks(docID uint, chunks []model.CorpusChunk) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("document_id = ?", docID).Delete(&model.CorpusChunk{}).Error; err != nil {
			return err
		}
		if len(chunks) == 0 {
			return nil
		}
		return tx.CreateInBatches(chunks, 100).Error
	})
}

func (r *CorpusRepository) AllChunks() ([]model.CorpusChunk, error) {
	var chunks []model.CorpusChunk
	err := r.DB.Preload("Document").Find(&chunks).Error
	return chunks, err
}
