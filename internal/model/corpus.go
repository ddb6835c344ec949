package model

// IngestState tracks how far a corpus document has moved through the RAG
// ingestion pipeline.
type IngestState string

const (
	IngestPending IngestState = "pending"
	IngestIndexed IngestState = "indexed"
	IngestFailed  IngestState = "failed"
)

// CorpusDocument is one source PDF of the course material.
type CorpusDocument struct {
	BaseModel
	Filename    string      `gorm:"size:255;uniqueIndex;not null" json:"filename"`
	StoragePath string      `gorm:"size:512;not null" json:"storagePath"`
	Pages       int         `json:"pages"`
	State       IngestState `gorm:"size:20;default:'pending'" json:"state"`
	Error       string      `gorm:"type:text" json:"error,omitempty"`
}

func (CorpusDocument) TableName() string {
	return "corpus_documents"
}

// CorpusChunk is a retrievable slice of a corpus document. The embedding is
// stored as a JSON-encoded float array; similarity ranking happens in memory.
type CorpusChunk struct {
	BaseModel
	DocumentID uint   `gorm:"index;not null" json:"documentId"`
	PageStart  int    `json:"pageStart"`
	PageEnd    int    `json:"pageEnd"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Embedding  string `gorm:"type:longtext" json:"-"`

	Document CorpusDocument `gorm:"foreignKey:DocumentID" json:"-"`
}

func (CorpusChunk) TableName() string {
	return "corpus_chunks"
}
