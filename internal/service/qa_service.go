package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"tutorbot_backend/internal/model"
	"tutorbot_backend/internal/rag"
	"tutorbot_backend/internal/util"
	"tutorbot_backend/pkg/logger"
	"tutorbot_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// tutorSystemPrompt instructs the model to answer only from the retrieved
// passages and to cite its source, in Spanish, for the C# course audience.
const tutorSystemPrompt = `Eres un tutor de IA experto, dedicado a responder preguntas de forma clara y completa.
Tu objetivo es descomponer conceptos complejos en términos simples y fáciles de entender, adecuados para una audiencia no técnica.
Mantén un tono cálido y conversacional, guiando al estudiante paso a paso.

Tus respuestas deben basarse exclusivamente en el contenido del pasaje y los ejemplos incluidos en él.
Si el pasaje no responde a la pregunta, explica amablemente que la respuesta no está disponible en el material proporcionado.

Responde en español, asegurando que la explicación sea simple y fácil de seguir.
El tema es programación en C#, así que enfócate en simplificar y aclarar los conceptos relevantes.

Al final de tu respuesta, incluye una referencia a la fuente (nombre del documento) y las páginas de donde proviene el pasaje.
No agregues información adicional.

---
%s`

// QAAnswer is the result of one RAG question.
type QAAnswer struct {
	Answer string `json:"answer"`
	Source string `json:"source"`
}

// QAService answers free-form questions by retrieving corpus passages and
// asking the chat model to explain them.
type QAService struct {
	db    *gorm.DB
	store *rag.VectorStore
	ai    *AIService
	rdb   *redis.Client
	topK  int
}

func NewQAService(db *gorm.DB, store *rag.VectorStore, ai *AIService, rdb *redis.Client, topK int) *QAService {
	if topK <= 0 {
		topK = 5
	}
	return &QAService{db: db, store: store, ai: ai, rdb: rdb, topK: topK}
}

func answerCacheKey(question string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(question))))
	return "tutorbot:qa:" + hex.EncodeToString(sum[:16])
}

// Ask answers the question over the ingested corpus. Answers are cached
// briefly keyed by the normalized question, and every answer is recorded in
// the QA history.
func (s *QAService) Ask(ctx context.Context, studentID uint, question string) (*QAAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, util.PreconditionError("Por favor, envía una pregunta válida. La pregunta no puede ser vacía.")
	}

	cacheKey := answerCacheKey(question)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			parts := strings.SplitN(cached, "\x00", 2)
			if len(parts) == 2 {
				s.recordHistory(studentID, question, parts[1], parts[0])
				return &QAAnswer{Answer: parts[1], Source: parts[0]}, nil
			}
		}
	}

	start := time.Now()

	hits, err := s.store.Search(ctx, question, s.topK)
	if err != nil {
		return nil, util.StoreError(fmt.Errorf("corpus retrieval: %w", err))
	}

	passage, source := buildPassage(hits)

	answer, err := s.ai.Chat(ctx, fmt.Sprintf(tutorSystemPrompt, passage), question)
	if err != nil {
		return nil, util.StoreError(fmt.Errorf("chat completion: %w", err))
	}

	monitoring.QALatency.Observe(time.Since(start).Seconds())

	if s.rdb != nil {
		s.rdb.Set(ctx, cacheKey, source+"\x00"+answer, 30*time.Minute)
	}
	s.recordHistory(studentID, question, answer, source)

	return &QAAnswer{Answer: answer, Source: source}, nil
}

// buildPassage formats the retrieval hits into the prompt context and derives
// the citation string (document names with page ranges).
func buildPassage(hits []rag.ScoredChunk) (passage, source string) {
	if len(hits) == 0 {
		return "(no se encontró material relevante)", "llm"
	}

	var b strings.Builder
	seen := make(map[string]bool)
	var citations []string

	for _, hit := range hits {
		name := hit.Chunk.Document.Filename
		fmt.Fprintf(&b, "[%s, página %d]\n%s\n\n", name, hit.Chunk.PageStart, hit.Chunk.Content)

		cite := fmt.Sprintf("%s (pág. %d)", name, hit.Chunk.PageStart)
		if !seen[cite] {
			seen[cite] = true
			citations = append(citations, cite)
		}
	}

	return b.String(), strings.Join(citations, "; ")
}

func (s *QAService) recordHistory(studentID uint, question, answer, source string) {
	entry := &model.QAHistory{
		StudentID: studentID,
		SessionID: uuid.New().String(),
		Question:  question,
		Answer:    answer,
		Source:    source,
	}
	if err := s.db.Create(entry).Error; err != nil && logger.Log != nil {
		logger.Log.Error("failed to record QA history", zap.Error(err))
	}
}
