package rag

import "strings"

// Splitter cuts document text into overlapping chunks for embedding. It
// prefers breaking on paragraph, then line, then word boundaries, falling
// back to a hard cut only for unbroken runs longer than the chunk size.
type Splitter struct {
	ChunkSize    int
	ChunkOverlap int
}

func NewSplitter(chunkSize, chunkOverlap int) *Splitter {
	if chunkSize <= 0 {
		chunkSize = 2000
	}
	if chunkOverlap < 0 || chunkOverlap >= chunkSize {
		chunkOverlap = chunkSize / 10
	}
	return &Splitter{ChunkSize: chunkSize, ChunkOverlap: chunkOverlap}
}

var separators = []string{"\n\n", "\n", " ", ""}

// Split returns the chunks of text, each at most ChunkSize runes, with up to
// ChunkOverlap runes carried over between consecutive chunks.
func (s *Splitter) Split(text string) []string {
	pieces := s.split([]rune(text), separators)

	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *Splitter) split(text []rune, seps []string) []string {
	if len(text) <= s.ChunkSize {
		return []string{string(text)}
	}

	sep := seps[0]
	rest := seps
	if len(rest) > 1 {
		rest = rest[1:]
	}

	if sep == "" {
		// Hard cut: no separator left to honor.
		var parts []string
		for i := 0; i < len(text); i += s.ChunkSize {
			end := i + s.ChunkSize
			if end > len(text) {
				end = len(text)
			}
			parts = append(parts, string(text[i:end]))
		}
		return parts
	}

	segments := strings.Split(string(text), sep)
	var chunks []string
	var current []rune
	fresh := false // current holds content beyond the carried overlap

	flush := func() {
		if !fresh {
			current = nil
			return
		}
		chunks = append(chunks, string(current))
		if s.ChunkOverlap > 0 && len(current) > s.ChunkOverlap {
			current = append([]rune(nil), current[len(current)-s.ChunkOverlap:]...)
		} else {
			current = nil
		}
		fresh = false
	}

	for _, seg := range segments {
		segRunes := []rune(seg)
		if len(segRunes) > s.ChunkSize {
			flush()
			current = nil
			chunks = append(chunks, s.split(segRunes, rest)...)
			continue
		}

		joined := len(current) + len(segRunes)
		if len(current) > 0 {
			joined += len(sep)
		}
		if joined > s.ChunkSize {
			flush()
		}
		if len(current) > 0 {
			current = append(current, []rune(sep)...)
		}
		current = append(current, segRunes...)
		if len(segRunes) > 0 {
			fresh = true
		}
	}
	if fresh {
		chunks = append(chunks, string(current))
	}

	return chunks
}
