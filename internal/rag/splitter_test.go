package rag

import (
	"strings"
	"testing"
)

func TestSplitShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(100, 10)
	got := s.Split("un texto corto")
	if len(got) != 1 || got[0] != "un texto corto" {
		t.Errorf("Split = %v, want the text unchanged", got)
	}
}

func TestSplitRespectsChunkSize(t *testing.T) {
	s := NewSplitter(50, 10)
	text := strings.Repeat("palabra corta ", 40)

	for i, chunk := range s.Split(text) {
		if n := len([]rune(chunk)); n > 50 {
			t.Errorf("chunk %d has %d runes, max is 50", i, n)
		}
	}
}

func TestSplitPrefersParagraphBoundaries(t *testing.T) {
	s := NewSplitter(30, 0)
	text := "primer parrafo\n\nsegundo parrafo\n\ntercer parrafo"

	got := s.Split(text)
	if len(got) < 2 {
		t.Fatalf("Split = %v, expected multiple chunks", got)
	}
	for i, chunk := range got {
		if strings.Contains(chunk, "\n\n") {
			t.Errorf("chunk %d spans a paragraph break: %q", i, chunk)
		}
	}
}

func TestSplitCarriesOverlap(t *testing.T) {
	s := NewSplitter(20, 8)
	text := "aaaa bbbb cccc dddd eeee ffff gggg"

	got := s.Split(text)
	if len(got) < 2 {
		t.Fatalf("Split = %v, expected multiple chunks", got)
	}

	// Consecutive chunks must share text: the tail of one chunk appears at
	// the head of the next.
	for i := 1; i < len(got); i++ {
		prev := []rune(got[i-1])
		tail := string(prev[len(prev)-4:])
		if !strings.Contains(got[i], strings.TrimSpace(tail)) {
			t.Errorf("chunk %d does not carry overlap from chunk %d: %q then %q", i, i-1, got[i-1], got[i])
		}
	}
}

func TestSplitHardCutsUnbrokenRuns(t *testing.T) {
	s := NewSplitter(10, 0)
	text := strings.Repeat("x", 35)

	got := s.Split(text)
	if len(got) != 4 {
		t.Fatalf("Split = %d chunks, want 4", len(got))
	}
	for i, chunk := range got {
		if len([]rune(chunk)) > 10 {
			t.Errorf("chunk %d exceeds the chunk size: %q", i, chunk)
		}
	}
}

func TestSplitDropsEmptyChunks(t *testing.T) {
	s := NewSplitter(10, 4)
	text := "uno\n\n\n\ndos\n\n   \n\ntres"

	for i, chunk := range s.Split(text) {
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("chunk %d is blank", i)
		}
	}
}

func TestNewSplitterDefaults(t *testing.T) {
	s := NewSplitter(0, -1)
	if s.ChunkSize != 2000 {
		t.Errorf("ChunkSize = %d, want 2000", s.ChunkSize)
	}
	if s.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want 200", s.ChunkOverlap)
	}
}
