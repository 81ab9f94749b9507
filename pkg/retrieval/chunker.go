package retrieval

import "strings"

// Chunker splits source documents into overlapping windows sized for the
// embedding model. Sizes are in runes so CJK text is not cut mid-character.
type Chunker struct {
	ChunkSize int // target window size
	Overlap   int // runes carried over between neighbours
	MinChars  int // windows shorter than this are dropped
	MaxChars  int // hard cap per window
}

func NewChunker(chunkSize, overlap, minChars, maxChars int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	// Overlap is strictly positive so boundary context is never lost
	// between adjacent windows.
	if overlap <= 0 || overlap >= chunkSize {
		overlap = chunkSize / 5
	}
	if maxChars < chunkSize {
		maxChars = chunkSize * 10
	}
	return &Chunker{
		ChunkSize: chunkSize,
		Overlap:   overlap,
		MinChars:  minChars,
		MaxChars:  maxChars,
	}
}

// Split cuts the text into windows, preferring to break at sentence
// boundaries near the target size.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.ChunkSize {
		if len(runes) < c.MinChars {
			return nil
		}
		return []string{string(runes)}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + c.ChunkSize
		if end > len(runes) {
			end = len(runes)
		} else {
			// Walk back to the nearest sentence break, but never shrink the
			// window below half the target.
			if cut := lastBreak(runes[start:end]); cut > c.ChunkSize/2 {
				end = start + cut
			}
		}
		if end-start > c.MaxChars {
			end = start + c.MaxChars
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if len([]rune(chunk)) >= c.MinChars {
			chunks = append(chunks, chunk)
		}

		if end >= len(runes) {
			break
		}
		start = end - c.Overlap
	}
	return chunks
}

// lastBreak returns the index just past the last sentence terminator in the
// window, or -1 when there is none.
func lastBreak(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case '。', '！', '？', '.', '!', '?', '\n', '；', ';':
			return i + 1
		}
	}
	return -1
}
