package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkerBounds(t *testing.T) {
	c := NewChunker(500, 100, 10, 5000)

	text := strings.Repeat("招生简章第一条。本校设有多个校区和专业方向，考生可根据兴趣选择。", 100)
	chunks := c.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		n := len([]rune(chunk))
		if n < c.MinChars {
			t.Errorf("chunk %d has %d runes, below min %d", i, n, c.MinChars)
		}
		if n > c.MaxChars {
			t.Errorf("chunk %d has %d runes, above max %d", i, n, c.MaxChars)
		}
	}
}

func TestChunkerRejectsZeroOverlap(t *testing.T) {
	tests := []struct {
		name    string
		overlap int
	}{
		{"zero", 0},
		{"negative", -5},
		{"at least chunk size", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChunker(500, tt.overlap, 10, 5000)
			assert.Greater(t, c.Overlap, 0)
			assert.Less(t, c.Overlap, c.ChunkSize)
		})
	}
}

func TestChunkerShortText(t *testing.T) {
	c := NewChunker(500, 100, 10, 5000)

	if got := c.Split("短"); got != nil {
		t.Errorf("text below min chars should produce no chunks, got %v", got)
	}
	if got := c.Split(""); got != nil {
		t.Errorf("empty text should produce no chunks, got %v", got)
	}
	if got := c.Split("这是一段长度正常的招生说明文本。"); len(got) != 1 {
		t.Errorf("single-window text should produce exactly one chunk, got %d", len(got))
	}
}

func TestChunkerOverlapCoverage(t *testing.T) {
	c := NewChunker(100, 20, 10, 1000)

	text := strings.Repeat("abcdefghij", 50)
	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Neighbouring windows must share text so no boundary sentence is lost.
	for i := 0; i+1 < len(chunks); i++ {
		tail := chunks[i][len(chunks[i])-10:]
		if !strings.Contains(chunks[i+1], tail[:5]) {
			t.Errorf("chunks %d and %d do not overlap", i, i+1)
		}
	}
}

func TestChunkerPrefersSentenceBreaks(t *testing.T) {
	c := NewChunker(50, 10, 5, 500)

	text := "第一句话在这里。第二句话在这里。第三句话在这里。第四句话在这里。第五句话在这里。第六句话在这里。"
	for i, chunk := range c.Split(text) {
		trimmed := strings.TrimSpace(chunk)
		last := []rune(trimmed)[len([]rune(trimmed))-1]
		if last != '。' {
			t.Errorf("chunk %d does not end on a sentence break: %q", i, chunk)
		}
	}
}
