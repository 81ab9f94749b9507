package agent

import (
	"context"
	"strings"
	"unicode/utf8"

	"admissions-ai-be/internal/constant"
	"admissions-ai-be/pkg/llm"

	"github.com/google/uuid"
)

// Request carries one conversation turn into an agent. History is ordered
// oldest first and already includes the new user question as its last entry.
type Request struct {
	ProjectId uuid.UUID
	SessionId uuid.UUID
	Question  string
	History   []llm.Message
	ModelType string
	Strategy  string
}

// Agent produces the answer stream for one conversation turn. The returned
// channel is closed by the agent when generation ends; a mid-stream failure
// arrives as a chunk with Err set.
type Agent interface {
	Label() constant.AgentLabel
	Stream(ctx context.Context, req *Request) (<-chan llm.StreamChunk, error)
}

// ToolCaller is the slice of the tool gateway the agents depend on.
type ToolCaller interface {
	CallTool(ctx context.Context, name string, arguments map[string]interface{}) (string, error)
}

// singleChunkStream wraps a canned answer in the normal stream shape so
// callers never special-case degraded paths.
func singleChunkStream(content string) <-chan llm.StreamChunk {
	out := make(chan llm.StreamChunk, 1)
	out <- llm.StreamChunk{Content: content}
	close(out)
	return out
}

// StripLabelPrefix removes a leaked classification tag from the head of an
// answer. Models occasionally echo the label they were routed under before
// the real answer.
func StripLabelPrefix(text string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	for _, label := range constant.TerminalLabels {
		tag := string(label)
		if strings.HasPrefix(trimmed, tag) {
			rest := trimmed[len(tag):]
			// Only strip when the tag stands alone, not when the answer
			// legitimately begins with the same word.
			r, _ := utf8.DecodeRuneInString(rest)
			if rest == "" || r == ':' || r == '：' || r == '\n' || r == ' ' {
				return strings.TrimLeft(rest, ": \t\r\n：")
			}
		}
	}
	return text
}
