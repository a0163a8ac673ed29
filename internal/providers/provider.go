package providers

import (
	"context"
	"strings"
)

type SourceName string

const (
	SourceGroq   SourceName = "GROQ"
	SourceClaude SourceName = "CLAUDE"
	SourceOpenAI SourceName = "OPENAI"
	SourceGemini SourceName = "GEMINI"
)

// Known lists every provider identifier in display order.
var Known = []SourceName{SourceGroq, SourceClaude, SourceOpenAI, SourceGemini}

// ParseSourceName accepts the identifiers callers use ("Groq", "claude",
// "anthropic", "OPENAI", ...) and maps them to a SourceName.
func ParseSourceName(s string) (SourceName, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "GROQ":
		return SourceGroq, true
	case "CLAUDE", "ANTHROPIC":
		return SourceClaude, true
	case "OPENAI":
		return SourceOpenAI, true
	case "GEMINI", "GOOGLE":
		return SourceGemini, true
	}
	return "", false
}

// Reply is the raw text a provider returned for one prompt.
type Reply struct {
	Text       string         `json:"text"`
	LatencyMs  int            `json:"latency_ms,omitempty"`
	TokenUsage map[string]any `json:"token_usage,omitempty"`
}

// Client sends one prompt to one model backend. Complete makes a single
// attempt; failures come back as *ProviderError.
type Client interface {
	Name() SourceName
	Complete(ctx context.Context, p Prompt) (Reply, error)
}

// DisplayName is the name shown to users in messages.
func (s SourceName) DisplayName() string {
	switch s {
	case SourceGroq:
		return "Groq"
	case SourceClaude:
		return "Claude"
	case SourceOpenAI:
		return "OpenAI"
	case SourceGemini:
		return "Gemini"
	}
	return string(s)
}
