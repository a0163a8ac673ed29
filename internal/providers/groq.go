package providers

import (
	"context"
	"net/http"
)

const (
	groqMaxTokens   = 2000
	groqDefaultBase = "https://api.groq.com"
)

// Groq talks to Groq's OpenAI-compatible endpoint.
type Groq struct {
	Key, Model string
	BaseURL    string
	HTTP       *http.Client
	DryRun     bool
}

func (c *Groq) Name() SourceName { return SourceGroq }

func (c *Groq) Complete(ctx context.Context, p Prompt) (Reply, error) {
	if c.DryRun {
		return dryRun(c.Name(), p), nil
	}
	url := endpoint(c.BaseURL, groqDefaultBase, "/openai/v1/chat/completions")
	return chatCompletion(ctx, c.Name(), c.HTTP, url, c.Key, c.Model, groqMaxTokens, p)
}
