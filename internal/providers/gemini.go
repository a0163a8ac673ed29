package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/emandor/studyhelp_service/internal/telemetry"
)

const geminiMaxTokens = 2000

var errGeminiBlocked = errors.New("content blocked by safety filters")

type Gemini struct {
	Model  string
	DryRun bool
	client *genai.Client
}

// NewGemini builds the genai client once; the key and base URL are fixed for
// the life of the process. baseURL may be empty.
func NewGemini(ctx context.Context, key, model, baseURL string, hc *http.Client, dryRun bool) (*Gemini, error) {
	if key == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	g := &Gemini{Model: model, DryRun: dryRun}
	if dryRun {
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     key,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
	}
	if baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

func (c *Gemini) Name() SourceName { return SourceGemini }

func (c *Gemini) Complete(ctx context.Context, p Prompt) (Reply, error) {
	if c.DryRun {
		return dryRun(c.Name(), p), nil
	}

	temperature := float32(studyTemperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:      &temperature,
		MaxOutputTokens:  geminiMaxTokens,
		ResponseMIMEType: "application/json",
	}
	if p.System != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: p.System}}}
	}
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: p.User}}}}

	log := telemetry.L().With().Str("provider", string(c.Name())).Str("model", c.Model).Logger()

	t0 := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.Model, contents, cfg)
	if err != nil {
		log.Error().Err(err).Msg("gemini_request_failed")
		return Reply{}, fail(c.Name(), err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return Reply{}, fail(c.Name(), ErrEmptyReply)
	}
	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return Reply{}, fail(c.Name(), errGeminiBlocked)
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		if part != nil {
			text.WriteString(part.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return Reply{}, fail(c.Name(), ErrEmptyReply)
	}

	reply := Reply{Text: text.String(), LatencyMs: int(time.Since(t0) / time.Millisecond)}
	log.Debug().Int("reply_len", len(reply.Text)).Int("latency_ms", reply.LatencyMs).Msg("gemini_done")
	return reply, nil
}
