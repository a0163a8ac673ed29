package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/emandor/studyhelp_service/internal/telemetry"
)

const (
	anthropicMaxTokens   = 2000
	anthropicVersion     = "2023-06-01"
	anthropicDefaultBase = "https://api.anthropic.com"
)

type Anthropic struct {
	Key, Model string
	BaseURL    string
	HTTP       *http.Client
	DryRun     bool
}

func (c *Anthropic) Name() SourceName { return SourceClaude }

func (c *Anthropic) Complete(ctx context.Context, p Prompt) (Reply, error) {
	if c.DryRun {
		return dryRun(c.Name(), p), nil
	}

	body := map[string]any{
		"model":       c.Model,
		"max_tokens":  anthropicMaxTokens,
		"temperature": studyTemperature,
		"messages": []map[string]any{
			{"role": "user", "content": p.User},
		},
	}
	if p.System != "" {
		body["system"] = p.System
	}

	log := telemetry.L().With().Str("provider", string(c.Name())).Str("model", c.Model).Logger()
	headers := map[string]string{
		"x-api-key":         c.Key,
		"anthropic-version": anthropicVersion,
	}

	t0 := time.Now()
	raw, err := postJSON(ctx, c.HTTP, endpoint(c.BaseURL, anthropicDefaultBase, "/v1/messages"), headers, body)
	if err != nil {
		log.Error().Err(err).Msg("anthropic_request_failed")
		return Reply{}, fail(c.Name(), err)
	}

	var out struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
		Usage map[string]any `json:"usage"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Reply{}, fail(c.Name(), fmt.Errorf("decode envelope: %w", err))
	}

	var text strings.Builder
	for _, block := range out.Content {
		if block.Type == "" || block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return Reply{}, fail(c.Name(), ErrEmptyReply)
	}

	reply := Reply{
		Text:       text.String(),
		LatencyMs:  int(time.Since(t0) / time.Millisecond),
		TokenUsage: out.Usage,
	}
	log.Debug().Int("reply_len", len(reply.Text)).Int("latency_ms", reply.LatencyMs).Msg("anthropic_done")
	return reply, nil
}
