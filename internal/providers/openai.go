package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/emandor/studyhelp_service/internal/telemetry"
)

const (
	openAIMaxTokens   = 1500
	studyTemperature  = 0.7
	openAIDefaultBase = "https://api.openai.com"
)

type OpenAI struct {
	Key, Model string
	BaseURL    string
	HTTP       *http.Client
	DryRun     bool
}

func (c *OpenAI) Name() SourceName { return SourceOpenAI }

func (c *OpenAI) Complete(ctx context.Context, p Prompt) (Reply, error) {
	if c.DryRun {
		return dryRun(c.Name(), p), nil
	}
	url := endpoint(c.BaseURL, openAIDefaultBase, "/v1/chat/completions")
	return chatCompletion(ctx, c.Name(), c.HTTP, url, c.Key, c.Model, openAIMaxTokens, p)
}

// chatCompletion serves every OpenAI-compatible chat completions API.
func chatCompletion(ctx context.Context, name SourceName, client *http.Client, url, key, model string, maxTokens int, p Prompt) (Reply, error) {
	messages := []map[string]string{}
	if p.System != "" {
		messages = append(messages, map[string]string{"role": "system", "content": p.System})
	}
	messages = append(messages, map[string]string{"role": "user", "content": p.User})

	body := map[string]any{
		"model":       model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"temperature": studyTemperature,
	}

	log := telemetry.L().With().Str("provider", string(name)).Str("model", model).Logger()
	log.Debug().Int("prompt_len", len(p.User)).Msg("chat_completion_request")

	t0 := time.Now()
	raw, err := postJSON(ctx, client, url, map[string]string{"Authorization": "Bearer " + key}, body)
	if err != nil {
		log.Error().Err(err).Msg("chat_completion_failed")
		return Reply{}, fail(name, err)
	}

	text := extractOpenAIText(raw)
	if strings.TrimSpace(text) == "" {
		return Reply{}, fail(name, ErrEmptyReply)
	}

	reply := Reply{Text: text, LatencyMs: int(time.Since(t0) / time.Millisecond)}
	var u struct {
		Usage map[string]any `json:"usage"`
	}
	if json.Unmarshal(raw, &u) == nil && u.Usage != nil {
		reply.TokenUsage = u.Usage
	}
	log.Debug().Int("reply_len", len(text)).Int("latency_ms", reply.LatencyMs).Msg("chat_completion_done")
	return reply, nil
}

// get text from Chat Completions or, for proxies that answer in the
// Responses API shape, from output_text / output[].content[].
func extractOpenAIText(raw []byte) string {
	var r1 struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if json.Unmarshal(raw, &r1) == nil && len(r1.Choices) > 0 {
		return r1.Choices[0].Message.Content
	}

	var r2 struct {
		OutputText string `json:"output_text"`
	}
	if json.Unmarshal(raw, &r2) == nil && strings.TrimSpace(r2.OutputText) != "" {
		return r2.OutputText
	}

	var r3 struct {
		Output []struct {
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if json.Unmarshal(raw, &r3) == nil && len(r3.Output) > 0 {
		for _, c := range r3.Output[0].Content {
			if strings.TrimSpace(c.Text) != "" {
				return c.Text
			}
		}
	}

	return ""
}
