package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/emandor/studyhelp_service/internal/telemetry"
)

var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// Reader turns an image of study notes into plain text.
type Reader interface {
	Read(ctx context.Context, img []byte, mime string) (Result, error)
}

type Result struct {
	Text string
	Raw  string
}

type OpenAIVision struct {
	Key, Model string
	BaseURL    string
	Client     *http.Client
}

func NewOpenAIVision(key, model, baseURL string, timeout time.Duration) *OpenAIVision {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	return &OpenAIVision{
		Key:     key,
		Model:   model,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (o *OpenAIVision) Read(ctx context.Context, imgB []byte, mime string) (Result, error) {
	if o.Key == "" {
		return Result{}, ErrEngineUnavailable
	}

	dataURL := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(imgB)
	payload := map[string]any{
		"model": o.Model,
		"messages": []any{
			map[string]any{
				"role": "user",
				"content": []any{
					map[string]string{"type": "text", "text": "Transcribe the study notes in this image. Return ONLY the raw text (no explanation), keeping paragraph breaks."},
					map[string]any{"type": "image_url", "image_url": map[string]any{"url": dataURL, "detail": "high"}},
				},
			},
		},
		"temperature": 0.0,
		"max_tokens":  2000,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return Result{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.BaseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+o.Key)
	req.Header.Set("Content-Type", "application/json")

	log := telemetry.L().With().Str("provider", "openai-vision").Logger()
	start := time.Now()

	resp, err := o.Client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("ocr_request_failed")
		return Result{}, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Int("status", resp.StatusCode).Msg("ocr_http_error")
		return Result{Raw: string(raw)}, errors.New("openai vision http " + resp.Status)
	}

	var out struct {
		Choices []struct{ Message struct{ Content string } }
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{Raw: string(raw)}, err
	}
	if len(out.Choices) == 0 {
		return Result{Raw: string(raw)}, errors.New("openai vision: empty choices")
	}
	txt := out.Choices[0].Message.Content
	log.Debug().Int("latency_ms", int(time.Since(start)/time.Millisecond)).Int("chars", len(txt)).Msg("ocr_ok")
	return Result{Text: txt, Raw: string(raw)}, nil
}
