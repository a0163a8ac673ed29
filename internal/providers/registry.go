package providers

import (
	"context"
	"net/http"

	"github.com/emandor/studyhelp_service/internal/config"
	"github.com/emandor/studyhelp_service/internal/telemetry"
)

// Registry maps provider identifiers to the clients that could be built from
// the startup credentials. It is read-only after construction.
type Registry struct {
	clients map[SourceName]Client
	order   []SourceName
}

func NewRegistry(clients ...Client) *Registry {
	r := &Registry{clients: map[SourceName]Client{}}
	for _, cl := range clients {
		if cl == nil {
			continue
		}
		if _, dup := r.clients[cl.Name()]; !dup {
			r.order = append(r.order, cl.Name())
		}
		r.clients[cl.Name()] = cl
	}
	return r
}

func (r *Registry) Get(name SourceName) (Client, bool) {
	if r == nil {
		return nil, false
	}
	cl, ok := r.clients[name]
	return cl, ok
}

// Names lists the selectable providers in registration order.
func (r *Registry) Names() []SourceName {
	if r == nil {
		return nil
	}
	return append([]SourceName(nil), r.order...)
}

// Build creates a client for every provider with a credential. A provider
// whose client cannot be constructed is left out with a warning.
func Build(ctx context.Context, cfg *config.Config) *Registry {
	log := telemetry.L()
	hc := &http.Client{Timeout: cfg.ProviderTimeout}
	creds := cfg.Credentials
	dryRun := cfg.ProviderDryRun

	var list []Client
	if creds.Groq != "" {
		list = append(list, &Groq{Key: creds.Groq, Model: cfg.GroqModel, BaseURL: cfg.GroqBaseURL, HTTP: hc, DryRun: dryRun})
	}
	if creds.Anthropic != "" {
		list = append(list, &Anthropic{Key: creds.Anthropic, Model: cfg.AnthropicModel, BaseURL: cfg.AnthropicBaseURL, HTTP: hc, DryRun: dryRun})
	}
	if creds.OpenAI != "" {
		list = append(list, &OpenAI{Key: creds.OpenAI, Model: cfg.OpenAIModel, BaseURL: cfg.OpenAIBaseURL, HTTP: hc, DryRun: dryRun})
	}
	if creds.Gemini != "" {
		g, err := NewGemini(ctx, creds.Gemini, cfg.GeminiModel, cfg.GeminiBaseURL, hc, dryRun)
		if err != nil {
			log.Warn().Err(err).Str("provider", string(SourceGemini)).Msg("provider_setup_failed")
		} else {
			list = append(list, g)
		}
	}

	r := NewRegistry(list...)
	names := make([]string, 0, len(r.order))
	for _, n := range r.order {
		names = append(names, string(n))
	}
	log.Info().Strs("providers", names).Bool("dry_run", dryRun).Msg("providers_ready")
	return r
}
