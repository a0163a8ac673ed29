package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Names under which provider API keys are looked up, in the environment first
// and then in the secret store.
const (
	GroqKeyName      = "GROQ_API_KEY"
	AnthropicKeyName = "ANTHROPIC_API_KEY"
	OpenAIKeyName    = "OPENAI_API_KEY"
	GeminiKeyName    = "GEMINI_API_KEY"
)

// Credentials holds the provider keys discovered at startup. An empty key
// means the provider is not selectable. It is never modified after Load.
type Credentials struct {
	Groq, Anthropic, OpenAI, Gemini string
}

// Available lists the key names that resolved to a value.
func (c Credentials) Available() []string {
	var names []string
	for _, kv := range []struct{ name, val string }{
		{GroqKeyName, c.Groq},
		{AnthropicKeyName, c.Anthropic},
		{OpenAIKeyName, c.OpenAI},
		{GeminiKeyName, c.Gemini},
	} {
		if kv.val != "" {
			names = append(names, kv.name)
		}
	}
	return names
}

// LoadCredentials resolves every provider key from lookup (usually
// os.LookupEnv) and falls back to secrets. A missing key is not an error.
func LoadCredentials(lookup func(string) (string, bool), secrets map[string]string) Credentials {
	find := func(name string) string {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(secrets[name])
	}
	return Credentials{
		Groq:      find(GroqKeyName),
		Anthropic: find(AnthropicKeyName),
		OpenAI:    find(OpenAIKeyName),
		Gemini:    find(GeminiKeyName),
	}
}

// LoadSecrets reads a flat YAML mapping of secret names to values. A missing
// file yields an empty store.
func LoadSecrets(path string) (map[string]string, error) {
	secrets := map[string]string{}
	if path == "" {
		return secrets, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return secrets, nil
	}
	if err != nil {
		return secrets, err
	}
	if err := yaml.Unmarshal(b, &secrets); err != nil {
		return map[string]string{}, fmt.Errorf("parse secrets %s: %w", path, err)
	}
	return secrets, nil
}
