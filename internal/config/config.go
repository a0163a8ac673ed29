package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv, AppPort string
	CORSOrigins     []string

	RedisAddr        string
	RedisDB          int
	ExtractCacheTTL  time.Duration
	SecretsFile      string
	Credentials      Credentials
	ProviderDryRun   bool
	ProviderTimeout  time.Duration
	DefaultProvider  string
	MinContentLength int

	GroqModel, AnthropicModel, OpenAIModel, GeminiModel string
	GroqBaseURL, AnthropicBaseURL, OpenAIBaseURL        string
	GeminiBaseURL                                       string

	OCREngine       string
	OCRLang         string
	OCROpenAIModel  string
	OCRImgMaxW      int
	OCRImgQuality   int
	OCRImgGrayscale bool

	MaxBodyLimit       int
	AllowedMaxFileSize int
	AllowedFileExt     []string
}

func Load() *Config {
	_ = godotenv.Load()

	secretsFile := get("SECRETS_FILE", "secrets.yaml")
	secrets, err := LoadSecrets(secretsFile)
	if err != nil {
		log.Printf("secret store %s unreadable: %v", secretsFile, err)
	}

	c := &Config{
		AppEnv:             get("APP_ENV", "dev"),
		AppPort:            get("APP_PORT", "8080"),
		CORSOrigins:        split(get("CORS_ORIGINS", "http://localhost:5173")),
		RedisAddr:          get("REDIS_ADDR", ""),
		RedisDB:            atoi(get("REDIS_DB", "0")),
		ExtractCacheTTL:    mustDuration(get("EXTRACT_CACHE_TTL", "24h")),
		SecretsFile:        secretsFile,
		Credentials:        LoadCredentials(os.LookupEnv, secrets),
		ProviderDryRun:     parseBool(get("PROVIDER_DRY_RUN", "false")),
		ProviderTimeout:    mustDuration(get("PROVIDER_TIMEOUT", "60s")),
		DefaultProvider:    get("DEFAULT_PROVIDER", ""),
		MinContentLength:   GetEnvInt("MIN_CONTENT_LENGTH", 50),
		GroqModel:          get("GROQ_MODEL", "llama-3.1-8b-instant"),
		AnthropicModel:     get("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest"),
		OpenAIModel:        get("OPENAI_MODEL", "gpt-4o-mini"),
		GeminiModel:        get("GEMINI_MODEL", "gemini-2.5-flash"),
		GroqBaseURL:        get("GROQ_BASE_URL", "https://api.groq.com"),
		AnthropicBaseURL:   get("ANTHROPIC_BASE_URL", "https://api.anthropic.com"),
		OpenAIBaseURL:      get("OPENAI_BASE_URL", "https://api.openai.com"),
		GeminiBaseURL:      get("GEMINI_BASE_URL", ""),
		OCREngine:          get("OCR_ENGINE", "openai"),
		OCRLang:            get("OCR_LANG", "eng"),
		OCROpenAIModel:     get("OCR_OPENAI_MODEL", "gpt-4o-mini"),
		OCRImgMaxW:         atoi(get("OCR_IMG_MAX_W", "1600")),
		OCRImgQuality:      atoi(get("OCR_IMG_QUALITY", "75")),
		OCRImgGrayscale:    parseBool(get("OCR_IMG_GRAYSCALE", "true")),
		MaxBodyLimit:       GetEnvInt("MAX_BODY_LIMIT", 12),
		AllowedMaxFileSize: GetEnvInt("ALLOWED_MAX_FILE_SIZE", 10),
		AllowedFileExt:     GetEnvList("ALLOWED_FILE_EXT", []string{".pdf", ".jpg", ".jpeg", ".png"}),
	}
	return c
}

func GetEnvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return d
}

func GetEnvList(k string, d []string) []string {
	if v := os.Getenv(k); v != "" {
		return strings.Split(v, ",")
	}
	return d
}

func get(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
func atoi(s string) int       { i, _ := strconv.Atoi(s); return i }
func parseBool(s string) bool { b, _ := strconv.ParseBool(s); return b }
func mustDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration %q: %v", s, err)
	}
	return d
}
func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func GetEnv(k, d string) string {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	return v
}
