package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every setting of the service.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Funnel  FunnelConfig
	Storage StorageConfig
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	funnel, err := loadFunnelConfig()
	if err != nil {
		return nil, err
	}

	storage, err := loadStorageConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Funnel: funnel, Storage: storage}, nil
}

// ServerConfig describes the HTTP server and logging.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	LogJSON        bool
	LogLevel       string
}

// loadServerConfig resolves the listen address from PORT.
func loadServerConfig() (ServerConfig, error) {
	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))
	logJSON, err := parseBoolEnv("LOG_JSON", false)
	if err != nil {
		return ServerConfig{}, err
	}
	level := strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// PORT may already be ":8080" or "127.0.0.1:8080".
		return ServerConfig{Addr: port, AllowedOrigins: origins, LogJSON: logJSON, LogLevel: level}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins, LogJSON: logJSON, LogLevel: level}, nil
}

// AIConfig describes the LLM gateway. Model is tried first, then
// FallbackModels in order.
type AIConfig struct {
	APIKey         string
	AccessKey      string
	SecretKey      string
	Model          string
	FallbackModels []string
	BaseURL        string
	Region         string
	Temperature    *float64
	TopP           *float64
	MaxTokens      *int
	RequestTimeout time.Duration
	HistoryLimit   int
}

// Enabled reports whether a model and credentials are present.
func (c AIConfig) Enabled() bool {
	return c.Model != "" && (c.APIKey != "" || (c.AccessKey != "" && c.SecretKey != ""))
}

// Models lists model names in attempt order, without duplicates.
func (c AIConfig) Models() []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range append([]string{c.Model}, c.FallbackModels...) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// NewChatModel creates an Ark chat model for modelName.
func (c AIConfig) NewChatModel(ctx context.Context, modelName string) (model.ChatModel, error) {
	if !c.Enabled() {
		return nil, errors.New("ark credentials missing: set ARK_MODEL with ARK_API_KEY or ARK_ACCESS_KEY/ARK_SECRET_KEY")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	var maxTokens *int
	if c.MaxTokens != nil {
		val := *c.MaxTokens
		maxTokens = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       modelName,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	timeout, err := parseDurationEnv("AI_REQUEST_TIMEOUT", 25*time.Second)
	if err != nil {
		return AIConfig{}, err
	}

	historyLimit := 10
	if override, err := parseOptionalIntEnv("AI_HISTORY_LIMIT"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		if *override < 1 {
			historyLimit = 1
		} else {
			historyLimit = *override
		}
	}

	return AIConfig{
		APIKey:         strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:      strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:      strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:          strings.TrimSpace(os.Getenv("ARK_MODEL")),
		FallbackModels: splitList(os.Getenv("ARK_FALLBACK_MODELS")),
		BaseURL:        getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:         getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:    temperature,
		TopP:           topP,
		MaxTokens:      maxTokens,
		RequestTimeout: timeout,
		HistoryLimit:   historyLimit,
	}, nil
}

// FunnelConfig holds the business parameters of the funnel.
type FunnelConfig struct {
	PixKey         string
	SessionIdleTTL time.Duration
	JanitorEvery   time.Duration
	ReportCacheTTL time.Duration
}

func loadFunnelConfig() (FunnelConfig, error) {
	idle, err := parseDurationEnv("SESSION_IDLE_TTL", 2*time.Hour)
	if err != nil {
		return FunnelConfig{}, err
	}

	janitor, err := parseDurationEnv("SESSION_SWEEP_INTERVAL", 10*time.Minute)
	if err != nil {
		return FunnelConfig{}, err
	}

	cacheTTL, err := parseDurationEnv("REPORT_CACHE_TTL", 30*time.Minute)
	if err != nil {
		return FunnelConfig{}, err
	}

	return FunnelConfig{
		PixKey:         getEnvOrDefault("PIX_KEY", "pix@sarahkali.com.br"),
		SessionIdleTTL: idle,
		JanitorEvery:   janitor,
		ReportCacheTTL: cacheTTL,
	}, nil
}

// StorageConfig selects the transcript and report cache backends.
type StorageConfig struct {
	// TranscriptBackend is memory or sqlite.
	TranscriptBackend string
	SQLitePath        string
	// CacheBackend is memory or redis.
	CacheBackend  string
	RedisAddr     string
	RedisPassword string
}

func loadStorageConfig() (StorageConfig, error) {
	transcript := strings.ToLower(getEnvOrDefault("TRANSCRIPT_BACKEND", "memory"))
	switch transcript {
	case "memory", "sqlite":
	default:
		return StorageConfig{}, fmt.Errorf("invalid TRANSCRIPT_BACKEND value %q", transcript)
	}

	cache := strings.ToLower(getEnvOrDefault("REPORT_CACHE_BACKEND", "memory"))
	switch cache {
	case "memory", "redis":
	default:
		return StorageConfig{}, fmt.Errorf("invalid REPORT_CACHE_BACKEND value %q", cache)
	}

	return StorageConfig{
		TranscriptBackend: transcript,
		SQLitePath:        getEnvOrDefault("SQLITE_PATH", "chat_history.db"),
		CacheBackend:      cache,
		RedisAddr:         getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	if val <= 0 {
		return 0, fmt.Errorf("invalid %s value %q: must be positive", key, raw)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
