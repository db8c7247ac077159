package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	LogLevel        string
	LogFormat       string

	ObjectStoreType        string
	LocalStoreDir          string
	AWSRegion              string
	AWSAccessKeyID         string
	AWSSecretAccessKey     string
	AWSUseDefaultCreds     bool
	S3Bucket               string
	S3Endpoint             string
	S3PresignTTL           time.Duration
	EventsQueueURL         string
	DatabaseURL            string
	LLMModel               string
	OpenAIAPIKey           string
	OpenAITimeout          time.Duration
	TranscribeModel        string
	ElevenLabsAPIKey       string
	ElevenLabsVoiceID      string
	GoogleMapsAPIKey       string
	CollegeScorecardAPIKey string
	ChromePath             string

	GenerationRateLimit float64
	GenerationBurst     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Missing env files are fine; the process environment always wins.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             normalizeEnv(getEnv("ENV", "dev")),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),

		ObjectStoreType:        normalizeStoreType(getEnv("OBJECT_STORE", "s3")),
		LocalStoreDir:          getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:              getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:         getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:     getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSUseDefaultCreds:     getBool("AWS_USE_DEFAULT_CREDENTIALS", false),
		S3Bucket:               getEnv("S3_BUCKET", getEnv("AWS_S3_BUCKET_NAME", "")),
		S3Endpoint:             getEnv("S3_ENDPOINT", ""),
		S3PresignTTL:           getDuration("S3_PRESIGN_TTL", time.Hour),
		EventsQueueURL:         getEnv("EVENTS_SQS_QUEUE_URL", ""),
		DatabaseURL:            getEnv("DATABASE_URL", ""),
		LLMModel:               getEnv("LLM_MODEL", "gpt-4o-mini"),
		OpenAIAPIKey:           getEnv("OPENAI_API_KEY", ""),
		OpenAITimeout:          time.Duration(getInt("OPENAI_TIMEOUT_SECONDS", 120)) * time.Second,
		TranscribeModel:        getEnv("TRANSCRIBE_MODEL", "whisper-1"),
		ElevenLabsAPIKey:       getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID:      getEnv("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),
		GoogleMapsAPIKey:       getEnv("GOOGLE_MAPS_API_KEY", ""),
		CollegeScorecardAPIKey: getEnv("COLLEGE_SCORECARD_API_KEY", ""),
		ChromePath:             getEnv("CHROME_PATH", ""),

		GenerationRateLimit: getFloat("RATE_LIMIT_GENERATION_RPS", 0.5),
		GenerationBurst:     getInt("RATE_LIMIT_GENERATION_BURST", 5),
	}
}

// S3Configured reports whether a bucket and usable credentials are present.
// Callers check this before touching the object store.
func (c Config) S3Configured() bool {
	if strings.TrimSpace(c.S3Bucket) == "" {
		return false
	}
	if c.AWSUseDefaultCreds {
		return true
	}
	return strings.TrimSpace(c.AWSAccessKeyID) != "" && strings.TrimSpace(c.AWSSecretAccessKey) != ""
}

// IsDevLike reports whether the environment tolerates degraded dependencies.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func getEnv(key, def string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return def
}

func getBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return val
}

func getInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}

func getFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return val
}

func getDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "local":
		return "local"
	default:
		return "s3"
	}
}
