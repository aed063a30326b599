package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string   `env:"PORT" envDefault:"8080"`
	Env             string   `env:"ENV" envDefault:"dev"`
	LogLevel        string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSAllowOrigin []string `env:"CORS_ALLOW_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`
	DatabaseURL     string   `env:"DATABASE_URL"`
	DB              DBConfig `envPrefix:"DB_"`
	PprofEnabled    bool     `env:"PPROF_ENABLED" envDefault:"false"`
	MaxUploadBytes  int64    `env:"MAX_UPLOAD_BYTES" envDefault:"5242880"`

	FileStore     string `env:"FILE_STORE" envDefault:"inline"`
	LocalStoreDir string `env:"LOCAL_STORE_DIR" envDefault:"./data"`

	S3    S3Config    `envPrefix:"S3_"`
	GCS   GCSConfig   `envPrefix:"GCS_"`
	Minio MinioConfig `envPrefix:"MINIO_"`

	LLMProvider string       `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMModel    string       `env:"LLM_MODEL" envDefault:"gpt-4o"`
	OpenAI      OpenAIConfig `envPrefix:"OPENAI_"`

	AuthProvider string         `env:"AUTH_PROVIDER" envDefault:"firebase"`
	Firebase     FirebaseConfig `envPrefix:"FIREBASE_"`
	JWTSecret    string         `env:"JWT_SECRET"`
}

// DBConfig tunes the connection pool. Zero fields keep the per-process
// defaults. Its fields mirror db.Options one for one so it converts directly.
type DBConfig struct {
	MaxOpenConns    int           `env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int           `env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `env:"CONN_MAX_IDLE_TIME"`
	PingTimeout     time.Duration `env:"PING_TIMEOUT"`
}

// S3Config configures the S3 file store. Endpoint targets an S3-compatible
// service; the key pair overrides the default credential chain.
type S3Config struct {
	Region          string `env:"REGION"`
	Bucket          string `env:"BUCKET"`
	Prefix          string `env:"PREFIX" envDefault:"resumes"`
	KMSKeyID        string `env:"KMS_KEY_ID"`
	Endpoint        string `env:"ENDPOINT"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`
}

// GCSConfig configures the Google Cloud Storage file store.
type GCSConfig struct {
	Bucket          string `env:"BUCKET"`
	Prefix          string `env:"PREFIX" envDefault:"resumes"`
	CredentialsFile string `env:"CREDENTIALS_FILE"`
	CredentialsJSON string `env:"CREDENTIALS_JSON"`
}

// MinioConfig configures the MinIO file store.
type MinioConfig struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	Bucket    string `env:"BUCKET" envDefault:"resumes"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
	PublicURL string `env:"PUBLIC_URL"`
}

// OpenAIConfig configures the chat completions client.
type OpenAIConfig struct {
	APIKey  string        `env:"API_KEY"`
	BaseURL string        `env:"BASE_URL"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"120s"`
}

// FirebaseConfig configures ID token verification.
type FirebaseConfig struct {
	ProjectID string `env:"PROJECT_ID"`
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience. Existing env wins.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return Config{}, err
	}
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.FileStore = normalizeStoreType(cfg.FileStore)
	cfg.AuthProvider = normalizeAuthProvider(cfg.AuthProvider)
	cfg.CORSAllowOrigin = trimAll(cfg.CORSAllowOrigin)
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	return cfg, nil
}

// IsDevLike reports whether the environment tolerates in-memory fallbacks.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func (d DBConfig) validate() error {
	if d.MaxOpenConns < 0 || d.MaxIdleConns < 0 {
		return fmt.Errorf("parse config: DB_MAX_OPEN_CONNS and DB_MAX_IDLE_CONNS must not be negative")
	}
	if d.ConnMaxLifetime < 0 || d.ConnMaxIdleTime < 0 || d.PingTimeout < 0 {
		return fmt.Errorf("parse config: DB_* durations must not be negative")
	}
	return nil
}

func trimAll(values []string) []string {
	var out []string
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
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
	case "local", "s3", "gcs", "minio":
		return strings.ToLower(strings.TrimSpace(raw))
	case "firebase":
		return "gcs"
	default:
		return "inline"
	}
}

func normalizeAuthProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "dev", "hmac", "jwt":
		return "dev"
	default:
		return "firebase"
	}
}
