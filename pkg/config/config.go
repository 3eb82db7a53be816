package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultQueries are the search queries used when INGEST_QUERIES is unset.
// Earlier entries get preferential fill when the job cap is reached.
var DefaultQueries = []string{
	"software engineer fresher",
	"junior software engineer",
	"entry level software engineer",
	"graduate software engineer",
	"associate software engineer",
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Vector   VectorConfig   `mapstructure:"vector"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	JSearch  JSearchConfig  `mapstructure:"jsearch"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Clerk    ClerkConfig    `mapstructure:"clerk"`
	AWS      AWSConfig      `mapstructure:"aws"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type VectorConfig struct {
	Backend      string `mapstructure:"backend"`
	QdrantURL    string `mapstructure:"qdrant_url"`
	QdrantAPIKey string `mapstructure:"qdrant_api_key"`
}

type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	SkillsModel    string `mapstructure:"skills_model"`
	InterviewModel string `mapstructure:"interview_model"`
	TTSModel       string `mapstructure:"tts_model"`
	STTModel       string `mapstructure:"stt_model"`
	Voice          string `mapstructure:"voice"`
}

type JSearchConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	URL     string        `mapstructure:"url"`
	Host    string        `mapstructure:"host"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type IngestConfig struct {
	Queries    []string      `mapstructure:"queries"`
	MaxJobs    int           `mapstructure:"max_jobs"`
	MaxPages   int           `mapstructure:"max_pages"`
	Country    string        `mapstructure:"country"`
	DatePosted string        `mapstructure:"date_posted"`
	Cron       string        `mapstructure:"cron"`
	LockTTL    time.Duration `mapstructure:"lock_ttl"`
}

type ClerkConfig struct {
	JWKSURL string `mapstructure:"jwks_url"`
	Issuer  string `mapstructure:"issuer"`
}

// AWSConfig selects S3 storage. Without a bucket, uploads go to LocalDir.
type AWSConfig struct {
	Region   string `mapstructure:"region"`
	Bucket   string `mapstructure:"bucket"`
	LocalDir string `mapstructure:"local_dir"`
}

type binding struct {
	key string
	env string
	def any
}

var bindings = []binding{
	{"server.port", "PORT", "8080"},
	{"server.cors_origins", "CORS_ORIGINS", "*"},
	{"log.level", "LOG_LEVEL", "info"},
	{"log.json", "LOG_JSON", false},
	{"database.url", "DATABASE_URL", ""},
	{"redis.url", "REDIS_URL", ""},
	{"vector.backend", "VECTOR_BACKEND", "pgvector"},
	{"vector.qdrant_url", "QDRANT_URL", ""},
	{"vector.qdrant_api_key", "QDRANT_API_KEY", ""},
	{"openai.api_key", "OPENAI_API_KEY", ""},
	{"openai.embedding_model", "EMBEDDING_MODEL", "text-embedding-3-small"},
	{"openai.skills_model", "SKILLS_MODEL", "gpt-4o-mini"},
	{"openai.interview_model", "INTERVIEW_MODEL", "gpt-4o-mini"},
	{"openai.tts_model", "TTS_MODEL", "tts-1"},
	{"openai.stt_model", "STT_MODEL", "whisper-1"},
	{"openai.voice", "TTS_VOICE", "alloy"},
	{"jsearch.api_key", "JSEARCH_API_KEY", ""},
	{"jsearch.url", "JSEARCH_URL", "https://jsearch.p.rapidapi.com/search"},
	{"jsearch.host", "JSEARCH_HOST", "jsearch.p.rapidapi.com"},
	{"jsearch.timeout", "FEED_TIMEOUT", "60s"},
	{"ingest.queries", "INGEST_QUERIES", strings.Join(DefaultQueries, ",")},
	{"ingest.max_jobs", "INGEST_MAX_JOBS", 250},
	{"ingest.max_pages", "INGEST_MAX_PAGES", 5},
	{"ingest.country", "INGEST_COUNTRY", "in"},
	{"ingest.date_posted", "INGEST_DATE_POSTED", "month"},
	{"ingest.cron", "INGEST_CRON", "0 0 * * *"},
	{"ingest.lock_ttl", "INGEST_LOCK_TTL", "2h"},
	{"clerk.jwks_url", "CLERK_JWKS_URL", ""},
	{"clerk.issuer", "CLERK_ISSUER", ""},
	{"aws.region", "AWS_REGION", "us-east-1"},
	{"aws.bucket", "AWS_BUCKET", ""},
	{"aws.local_dir", "LOCAL_UPLOAD_DIR", "data/uploads"},
}

// Load reads an optional .env file, an optional YAML file at path, and the
// process environment. Environment variables win over the file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	for _, b := range bindings {
		v.SetDefault(b.key, b.def)
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Ingest.Queries = cleanList(cfg.Ingest.Queries)
	if len(cfg.Ingest.Queries) == 0 {
		cfg.Ingest.Queries = append([]string(nil), DefaultQueries...)
	}

	return &cfg, nil
}

// Origins splits the CORS origin list
func (s ServerConfig) Origins() string {
	return strings.Join(cleanList(strings.Split(s.CORSOrigins, ",")), ", ")
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
