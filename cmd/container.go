package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Abraxas-365/skillbridge/internal/ai/embeddings"
	"github.com/Abraxas-365/skillbridge/internal/ai/questiongen"
	"github.com/Abraxas-365/skillbridge/internal/ai/skills"
	"github.com/Abraxas-365/skillbridge/internal/ai/speech"
	"github.com/Abraxas-365/skillbridge/internal/jsearch"
	"github.com/Abraxas-365/skillbridge/internal/pdf"
	"github.com/Abraxas-365/skillbridge/internal/vectorindex"
	"github.com/Abraxas-365/skillbridge/pkg/config"
	"github.com/Abraxas-365/skillbridge/pkg/fsx"
	"github.com/Abraxas-365/skillbridge/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/skillbridge/pkg/fsx/fsxs3"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidateapi"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidateauth"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidateinfra"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidatesrv"
	"github.com/Abraxas-365/skillbridge/recruitment/interview/interviewapi"
	"github.com/Abraxas-365/skillbridge/recruitment/interview/interviewsrv"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/Abraxas-365/skillbridge/recruitment/job/jobapi"
	"github.com/Abraxas-365/skillbridge/recruitment/job/jobinfra"
	"github.com/Abraxas-365/skillbridge/recruitment/job/jobsrv"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client // nil without REDIS_URL
	Index      vectorindex.Index
	FileSystem fsx.FileSystem
	Queue      job.TaskQueue
	RunLock    job.RunLock

	// External collaborators
	Feed      *jsearch.Client
	Embedder  *embeddings.Generator
	Skills    *skills.Extractor
	Questions *questiongen.Generator
	Speech    *speech.Client

	// Services
	IngestionService *jobsrv.IngestionService
	MatchService     *jobsrv.MatchService
	Dispatcher       *jobsrv.Dispatcher
	CandidateService *candidatesrv.CandidateService
	Profiles         *candidatesrv.ProfileAdapter
	InterviewService *interviewsrv.Service
	SpeechService    *interviewsrv.SpeechService

	// API Handlers
	JobHandlers       *jobapi.Handlers
	CandidateHandlers *candidateapi.Handlers
	InterviewHandlers *interviewapi.Handlers

	// Middleware
	AuthMiddleware fiber.Handler

	closers []func() error
}

// NewContainer initializes the dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Close()
		return nil, err
	}
	c.initServices()
	return c, nil
}

// Close releases connections in reverse order of creation
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			logx.Warnf("Shutdown: %v", err)
		}
	}
	c.closers = nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// 1. Database Connection
	if cfg.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db
	c.closers = append(c.closers, db.Close)

	// 2. Redis Connection (task queue and run lock)
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		c.Redis = redis.NewClient(opts)
		c.closers = append(c.closers, c.Redis.Close)
		if err := c.Redis.Ping(ctx).Err(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
		c.Queue = jobinfra.NewRedisQueue(c.Redis, "")
		c.RunLock = jobinfra.NewRedisRunLock(c.Redis, "")
	} else {
		logx.Warn("REDIS_URL is not set, using in-process task queue and run lock")
		c.Queue = jobinfra.NewMemoryQueue(16)
		c.RunLock = jobinfra.NewLocalRunLock()
	}

	// 3. Vector Index
	index, err := c.newIndex()
	if err != nil {
		return err
	}
	c.Index = index
	if err := c.Index.EnsureCollections(ctx); err != nil {
		return fmt.Errorf("failed to prepare vector collections: %w", err)
	}

	// 4. Object Storage
	if cfg.AWS.Bucket != "" {
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(awsCfg), cfg.AWS.Bucket, cfg.AWS.Region, "")
	} else {
		logx.Warnf("AWS_BUCKET is not set, storing uploads in %s", cfg.AWS.LocalDir)
		c.FileSystem = fsxlocal.NewLocalFileSystem(cfg.AWS.LocalDir, "/files")
	}

	// 5. External collaborators
	c.Feed = jsearch.NewClient(jsearch.Config{
		APIKey:  cfg.JSearch.APIKey,
		URL:     cfg.JSearch.URL,
		Host:    cfg.JSearch.Host,
		Timeout: cfg.JSearch.Timeout,
	})
	c.Embedder = embeddings.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel)
	c.Skills = skills.NewExtractor(cfg.OpenAI.APIKey, cfg.OpenAI.SkillsModel)
	c.Questions = questiongen.NewGenerator(cfg.OpenAI.APIKey, cfg.OpenAI.InterviewModel)
	c.Speech = speech.NewClient(speech.Config{
		APIKey:   cfg.OpenAI.APIKey,
		TTSModel: cfg.OpenAI.TTSModel,
		STTModel: cfg.OpenAI.STTModel,
		Voice:    cfg.OpenAI.Voice,
	})

	if cfg.OpenAI.APIKey == "" {
		logx.Warn("OPENAI_API_KEY is not set, embeddings, skill extraction and speech are unavailable")
	}
	if !c.Feed.Configured() {
		logx.Warn("JSEARCH_API_KEY is not set, ingestion runs will be refused")
	}

	return nil
}

func (c *Container) newIndex() (vectorindex.Index, error) {
	switch backend := c.Config.Vector.Backend; backend {
	case "", "pgvector":
		return vectorindex.NewPgVectorIndex(c.DB), nil
	case "qdrant":
		ix, err := vectorindex.NewQdrantIndex(c.Config.Vector.QdrantURL, c.Config.Vector.QdrantAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to qdrant: %w", err)
		}
		c.closers = append(c.closers, ix.Close)
		return ix, nil
	case "memory":
		logx.Warn("Using in-memory vector index, points are lost on restart")
		return vectorindex.NewMemoryIndex(), nil
	default:
		return nil, fmt.Errorf("unknown VECTOR_BACKEND %q", backend)
	}
}

func (c *Container) initServices() {
	cfg := c.Config

	// --- Repositories ---
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	candidateRepo := candidateinfra.NewPostgresCandidateRepository(c.DB)

	// --- Domain Services ---
	c.Profiles = candidatesrv.NewProfileAdapter(candidateRepo)

	c.IngestionService = jobsrv.NewIngestionService(
		jobRepo,
		c.Index,
		c.Feed,
		c.Embedder,
		c.Skills,
		c.RunLock,
		jobsrv.IngestionDefaults{
			Queries:    cfg.Ingest.Queries,
			MaxJobs:    cfg.Ingest.MaxJobs,
			MaxPages:   cfg.Ingest.MaxPages,
			Country:    cfg.Ingest.Country,
			DatePosted: cfg.Ingest.DatePosted,
			LockTTL:    cfg.Ingest.LockTTL,
		},
	)
	c.MatchService = jobsrv.NewMatchService(jobRepo, c.Index, c.Profiles, c.Skills)
	c.Dispatcher = jobsrv.NewDispatcher(c.Queue)

	c.CandidateService = candidatesrv.NewCandidateService(
		candidateRepo,
		c.FileSystem,
		pdf.NewTextExtractor(),
		c.Skills,
		c.Embedder,
		c.Index,
	)
	c.InterviewService = interviewsrv.NewService(c.Questions, c.Profiles)
	c.SpeechService = interviewsrv.NewSpeechService(c.Speech, c.Speech)

	// --- Handlers ---
	c.JobHandlers = jobapi.NewHandlers(c.MatchService)
	c.CandidateHandlers = candidateapi.NewHandlers(c.CandidateService)
	c.InterviewHandlers = interviewapi.NewHandlers(c.InterviewService, c.SpeechService)
}

// initAuth loads the identity provider keys. Only the HTTP server needs it.
func (c *Container) initAuth(ctx context.Context) error {
	clerk := c.Config.Clerk
	if clerk.JWKSURL == "" {
		logx.Warn("CLERK_JWKS_URL is not set, authenticated routes will reject every request")
		c.AuthMiddleware = func(*fiber.Ctx) error {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication is not configured")
		}
		return nil
	}

	verifier, err := candidateauth.NewJWKSVerifier(ctx, clerk.JWKSURL, clerk.Issuer)
	if err != nil {
		return err
	}
	c.AuthMiddleware = candidateauth.Middleware(verifier)
	return nil
}

// Health reports the reachability of each backing store
func (c *Container) Health(ctx context.Context) map[string]bool {
	redisOK := c.Redis == nil || c.Redis.Ping(ctx).Err() == nil
	return map[string]bool{
		"db":     c.DB.PingContext(ctx) == nil,
		"redis":  redisOK,
		"vector": c.Index.Ping(ctx) == nil,
	}
}
