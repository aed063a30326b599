package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-booster/internal/llm"
	openai "resume-booster/internal/llm/openai"
	"resume-booster/internal/resumes"
	"resume-booster/internal/services/health"
	"resume-booster/internal/shared/auth"
	"resume-booster/internal/shared/config"
	"resume-booster/internal/shared/metrics"
	"resume-booster/internal/shared/server"
	"resume-booster/internal/shared/storage/db"
	"resume-booster/internal/shared/storage/object"
	gcsstore "resume-booster/internal/shared/storage/object/gcs"
	inlinestore "resume-booster/internal/shared/storage/object/inline"
	localstore "resume-booster/internal/shared/storage/object/local"
	miniostore "resume-booster/internal/shared/storage/object/minio"
	s3store "resume-booster/internal/shared/storage/object/s3"
	"resume-booster/internal/shared/telemetry"
	"resume-booster/internal/shared/validation"
	"resume-booster/internal/suggestions"
	"resume-booster/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	Store           object.ObjectStore
	LLM             llm.Client
	Verifier        auth.Verifier
	Metrics         *metrics.Metrics
	UsersRepo       users.Repo
	ResumesRepo     resumes.Repo
	SuggestionsRepo suggestions.Repo
	UsersService    *users.Service
	ResumesService  *resumes.Service
	HealthService   *health.Service
	UsersHandler    *users.Handler
	ResumesHandler  *resumes.Handler
}

type options struct {
	llm      llm.Client
	store    object.ObjectStore
	verifier auth.Verifier
}

// Option overrides a collaborator Build would otherwise derive from config.
type Option func(*options)

// WithLLMClient replaces the analysis client.
func WithLLMClient(client llm.Client) Option {
	return func(o *options) { o.llm = client }
}

// WithObjectStore replaces the file store.
func WithObjectStore(store object.ObjectStore) Option {
	return func(o *options) { o.store = store }
}

// WithVerifier replaces the bearer token verifier.
func WithVerifier(verifier auth.Verifier) Option {
	return func(o *options) { o.verifier = verifier }
}

// Build prepares shared dependencies and wires routes.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	telemetry.Init(cfg.LogLevel)
	validation.Init()
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := o.store
	if store == nil {
		if store, err = buildStore(ctx, cfg); err != nil {
			return nil, err
		}
	}

	verifier := o.verifier
	if verifier == nil {
		if verifier, err = buildVerifier(ctx, cfg); err != nil {
			return nil, err
		}
	}

	client := o.llm
	if client == nil {
		if client, err = buildLLM(cfg); err != nil {
			return nil, err
		}
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		LLM:      client,
		Verifier: verifier,
		Metrics:  metrics.New(),
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        app.Config,
		Health:        app.HealthService,
		Metrics:       app.Metrics,
		Verifier:      app.Verifier,
		UserResolver:  app.UsersService,
		UserHandler:   app.UsersHandler,
		ResumeHandler: app.ResumesHandler,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":           cfg.Env,
		"file_store":    cfg.FileStore,
		"auth_provider": cfg.AuthProvider,
		"database":      sqlDB != nil,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, db.DefaultLambdaOptions().Merge(db.Options(cfg.DB)))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.DefaultServerOptions().Merge(db.Options(cfg.DB)))
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.FileStore {
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	case "s3":
		if strings.TrimSpace(cfg.S3.Bucket) == "" {
			return nil, fmt.Errorf("FILE_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, s3store.Options{
			Region:          cfg.S3.Region,
			Bucket:          cfg.S3.Bucket,
			Prefix:          cfg.S3.Prefix,
			KMSKeyID:        cfg.S3.KMSKeyID,
			Endpoint:        cfg.S3.Endpoint,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	case "gcs":
		if strings.TrimSpace(cfg.GCS.Bucket) == "" {
			return nil, fmt.Errorf("FILE_STORE=gcs requires GCS_BUCKET")
		}
		return gcsstore.New(ctx, gcsstore.Options{
			Bucket:          cfg.GCS.Bucket,
			Prefix:          cfg.GCS.Prefix,
			CredentialsFile: cfg.GCS.CredentialsFile,
			CredentialsJSON: cfg.GCS.CredentialsJSON,
		})
	case "minio":
		return miniostore.New(miniostore.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
			PublicURL: cfg.Minio.PublicURL,
		})
	default:
		return inlinestore.New(), nil
	}
}

func buildVerifier(ctx context.Context, cfg config.Config) (auth.Verifier, error) {
	if cfg.AuthProvider == "dev" {
		if !cfg.IsDevLike() {
			return nil, fmt.Errorf("AUTH_PROVIDER=dev is not allowed in %s", cfg.Env)
		}
		return auth.NewHMACVerifier(cfg.JWTSecret)
	}
	return auth.NewFirebaseVerifier(ctx, cfg.Firebase.ProjectID)
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider == "openai" && strings.TrimSpace(cfg.OpenAI.APIKey) != "" {
		return openai.NewClient(openai.Options{
			APIKey:  cfg.OpenAI.APIKey,
			Model:   cfg.LLMModel,
			BaseURL: cfg.OpenAI.BaseURL,
			Timeout: cfg.OpenAI.Timeout,
		})
	}
	if cfg.IsDevLike() {
		telemetry.Warn("bootstrap.llm_placeholder", map[string]any{"provider": cfg.LLMProvider})
		return llm.PlaceholderClient{}, nil
	}
	return nil, fmt.Errorf("OPENAI_API_KEY is required for LLM_PROVIDER=%s", cfg.LLMProvider)
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.SuggestionsRepo = &suggestions.PGRepo{DB: app.DB}
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.SuggestionsRepo = suggestions.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo)
	app.ResumesService = &resumes.Service{
		Repo:           app.ResumesRepo,
		Suggestions:    app.SuggestionsRepo,
		Store:          app.Store,
		LLM:            app.LLM,
		Metrics:        app.Metrics,
		MaxUploadBytes: app.Config.MaxUploadBytes,
	}
	app.HealthService = health.NewService(app.DB, app.Config.Env)
	app.UsersHandler = users.NewHandler(app.UsersService)
	app.ResumesHandler = resumes.NewHandler(app.ResumesService)
}
