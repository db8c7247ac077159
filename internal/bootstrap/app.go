package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/applications"
	"interview-prep-api/internal/documents"
	"interview-prep-api/internal/events"
	"interview-prep-api/internal/interview"
	"interview-prep-api/internal/jobdesc"
	"interview-prep-api/internal/llm"
	"interview-prep-api/internal/llm/openai"
	"interview-prep-api/internal/lookup"
	"interview-prep-api/internal/pdfexport"
	"interview-prep-api/internal/resumes"
	"interview-prep-api/internal/services/health"
	"interview-prep-api/internal/shared/config"
	"interview-prep-api/internal/shared/server"
	"interview-prep-api/internal/shared/storage/db"
	"interview-prep-api/internal/shared/storage/object"
	localstore "interview-prep-api/internal/shared/storage/object/local"
	s3store "interview-prep-api/internal/shared/storage/object/s3"
	"interview-prep-api/internal/shared/telemetry"
	"interview-prep-api/internal/speech"
)

// App holds shared dependencies and the router built from them.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Events events.Publisher

	DocumentsService    *documents.Service
	ResumesService      *resumes.Service
	ApplicationsService *applications.Service
	PDFService          *pdfexport.Service
}

// Build wires every dependency from cfg. Missing optional credentials degrade the
// matching feature instead of failing the build.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, storeKind, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	completer, transcriber, llmReady, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}
	publisher := buildEvents(ctx, cfg)
	tts, err := buildTTS(cfg)
	if err != nil {
		return nil, err
	}

	docSvc := &documents.Service{Store: store, PresignTTL: cfg.S3PresignTTL}
	resumeSvc := &resumes.Service{
		LLM:    completer,
		Store:  store,
		Docs:   docSvc,
		Events: publisher,
	}

	var appRepo applications.Repo = applications.NewMemoryRepo()
	if sqlDB != nil {
		appRepo = &applications.PGRepo{DB: sqlDB}
	}
	appSvc := &applications.Service{Repo: appRepo}

	pdfSvc := &pdfexport.Service{
		Renderer: pdfexport.NewChromeRenderer(cfg.ChromePath),
		Coord:    pdfexport.NewCoordinator(),
	}

	var synth speech.Synthesizer
	if tts != nil {
		synth = tts
	}

	app := &App{
		Config:              cfg,
		DB:                  sqlDB,
		Store:               store,
		Events:              publisher,
		DocumentsService:    docSvc,
		ResumesService:      resumeSvc,
		ApplicationsService: appSvc,
		PDFService:          pdfSvc,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Health:       health.NewService(storeKind, sqlDB, llmReady, synth != nil),
		Resumes:      resumes.NewHandler(resumeSvc),
		Documents:    documents.NewHandler(docSvc),
		Applications: applications.NewHandler(appSvc),
		PDF:          pdfexport.NewHandler(pdfSvc),
		JobDesc:      jobdesc.NewHandler(&jobdesc.Service{LLM: completer}),
		Interview:    interview.NewHandler(&interview.Service{LLM: completer}),
		Speech:       speech.NewHandler(&speech.Service{TTS: synth, STT: transcriber}),
		Lookup:       lookup.NewHandler(buildLookup(cfg)),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": storeKind,
		"database":     sqlDB != nil,
		"llm":          llmReady,
		"speech":       synth != nil,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Info("bootstrap.db.memory", map[string]any{"reason": "DATABASE_URL empty"})
		return nil, nil
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db.memory", map[string]any{"reason": "connect failed", "error": err.Error()})
			return nil, nil
		}
		return nil, fmt.Errorf("database: %w", err)
	}
	return sqlDB, nil
}

// buildStore returns a nil store, not an error, when S3 credentials are absent.
func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, string, error) {
	if cfg.ObjectStoreType == "local" {
		return localstore.New(cfg.LocalStoreDir), "local", nil
	}
	if !cfg.S3Configured() {
		telemetry.Warn("bootstrap.store.not_configured", map[string]any{"bucket_set": cfg.S3Bucket != ""})
		return nil, "", nil
	}
	opts := s3store.Options{
		Region:   cfg.AWSRegion,
		Bucket:   cfg.S3Bucket,
		Endpoint: cfg.S3Endpoint,
	}
	if !cfg.AWSUseDefaultCreds {
		opts.AccessKeyID = cfg.AWSAccessKeyID
		opts.SecretAccessKey = cfg.AWSSecretAccessKey
	}
	store, err := s3store.New(ctx, opts)
	if err != nil {
		return nil, "", fmt.Errorf("object store: %w", err)
	}
	return store, "s3", nil
}

func buildLLM(cfg config.Config) (llm.Completer, llm.Transcriber, bool, error) {
	if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
		telemetry.Warn("bootstrap.llm.not_configured", nil)
		return llm.PlaceholderClient{}, llm.PlaceholderClient{}, false, nil
	}
	client, err := openai.NewClient(openai.Options{
		APIKey:          cfg.OpenAIAPIKey,
		Model:           cfg.LLMModel,
		TranscribeModel: cfg.TranscribeModel,
		Timeout:         cfg.OpenAITimeout,
	})
	if err != nil {
		return nil, nil, false, err
	}
	return client, client, true, nil
}

func buildEvents(ctx context.Context, cfg config.Config) events.Publisher {
	if strings.TrimSpace(cfg.EventsQueueURL) == "" {
		return events.NopPublisher{}
	}
	opts := events.SQSOptions{QueueURL: cfg.EventsQueueURL, Region: cfg.AWSRegion}
	if !cfg.AWSUseDefaultCreds {
		opts.AccessKeyID = cfg.AWSAccessKeyID
		opts.SecretAccessKey = cfg.AWSSecretAccessKey
	}
	pub, err := events.NewSQSPublisher(ctx, opts)
	if err != nil {
		telemetry.Warn("bootstrap.events.disabled", map[string]any{"error": err.Error()})
		return events.NopPublisher{}
	}
	return pub
}

func buildTTS(cfg config.Config) (*speech.ElevenLabs, error) {
	if strings.TrimSpace(cfg.ElevenLabsAPIKey) == "" {
		return nil, nil
	}
	return speech.NewElevenLabs(speech.ElevenLabsOptions{
		APIKey:  cfg.ElevenLabsAPIKey,
		VoiceID: cfg.ElevenLabsVoiceID,
	})
}

// buildLookup leaves Locations unset when the maps client cannot be built, so
// location searches fall back.
func buildLookup(cfg config.Config) *lookup.Service {
	svc := &lookup.Service{Institutions: lookup.NewScorecard(cfg.CollegeScorecardAPIKey)}
	geocoder, err := lookup.NewGeocoder(lookup.GeocoderOptions{APIKey: cfg.GoogleMapsAPIKey})
	if err != nil {
		telemetry.Warn("bootstrap.lookup.geocoder_disabled", map[string]any{"error": err.Error()})
		return svc
	}
	svc.Locations = geocoder
	return svc
}
