package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"audiofields-backend/internal/analyses"
	"audiofields-backend/internal/audios"
	"audiofields-backend/internal/gcloud"
	"audiofields-backend/internal/intake"
	"audiofields-backend/internal/language"
	"audiofields-backend/internal/services/health"
	"audiofields-backend/internal/shared/config"
	"audiofields-backend/internal/shared/server"
	"audiofields-backend/internal/shared/storage/db"
	"audiofields-backend/internal/shared/storage/object"
	localstore "audiofields-backend/internal/shared/storage/object/local"
	s3store "audiofields-backend/internal/shared/storage/object/s3"
	"audiofields-backend/internal/shared/telemetry"
	"audiofields-backend/internal/speech"
	"audiofields-backend/internal/spreadsheets"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	AudiosRepo       audios.Repo
	SpreadsheetsRepo spreadsheets.Repo
	AnalysesRepo     analyses.Repo

	AudiosService       *audios.Service
	SpreadsheetsService *spreadsheets.Service
	AnalysesService     *analyses.Service
	IntakeService       *intake.Service
	IntakeHandler       *intake.Handler
}

// Build prepares every dependency and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.RecordStoreType) == "" {
		cfg.RecordStoreType = "file"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	recognizer, analyzer, err := buildGoogleClients(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	if err := buildRepos(app); err != nil {
		return nil, err
	}

	app.AudiosService = audios.NewService(recognizer, app.AudiosRepo)
	app.SpreadsheetsService = spreadsheets.NewService(app.SpreadsheetsRepo)
	app.AnalysesService = analyses.NewService(analyzer, app.AnalysesRepo)
	app.IntakeService = &intake.Service{
		Audios:       app.AudiosService,
		Spreadsheets: app.SpreadsheetsService,
		Analyses:     app.AnalysesService,
		Store:        store,
	}
	app.IntakeHandler = intake.NewHandler(app.IntakeService, store, cfg.MaxUploadBytes)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		IntakeHandler: app.IntakeHandler,
		Health:        health.NewService(pinger(sqlDB)),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"object_store": cfg.ObjectStoreType,
		"record_store": cfg.RecordStoreType,
	})
	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if cfg.RecordStoreType != "postgres" {
		return nil, nil
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("RECORD_STORE=postgres requires DATABASE_URL")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return nil, err
	}
	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.FilesDir), nil
	}
}

func buildRepos(app *App) error {
	if app.DB != nil {
		app.AudiosRepo = &audios.PGRepo{DB: app.DB}
		app.SpreadsheetsRepo = &spreadsheets.PGRepo{DB: app.DB}
		app.AnalysesRepo = &analyses.PGRepo{DB: app.DB}
		return nil
	}

	dir := app.Config.RecordsDir
	audioRepo, err := audios.NewFileRepo(dir)
	if err != nil {
		return err
	}
	sheetRepo, err := spreadsheets.NewFileRepo(dir)
	if err != nil {
		return err
	}
	analysisRepo, err := analyses.NewFileRepo(dir)
	if err != nil {
		return err
	}
	app.AudiosRepo = audioRepo
	app.SpreadsheetsRepo = sheetRepo
	app.AnalysesRepo = analysisRepo
	return nil
}

func buildGoogleClients(ctx context.Context, cfg config.Config) (speech.Recognizer, language.Analyzer, error) {
	speechAPI, err := gcloud.New(ctx, gcloud.Options{
		Endpoint:        cfg.SpeechEndpoint,
		APIKey:          cfg.GoogleAPIKey,
		CredentialsFile: cfg.GoogleCredentialsFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("speech client: %w", err)
	}
	languageAPI, err := gcloud.New(ctx, gcloud.Options{
		Endpoint:        cfg.LanguageEndpoint,
		APIKey:          cfg.GoogleAPIKey,
		CredentialsFile: cfg.GoogleCredentialsFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("language client: %w", err)
	}
	return speech.NewClient(speechAPI, speech.DefaultConfig()), language.NewClient(languageAPI), nil
}

// pinger keeps a nil *sql.DB from becoming a non-nil interface.
func pinger(sqlDB *sql.DB) health.Pinger {
	if sqlDB == nil {
		return nil
	}
	return sqlDB
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
