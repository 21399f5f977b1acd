package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"talent-backend/internal/analysis"
	"talent-backend/internal/matching"
	"talent-backend/internal/profiles"
	"talent-backend/internal/queue"
	"talent-backend/internal/shared/config"
	"talent-backend/internal/shared/server"
	"talent-backend/internal/shared/storage/db"
	"talent-backend/internal/signals"
	"talent-backend/internal/suggest"
)

// App holds shared dependencies wired from configuration. Postgres and
// redis are optional: without DATABASE_URL repos fall back to memory, and
// without REDIS_ADDR analysis runs on in-process goroutines.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Queue  *queue.RedisQueue

	CandidatesRepo profiles.CandidatesRepo
	JobsRepo       profiles.JobsRepo
	AnalysisStore  analysis.Store
	ShortlistRepo  matching.ShortlistRepo

	ProfilesService *profiles.Service
	MatchEngine     *matching.Engine
	AnalysisService *analysis.Service

	ProfilesHandler *profiles.Handler
	MatchingHandler *matching.Handler
	AnalysisHandler *analysis.Handler
}

// Build prepares shared dependencies without wiring routes. dbOpts picks
// the pool profile for the calling binary (server vs. worker).
func Build(ctx context.Context, cfg config.Config, dbOpts db.Options) (*App, error) {
	app := &App{Config: cfg}

	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(dbOpts))
		if err != nil {
			log.Printf("database connect failed, falling back to memory repos: %v", err)
		} else if err := db.RunMigrations(ctx, conn); err != nil {
			log.Printf("migrations failed, falling back to memory repos: %v", err)
			conn.Close()
		} else {
			app.DB = conn
		}
	}

	if app.DB != nil {
		app.CandidatesRepo = &profiles.PGCandidatesRepo{DB: app.DB}
		app.JobsRepo = &profiles.PGJobsRepo{DB: app.DB}
		app.AnalysisStore = &analysis.PGStore{DB: app.DB}
		app.ShortlistRepo = &matching.PGShortlistRepo{DB: app.DB}
	} else {
		app.CandidatesRepo = profiles.NewMemoryCandidatesRepo()
		app.JobsRepo = profiles.NewMemoryJobsRepo()
		app.AnalysisStore = analysis.NewMemoryStore()
		app.ShortlistRepo = matching.NewMemoryShortlistRepo()
	}

	fetcher := signals.NewClient(cfg.GithubToken)
	suggester, err := buildSuggester(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var dispatcher analysis.Dispatcher
	if cfg.RedisAddr != "" {
		app.Queue = queue.NewRedisQueue(cfg.RedisAddr, cfg.RedisQueueName)
		if err := app.Queue.Ping(ctx); err != nil {
			log.Printf("redis unreachable, falling back to in-process execution: %v", err)
			app.Queue.Close()
			app.Queue = nil
		} else {
			dispatcher = &queue.AnalysisDispatcher{Client: app.Queue}
		}
	}

	app.ProfilesService = &profiles.Service{Candidates: app.CandidatesRepo, Jobs: app.JobsRepo}
	app.AnalysisService = analysis.NewService(app.AnalysisStore, app.CandidatesRepo, fetcher, suggester, dispatcher)
	app.MatchEngine = matching.NewEngine(app.JobsRepo, app.CandidatesRepo, &analysisSignalSource{store: app.AnalysisStore}, app.ShortlistRepo)

	app.ProfilesHandler = profiles.NewHandler(app.ProfilesService)
	app.MatchingHandler = matching.NewHandler(app.MatchEngine)
	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService)
	return app, nil
}

// BuildServer wires the HTTP router on top of Build.
func BuildServer(ctx context.Context, cfg config.Config) (*App, error) {
	app, err := Build(ctx, cfg, db.DefaultServerOptions())
	if err != nil {
		return nil, err
	}
	app.Router = server.NewRouter(cfg,
		app.ProfilesHandler.RegisterRoutes,
		app.MatchingHandler.RegisterRoutes,
		app.AnalysisHandler.RegisterRoutes,
	)
	return app, nil
}

// Close releases held connections.
func (a *App) Close() {
	if a.Queue != nil {
		a.Queue.Close()
	}
	if a.DB != nil {
		a.DB.Close()
	}
}

func buildSuggester(ctx context.Context, cfg config.Config) (suggest.Client, error) {
	if cfg.GeminiAPIKey == "" {
		log.Printf("GEMINI_API_KEY not set, using placeholder suggestions")
		return suggest.PlaceholderClient{}, nil
	}
	return suggest.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.SuggestModel)
}

// analysisSignalSource feeds completed analysis scores into the match
// engine. Anything not completed yields no signal.
type analysisSignalSource struct {
	store analysis.Store
}

func (s *analysisSignalSource) AnalysisSignals(ctx context.Context, candidateID string) (*matching.AnalysisSignals, error) {
	record, err := s.store.Load(ctx, candidateID)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if record.Status != analysis.StatusCompleted || record.AnalyzedAt == nil {
		return nil, nil
	}
	return &matching.AnalysisSignals{
		ProjectDepth: record.Scores.ProjectDepth,
		CodeQuality:  record.Scores.CodeQuality,
		AnalyzedAt:   *record.AnalyzedAt,
	}, nil
}
