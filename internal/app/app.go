package app

import (
	"fmt"

	"github.com/docuchat-ai/docuchat/internal/config"
	"github.com/docuchat-ai/docuchat/internal/domains/backfill"
	"github.com/docuchat-ai/docuchat/internal/domains/chat"
	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/docuchat-ai/docuchat/internal/domains/ingestion"
	"github.com/docuchat-ai/docuchat/internal/extractor"
	chunkRepo "github.com/docuchat-ai/docuchat/internal/repository/chunk"
	documentRepo "github.com/docuchat-ai/docuchat/internal/repository/document"
	"github.com/docuchat-ai/docuchat/internal/repository/embedqueue"
	"github.com/docuchat-ai/docuchat/internal/runtime/embedding"
	"github.com/docuchat-ai/docuchat/internal/runtime/generation"
	"github.com/docuchat-ai/docuchat/internal/server"
	"github.com/docuchat-ai/docuchat/internal/storage"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/go-redis/redis"
	"gorm.io/gorm"
)

// App represents the application with all its dependencies
type App struct {
	Config *config.Settings
	Logger *Logger.Logger
	DB     *gorm.DB
	RC     *redis.Client

	DocumentRepo document.DocumentRepository
	ChunkRepo    document.ChunkRepository
	Queue        backfill.Queue
	Embedder     embedding.Embedder
	Generator    generation.Generator

	BackfillPoller *backfill.Poller
	ServerDeps     server.Dependencies
}

// NewApp wires all dependencies. Model clients are constructed once here
// and passed down; nothing holds ambient global state.
func NewApp(cfg *config.Settings, logger *Logger.Logger, db *gorm.DB, rc *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		RC:     rc,
	}

	if err := app.setupDependencies(); err != nil {
		return nil, err
	}

	return app, nil
}

func (a *App) setupDependencies() error {
	cfg := a.Config

	// repositories
	a.DocumentRepo = documentRepo.NewGormDocumentRepo(a.DB)
	a.ChunkRepo = chunkRepo.NewGormChunkRepo(a.DB)
	a.Queue = embedqueue.NewRedisQueue(a.RC)

	// model clients
	embedder, err := a.setupEmbedder()
	if err != nil {
		return err
	}
	a.Embedder = embedder

	generator, err := a.setupGenerator()
	if err != nil {
		return err
	}
	a.Generator = generator

	// external collaborators
	store := storage.NewObjectStore(cfg.Storage)
	ext := extractor.NewExtractor(cfg.Extractor)

	// services
	ingestionService := ingestion.NewIngestionService(
		a.DocumentRepo, a.ChunkRepo, store, ext, a.Queue, a.Logger.Named("ingestion"),
	)
	backfillService := backfill.NewBackfillService(
		a.ChunkRepo, a.Embedder, cfg.Backfill.Concurrency, cfg.Backfill.ItemTimeout, a.Logger.Named("backfill"),
	)
	retriever := chat.NewRetriever(
		a.ChunkRepo, cfg.Chat.MatchThreshold, cfg.Chat.MatchCount, cfg.Chat.RetrievalTimeout,
	)
	chatService := chat.NewChatService(
		retriever, a.Generator, cfg.Generation.Timeout, a.Logger.Named("chat"),
	)

	a.BackfillPoller = backfill.NewPoller(
		a.Queue, backfillService, cfg.Backfill.PollInterval, cfg.Backfill.PollBatch, a.Logger.Named("poller"),
	)

	a.ServerDeps = server.NewServerDependencies(
		ingestionService,
		backfillService,
		chatService,
		a.Logger,
	)

	return nil
}

func (a *App) setupEmbedder() (embedding.Embedder, error) {
	cfg := a.Config.Embedding
	switch cfg.Provider {
	case "", "tei":
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("embedding.base_url is required for the tei provider")
		}
		return embedding.NewTEIEmbedder(cfg.BaseURL, cfg.Timeout, a.Logger.Named("embedder")), nil
	case "gemini":
		return embedding.NewGeminiEmbedder(cfg.GeminiAPIKey, cfg.Model, cfg.Timeout, a.Logger.Named("embedder"))
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func (a *App) setupGenerator() (generation.Generator, error) {
	cfg := a.Config.Generation
	switch cfg.Provider {
	case "", "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("generation.open_ai_api_key is required for the openai provider")
		}
		return generation.NewOpenAIGenerator(cfg.OpenAIAPIKey, cfg.Model, cfg.MaxTokens), nil
	case "ollama":
		if cfg.OllamaURL == "" {
			return nil, fmt.Errorf("generation.ollama_url is required for the ollama provider")
		}
		return generation.NewOllamaGenerator(cfg.OllamaURL, cfg.Model, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unknown generation provider %q", cfg.Provider)
	}
}

// GetServerDependencies returns the server dependencies
func (a *App) GetServerDependencies() server.Dependencies {
	return a.ServerDeps
}
