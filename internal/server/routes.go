package server

import (
	"github.com/docuchat-ai/docuchat/internal/domains/backfill"
	"github.com/docuchat-ai/docuchat/internal/domains/chat"
	"github.com/docuchat-ai/docuchat/internal/domains/ingestion"
	"github.com/docuchat-ai/docuchat/internal/handlers"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/gin-gonic/gin"
)

// Dependencies carries everything the HTTP layer needs.
type Dependencies struct {
	IngestionService ingestion.IngestionService
	BackfillService  backfill.BackfillService
	ChatService      chat.ChatService
	Logger           *Logger.Logger
}

func NewServerDependencies(
	ingestionService ingestion.IngestionService,
	backfillService backfill.BackfillService,
	chatService chat.ChatService,
	logger *Logger.Logger,
) Dependencies {
	return Dependencies{
		IngestionService: ingestionService,
		BackfillService:  backfillService,
		ChatService:      chatService,
		Logger:           logger,
	}
}

func InitializeRoutes(router *gin.Engine, dep Dependencies) {
	router.Use(handlers.CORSMiddleware())
	router.Use(handlers.RequestLoggerMiddleware(dep.Logger))
	router.Use(handlers.ErrorHandlerMiddleware(dep.Logger))

	ingestHandler := handlers.NewIngestHandler(dep.IngestionService, dep.Logger)
	backfillHandler := handlers.NewBackfillHandler(dep.BackfillService, dep.Logger)
	chatHandler := handlers.NewChatHandler(dep.ChatService, dep.Logger)

	v1 := router.Group("/api/v1")
	v1.Use(handlers.AuthorizationMiddleware())
	{
		v1.POST("/ingest", ingestHandler.Ingest)
		v1.POST("/embed", backfillHandler.Embed)
		v1.POST("/chat", chatHandler.Chat)
	}
}
