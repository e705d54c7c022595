package handlers

import (
	"errors"
	"net/http"

	"github.com/docuchat-ai/docuchat/internal/domains/ingestion"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/gin-gonic/gin"
)

// IngestHandler handles document ingestion triggers
type IngestHandler struct {
	ingestionService ingestion.IngestionService
	logger           *Logger.Logger
}

func NewIngestHandler(ingestionService ingestion.IngestionService, logger *Logger.Logger) *IngestHandler {
	return &IngestHandler{
		ingestionService: ingestionService,
		logger:           logger,
	}
}

// Ingest handles the ingestion trigger
// @Summary Process an uploaded document into chunks
// @Tags Ingestion
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body IngestRequest true "Document to process"
// @Success 204 "Document processed"
// @Failure 400 {object} ErrorResponse "Unsupported file type or bad request"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 500 {object} ErrorResponse "Download, extraction or persistence failure"
// @Router /ingest [post]
func (h *IngestHandler) Ingest(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	count, err := h.ingestionService.Ingest(c.Request.Context(), req.DocumentID)
	if err != nil {
		switch {
		case errors.Is(err, ingestion.ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		case errors.Is(err, ingestion.ErrUnsupportedFileType):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Unsupported file type. Only .md and .pdf files are supported."})
		case errors.Is(err, ingestion.ErrDownloadFailed):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to download storage object"})
		case errors.Is(err, ingestion.ErrExtractionFailed):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to extract document text"})
		case errors.Is(err, ingestion.ErrPersistenceFailed):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to save document sections"})
		default:
			h.logger.Errorf("ingest error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		}
		return
	}

	// Zero stored chunks is still success: the document simply had no
	// extractable content.
	h.logger.Infof("ingested document %s: %d sections", req.DocumentID, count)
	c.Status(http.StatusNoContent)
}
