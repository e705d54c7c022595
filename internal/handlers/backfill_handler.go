package handlers

import (
	"errors"
	"net/http"

	"github.com/docuchat-ai/docuchat/internal/domains/backfill"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/gin-gonic/gin"
)

// BackfillHandler handles embedding backfill triggers
type BackfillHandler struct {
	backfillService backfill.BackfillService
	logger          *Logger.Logger
}

func NewBackfillHandler(backfillService backfill.BackfillService, logger *Logger.Logger) *BackfillHandler {
	return &BackfillHandler{
		backfillService: backfillService,
		logger:          logger,
	}
}

// Embed handles the backfill trigger
// @Summary Generate embeddings for chunks that lack one
// @Tags Embeddings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body backfill.Request true "Chunk ids and schema target"
// @Success 200 {object} SuccessResponse "All chunks attempted"
// @Success 204 "No chunks needed embedding"
// @Failure 400 {object} ErrorResponse "Invalid request parameters"
// @Failure 500 {object} ErrorResponse "Storage query failure"
// @Router /embed [post]
func (h *BackfillHandler) Embed(c *gin.Context) {
	var req backfill.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters."})
		return
	}

	summary, err := h.backfillService.Run(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, backfill.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request parameters."})
		default:
			h.logger.Errorf("backfill error: %v", err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to query chunks for backfill"})
		}
		return
	}

	if summary.NothingToDo() {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Processing complete"})
}
