package handlers

import (
	"errors"
	"net/http"

	"github.com/docuchat-ai/docuchat/internal/domains/chat"
	"github.com/docuchat-ai/docuchat/pkg/Logger"
	"github.com/gin-gonic/gin"
)

const timeoutMessage = "The request took too long to process. Please try again with a shorter question."
const genericFailureMessage = "An error occurred while processing your request. Please try again."

// ChatHandler handles grounded chat requests
type ChatHandler struct {
	chatService chat.ChatService
	logger      *Logger.Logger
}

func NewChatHandler(chatService chat.ChatService, logger *Logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

// Chat handles a question over the ingested documents
// @Summary Answer a question grounded on retrieved document chunks
// @Tags Chat
// @Accept json
// @Produce plain
// @Security BearerAuth
// @Param request body ChatRequest true "Conversation history and query embedding"
// @Success 200 {string} string "Streamed answer fragments"
// @Failure 401 {object} ErrorResponse "Missing authorization"
// @Failure 408 {object} ErrorResponse "Generation exceeded its time limit"
// @Failure 500 {object} ErrorResponse "Retrieval or generation failure"
// @Router /chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	stream, cancel, err := h.chatService.Answer(c.Request.Context(), req.Messages, req.Embedding)
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer cancel()
	defer stream.Close()

	// Pull the first fragment before committing a status code, so
	// failures that happen ahead of any token still map to a clean
	// JSON error.
	if !stream.Next() {
		if err := stream.Err(); err != nil {
			h.respondError(c, err)
			return
		}
		c.Status(http.StatusOK)
		return
	}

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/plain; charset=utf-8")

	flusher, _ := c.Writer.(http.Flusher)
	writeFragment := func(frag string) bool {
		if _, err := c.Writer.WriteString(frag); err != nil {
			return false
		}
		if flusher != nil {
			flusher.Flush()
		}
		return true
	}

	if !writeFragment(stream.Current()) {
		return
	}
	for stream.Next() {
		if !writeFragment(stream.Current()) {
			return
		}
	}
	if err := stream.Err(); err != nil {
		// Too late for a status code; just stop the stream.
		h.logger.Errorf("chat stream aborted: %v", err)
	}
}

func (h *ChatHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, chat.ErrGenerationTimeout):
		c.JSON(http.StatusRequestTimeout, ErrorResponse{Error: timeoutMessage})
	case errors.Is(err, chat.ErrRetrieval):
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: genericFailureMessage})
	default:
		h.logger.Errorf("chat error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: genericFailureMessage})
	}
}
