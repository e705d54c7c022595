package handlers

import (
	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/internal/runtime/generation"
)

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Processing complete"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// IngestRequest triggers processing of one uploaded document
type IngestRequest struct {
	DocumentID string `json:"documentId" binding:"required" example:"550e8400-e29b-41d4-a716-446655440000"`
}

// ChatRequest carries the conversation and the precomputed query embedding
type ChatRequest struct {
	Messages  []generation.Message `json:"messages" binding:"required"`
	Embedding dbtypes.Vector       `json:"embedding" binding:"required"`
}
