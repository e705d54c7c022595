package document

import (
	"context"
	"errors"
	"fmt"

	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormDocumentRepo struct {
	db *gorm.DB
}

// GetByID implements document.DocumentRepository
func (g *GormDocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var entity DocumentEntity
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, document.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document by ID: %w", err)
	}
	return entity.ToDomain(), nil
}

// NewGormDocumentRepo creates a GORM-based document repository
func NewGormDocumentRepo(db *gorm.DB) document.DocumentRepository {
	return &GormDocumentRepo{db: db}
}
