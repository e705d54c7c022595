package chunk

import (
	"context"
	"fmt"

	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormChunkRepo struct {
	db *gorm.DB
}

// ReplaceForDocument implements document.ChunkRepository. Existing chunks
// for the document are dropped and the new contents inserted in one
// transaction, so re-ingesting a document never appends duplicates.
func (g *GormChunkRepo) ReplaceForDocument(ctx context.Context, documentID uuid.UUID, contents []string) ([]document.Chunk, error) {
	entities := make([]ChunkEntity, len(contents))
	for i, content := range contents {
		entities[i] = ChunkEntity{
			ID:         uuid.New(),
			DocumentID: documentID,
			Content:    content,
		}
	}

	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", documentID).Delete(&ChunkEntity{}).Error; err != nil {
			return fmt.Errorf("failed to delete prior chunks: %w", err)
		}
		if len(entities) == 0 {
			return nil
		}
		if err := tx.Create(&entities).Error; err != nil {
			return fmt.Errorf("failed to insert chunks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	chunks := make([]document.Chunk, len(entities))
	for i, entity := range entities {
		chunks[i] = *entity.ToDomain()
	}
	return chunks, nil
}

// FindMissingEmbedding implements document.ChunkRepository
func (g *GormChunkRepo) FindMissingEmbedding(ctx context.Context, ids []uuid.UUID) ([]document.Chunk, error) {
	var entities []ChunkEntity
	err := g.db.WithContext(ctx).
		Where("id IN ?", ids).
		Where("embedding IS NULL").
		Order("created_at ASC").
		Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks missing embeddings: %w", err)
	}

	chunks := make([]document.Chunk, len(entities))
	for i, entity := range entities {
		chunks[i] = *entity.ToDomain()
	}
	return chunks, nil
}

// UpdateEmbedding implements document.ChunkRepository
func (g *GormChunkRepo) UpdateEmbedding(ctx context.Context, id uuid.UUID, embedding dbtypes.Vector) error {
	result := g.db.WithContext(ctx).
		Model(&ChunkEntity{}).
		Where("id = ?", id).
		Update("embedding", &embedding)
	if result.Error != nil {
		return fmt.Errorf("failed to update embedding: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return document.ErrChunkNotFound
	}
	return nil
}

// FindEmbedded implements document.ChunkRepository
func (g *GormChunkRepo) FindEmbedded(ctx context.Context) ([]document.Chunk, error) {
	var entities []ChunkEntity
	err := g.db.WithContext(ctx).
		Where("embedding IS NOT NULL").
		Find(&entities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query embedded chunks: %w", err)
	}

	chunks := make([]document.Chunk, len(entities))
	for i, entity := range entities {
		chunks[i] = *entity.ToDomain()
	}
	return chunks, nil
}

// NewGormChunkRepo creates a GORM-based chunk repository
func NewGormChunkRepo(db *gorm.DB) document.ChunkRepository {
	return &GormChunkRepo{db: db}
}
