package chunk

import (
	"time"

	"github.com/docuchat-ai/docuchat/internal/database/dbtypes"
	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChunkEntity maps the document_chunks table. The embedding column stays
// NULL until the backfill worker fills it in.
type ChunkEntity struct {
	ID         uuid.UUID       `gorm:"primaryKey;type:char(36);not null"`
	DocumentID uuid.UUID       `gorm:"column:document_id;type:char(36);not null;index"`
	Content    string          `gorm:"column:content;type:text;not null"`
	Embedding  *dbtypes.Vector `gorm:"column:embedding;type:json"`
	CreatedAt  time.Time       `gorm:"autoCreateTime(3)"`
}

func (ChunkEntity) TableName() string {
	return "document_chunks"
}

func (c *ChunkEntity) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ToDomain converts ChunkEntity to the domain Chunk
func (c *ChunkEntity) ToDomain() *document.Chunk {
	var embedding dbtypes.Vector
	if c.Embedding != nil {
		embedding = *c.Embedding
	}
	return &document.Chunk{
		ID:         c.ID,
		DocumentID: c.DocumentID,
		Content:    c.Content,
		Embedding:  embedding,
		CreatedAt:  c.CreatedAt,
	}
}
