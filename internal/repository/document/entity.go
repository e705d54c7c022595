package document

import (
	"time"

	"github.com/docuchat-ai/docuchat/internal/domains/document"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentEntity maps the documents table. Rows are written by the upload
// flow; this service only reads them.
type DocumentEntity struct {
	ID          uuid.UUID `gorm:"primaryKey;type:char(36);not null"`
	Name        string    `gorm:"column:name;type:varchar(512);not null"`
	StoragePath string    `gorm:"column:storage_object_path;type:varchar(1024)"`
	CreatedAt   time.Time `gorm:"autoCreateTime(3)"`
}

func (DocumentEntity) TableName() string {
	return "documents"
}

func (d *DocumentEntity) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// ToDomain converts DocumentEntity to the domain Document
func (d *DocumentEntity) ToDomain() *document.Document {
	return &document.Document{
		ID:          d.ID,
		Name:        d.Name,
		StoragePath: d.StoragePath,
		CreatedAt:   d.CreatedAt,
	}
}
