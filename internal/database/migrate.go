package database

import (
	chunkRepo "github.com/docuchat-ai/docuchat/internal/repository/chunk"
	documentRepo "github.com/docuchat-ai/docuchat/internal/repository/document"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) {
	db.AutoMigrate(
		&documentRepo.DocumentEntity{},
		&chunkRepo.ChunkEntity{},
	)
}
