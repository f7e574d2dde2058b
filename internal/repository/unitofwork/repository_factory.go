package unitofwork

import (
	"hybrid-brain/internal/repository/contract"

	"gorm.io/gorm"
)

// IRepositoryFactory builds repositories bound to a specific *gorm.DB, which
// may be a transaction handle owned by a unit of work.
type IRepositoryFactory interface {
	TranscriptRepository(db *gorm.DB) contract.ITranscriptRepository
	TranscriptEmbeddingRepository(db *gorm.DB) contract.ITranscriptEmbeddingRepository
}
