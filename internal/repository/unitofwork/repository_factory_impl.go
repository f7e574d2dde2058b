package unitofwork

import (
	"hybrid-brain/internal/repository/contract"
	"hybrid-brain/internal/repository/implementation"

	"gorm.io/gorm"
)

type repositoryFactory struct{}

func NewRepositoryFactory() IRepositoryFactory {
	return &repositoryFactory{}
}

func (f *repositoryFactory) TranscriptRepository(db *gorm.DB) contract.ITranscriptRepository {
	return implementation.NewTranscriptRepository(db)
}

func (f *repositoryFactory) TranscriptEmbeddingRepository(db *gorm.DB) contract.ITranscriptEmbeddingRepository {
	return implementation.NewTranscriptEmbeddingRepository(db)
}
