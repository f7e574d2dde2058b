package unitofwork

import "hybrid-brain/internal/repository/contract"

// IUnitOfWork scopes repository access to one logical operation. Begin opens
// a transaction; until then repositories run against the base connection.
// Rollback after Commit is a no-op, so callers defer Rollback unconditionally.
type IUnitOfWork interface {
	Begin() error
	Commit() error
	Rollback() error

	TranscriptRepository() contract.ITranscriptRepository
	TranscriptEmbeddingRepository() contract.ITranscriptEmbeddingRepository
}
