package contract

import (
	"context"

	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/repository/specification"
)

type ITranscriptRepository interface {
	Create(ctx context.Context, transcript *entity.Transcript) (*entity.Transcript, error)
	Update(ctx context.Context, transcript *entity.Transcript) (*entity.Transcript, error)
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.Transcript, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	Delete(ctx context.Context, specs ...specification.Specification) error
}
