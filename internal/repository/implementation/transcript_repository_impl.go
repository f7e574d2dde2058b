package implementation

import (
	"context"
	"errors"

	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/mapper"
	"hybrid-brain/internal/model"
	"hybrid-brain/internal/repository/contract"
	"hybrid-brain/internal/repository/specification"

	"gorm.io/gorm"
)

type transcriptRepository struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) contract.ITranscriptRepository {
	return &transcriptRepository{db: db}
}

func (r *transcriptRepository) applySpecifications(ctx context.Context, specs []specification.Specification) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Transcript{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	return query
}

func (r *transcriptRepository) Create(ctx context.Context, transcript *entity.Transcript) (*entity.Transcript, error) {
	transcriptModel := mapper.TranscriptToModel(transcript)
	if err := r.db.WithContext(ctx).Create(transcriptModel).Error; err != nil {
		return nil, err
	}
	return mapper.TranscriptToEntity(transcriptModel), nil
}

func (r *transcriptRepository) Update(ctx context.Context, transcript *entity.Transcript) (*entity.Transcript, error) {
	transcriptModel := mapper.TranscriptToModel(transcript)
	if err := r.db.WithContext(ctx).Save(transcriptModel).Error; err != nil {
		return nil, err
	}
	return mapper.TranscriptToEntity(transcriptModel), nil
}

func (r *transcriptRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Transcript, error) {
	var transcriptModel model.Transcript
	err := r.applySpecifications(ctx, specs).First(&transcriptModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.TranscriptToEntity(&transcriptModel), nil
}

func (r *transcriptRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.Transcript, error) {
	var transcriptModels []model.Transcript
	if err := r.applySpecifications(ctx, specs).Find(&transcriptModels).Error; err != nil {
		return nil, err
	}
	return mapper.TranscriptsToEntities(transcriptModels), nil
}

func (r *transcriptRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	if err := r.applySpecifications(ctx, specs).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *transcriptRepository) Delete(ctx context.Context, specs ...specification.Specification) error {
	return r.applySpecifications(ctx, specs).Delete(&model.Transcript{}).Error
}
