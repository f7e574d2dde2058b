package implementation

import (
	"context"

	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/mapper"
	"hybrid-brain/internal/model"
	"hybrid-brain/internal/repository/contract"
	"hybrid-brain/internal/repository/specification"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type transcriptEmbeddingRepository struct {
	db *gorm.DB
}

func NewTranscriptEmbeddingRepository(db *gorm.DB) contract.ITranscriptEmbeddingRepository {
	return &transcriptEmbeddingRepository{db: db}
}

func (r *transcriptEmbeddingRepository) applySpecifications(ctx context.Context, specs []specification.Specification) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.TranscriptEmbedding{})
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	return query
}

func (r *transcriptEmbeddingRepository) CreateBulk(ctx context.Context, embeddings []entity.TranscriptEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	embeddingModels := mapper.TranscriptEmbeddingsToModels(embeddings)
	return r.db.WithContext(ctx).Create(&embeddingModels).Error
}

func (r *transcriptEmbeddingRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]entity.TranscriptEmbedding, error) {
	var embeddingModels []model.TranscriptEmbedding
	if err := r.applySpecifications(ctx, specs).Find(&embeddingModels).Error; err != nil {
		return nil, err
	}
	embeddings := make([]entity.TranscriptEmbedding, 0, len(embeddingModels))
	for i := range embeddingModels {
		embeddings = append(embeddings, *mapper.TranscriptEmbeddingToEntity(&embeddingModels[i]))
	}
	return embeddings, nil
}

func (r *transcriptEmbeddingRepository) DeleteByTranscriptId(ctx context.Context, specs ...specification.Specification) error {
	return r.applySpecifications(ctx, specs).Delete(&model.TranscriptEmbedding{}).Error
}

type scoredEmbeddingRow struct {
	model.TranscriptEmbedding
	Similarity float32
	SourceURL  string
	Title      string
	Platform   string
}

// SearchSimilarWithScore runs a cosine similarity search over archived
// transcript chunks. Similarity is 1 - cosine distance, so higher is closer.
func (r *transcriptEmbeddingRepository) SearchSimilarWithScore(ctx context.Context, queryEmbedding []float32, limit int, threshold float32) ([]contract.ScoredTranscriptEmbedding, error) {
	queryVector := pgvector.NewVector(queryEmbedding)

	var rows []scoredEmbeddingRow
	err := r.db.WithContext(ctx).
		Table("transcript_embeddings").
		Select(`transcript_embeddings.*,
			1 - (transcript_embeddings.embedding_value <=> ?) as similarity,
			transcripts.source_url as source_url,
			transcripts.title as title,
			transcripts.platform as platform`, queryVector).
		Joins("JOIN transcripts ON transcripts.id = transcript_embeddings.transcript_id").
		Where("transcript_embeddings.deleted_at IS NULL").
		Where("transcripts.deleted_at IS NULL").
		Where("1 - (transcript_embeddings.embedding_value <=> ?) > ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	results := make([]contract.ScoredTranscriptEmbedding, 0, len(rows))
	for i := range rows {
		results = append(results, contract.ScoredTranscriptEmbedding{
			Embedding:  *mapper.TranscriptEmbeddingToEntity(&rows[i].TranscriptEmbedding),
			Similarity: rows[i].Similarity,
			SourceURL:  rows[i].SourceURL,
			Title:      rows[i].Title,
			Platform:   rows[i].Platform,
		})
	}
	return results, nil
}
