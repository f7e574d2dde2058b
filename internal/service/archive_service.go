package service

import (
	"context"
	"fmt"

	"hybrid-brain/internal/dto"
	"hybrid-brain/internal/pkg/logger"
	"hybrid-brain/internal/repository/specification"
	"hybrid-brain/internal/repository/unitofwork"
	"hybrid-brain/pkg/embedding"
)

const (
	defaultSearchLimit     = 10
	defaultSearchThreshold = 0.3
)

type IArchiveService interface {
	SemanticSearch(ctx context.Context, request dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error)
	FindByURL(ctx context.Context, url string) (*dto.TranscribeResponse, error)
	Ready(ctx context.Context) bool
}

type archiveService struct {
	uowFactory        unitofwork.IUnitOfWorkFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
}

func NewArchiveService(
	uowFactory unitofwork.IUnitOfWorkFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
) IArchiveService {
	return &archiveService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
	}
}

// SemanticSearch embeds the query and ranks archived transcript chunks by
// cosine similarity.
func (s *archiveService) SemanticSearch(ctx context.Context, request dto.SemanticSearchRequest) (*dto.SemanticSearchResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	threshold := request.Threshold
	if threshold <= 0 {
		threshold = defaultSearchThreshold
	}

	queryEmbedding, err := s.embeddingProvider.Generate(request.Query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	uow := s.uowFactory.New()
	scored, err := uow.TranscriptEmbeddingRepository().SearchSimilarWithScore(
		ctx, queryEmbedding.Embedding.Values, limit, threshold,
	)
	if err != nil {
		return nil, err
	}

	hits := make([]dto.SemanticSearchHit, 0, len(scored))
	for _, item := range scored {
		hits = append(hits, dto.SemanticSearchHit{
			TranscriptId: item.Embedding.TranscriptId.String(),
			SourceURL:    item.SourceURL,
			Title:        item.Title,
			Platform:     item.Platform,
			Chunk:        item.Embedding.Document,
			Similarity:   item.Similarity,
		})
	}

	s.logger.Debug("ARCHIVE_SERVICE", "semantic search completed", map[string]interface{}{
		"query": request.Query,
		"hits":  len(hits),
	})

	return &dto.SemanticSearchResponse{Hits: hits}, nil
}

func (s *archiveService) FindByURL(ctx context.Context, url string) (*dto.TranscribeResponse, error) {
	uow := s.uowFactory.New()
	transcript, err := uow.TranscriptRepository().FindOne(ctx, specification.BySourceURL(url))
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, nil
	}
	return &dto.TranscribeResponse{
		TranscriptId: transcript.Id.String(),
		SourceURL:    transcript.SourceURL,
		Platform:     transcript.Platform,
		Title:        transcript.Title,
		Channel:      transcript.Channel,
		DurationSecs: transcript.DurationSecs,
		Language:     transcript.Language,
		Text:         transcript.Text,
		Summary:      transcript.Summary,
		WordCount:    transcript.WordCount,
		Segments:     transcript.Segments,
		FromArchive:  true,
	}, nil
}

// Ready reports whether the archive database answers a trivial query.
func (s *archiveService) Ready(ctx context.Context) bool {
	uow := s.uowFactory.New()
	_, err := uow.TranscriptRepository().Count(ctx)
	return err == nil
}
