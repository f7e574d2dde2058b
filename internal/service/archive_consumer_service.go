package service

import (
	"context"
	"encoding/json"

	"hybrid-brain/internal/dto"
	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/pkg/logger"
	"hybrid-brain/internal/repository/unitofwork"
	"hybrid-brain/pkg/embedding"
	"hybrid-brain/pkg/utils"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

const (
	chunkSize    = 1500
	chunkOverlap = 200
)

// IArchiveConsumerService consumes archive messages, chunks the transcript
// text, embeds each chunk and stores the vectors for semantic search.
type IArchiveConsumerService interface {
	Start(ctx context.Context) error
}

type archiveConsumerService struct {
	subscriber        message.Subscriber
	uowFactory        unitofwork.IUnitOfWorkFactory
	embeddingProvider embedding.EmbeddingProvider
	logger            logger.ILogger
	topic             string
}

func NewArchiveConsumerService(
	subscriber message.Subscriber,
	uowFactory unitofwork.IUnitOfWorkFactory,
	embeddingProvider embedding.EmbeddingProvider,
	log logger.ILogger,
	topic string,
) IArchiveConsumerService {
	return &archiveConsumerService{
		subscriber:        subscriber,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		logger:            log,
		topic:             topic,
	}
}

func (s *archiveConsumerService) Start(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.process(ctx, msg)
		}
	}()

	s.logger.Info("ARCHIVE_CONSUMER", "listening for archive messages", map[string]interface{}{
		"topic": s.topic,
	})
	return nil
}

func (s *archiveConsumerService) process(ctx context.Context, msg *message.Message) {
	var payload dto.ArchiveTranscriptMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		// malformed payloads can never succeed, ack so they don't loop
		s.logger.Error("ARCHIVE_CONSUMER", "invalid payload, dropping", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	transcriptId, err := uuid.Parse(payload.TranscriptId)
	if err != nil {
		s.logger.Error("ARCHIVE_CONSUMER", "invalid transcript id, dropping", map[string]interface{}{
			"message_id":    msg.UUID,
			"transcript_id": payload.TranscriptId,
		})
		msg.Ack()
		return
	}

	if err := s.embedTranscript(ctx, transcriptId, payload.Text); err != nil {
		s.logger.Error("ARCHIVE_CONSUMER", "embedding failed, will retry", map[string]interface{}{
			"transcript_id": payload.TranscriptId,
			"error":         err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}

func (s *archiveConsumerService) embedTranscript(ctx context.Context, transcriptId uuid.UUID, text string) error {
	chunks := utils.SplitText(text, chunkSize, chunkOverlap)

	embeddings := make([]entity.TranscriptEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		response, err := s.embeddingProvider.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return err
		}
		embeddings = append(embeddings, entity.TranscriptEmbedding{
			Document:       chunk,
			EmbeddingValue: response.Embedding.Values,
			TranscriptId:   transcriptId,
			ChunkIndex:     i,
		})
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.TranscriptEmbeddingRepository().CreateBulk(ctx, embeddings); err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	s.logger.Info("ARCHIVE_CONSUMER", "transcript embedded", map[string]interface{}{
		"transcript_id": transcriptId.String(),
		"chunks":        len(chunks),
	})
	return nil
}
