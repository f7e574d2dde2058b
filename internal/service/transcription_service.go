package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hybrid-brain/internal/dto"
	"hybrid-brain/internal/entity"
	"hybrid-brain/internal/pkg/logger"
	"hybrid-brain/internal/pkg/serverutils"
	"hybrid-brain/internal/repository/specification"
	"hybrid-brain/internal/repository/unitofwork"
	"hybrid-brain/pkg/events"
	"hybrid-brain/pkg/llm"
	"hybrid-brain/pkg/media"
	"hybrid-brain/pkg/media/downloader"
	"hybrid-brain/pkg/media/transcriber"
	natspub "hybrid-brain/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const (
	transcribeLockTTL    = 30 * time.Minute
	summaryPromptPrefix  = "Summarize the following video transcript in a few concise paragraphs. Focus on the key points and practical takeaways.\n\nTranscript:\n"
	eventTranscriptAdded = "TRANSCRIPT_ARCHIVED"
)

type ITranscriptionService interface {
	Transcribe(ctx context.Context, request dto.TranscribeRequest) (*dto.TranscribeResponse, error)
	TranscribePreview(ctx context.Context, request dto.TranscribeRequest, emit func(dto.StreamEvent) error) error
}

type transcriptionService struct {
	uowFactory    unitofwork.IUnitOfWorkFactory
	downloader    *downloader.Downloader
	transcriber   *transcriber.Transcriber
	llmProvider   llm.LLMProvider
	publisher     message.Publisher
	natsPublisher *natspub.Publisher
	redisClient   *redis.Client
	logger        logger.ILogger
	archiveTopic  string
}

func NewTranscriptionService(
	uowFactory unitofwork.IUnitOfWorkFactory,
	dl *downloader.Downloader,
	tr *transcriber.Transcriber,
	llmProvider llm.LLMProvider,
	publisher message.Publisher,
	natsPublisher *natspub.Publisher,
	redisClient *redis.Client,
	log logger.ILogger,
	archiveTopic string,
) ITranscriptionService {
	return &transcriptionService{
		uowFactory:    uowFactory,
		downloader:    dl,
		transcriber:   tr,
		llmProvider:   llmProvider,
		publisher:     publisher,
		natsPublisher: natsPublisher,
		redisClient:   redisClient,
		logger:        log,
		archiveTopic:  archiveTopic,
	}
}

// Transcribe runs the full pipeline: archive lookup, download, whisper
// transcription, optional summary, then persists and fans out events.
func (s *transcriptionService) Transcribe(ctx context.Context, request dto.TranscribeRequest) (*dto.TranscribeResponse, error) {
	started := time.Now()

	platform, err := s.resolvePlatform(request)
	if err != nil {
		return nil, err
	}

	if !request.SkipArchive {
		if cached, err := s.archiveHit(ctx, request.URL); err != nil {
			return nil, err
		} else if cached != nil {
			s.logger.Info("TRANSCRIPTION_SERVICE", "archive hit, skipping pipeline", map[string]interface{}{
				"url": request.URL,
			})
			return cached, nil
		}
	}

	release, err := s.acquireLock(ctx, request.URL)
	if err != nil {
		return nil, err
	}
	defer release()

	download, err := s.downloader.DownloadAudio(ctx, request.URL)
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusUnprocessableEntity, fmt.Sprintf("download failed: %v", err))
	}
	defer s.downloader.Cleanup(download.FilePath)

	result, err := s.transcriber.Transcribe(ctx, download.FilePath, request.Language, request.IncludeTimestamps)
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, fmt.Sprintf("transcription failed: %v", err))
	}

	summary := ""
	if request.Summarize {
		summary, err = s.llmProvider.Generate(ctx, summaryPromptPrefix+result.Text)
		if err != nil {
			// a missing summary should not throw away a finished transcript
			s.logger.Warn("TRANSCRIPTION_SERVICE", "summary generation failed", map[string]interface{}{
				"url":   request.URL,
				"error": err.Error(),
			})
			summary = ""
		}
	}

	archived, err := s.persistTranscript(ctx, request.URL, platform, download, result, summary)
	if err != nil {
		return nil, err
	}

	s.fanOut(ctx, archived)

	response := s.toResponse(archived, false)
	response.ProcessingSecs = time.Since(started).Seconds()
	return response, nil
}

// TranscribePreview runs the same pipeline but pushes progress frames to the
// caller as each stage starts, and streams summary tokens as they arrive.
func (s *transcriptionService) TranscribePreview(ctx context.Context, request dto.TranscribeRequest, emit func(dto.StreamEvent) error) error {
	started := time.Now()

	platform, err := s.resolvePlatform(request)
	if err != nil {
		return s.emitError(emit, err)
	}

	if !request.SkipArchive {
		cached, err := s.archiveHit(ctx, request.URL)
		if err != nil {
			return s.emitError(emit, err)
		}
		if cached != nil {
			_ = emit(dto.StreamEvent{Type: "status", Status: "archive_hit"})
			return emit(dto.StreamEvent{Type: "done", Data: cached})
		}
	}

	release, err := s.acquireLock(ctx, request.URL)
	if err != nil {
		return s.emitError(emit, err)
	}
	defer release()

	if err := emit(dto.StreamEvent{Type: "status", Status: "downloading"}); err != nil {
		return err
	}
	download, err := s.downloader.DownloadAudio(ctx, request.URL)
	if err != nil {
		return s.emitError(emit, serverutils.NewAppError(fiber.StatusUnprocessableEntity, fmt.Sprintf("download failed: %v", err)))
	}
	defer s.downloader.Cleanup(download.FilePath)

	if err := emit(dto.StreamEvent{Type: "status", Status: "transcribing"}); err != nil {
		return err
	}
	result, err := s.transcriber.Transcribe(ctx, download.FilePath, request.Language, request.IncludeTimestamps)
	if err != nil {
		return s.emitError(emit, serverutils.NewAppError(fiber.StatusBadGateway, fmt.Sprintf("transcription failed: %v", err)))
	}

	summary := ""
	if request.Summarize {
		if err := emit(dto.StreamEvent{Type: "status", Status: "summarizing"}); err != nil {
			return err
		}
		summary, err = s.llmProvider.GenerateStream(ctx, summaryPromptPrefix+result.Text, func(token string) {
			_ = emit(dto.StreamEvent{Type: "token", Token: token})
		})
		if err != nil {
			s.logger.Warn("TRANSCRIPTION_SERVICE", "summary stream failed", map[string]interface{}{
				"url":   request.URL,
				"error": err.Error(),
			})
			summary = ""
		}
	}

	if err := emit(dto.StreamEvent{Type: "status", Status: "saving"}); err != nil {
		return err
	}
	archived, err := s.persistTranscript(ctx, request.URL, platform, download, result, summary)
	if err != nil {
		return s.emitError(emit, err)
	}

	s.fanOut(ctx, archived)

	response := s.toResponse(archived, false)
	response.ProcessingSecs = time.Since(started).Seconds()
	return emit(dto.StreamEvent{Type: "done", Data: response})
}

func (s *transcriptionService) resolvePlatform(request dto.TranscribeRequest) (media.Platform, error) {
	if !media.ValidateURL(request.URL) {
		return media.PlatformUnknown, serverutils.NewAppError(fiber.StatusBadRequest, "unsupported or malformed video URL")
	}
	platform := media.DetectPlatform(request.URL)
	if request.Platform != "" && request.Platform != "auto" && string(platform) != request.Platform {
		return media.PlatformUnknown, serverutils.NewAppError(fiber.StatusBadRequest, "URL does not match requested platform")
	}
	if platform == media.PlatformInstagram {
		return media.PlatformUnknown, serverutils.NewAppError(fiber.StatusNotImplemented, "instagram transcription is not supported yet")
	}
	return platform, nil
}

func (s *transcriptionService) archiveHit(ctx context.Context, url string) (*dto.TranscribeResponse, error) {
	uow := s.uowFactory.New()
	transcript, err := uow.TranscriptRepository().FindOne(ctx, specification.BySourceURL(url))
	if err != nil {
		return nil, err
	}
	if transcript == nil {
		return nil, nil
	}
	return s.toResponse(transcript, true), nil
}

// acquireLock takes a short-lived redis lock on the URL so two workers never
// download the same video concurrently.
func (s *transcriptionService) acquireLock(ctx context.Context, url string) (func(), error) {
	key := "transcribe:lock:" + url
	acquired, err := s.redisClient.SetNX(ctx, key, "1", transcribeLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lock: %w", err)
	}
	if !acquired {
		return nil, serverutils.NewAppError(fiber.StatusConflict, "this URL is already being processed")
	}
	return func() {
		// release must outlive a cancelled request context
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.redisClient.Del(releaseCtx, key)
	}, nil
}

func (s *transcriptionService) persistTranscript(
	ctx context.Context,
	url string,
	platform media.Platform,
	download *downloader.DownloadResult,
	result *transcriber.Result,
	summary string,
) (*entity.Transcript, error) {
	segments := make([]entity.TranscriptSegment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		segments = append(segments, entity.TranscriptSegment{Start: seg.Start, End: seg.End, Text: seg.Text})
	}

	duration := result.Duration
	if duration == 0 {
		duration = float64(download.VideoInfo.Duration)
	}

	transcript := &entity.Transcript{
		SourceURL:    url,
		Platform:     string(platform),
		VideoId:      download.VideoInfo.Id,
		Title:        download.VideoInfo.Title,
		Channel:      download.VideoInfo.Channel,
		DurationSecs: duration,
		Language:     result.Language,
		Text:         result.Text,
		Summary:      summary,
		WordCount:    result.WordCount(),
		Segments:     segments,
	}

	uow := s.uowFactory.New()
	if err := uow.Begin(); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	created, err := uow.TranscriptRepository().Create(ctx, transcript)
	if err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

// fanOut publishes the archive-embedding message and the lifecycle event.
// Neither failure is fatal to the request, both paths retry out of band.
func (s *transcriptionService) fanOut(ctx context.Context, transcript *entity.Transcript) {
	payload, err := json.Marshal(dto.ArchiveTranscriptMessage{
		TranscriptId: transcript.Id.String(),
		Text:         transcript.Text,
	})
	if err == nil {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		if err := s.publisher.Publish(s.archiveTopic, msg); err != nil {
			s.logger.Error("TRANSCRIPTION_SERVICE", "failed to publish archive message", map[string]interface{}{
				"transcript_id": transcript.Id.String(),
				"error":         err.Error(),
			})
		}
	}

	if s.natsPublisher != nil {
		event := events.BaseEvent{
			Type: eventTranscriptAdded,
			Data: map[string]interface{}{
				"transcript_id": transcript.Id.String(),
				"source_url":    transcript.SourceURL,
				"platform":      transcript.Platform,
				"title":         transcript.Title,
				"word_count":    transcript.WordCount,
			},
			OccurredAt: time.Now(),
		}
		if err := s.natsPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("TRANSCRIPTION_SERVICE", "failed to publish lifecycle event", map[string]interface{}{
				"transcript_id": transcript.Id.String(),
				"error":         err.Error(),
			})
		}
	}
}

func (s *transcriptionService) emitError(emit func(dto.StreamEvent) error, err error) error {
	_ = emit(dto.StreamEvent{Type: "error", Message: err.Error()})
	return err
}

func (s *transcriptionService) toResponse(transcript *entity.Transcript, fromArchive bool) *dto.TranscribeResponse {
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
		FromArchive:  fromArchive,
	}
}
