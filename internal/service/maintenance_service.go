package service

import (
	"context"
	"fmt"
	"time"

	"hybrid-brain/internal/dto"
	"hybrid-brain/internal/pkg/logger"
	"hybrid-brain/internal/pkg/serverutils"
	"hybrid-brain/pkg/media/downloader"
	"hybrid-brain/pkg/media/transcriber"

	"github.com/gofiber/fiber/v2"
	"github.com/patrickmn/go-cache"
)

const (
	workerVersion     = "1.0.0"
	videoInfoCacheTTL = 15 * time.Minute
)

type IMaintenanceService interface {
	VideoInfo(ctx context.Context, request dto.VideoInfoRequest) (*dto.VideoInfoResponse, error)
	LoadModel(ctx context.Context, request dto.ModelLoadRequest) (*dto.ModelStatusResponse, error)
	UnloadModel(ctx context.Context) (*dto.ModelStatusResponse, error)
	Cleanup(ctx context.Context, maxAge time.Duration) (*dto.CleanupResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

type maintenanceService struct {
	downloader     *downloader.Downloader
	transcriber    *transcriber.Transcriber
	archiveService IArchiveService
	logger         logger.ILogger
	cleanupAge     time.Duration
	infoCache      *cache.Cache
}

func NewMaintenanceService(
	dl *downloader.Downloader,
	tr *transcriber.Transcriber,
	archiveService IArchiveService,
	log logger.ILogger,
	cleanupAge time.Duration,
) IMaintenanceService {
	return &maintenanceService{
		downloader:     dl,
		transcriber:    tr,
		archiveService: archiveService,
		logger:         log,
		cleanupAge:     cleanupAge,
		infoCache:      cache.New(videoInfoCacheTTL, 30*time.Minute),
	}
}

// VideoInfo probes metadata without downloading. Probes shell out to
// yt-dlp, so responses are cached per URL for a while.
func (s *maintenanceService) VideoInfo(ctx context.Context, request dto.VideoInfoRequest) (*dto.VideoInfoResponse, error) {
	if cached, found := s.infoCache.Get(request.URL); found {
		return cached.(*dto.VideoInfoResponse), nil
	}

	info, err := s.downloader.GetVideoInfo(ctx, request.URL)
	if err != nil {
		return nil, serverutils.NewAppError(fiber.StatusUnprocessableEntity, fmt.Sprintf("could not fetch video info: %v", err))
	}

	response := &dto.VideoInfoResponse{
		Title:        info.Title,
		Channel:      info.Channel,
		DurationSecs: float64(info.Duration),
		Thumbnail:    info.Thumbnail,
		Platform:     "youtube",
		VideoId:      info.Id,
		Description:  info.Description,
	}
	s.infoCache.SetDefault(request.URL, response)
	return response, nil
}

func (s *maintenanceService) LoadModel(ctx context.Context, request dto.ModelLoadRequest) (*dto.ModelStatusResponse, error) {
	if err := s.transcriber.Load(ctx, request.Model); err != nil {
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, fmt.Sprintf("model load failed: %v", err))
	}
	s.logger.Info("MAINTENANCE_SERVICE", "whisper model loaded", map[string]interface{}{
		"model": s.transcriber.Model,
	})
	return &dto.ModelStatusResponse{Model: s.transcriber.Model, Loaded: true}, nil
}

func (s *maintenanceService) UnloadModel(ctx context.Context) (*dto.ModelStatusResponse, error) {
	if err := s.transcriber.Unload(ctx); err != nil {
		return nil, serverutils.NewAppError(fiber.StatusBadGateway, fmt.Sprintf("model unload failed: %v", err))
	}
	s.logger.Info("MAINTENANCE_SERVICE", "whisper model unloaded", nil)
	return &dto.ModelStatusResponse{Model: s.transcriber.Model, Loaded: false}, nil
}

// Cleanup purges temp audio older than maxAge; zero falls back to the
// configured default.
func (s *maintenanceService) Cleanup(ctx context.Context, maxAge time.Duration) (*dto.CleanupResponse, error) {
	if maxAge <= 0 {
		maxAge = s.cleanupAge
	}
	removed, err := s.downloader.CleanupOldFiles(maxAge)
	if err != nil {
		return nil, err
	}
	s.logger.Info("MAINTENANCE_SERVICE", "cleanup completed", map[string]interface{}{
		"files_removed": removed,
		"max_age":       maxAge.String(),
	})
	return &dto.CleanupResponse{FilesRemoved: removed}, nil
}

func (s *maintenanceService) Health(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:        "ok",
		WhisperLoaded: s.transcriber.IsLoaded(),
		ArchiveReady:  s.archiveService.Ready(ctx),
		Version:       workerVersion,
	}
}
