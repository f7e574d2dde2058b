package bootstrap

import (
	"log"
	"time"

	"hybrid-brain/internal/config"
	"hybrid-brain/internal/controller"
	"hybrid-brain/internal/pkg/logger"
	"hybrid-brain/internal/repository/unitofwork"
	"hybrid-brain/internal/service"
	"hybrid-brain/pkg/embedding"
	"hybrid-brain/pkg/llm"
	"hybrid-brain/pkg/llm/ollama"
	"hybrid-brain/pkg/media/downloader"
	"hybrid-brain/pkg/media/transcriber"

	pktNats "hybrid-brain/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WorkerController     *controller.WorkerController
	TranscriptController *controller.TranscriptController

	// Background Services (Exposed for main.go to run)
	ArchiveConsumerService service.IArchiveConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	repoFactory := unitofwork.NewRepositoryFactory()
	uowFactory := unitofwork.NewUnitOfWorkFactory(db, repoFactory)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "gemini" {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	} else {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	}

	var llmProvider llm.LLMProvider = ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.SummaryModel)
	log.Printf("[INFO] Using Summary Model: %s", cfg.Ai.SummaryModel)

	// 4. Media Toolchain
	dl, err := downloader.New(cfg.Media.DownloadDir, cfg.Media.YtDlpPath, cfg.Media.MaxFileSizeMB)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize downloader: %v", err)
	}
	tr := transcriber.New(cfg.Ai.WhisperBaseURL, cfg.Ai.WhisperModel)

	// 5. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Invalid REDIS_URL, falling back to localhost: %v", err)
		opt = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	rdb := redis.NewClient(opt)

	// 6. Services
	transcriptionService := service.NewTranscriptionService(
		uowFactory,
		dl,
		tr,
		llmProvider,
		pubSub,
		natsPub,
		rdb,
		sysLogger,
		cfg.App.ArchiveTopic,
	)
	archiveService := service.NewArchiveService(uowFactory, embeddingProvider, sysLogger)
	archiveConsumerService := service.NewArchiveConsumerService(
		pubSub,
		uowFactory,
		embeddingProvider,
		sysLogger,
		cfg.App.ArchiveTopic,
	)
	maintenanceService := service.NewMaintenanceService(
		dl,
		tr,
		archiveService,
		sysLogger,
		time.Duration(cfg.Media.CleanupAgeHours)*time.Hour,
	)

	// 7. Controllers
	workerController := controller.NewWorkerController(transcriptionService, maintenanceService, sysLogger)
	transcriptController := controller.NewTranscriptController(archiveService)

	return &Container{
		WorkerController:       workerController,
		TranscriptController:   transcriptController,
		ArchiveConsumerService: archiveConsumerService,
		Logger:                 sysLogger,
	}
}
