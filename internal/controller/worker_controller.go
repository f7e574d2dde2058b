package controller

import (
	"bufio"
	"context"
	"time"

	"hybrid-brain/internal/dto"
	"hybrid-brain/internal/pkg/logger"
	"hybrid-brain/internal/pkg/serverutils"
	"hybrid-brain/internal/service"
	"hybrid-brain/pkg/sse"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

type WorkerController struct {
	transcriptionService service.ITranscriptionService
	maintenanceService   service.IMaintenanceService
	logger               logger.ILogger
}

func NewWorkerController(
	transcriptionService service.ITranscriptionService,
	maintenanceService service.IMaintenanceService,
	log logger.ILogger,
) *WorkerController {
	return &WorkerController{
		transcriptionService: transcriptionService,
		maintenanceService:   maintenanceService,
		logger:               log,
	}
}

func (c *WorkerController) RegisterRoutes(r fiber.Router) {
	r.Post("/transcribe", c.Transcribe)
	r.Post("/transcribe/preview", c.TranscribePreview)
	r.Post("/video/info", c.VideoInfo)
	r.Post("/model/load", c.LoadModel)
	r.Post("/model/unload", c.UnloadModel)
	r.Delete("/cleanup", c.Cleanup)
	r.Get("/health", c.Health)
}

func (c *WorkerController) Transcribe(ctx *fiber.Ctx) error {
	var request dto.TranscribeRequest
	if err := ctx.BodyParser(&request); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	response, err := c.transcriptionService.Transcribe(ctx.Context(), request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("transcription completed", response))
}

// TranscribePreview streams the pipeline as SSE frames: status transitions,
// summary tokens and a final done event carrying the full result.
func (c *WorkerController) TranscribePreview(ctx *fiber.Ctx) error {
	var request dto.TranscribeRequest
	if err := ctx.BodyParser(&request); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	ctx.Set("Content-Type", "text/event-stream")
	ctx.Set("Cache-Control", "no-cache")
	ctx.Set("Connection", "keep-alive")
	ctx.Set("X-Accel-Buffering", "no")

	// the fiber ctx is recycled once the handler returns, the stream writer
	// must not touch it
	streamCtx, cancel := context.WithTimeout(context.Background(), 45*time.Minute)
	transcriptionService := c.transcriptionService
	log := c.logger

	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()

		err := transcriptionService.TranscribePreview(streamCtx, request, func(event dto.StreamEvent) error {
			return sse.WriteJSON(w, event)
		})
		if err != nil {
			log.Warn("WORKER_CONTROLLER", "preview stream ended with error", map[string]interface{}{
				"url":   request.URL,
				"error": err.Error(),
			})
		}
	}))

	return nil
}

func (c *WorkerController) VideoInfo(ctx *fiber.Ctx) error {
	var request dto.VideoInfoRequest
	if err := ctx.BodyParser(&request); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	response, err := c.maintenanceService.VideoInfo(ctx.Context(), request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("video info fetched", response))
}

func (c *WorkerController) LoadModel(ctx *fiber.Ctx) error {
	var request dto.ModelLoadRequest
	if err := ctx.BodyParser(&request); err != nil {
		return serverutils.NewAppError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	response, err := c.maintenanceService.LoadModel(ctx.Context(), request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("model loaded", response))
}

func (c *WorkerController) UnloadModel(ctx *fiber.Ctx) error {
	response, err := c.maintenanceService.UnloadModel(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("model unloaded", response))
}

func (c *WorkerController) Cleanup(ctx *fiber.Ctx) error {
	maxAgeHours := ctx.QueryInt("max_age_hours", 0)
	if maxAgeHours < 0 {
		return serverutils.NewAppError(fiber.StatusBadRequest, "max_age_hours must be positive")
	}

	response, err := c.maintenanceService.Cleanup(ctx.Context(), time.Duration(maxAgeHours)*time.Hour)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("cleanup completed", response))
}

func (c *WorkerController) Health(ctx *fiber.Ctx) error {
	response := c.maintenanceService.Health(ctx.Context())
	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("worker healthy", response))
}
