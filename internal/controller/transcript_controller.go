package controller

import (
	"hybrid-brain/internal/dto"
	"hybrid-brain/internal/pkg/serverutils"
	"hybrid-brain/internal/service"

	"github.com/gofiber/fiber/v2"
)

type TranscriptController struct {
	archiveService service.IArchiveService
}

func NewTranscriptController(archiveService service.IArchiveService) *TranscriptController {
	return &TranscriptController{archiveService: archiveService}
}

func (c *TranscriptController) RegisterRoutes(r fiber.Router) {
	r.Get("/transcripts/semantic-search", c.SemanticSearch)
	r.Get("/transcripts/by-url", c.FindByURL)
}

func (c *TranscriptController) SemanticSearch(ctx *fiber.Ctx) error {
	request := dto.SemanticSearchRequest{
		Query:     ctx.Query("q"),
		Limit:     ctx.QueryInt("limit", 0),
		Threshold: float32(ctx.QueryFloat("threshold", 0)),
	}
	if err := serverutils.ValidateRequest(&request); err != nil {
		return err
	}

	response, err := c.archiveService.SemanticSearch(ctx.Context(), request)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("search completed", response))
}

func (c *TranscriptController) FindByURL(ctx *fiber.Ctx) error {
	url := ctx.Query("url")
	if url == "" {
		return serverutils.NewAppError(fiber.StatusBadRequest, "query parameter 'url' is required")
	}

	response, err := c.archiveService.FindByURL(ctx.Context(), url)
	if err != nil {
		return err
	}
	if response == nil {
		return serverutils.NewAppError(fiber.StatusNotFound, "no archived transcript for this URL")
	}

	return ctx.Status(fiber.StatusOK).JSON(serverutils.SuccessResponse("transcript found", response))
}
