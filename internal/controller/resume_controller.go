package controller

import (
	"io"

	"ai-interviewer-be/internal/pkg/serverutils"
	"ai-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IResumeController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
}

type resumeController struct {
	service service.IResumeService
}

func NewResumeController(service service.IResumeService) IResumeController {
	return &resumeController{service: service}
}

func (c *resumeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/resume/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/upload", c.Upload)
}

func (c *resumeController) Upload(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing resume file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	res, err := c.service.Upload(ctx.Context(), userId, fileHeader.Filename, content)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success upload resume", res))
}
