package controller

import (
	"io"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/pkg/serverutils"
	"ai-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISpeechController interface {
	RegisterRoutes(r fiber.Router)
	TextToSpeech(ctx *fiber.Ctx) error
	SpeechToText(ctx *fiber.Ctx) error
}

type speechController struct {
	service service.ISpeechService
}

func NewSpeechController(service service.ISpeechService) ISpeechController {
	return &speechController{service: service}
}

func (c *speechController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/speech/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/tts", c.TextToSpeech)
	h.Post("/stt", c.SpeechToText)
}

func (c *speechController) TextToSpeech(ctx *fiber.Ctx) error {
	var req dto.TextToSpeechRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	audio, err := c.service.TextToSpeech(ctx.Context(), req.Text)
	if err != nil {
		return err
	}

	ctx.Set("Content-Type", "audio/mpeg")
	return ctx.Send(audio)
}

func (c *speechController) SpeechToText(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing audio file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	text, err := c.service.SpeechToText(ctx.Context(), audio, fileHeader.Filename)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success transcribe audio", dto.SpeechToTextResponse{Text: text}))
}
