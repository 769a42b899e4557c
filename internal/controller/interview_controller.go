package controller

import (
	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/pkg/apperrors"
	"ai-interviewer-be/internal/pkg/serverutils"
	"ai-interviewer-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInterviewController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	NextQuestion(ctx *fiber.Ctx) error
	SubmitAnswer(ctx *fiber.Ctx) error
	RefreshFeedback(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
}

type interviewController struct {
	service         service.IInterviewService
	feedbackService service.IFeedbackService
}

func NewInterviewController(
	service service.IInterviewService,
	feedbackService service.IFeedbackService,
) IInterviewController {
	return &interviewController{
		service:         service,
		feedbackService: feedbackService,
	}
}

func (c *interviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/interview/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.Export)
	h.Post("/start", c.Start)
	h.Get(":id", c.Show)
	h.Get(":id/next", c.NextQuestion)
	h.Post(":id/answer", c.SubmitAnswer)
	h.Post(":id/feedback", c.RefreshFeedback)
}

func (c *interviewController) Start(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StartInterviewRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start interview", res))
}

func (c *interviewController) NextQuestion(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.NotFound("interview session")
	}

	res, err := c.service.NextQuestion(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get next question", res))
}

func (c *interviewController) SubmitAnswer(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.NotFound("interview session")
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.SubmitAnswer(ctx.Context(), userId, sessionId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success submit answer", nil))
}

// RefreshFeedback re-runs the feedback passes synchronously for one
// answered question, for when the async pipeline hit a collaborator
// failure.
func (c *interviewController) RefreshFeedback(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.NotFound("interview session")
	}

	var req dto.RefreshFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	session, err := c.service.Show(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	answer := ""
	found := false
	for _, rec := range session.Answers {
		if rec.Question == req.Question {
			answer = rec.Answer
			found = true
			break
		}
	}
	if !found {
		return apperrors.NotFound("answer for question")
	}

	res, err := c.feedbackService.EvaluateAndAttach(ctx.Context(), userId, sessionId, req.Question, answer)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success refresh feedback", res))
}

func (c *interviewController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	sessionId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperrors.NotFound("interview session")
	}

	res, err := c.service.Show(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show interview session", res))
}

func (c *interviewController) Export(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.service.Export(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success export interview sessions", res))
}
