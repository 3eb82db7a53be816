package interviewapi

import (
	"io"

	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidateauth"
	"github.com/Abraxas-365/skillbridge/recruitment/interview"
	"github.com/Abraxas-365/skillbridge/recruitment/interview/interviewsrv"
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	service *interviewsrv.Service
	speech  *interviewsrv.SpeechService
}

func NewHandlers(service *interviewsrv.Service, speech *interviewsrv.SpeechService) *Handlers {
	return &Handlers{service: service, speech: speech}
}

// GenerateQuestions returns multiple-choice questions for a skill list
// POST /api/interview/questions
func (h *Handlers) GenerateQuestions(c *fiber.Ctx) error {
	accountID, _ := candidateauth.GetAccountID(c)

	var req interview.GenerateQuestionsRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}

	resp, err := h.service.GenerateQuestions(c.UserContext(), accountID, req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Speak reads text aloud
// POST /api/interview/tts
func (h *Handlers) Speak(c *fiber.Ctx) error {
	var req interview.SpeakRequest
	if err := c.BodyParser(&req); err != nil {
		return interview.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	audio, err := h.speech.Speak(c.UserContext(), req)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "audio/mpeg")
	return c.Send(audio)
}

// Transcribe converts a recorded answer to text
// POST /api/interview/stt (multipart field "audio")
func (h *Handlers) Transcribe(c *fiber.Ctx) error {
	file, err := c.FormFile("audio")
	if err != nil {
		return interview.ErrAudioRequired()
	}
	if file.Size > interview.MaxAudioBytes {
		return interview.ErrAudioTooLarge().
			WithDetail("size", file.Size).
			WithDetail("max_size", interview.MaxAudioBytes)
	}

	f, err := file.Open()
	if err != nil {
		return interview.ErrInvalidRequest().WithDetail("field", "audio")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, interview.MaxAudioBytes+1))
	if err != nil {
		return interview.ErrInvalidRequest().WithDetail("read_error", err.Error())
	}

	resp, err := h.speech.Transcribe(c.UserContext(), interview.TranscribeRequest{
		FileName: file.Filename,
		Data:     data,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RegisterRoutes registers all interview routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/interview")

	api.Post("/questions", authMiddleware, handlers.GenerateQuestions)
	api.Post("/tts", authMiddleware, handlers.Speak)
	api.Post("/stt", authMiddleware, handlers.Transcribe)
}
