package candidateapi

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidateauth"
	"github.com/gofiber/fiber/v2"
)

// ProfileService is the candidate service as used by the HTTP layer
type ProfileService interface {
	SyncProfile(ctx context.Context, accountID kernel.AccountID, req candidate.SyncProfileRequest) (*candidate.Profile, error)
	GetProfile(ctx context.Context, accountID kernel.AccountID) (*candidate.Profile, error)
	UpdateProfile(ctx context.Context, accountID kernel.AccountID, req candidate.UpdateProfileRequest) (*candidate.Profile, error)
	UpdateSkills(ctx context.Context, accountID kernel.AccountID, skills []string) ([]string, error)
	UploadResume(ctx context.Context, accountID kernel.AccountID, req candidate.UploadResumeRequest) (*candidate.UploadResumeResponse, error)
}

type Handlers struct {
	service ProfileService
}

func NewHandlers(service ProfileService) *Handlers {
	return &Handlers{service: service}
}

// SyncProfile upserts the caller's profile after sign-in
// POST /api/auth/sync
func (h *Handlers) SyncProfile(c *fiber.Ctx) error {
	accountID, err := account(c)
	if err != nil {
		return err
	}

	var req candidate.SyncProfileRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
		}
	}
	if req.Email == "" {
		if email, ok := candidateauth.GetEmail(c); ok {
			req.Email = string(email)
		}
	}

	profile, err := h.service.SyncProfile(c.UserContext(), accountID, req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// GetProfile returns the caller's profile
// GET /api/me
func (h *Handlers) GetProfile(c *fiber.Ctx) error {
	accountID, err := account(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.UserContext(), accountID)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateProfile edits the caller's profile
// PUT /api/me
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	accountID, err := account(c)
	if err != nil {
		return err
	}

	var req candidate.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	profile, err := h.service.UpdateProfile(c.UserContext(), accountID, req)
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// UpdateSkills replaces the caller's declared skills
// PUT /api/skills
func (h *Handlers) UpdateSkills(c *fiber.Ctx) error {
	accountID, err := account(c)
	if err != nil {
		return err
	}

	var req candidate.UpdateSkillsRequest
	if err := c.BodyParser(&req); err != nil {
		return candidate.ErrInvalidRequest().WithDetail("parse_error", err.Error())
	}

	skills, err := h.service.UpdateSkills(c.UserContext(), accountID, req.Skills)
	if err != nil {
		return err
	}
	return c.JSON(candidate.SkillsResponse{Skills: skills})
}

// UploadResume accepts a multipart PDF under the "resume" field
// POST /api/parse-resume
func (h *Handlers) UploadResume(c *fiber.Ctx) error {
	accountID, err := account(c)
	if err != nil {
		return err
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("field", "resume")
	}
	if file.Size > candidate.MaxResumeBytes {
		return candidate.ErrFileTooLarge().
			WithDetail("size", file.Size).
			WithDetail("max_size", candidate.MaxResumeBytes)
	}

	contentType := file.Header.Get(fiber.HeaderContentType)
	if !looksLikePDF(file.Filename, contentType) {
		return candidate.ErrInvalidFileType().
			WithDetail("file_name", file.Filename).
			WithDetail("content_type", contentType)
	}

	f, err := file.Open()
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("field", "resume")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, candidate.MaxResumeBytes+1))
	if err != nil {
		return candidate.ErrInvalidRequest().WithDetail("read_error", err.Error())
	}

	resp, err := h.service.UploadResume(c.UserContext(), accountID, candidate.UploadResumeRequest{
		FileName:    file.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ============================================================================
// Helper Functions
// ============================================================================

func account(c *fiber.Ctx) (kernel.AccountID, error) {
	id, ok := candidateauth.GetAccountID(c)
	if !ok {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Missing account")
	}
	return id, nil
}

func looksLikePDF(name, contentType string) bool {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return true
	}
	return strings.HasPrefix(strings.ToLower(contentType), "application/pdf")
}

// ============================================================================
// Route Registration
// ============================================================================

// RegisterRoutes registers all candidate routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api")

	api.Post("/auth/sync", authMiddleware, handlers.SyncProfile)
	api.Get("/me", authMiddleware, handlers.GetProfile)
	api.Put("/me", authMiddleware, handlers.UpdateProfile)
	api.Put("/skills", authMiddleware, handlers.UpdateSkills)
	api.Post("/parse-resume", authMiddleware, handlers.UploadResume)
}
