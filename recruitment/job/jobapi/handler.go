package jobapi

import (
	"context"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/recruitment/candidate/candidateauth"
	"github.com/Abraxas-365/skillbridge/recruitment/job"
	"github.com/gofiber/fiber/v2"
)

// Matcher is the match engine as seen by the HTTP layer
type Matcher interface {
	GetMatches(ctx context.Context, accountID kernel.AccountID, page, pageSize int) (*job.MatchPage, error)
}

// Handlers provides HTTP handlers for job operations
type Handlers struct {
	matcher Matcher
}

// NewHandlers creates a new job handlers instance
func NewHandlers(matcher Matcher) *Handlers {
	return &Handlers{
		matcher: matcher,
	}
}

// ListMatches returns the caller's ranked job matches
// GET /api/jobs?page=&limit=
func (h *Handlers) ListMatches(c *fiber.Ctx) error {
	accountID, ok := candidateauth.GetAccountID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Missing account")
	}

	pagination := parsePaginationOptions(c)

	result, err := h.matcher.GetMatches(c.UserContext(), accountID, pagination.Page, pagination.PageSize)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// ============================================================================
// Helper Functions
// ============================================================================

// parsePaginationOptions reads page and limit, clamping them to valid values
func parsePaginationOptions(c *fiber.Ctx) kernel.PaginationOptions {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", job.DefaultPageSize)

	if page < 1 {
		page = 1
	}
	if page > job.MaxPage {
		page = job.MaxPage
	}
	if limit < 1 {
		limit = job.DefaultPageSize
	}
	if limit > job.MaxPageSize {
		limit = job.MaxPageSize
	}

	return kernel.PaginationOptions{
		Page:     page,
		PageSize: limit,
	}
}

// ============================================================================
// Route Registration
// ============================================================================

// RegisterRoutes registers all job routes
func RegisterRoutes(app *fiber.App, handlers *Handlers, authMiddleware fiber.Handler) {
	api := app.Group("/api/jobs")

	api.Get("/",
		authMiddleware,
		handlers.ListMatches,
	)
}
