package candidateauth

import (
	"strings"

	"github.com/Abraxas-365/skillbridge/pkg/kernel"
	"github.com/Abraxas-365/skillbridge/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

const (
	localAccountID = "account_id"
	localEmail     = "account_email"
)

// Middleware validates identity provider bearer tokens
func Middleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing authorization header")
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid authorization format")
		}

		claims, err := verifier.Verify(parts[1])
		if err != nil {
			logx.Debugf("Rejected bearer token: %v", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		SetAccountID(c, claims.AccountID())
		if claims.Email != "" {
			SetEmail(c, kernel.Email(claims.Email))
		}

		return c.Next()
	}
}

// SetAccountID stores the authenticated account on the request
func SetAccountID(c *fiber.Ctx, id kernel.AccountID) {
	c.Locals(localAccountID, id)
}

// SetEmail stores the token email claim on the request
func SetEmail(c *fiber.Ctx, email kernel.Email) {
	c.Locals(localEmail, email)
}

// GetAccountID extracts the account id from context
func GetAccountID(c *fiber.Ctx) (kernel.AccountID, bool) {
	id, ok := c.Locals(localAccountID).(kernel.AccountID)
	return id, ok && !id.IsEmpty()
}

// GetEmail extracts the token email claim from context, if present
func GetEmail(c *fiber.Ctx) (kernel.Email, bool) {
	email, ok := c.Locals(localEmail).(kernel.Email)
	return email, ok
}
