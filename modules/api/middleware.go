package api

import (
	"context"
	"time"

	"github.com/VitaliiEv/t1rest/modules/auth"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
)

const (
	// Realm is announced in the WWW-Authenticate challenge.
	Realm = "Realm"

	verifyTimeout = 5 * time.Second
)

// BasicAuthMiddleware rejects every request that does not carry the
// provisioned credential in an HTTP Basic Authorization header.
func BasicAuthMiddleware(authAdapter auth.AuthPort, logger types.Logger) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Realm: Realm,
		Authorizer: func(username, password string) bool {
			ctx, cancel := context.WithTimeout(context.Background(), verifyTimeout)
			defer cancel()

			valid, err := authAdapter.VerifyCredentials(ctx, username, password)
			if err != nil {
				logger.Error("Credential verification failed", "error", err)
				return false
			}
			return valid
		},
		Unauthorized: func(c *fiber.Ctx) error {
			c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="`+Realm+`"`)
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Full authentication is required to access this resource",
			})
		},
	})
}
