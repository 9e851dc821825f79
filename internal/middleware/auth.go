package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// excludedPaths bypass authentication (e.g., health checks)
var excludedPaths = map[string]bool{
	"/api/v1/health":         true,
	"/api/v1/users/register": true,
	"/api/v1/users/login":    true,
}

// TokenVerifier resolves a user token to the account it was issued to.
type TokenVerifier interface {
	VerifyToken(token string) (uuid.UUID, error)
}

// NewAuth protects routes with "Authorization: Bearer <credential>", where
// the credential is a user token accepted by tokens or one of the static
// keys. A verified user token stores the user ID for UserID. With neither
// keys nor a verifier every request passes through.
func NewAuth(keys []string, tokens TokenVerifier) fiber.Handler {
	if len(keys) == 0 && tokens == nil {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}

	return keyauth.New(keyauth.Config{
		Next: func(c *fiber.Ctx) bool {
			return excludedPaths[c.Path()]
		},
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator: func(c *fiber.Ctx, key string) (bool, error) {
			for _, valid := range keys {
				if subtle.ConstantTimeCompare([]byte(key), []byte(valid)) == 1 {
					return true, nil
				}
			}
			if tokens != nil {
				if id, err := tokens.VerifyToken(key); err == nil {
					c.Locals(userIDKey, id)
					return true, nil
				}
			}
			return false, keyauth.ErrMissingOrMalformedAPIKey
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		},
	})
}

// UserID returns the account behind the request's token. ok is false for
// requests authenticated with a static key.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(userIDKey).(uuid.UUID)
	return id, ok
}
