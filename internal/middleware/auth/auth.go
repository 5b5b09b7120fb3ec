package auth

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cartify/cartify/internal/service/token"
)

// RequireAuth verifies the bearer token from the Authorization header and
// stores the user identity in the echo context before any handler runs.
func RequireAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			userID, email, err := token.Parse(parts[1], secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("userID", userID)
			c.Set("email", email)
			return next(c)
		}
	}
}

// UserID reads the identity RequireAuth stored in the context.
func UserID(c echo.Context) (uint, error) {
	id, ok := c.Get("userID").(uint)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing user identity")
	}
	return id, nil
}
