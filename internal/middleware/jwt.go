package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/uowclimb/society-seats/internal/utils"
)

// SessionCookie is the name of the cookie carrying the admin session JWT.
const SessionCookie = "token"

// CookieAuth returns an Echo middleware that validates the admin
// session JWT from the `token` cookie and stores the username in the
// request context under "username".  Failures answer 404 rather than
// 401 so the existence of the admin surface is not revealed to
// unauthenticated probes.
func CookieAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Not Found"})
			}

			username, err := utils.ParseSessionToken(secret, cookie.Value)
			if err != nil {
				c.Logger().Warnf("auth failed: %v", err)
				return c.JSON(http.StatusNotFound, echo.Map{"error": "Not Found"})
			}

			c.Set("username", username)
			return next(c)
		}
	}
}
