package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts the user ID injected by the Auth middleware. A
// missing claim on a protected route means the middleware did not run, which
// is a wiring bug — reject with 401 rather than proceed unauthenticated.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

// viewerID returns the user ID when the request carries valid claims, or the
// empty string for anonymous viewers. Used behind OptionalAuth.
func viewerID(c echo.Context) string {
	id, _ := c.Get("user_id").(string)
	return id
}
