package handler

import (
	"github.com/labstack/echo/v4"
)

// apiResponse is the success envelope shared by all handlers. Errors never go
// through this type; they bubble up to the central HTTP error handler.
type apiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func respond(c echo.Context, status int, data any, message string) error {
	return c.JSON(status, apiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}
