package handlers

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"resumeforge/internal/api/validation"
	"resumeforge/internal/remote"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

var requestValidator = validator.New()

func init() {
	// Register shared request validators
	validation.RegisterResumeValidators(requestValidator)
}

// requestID pulls the request ID set by the validation middleware.
func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	return utils.GenerateRequestID()
}

// errorJSON writes the standard error envelope.
func errorJSON(c echo.Context, status int, code, message string) error {
	return c.JSON(status, models.ErrorResponse{
		Error:     code,
		Message:   message,
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

// errorFrom writes the envelope for a CustomError, taking the HTTP status
// from the error itself.
func errorFrom(c echo.Context, code string, cerr *utils.CustomError) error {
	return errorJSON(c, cerr.Code, code, cerr.Error())
}

// bindError reports a request body that failed to bind.
func bindError(c echo.Context) error {
	return errorFrom(c, "invalid_request", utils.NewBadRequestError("Invalid request body"))
}

// validationError reports a request that failed struct validation.
func validationError(c echo.Context, err error) error {
	return errorFrom(c, "validation_error", utils.NewValidationError(err.Error()))
}

// sessionFromHeader builds a remote session from the request's bearer token.
// An absent header yields an unauthenticated session; the backend decides
// whether that is acceptable for the call.
func sessionFromHeader(c echo.Context) remote.Session {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(auth, "Bearer ")
	if token == auth {
		token = ""
	}
	return remote.Session{Token: strings.TrimSpace(token)}
}
