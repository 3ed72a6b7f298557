package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/logging"
	"resumeforge/internal/remote"
	"resumeforge/pkg/models"
	"resumeforge/pkg/utils"
)

// LoginHandler authenticates against the remote account service.
func LoginHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.LoginRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		session, err := client.Login(c.Request().Context(), req)
		if err != nil {
			return remoteError(c, err, "Invalid email or password")
		}

		logging.GetGlobalLogger().Info("User logged in", map[string]interface{}{
			"request_id": requestID(c),
			"email":      req.Email,
		})
		return c.JSON(http.StatusOK, session)
	}
}

// RegisterHandler creates a remote account and returns the fresh session.
func RegisterHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.RegisterRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		session, err := client.Register(c.Request().Context(), req)
		if err != nil {
			return remoteError(c, err, "Registration failed")
		}
		return c.JSON(http.StatusCreated, session)
	}
}

// CurrentUserHandler proxies the remote "who am I" lookup.
func CurrentUserHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := client.CurrentUser(c.Request().Context(), sessionFromHeader(c))
		if err != nil {
			return remoteError(c, err, "Failed to fetch user details")
		}
		return c.JSON(http.StatusOK, user)
	}
}

// remoteError maps facade errors onto HTTP responses.
func remoteError(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, remote.ErrAuthRequired):
		return errorFrom(c, "auth_required", utils.NewAuthError("A valid bearer token is required"))
	case errors.Is(err, remote.ErrNotFound):
		return errorFrom(c, "not_found", utils.NewNotFoundError("Remote resource not found"))
	default:
		logging.GetGlobalLogger().Error("Remote call failed", map[string]interface{}{
			"request_id": requestID(c),
			"error":      err.Error(),
		})
		return errorFrom(c, "remote_error", utils.NewRemoteError(fallback))
	}
}
