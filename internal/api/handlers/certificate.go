package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"resumeforge/internal/remote"
	"resumeforge/pkg/models"
)

// GenerateCertificateHandler renders a course certificate through the remote
// service and returns its HTML.
func GenerateCertificateHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.CertificateRequest
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		html, err := client.GenerateCertificate(c.Request().Context(), sessionFromHeader(c), req)
		if err != nil {
			return remoteError(c, err, "Failed to generate certificate")
		}

		return c.JSON(http.StatusOK, models.CertificateResponse{HTML: html})
	}
}

// SaveCertificateHandler stores rendered certificate HTML remotely and
// returns its ID.
func SaveCertificateHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req struct {
			HTML string `json:"html" validate:"required"`
		}
		if err := c.Bind(&req); err != nil {
			return bindError(c)
		}
		if err := requestValidator.Struct(&req); err != nil {
			return validationError(c, err)
		}

		id, err := client.SaveCertificate(c.Request().Context(), sessionFromHeader(c), req.HTML)
		if err != nil {
			return remoteError(c, err, "Failed to save certificate")
		}
		return c.JSON(http.StatusCreated, models.CertificateResponse{ID: id})
	}
}

// FetchCertificateHandler retrieves a saved certificate by ID. Public.
func FetchCertificateHandler(client *remote.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		html, err := client.FetchCertificate(c.Request().Context(), c.Param("id"))
		if err != nil {
			return remoteError(c, err, "Failed to fetch certificate")
		}
		return c.JSON(http.StatusOK, models.CertificateResponse{ID: c.Param("id"), HTML: html})
	}
}
