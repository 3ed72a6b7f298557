package remote

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"resumeforge/internal/config"
	"resumeforge/internal/logging"
	"resumeforge/internal/logging/types"
	"resumeforge/pkg/models"
)

// Client is the facade over the account and generation backend. Every call
// takes an explicit context and, where auth is needed, an explicit Session.
type Client struct {
	http   *resty.Client
	logger types.Logger
}

// NewClient creates a backend client from configuration.
func NewClient(cfg *config.Config) *Client {
	http := resty.New().
		SetBaseURL(cfg.Remote.BaseURL).
		SetTimeout(cfg.Remote.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:   http,
		logger: logging.GetGlobalLogger(),
	}
}

// Login authenticates with email and password and returns the session.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (Session, error) {
	var session Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&session).
		Post("/api/auth/login")
	if err != nil {
		return Session{}, fmt.Errorf("login request failed: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("Login rejected", map[string]interface{}{
			"status": resp.StatusCode(),
		})
		return Session{}, statusError(resp.StatusCode(), resp.String())
	}

	// Older backend builds omit the user object on login
	if session.User.Email == "" {
		session.User.Email = req.Email
	}
	return session, nil
}

// Register creates an account. The backend logs the new user in, so the
// returned session is immediately usable.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (Session, error) {
	var session Session
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&session).
		Post("/api/register")
	if err != nil {
		return Session{}, fmt.Errorf("register request failed: %w", err)
	}
	if resp.IsError() {
		return Session{}, statusError(resp.StatusCode(), resp.String())
	}
	return session, nil
}

// CurrentUser fetches the authenticated user's account details.
func (c *Client) CurrentUser(ctx context.Context, session Session) (User, error) {
	if !session.Authenticated() {
		return User{}, ErrAuthRequired
	}

	var user User
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(session.Token).
		SetResult(&user).
		Get("/me")
	if err != nil {
		return User{}, fmt.Errorf("user request failed: %w", err)
	}
	if resp.IsError() {
		return User{}, statusError(resp.StatusCode(), resp.String())
	}
	return user, nil
}

// UploadResume pushes the document to the backend's public resume endpoint.
func (c *Client) UploadResume(ctx context.Context, doc *models.ResumeDocument, userID string) error {
	body := map[string]interface{}{"resumeData": doc}
	if userID != "" {
		body["userId"] = userID
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post("/api/resume/Resume")
	if err != nil {
		return fmt.Errorf("resume upload failed: %w", err)
	}
	if resp.IsError() {
		return statusError(resp.StatusCode(), resp.String())
	}
	return nil
}

// GenerateATSResume submits the document for ATS-optimized generation and
// returns the rendered HTML. Requires an authenticated session.
func (c *Client) GenerateATSResume(ctx context.Context, session Session, doc *models.ResumeDocument, opts *models.GenerateOptions) (string, error) {
	if !session.Authenticated() {
		return "", ErrAuthRequired
	}

	body := map[string]interface{}{"resumeData": doc}
	if opts != nil {
		body["options"] = opts
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(session.Token).
		SetBody(body).
		Post("/api/resume/Ats_resume")
	if err != nil {
		return "", fmt.Errorf("resume generation failed: %w", err)
	}
	if resp.IsError() {
		c.logger.Warn("Resume generation rejected", map[string]interface{}{
			"status": resp.StatusCode(),
		})
		return "", statusError(resp.StatusCode(), resp.String())
	}

	// The backend returns the generated resume as raw HTML
	return resp.String(), nil
}

// GenerateCertificate renders a course certificate and returns its HTML.
// Requires an authenticated session.
func (c *Client) GenerateCertificate(ctx context.Context, session Session, req models.CertificateRequest) (string, error) {
	if !session.Authenticated() {
		return "", ErrAuthRequired
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(session.Token).
		SetBody(req).
		Post("/api/certificates/GenerateCertificate")
	if err != nil {
		return "", fmt.Errorf("certificate generation failed: %w", err)
	}
	if resp.IsError() {
		return "", statusError(resp.StatusCode(), resp.String())
	}
	return resp.String(), nil
}

// SaveCertificate stores rendered certificate HTML and returns the opaque ID
// the backend assigned. Requires an authenticated session.
func (c *Client) SaveCertificate(ctx context.Context, session Session, html string) (string, error) {
	if !session.Authenticated() {
		return "", ErrAuthRequired
	}

	var result struct {
		ID string `json:"id"`
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(session.Token).
		SetBody(map[string]string{"html": html}).
		SetResult(&result).
		Post("/api/certificates")
	if err != nil {
		return "", fmt.Errorf("certificate save failed: %w", err)
	}
	if resp.IsError() {
		return "", statusError(resp.StatusCode(), resp.String())
	}
	return result.ID, nil
}

// FetchCertificate retrieves a saved certificate's HTML by ID. The endpoint
// is public; missing or expired certificates surface as ErrNotFound.
func (c *Client) FetchCertificate(ctx context.Context, id string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/api/certificates/" + id)
	if err != nil {
		return "", fmt.Errorf("certificate fetch failed: %w", err)
	}
	if resp.IsError() {
		return "", statusError(resp.StatusCode(), resp.String())
	}
	return resp.String(), nil
}
