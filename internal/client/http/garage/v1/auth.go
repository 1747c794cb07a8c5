package garageclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/logger"
)

// Login performs the backend form login. The login page is fetched first so the jar holds a
// csrftoken; success is the presence of a session cookie afterwards.
func (c *client) Login(ctx context.Context, username, password string) error {
	const op = "garageclient.Login"

	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%s: %w: username must be non-empty", op, model.ErrInvalidArgument)
	}

	req, err := c.newRequest(ctx, http.MethodGet, "login/", nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.drain(req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	token := c.cookie(CSRFCookie)
	if token == "" {
		return fmt.Errorf("%s: %w: backend did not issue %s", op, model.ErrLoginFailed, CSRFCookie)
	}

	form := url.Values{
		"username":            {username},
		"password":            {password},
		"csrfmiddlewaretoken": {token},
	}
	req, err = c.newRequest(ctx, http.MethodPost, "login/", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := c.drain(req); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if c.cookie(SessionCookie) == "" {
		return fmt.Errorf("%s: %w", op, model.ErrLoginFailed)
	}

	logger.Info(ctx, "logged in", logger.String("username", username))

	return nil
}

// SessionID returns the current session cookie so callers can persist it.
func (c *client) SessionID() string { return c.cookie(SessionCookie) }

// CSRFToken returns the current CSRF cookie value.
func (c *client) CSRFToken() string { return c.cookie(CSRFCookie) }

func (c *client) drain(req *http.Request) error {
	resp, err := c.send(req, resourceLogin)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return readAPIError(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
