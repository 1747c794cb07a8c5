package garageclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kevrnd/car-garage/internal/metrics"
	"github.com/Kevrnd/car-garage/internal/model"
	"github.com/Kevrnd/car-garage/platform/logger"
)

const (
	CSRFCookie    = "csrftoken"
	SessionCookie = "sessionid"

	HeaderCSRF      = "X-CSRFToken"
	HeaderRequestID = "X-Request-ID"
)

type Options struct {
	// Site root, e.g. http://localhost:8000. API paths are resolved under it.
	BaseURL string
	// Zero means no client side timeout.
	Timeout time.Duration
	// Seeds the cookie jar so that a saved session can be reused without Login.
	SessionID string
	CSRFToken string
	Transport http.RoundTripper
}

type client struct {
	http *http.Client
	base *url.URL
}

func NewClient(opts Options) (*client, error) {
	const op = "garageclient.NewClient"

	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: base url: %v", op, model.ErrInvalidArgument, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: %w: base url %q must be absolute", op, model.ErrInvalidArgument, opts.BaseURL)
	}
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var seed []*http.Cookie
	if opts.SessionID != "" {
		seed = append(seed, &http.Cookie{Name: SessionCookie, Value: opts.SessionID, Path: "/"})
	}
	if opts.CSRFToken != "" {
		seed = append(seed, &http.Cookie{Name: CSRFCookie, Value: opts.CSRFToken, Path: "/"})
	}
	if len(seed) > 0 {
		jar.SetCookies(base, seed)
	}

	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &client{
		http: &http.Client{
			Jar:       jar,
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		base: base,
	}, nil
}

func (c *client) cookie(name string) string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}

func (c *client) resolve(ref string) string {
	return c.base.ResolveReference(&url.URL{Path: ref}).String()
}

func (c *client) newRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(ref), body)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", model.ErrTransport, err)
	}

	id := logger.RequestID(ctx)
	if id == "" {
		id = uuid.NewString()
	}
	req.Header.Set(HeaderRequestID, id)

	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
	default:
		if token := c.cookie(CSRFCookie); token != "" {
			req.Header.Set(HeaderCSRF, token)
		}
		req.Header.Set("Referer", c.base.String())
	}

	return req, nil
}

// send performs req and records metrics. Non-2xx responses are returned as is.
func (c *client) send(req *http.Request, resource string) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(resource, req.Method).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(resource, req.Method, "error").Inc()
		return nil, fmt.Errorf("%w: %s %s: %w", model.ErrTransport, req.Method, resource, err)
	}
	metrics.BackendRequestsTotal.WithLabelValues(resource, req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	logger.Debug(req.Context(), "backend request",
		logger.String("method", req.Method),
		logger.String("url", req.URL.Path),
		logger.Int("status", resp.StatusCode),
		logger.Duration("took", time.Since(start)),
	)

	return resp, nil
}

// doJSON sends in as a JSON body (when non-nil) and decodes a 2xx response into out (when non-nil).
func (c *client) doJSON(ctx context.Context, method, resource, ref string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%w: encode %s: %v", model.ErrTransport, resource, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := c.newRequest(ctx, method, ref, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.send(req, resource)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return readAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", model.ErrTransport, resource, err)
	}

	return nil
}
