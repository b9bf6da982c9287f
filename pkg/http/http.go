// Package http contains a thin http client used to talk to the external
// hosted services. Unlike the stdlib client it always drains the body and
// hands back the upstream status code untouched, so callers can mirror
// upstream failures verbatim.
package http

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/verimedia/media-platform/internal/log"
)

// Client represents default http client that can be used to send requests to third party services
type Client struct {
	base http.Client
}

// NewClient returns new instance of custom client
func NewClient(c http.Client) *Client {
	return &Client{
		base: c,
	}
}

// Get sends a GET request to url with the given extra headers. It returns the
// upstream status code and the raw body.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.execute(ctx, req, headers)
}

// Head sends a HEAD request to url. Only the status code is meaningful.
func (c *Client) Head(ctx context.Context, url string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, http.NoBody)
	if err != nil {
		return 0, err
	}
	status, _, err := c.execute(ctx, req, nil)
	return status, err
}

// Post sends a POST request with a json body to url with additional headers
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.execute(ctx, req, headers)
}

// PostForm sends a POST request with a form encoded body to url with additional headers
func (c *Client) PostForm(ctx context.Context, url string, form url.Values, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.execute(ctx, req, headers)
}

// PostMultipart sends a POST request with a single file part named fieldName
func (c *Client) PostMultipart(ctx context.Context, url, fieldName, fileName string, content []byte, headers map[string]string) (int, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, fileName)
	if err != nil {
		return 0, nil, err
	}
	if _, err := part.Write(content); err != nil {
		return 0, nil, err
	}
	if err := w.Close(); err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.execute(ctx, req, headers)
}

// execute contains common logic of request execution
func (c *Client) execute(ctx context.Context, r *http.Request, headers map[string]string) (int, []byte, error) {
	if requestID := middleware.GetReqID(ctx); requestID != "" {
		r.Header.Set(middleware.RequestIDHeader, requestID)
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	resp, err := c.base.Do(r)
	if err != nil {
		return 0, nil, err
	}

	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error(ctx, "can not close body", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	return resp.StatusCode, body, nil
}
