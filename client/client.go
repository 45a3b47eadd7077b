// Package client talks to a running niveau backend over HTTP.
package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"isimm-manager/models"
)

// APIError is the error body returned by the backend
type APIError struct {
	Status   int    `json:"status"`
	Title    string `json:"title"`
	ErrorKey string `json:"errorKey"`
	Message  string `json:"message"`
	Raw      string `json:"error"` // Plain {"error": ...} bodies
}

func (e *APIError) Error() string {
	switch {
	case e.ErrorKey != "":
		return fmt.Sprintf("%s (%s, status %d)", e.Title, e.ErrorKey, e.Status)
	case e.Raw != "":
		return fmt.Sprintf("%s (status %d)", e.Raw, e.Status)
	default:
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
}

// Client fetches niveaus from the REST resource
type Client struct {
	http *resty.Client
}

// New creates a client for the backend at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second)

	rc.AddRetryCondition(func(r *resty.Response, err error) bool {
		return err != nil || r.StatusCode() >= http.StatusInternalServerError
	})

	return &Client{http: rc}
}

// FetchNiveaus lists niveaus ordered by sort ("<field>,<direction>")
func (c *Client) FetchNiveaus(ctx context.Context, sort string) ([]models.Niveau, error) {
	var niveaus []models.Niveau
	req := c.http.R().
		SetContext(ctx).
		SetResult(&niveaus).
		SetError(&APIError{})
	if sort != "" {
		req.SetQueryParam("sort", sort)
	}

	resp, err := req.Get("/api/niveaus")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch niveaus: %w", err)
	}
	if resp.IsError() {
		apiErr, ok := resp.Error().(*APIError)
		if !ok || apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.Status = resp.StatusCode()
		return nil, apiErr
	}
	if niveaus == nil {
		niveaus = []models.Niveau{}
	}
	return niveaus, nil
}

// FetchNiveau retrieves one niveau, or nil when the backend answers 404
func (c *Client) FetchNiveau(ctx context.Context, id int64) (*models.Niveau, error) {
	var n models.Niveau
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&n).
		SetError(&APIError{}).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Get("/api/niveaus/{id}")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch niveau %d: %w", id, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.IsError() {
		apiErr, _ := resp.Error().(*APIError)
		if apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.Status = resp.StatusCode()
		return nil, apiErr
	}
	return &n, nil
}
