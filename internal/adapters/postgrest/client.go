// Package postgrest stores rooms, events and bookings through a hosted PostgREST API
// (tables under /rest/v1, SQL functions under /rest/v1/rpc).
package postgrest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

const restPrefix = "/rest/v1/"

// APIError is a non-2xx PostgREST response. Code carries the SQLSTATE or PGRST code.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("postgrest %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("postgrest %d: %s", e.Status, e.Message)
}

func (e *APIError) StatusCode() int { return e.Status }

func (e *APIError) SQLState() string { return e.Code }

// Client is a thin PostgREST client. It never retries; callers own the retry policy.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetHeader("apikey", apiKey).SetAuthToken(apiKey)
	}
	return &Client{http: client, logger: logger}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().SetContext(ctx).SetError(&APIError{})
}

func (c *Client) do(req *resty.Request, method, path string) (*resty.Response, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug("postgrest request failed", "method", method, "path", path, "err", err)
		return nil, err
	}
	c.logger.Debug("postgrest request", "method", method, "path", path, "status", resp.StatusCode())
	if resp.IsError() {
		apiErr, _ := resp.Error().(*APIError)
		if apiErr == nil {
			apiErr = &APIError{}
		}
		apiErr.Status = resp.StatusCode()
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode())
		}
		return resp, apiErr
	}
	return resp, nil
}

// RPC calls a SQL function with named parameters and decodes its JSON result into out.
func (c *Client) RPC(ctx context.Context, fn string, params any, out any) error {
	req := c.request(ctx).SetBody(params).SetResult(out)
	_, err := c.do(req, http.MethodPost, restPrefix+"rpc/"+fn)
	return err
}

// Select reads rows of table matching query into out.
func (c *Client) Select(ctx context.Context, table string, query url.Values, out any) error {
	req := c.request(ctx).SetQueryParamsFromValues(query).SetResult(out)
	_, err := c.do(req, http.MethodGet, restPrefix+table)
	return err
}

// Insert inserts body (one row or an array of rows) in a single statement and decodes the
// inserted rows into out.
func (c *Client) Insert(ctx context.Context, table string, body any, out any, upsert bool) error {
	prefer := "return=representation"
	if upsert {
		prefer += ",resolution=merge-duplicates"
	}
	req := c.request(ctx).SetHeader("Prefer", prefer).SetBody(body).SetResult(out)
	_, err := c.do(req, http.MethodPost, restPrefix+table)
	return err
}

// Update patches the rows matching query and decodes the updated rows into out.
func (c *Client) Update(ctx context.Context, table string, query url.Values, body any, out any) error {
	req := c.request(ctx).SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(query).SetBody(body).SetResult(out)
	_, err := c.do(req, http.MethodPatch, restPrefix+table)
	return err
}

// Delete removes the rows matching query and returns how many were deleted.
func (c *Client) Delete(ctx context.Context, table string, query url.Values) (int, error) {
	var deleted []struct {
		ID string `json:"id"`
	}
	req := c.request(ctx).SetHeader("Prefer", "return=representation").
		SetQueryParamsFromValues(query).SetResult(&deleted)
	if _, err := c.do(req, http.MethodDelete, restPrefix+table); err != nil {
		return 0, err
	}
	return len(deleted), nil
}

func eq(v string) string { return "eq." + v }
