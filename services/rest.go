package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/felixgeelhaar/fortify/retry"

	goPortal "github.com/caribevibes/goPortal"
)

// Page defines a public type used by goPortal APIs.
//
// Page is the backend's pagination envelope for list endpoints.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// Client defines a public type used by goPortal APIs.
//
// Client is the shared REST plumbing the resource services are built on. It
// carries the authenticated HTTP client, the API base URL, and the optional
// read retrier.
type Client struct {
	http    *http.Client
	base    string
	retrier retry.Retry[[]byte]
}

// NewClient builds the shared REST client. httpClient should be the
// authenticated client from [goPortal.Client.HTTP]; retryCfg enables backoff
// retries for GET requests only.
func NewClient(httpClient *http.Client, baseURL string, retryCfg goPortal.RetryConfig) *Client {
	c := &Client{
		http: httpClient,
		base: strings.TrimRight(baseURL, "/"),
	}

	if retryCfg.Enabled {
		c.retrier = retry.New[[]byte](retry.Config{
			MaxAttempts:   retryCfg.MaxAttempts,
			InitialDelay:  retryCfg.InitialDelay,
			MaxDelay:      retryCfg.MaxDelay,
			Multiplier:    retryCfg.Multiplier,
			BackoffPolicy: retry.BackoffExponential,
			Jitter:        true,
			IsRetryable:   isRetryable,
		})
	}

	return c
}

// isRetryable admits transport failures and server-side trouble. Client errors
// mean the request itself is wrong and will not improve with repetition.
func isRetryable(err error) bool {
	var apiErr *goPortal.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError ||
			apiErr.Status == http.StatusTooManyRequests
	}
	return err != nil
}

// get issues a GET and decodes the response into out. When the retrier is
// configured the call is retried with backoff; GET is idempotent so replays
// are safe.
func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	run := func(ctx context.Context) ([]byte, error) {
		return c.doOnce(ctx, http.MethodGet, path, query, nil)
	}

	var body []byte
	var err error
	if c.retrier != nil {
		body, err = c.retrier.Do(ctx, run)
	} else {
		body, err = run(ctx)
	}
	if err != nil {
		return err
	}

	return decodeBody(body, out)
}

// send issues a write (POST, PUT, PATCH, DELETE) exactly once.
func (c *Client) send(ctx context.Context, method, path string, payload, out interface{}) error {
	body, err := c.doOnce(ctx, method, path, nil, payload)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return decodeBody(body, out)
}

func (c *Client) doOnce(ctx context.Context, method, path string, query url.Values, payload interface{}) ([]byte, error) {
	endpoint := c.base + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiError(resp.StatusCode, body, path)
	}

	return body, nil
}

func decodeBody(body []byte, out interface{}) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Join(goPortal.ErrInvalidResponse, err)
	}
	return nil
}

func apiError(status int, body []byte, path string) error {
	apiErr := &goPortal.APIError{
		Status: status,
		Path:   path,
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			apiErr.Message = payload.Message
		} else {
			apiErr.Message = payload.Error
		}
	}

	return apiErr
}

func pageQuery(page, size int) url.Values {
	q := url.Values{}
	if page >= 0 {
		q.Set("page", fmt.Sprintf("%d", page))
	}
	if size > 0 {
		q.Set("size", fmt.Sprintf("%d", size))
	}
	return q
}
