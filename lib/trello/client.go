// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package trello

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/trellminal/trellminal/lib/clock"
)

// DefaultBaseURL is the base URL for the public Trello REST API.
const DefaultBaseURL = "https://api.trello.com/1"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 16 << 20

// defaultRetryAfter is the backoff used when a 429 response carries
// no usable Retry-After header.
const defaultRetryAfter = time.Second

// Config holds configuration for creating a Trello API Client.
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// DefaultBaseURL.
	BaseURL string

	// Key is the public application key. Required.
	Key string

	// Token is the user token. Optional: a client without a token can
	// still verify a candidate token with MemberWithToken and be
	// authorized later with Authorize.
	Token string

	// Timeout bounds each request. Zero means no timeout beyond the
	// caller's context.
	Timeout time.Duration

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time operations. Defaults to clock.Real().
	Clock clock.Clock

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a Trello REST API client. The credential pair is guarded
// by a mutex that is only held while a request URL is being built.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	clock      clock.Clock
	logger     *slog.Logger

	mu    sync.Mutex
	key   string
	token string
}

// NewClient creates a Trello API client from the given configuration.
func NewClient(config Config) (*Client, error) {
	if config.Key == "" {
		return nil, fmt.Errorf("trello: application key is required")
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("trello: invalid base URL %q: %w", baseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		timeout:    config.Timeout,
		clock:      clk,
		logger:     logger,
		key:        config.Key,
		token:      config.Token,
	}, nil
}

// Authorize replaces the user token used by subsequent requests.
func (client *Client) Authorize(token string) {
	client.mu.Lock()
	defer client.mu.Unlock()
	client.token = token
}

// Deauthorize clears the user token.
func (client *Client) Deauthorize() {
	client.Authorize("")
}

// Authorized reports whether the client currently holds a user token.
func (client *Client) Authorized() bool {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.token != ""
}

// Key returns the application key.
func (client *Client) Key() string {
	client.mu.Lock()
	defer client.mu.Unlock()
	return client.key
}

// endpointURL builds an absolute request URL carrying the key and the
// given token as query parameters.
func (client *Client) endpointURL(path string, token string, query url.Values) string {
	values := url.Values{}
	for name, list := range query {
		values[name] = list
	}
	values.Set("key", client.key)
	values.Set("token", token)
	return client.baseURL + path + "?" + values.Encode()
}

// do executes a GET request against an absolute URL and returns the
// response body. A 429 response is retried once after the server's
// Retry-After delay. Non-2xx responses return an *APIError.
func (client *Client) do(ctx context.Context, requestURL string) ([]byte, error) {
	return client.doWithRetry(ctx, requestURL, false)
}

func (client *Client) doWithRetry(ctx context.Context, requestURL string, isRetry bool) ([]byte, error) {
	if client.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.timeout)
		defer cancel()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("trello: creating request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		// *url.Error repeats the full URL, token included.
		var urlError *url.Error
		if errors.As(err, &urlError) {
			err = urlError.Err
		}
		return nil, fmt.Errorf("trello: GET %s: %w", redactURL(requestURL), err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("trello: reading response body: %w", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		if !isRetry && response.StatusCode == http.StatusTooManyRequests {
			retryDuration := retryAfter(response.Header)
			client.logger.Info("rate limited, backing off",
				"duration", retryDuration,
				"url", redactURL(requestURL),
			)

			select {
			case <-client.clock.After(retryDuration):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return client.doWithRetry(ctx, requestURL, true)
		}
		return nil, parseAPIErrorFromBody(response.StatusCode, body)
	}

	return body, nil
}

func retryAfter(header http.Header) time.Duration {
	seconds, err := strconv.Atoi(header.Get("Retry-After"))
	if err != nil || seconds <= 0 {
		return defaultRetryAfter
	}
	return time.Duration(seconds) * time.Second
}

// redactURL strips credentials from a request URL before it reaches
// a log line or an error message.
func redactURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "<unparseable url>"
	}
	parsed.RawQuery = ""
	return parsed.String()
}
