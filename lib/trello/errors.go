// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package trello

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrAuthExpired is matched by any error caused by a rejected or
// missing user token.
var ErrAuthExpired = errors.New("trello: authentication expired")

// ErrUnauthorized is returned by request builders when the client has
// no user token. It wraps ErrAuthExpired.
var ErrUnauthorized = fmt.Errorf("trello: no token configured: %w", ErrAuthExpired)

// APIError represents a non-2xx response from the Trello REST API.
// Trello answers most failures with a short plain-text body ("invalid
// token", "invalid id") and some with a JSON object carrying a
// message field; Message holds whichever was present.
type APIError struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Message is the error description returned by Trello.
	Message string
}

func (err *APIError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("trello: HTTP %d", err.StatusCode)
	}
	return fmt.Sprintf("trello: HTTP %d: %s", err.StatusCode, err.Message)
}

// Is reports 401 responses as ErrAuthExpired.
func (err *APIError) Is(target error) bool {
	return target == ErrAuthExpired && err.StatusCode == http.StatusUnauthorized
}

// IsNotFound reports whether err is a Trello API 404 response.
func IsNotFound(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusNotFound
}

// IsRateLimited reports whether err is a Trello API 429 response.
func IsRateLimited(err error) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.StatusCode == http.StatusTooManyRequests
}

// parseAPIErrorFromBody builds an APIError from a response body,
// accepting either {"message": "..."} JSON or plain text.
func parseAPIErrorFromBody(statusCode int, body []byte) *APIError {
	message := strings.TrimSpace(string(body))
	var structured struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if len(message) > 0 && message[0] == '{' && json.Unmarshal(body, &structured) == nil {
		switch {
		case structured.Message != "":
			message = structured.Message
		case structured.Error != "":
			message = structured.Error
		}
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &APIError{StatusCode: statusCode, Message: message}
}
