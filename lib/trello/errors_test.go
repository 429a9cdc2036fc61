// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package trello

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "with message",
			err:      &APIError{StatusCode: 404, Message: "invalid id"},
			expected: "trello: HTTP 404: invalid id",
		},
		{
			name:     "without message",
			err:      &APIError{StatusCode: 500},
			expected: "trello: HTTP 500",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.err.Error(); got != test.expected {
				t.Errorf("Error() = %q, want %q", got, test.expected)
			}
		})
	}
}

func TestAPIError_IsAuthExpired(t *testing.T) {
	wrapped := fmt.Errorf("mounting board: %w", &APIError{StatusCode: 401, Message: "invalid token"})
	if !errors.Is(wrapped, ErrAuthExpired) {
		t.Error("expected wrapped 401 to match ErrAuthExpired")
	}
	if errors.Is(&APIError{StatusCode: 403}, ErrAuthExpired) {
		t.Error("403 must not match ErrAuthExpired")
	}
}

func TestParseAPIErrorFromBody(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"plain text", 400, "invalid value for idList\n", "invalid value for idList"},
		{"json message", 400, `{"message":"bad request","error":"ERROR"}`, "bad request"},
		{"json error only", 429, `{"error":"API_TOKEN_LIMIT_EXCEEDED"}`, "API_TOKEN_LIMIT_EXCEEDED"},
		{"empty body", 503, "", "Service Unavailable"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := parseAPIErrorFromBody(test.status, []byte(test.body))
			if got.StatusCode != test.status || got.Message != test.message {
				t.Errorf("got %+v, want status %d message %q", got, test.status, test.message)
			}
		})
	}
}
