// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Request is a prepared API call whose response decodes into T. The
// credentials were captured when the request was built; sending it
// takes no client lock.
type Request[T any] struct {
	client *Client
	url    string
	err    error
}

// Send performs the request and decodes the response.
func (request *Request[T]) Send(ctx context.Context) (T, error) {
	var result T
	if request.err != nil {
		return result, request.err
	}
	body, err := request.client.do(ctx, request.url)
	if err != nil {
		return result, err
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("trello: decoding %s: %w", redactURL(request.url), err)
	}
	return result, nil
}

// newRequest snapshots the client's credentials into a request. When
// the client has no token the request fails with ErrUnauthorized on
// Send.
func newRequest[T any](client *Client, path string, query url.Values) *Request[T] {
	client.mu.Lock()
	token := client.token
	var requestURL string
	if token != "" {
		requestURL = client.endpointURL(path, token, query)
	}
	client.mu.Unlock()

	if token == "" {
		return &Request[T]{client: client, err: ErrUnauthorized}
	}
	return &Request[T]{client: client, url: requestURL}
}

// MembersMe fetches the member owning the client's token.
func (client *Client) MembersMe() *Request[Member] {
	return newRequest[Member](client, "/members/me", nil)
}

// MemberWithToken fetches the member owning token without changing the
// client's own credentials. Used to verify a token before storing it.
func (client *Client) MemberWithToken(token string) *Request[Member] {
	if token == "" {
		return &Request[Member]{client: client, err: ErrUnauthorized}
	}
	client.mu.Lock()
	requestURL := client.endpointURL("/members/me", token, nil)
	client.mu.Unlock()
	return &Request[Member]{client: client, url: requestURL}
}

// MemberOrganizations lists the workspaces of the token's member.
func (client *Client) MemberOrganizations() *Request[[]Organization] {
	return newRequest[[]Organization](client, "/members/me/organizations", nil)
}

// Organization fetches a single workspace.
func (client *Client) Organization(id string) *Request[Organization] {
	return newRequest[Organization](client, "/organizations/"+url.PathEscape(id), nil)
}

// OrganizationBoards lists the open boards of a workspace.
func (client *Client) OrganizationBoards(id string) *Request[[]Board] {
	return newRequest[[]Board](client, "/organizations/"+url.PathEscape(id)+"/boards",
		url.Values{"filter": {"open"}})
}

// Board fetches a single board.
func (client *Client) Board(id string) *Request[Board] {
	return newRequest[Board](client, "/boards/"+url.PathEscape(id), nil)
}

// BoardLists lists the open lists of a board.
func (client *Client) BoardLists(id string) *Request[[]List] {
	return newRequest[[]List](client, "/boards/"+url.PathEscape(id)+"/lists",
		url.Values{"filter": {"open"}})
}

// BoardCards lists the open cards of a board.
func (client *Client) BoardCards(id string) *Request[[]Card] {
	return newRequest[[]Card](client, "/boards/"+url.PathEscape(id)+"/cards",
		url.Values{"filter": {"open"}})
}

// Card fetches a single card.
func (client *Client) Card(id string) *Request[Card] {
	return newRequest[Card](client, "/cards/"+url.PathEscape(id), nil)
}

// AuthorizeOptions describes the token a user is asked to grant.
type AuthorizeOptions struct {
	AppName    string
	Expiration string
	Scope      string
	// ReturnURL, when set, makes Trello redirect the browser there with
	// the token in the URL fragment. When empty, Trello displays the
	// token for the user to copy.
	ReturnURL string
}

// AuthorizeURL returns the page on trello.com where a user grants a
// token to this application.
func (client *Client) AuthorizeURL(options AuthorizeOptions) string {
	values := url.Values{}
	values.Set("expiration", options.Expiration)
	values.Set("name", options.AppName)
	values.Set("scope", options.Scope)
	values.Set("response_type", "token")
	values.Set("key", client.Key())
	if options.ReturnURL != "" {
		values.Set("return_url", options.ReturnURL)
		values.Set("callback_method", "fragment")
	}
	return "https://trello.com/1/authorize?" + values.Encode()
}
