// Copyright 2026 The Trellminal Authors
// SPDX-License-Identifier: Apache-2.0

package trello

// Member is a Trello user.
type Member struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	FullName        string   `json:"fullName"`
	Initials        string   `json:"initials"`
	OrganizationIDs []string `json:"idOrganizations"`
}

// Organization is a Trello workspace.
type Organization struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"desc"`
	URL         string `json:"url"`
}

// Board is a Trello board.
type Board struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"desc"`
	Closed         bool   `json:"closed"`
	OrganizationID string `json:"idOrganization"`
	URL            string `json:"url"`
}

// List is a column on a board.
type List struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Closed   bool    `json:"closed"`
	BoardID  string  `json:"idBoard"`
	Position float64 `json:"pos"`
}

// Card is a single card on a list.
type Card struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"desc"`
	Closed      bool    `json:"closed"`
	ListID      string  `json:"idList"`
	BoardID     string  `json:"idBoard"`
	Position    float64 `json:"pos"`
	URL         string  `json:"url"`
	Due         string  `json:"due"`
	Labels      []Label `json:"labels"`
}

// Label is a colored tag attached to a card.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// DisplayName returns the name shown for a member: the full name when
// present, otherwise the username.
func (member Member) DisplayName() string {
	if member.FullName != "" {
		return member.FullName
	}
	return member.Username
}

// Title returns the organization's display name, falling back to its
// short name.
func (organization Organization) Title() string {
	if organization.DisplayName != "" {
		return organization.DisplayName
	}
	return organization.Name
}
