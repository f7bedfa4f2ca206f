// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package links implements the core link-in-bio collection.

Each user owns an ordered list of links. Ordering is the load-bearing
invariant of this domain: within one user's collection the positions always
form the dense sequence 0, 1, 2, ..., n-1 with no gaps and no duplicates.
New links append at the end; deleting a link closes the gap it leaves.
*/
package links

import "time"

// # Domain Entities

// Link represents a single entry in a user's public link collection.
type Link struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Platform  string    `json:"platform"`
	URL       string    `json:"url"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// # Field Identifiers

// Field names for validation and route parameters in the links domain.
const (
	FieldPlatform = "platform"
	FieldURL      = "url"
	FieldLinkID   = "linkId"
)

// # Domain Constraints

const (
	// MaxPlatformLength caps the platform label.
	MaxPlatformLength = 50

	// MaxURLLength caps the destination URL.
	MaxURLLength = 2048
)
