// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package links

import "context"

// # Link Data Access

// Repository defines the data access contract for link collections.
//
// Every operation is scoped to a single owner. Implementations must preserve
// the dense ordering invariant: positions within one user's collection are
// always 0..n-1 without gaps or duplicates.
type Repository interface {

	/*
		ListByUser returns the user's links sorted by ascending position.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Link: The collection in display order (empty, never nil)
		  - error: Database retrieval failures
	*/
	ListByUser(context context.Context, userID string) ([]*Link, error)

	/*
		Create appends a link at the end of the user's collection.

		The position is assigned inside the statement as one past the current
		maximum, so concurrent appends cannot race to the same slot.

		Parameters:
		  - context: context.Context
		  - link: *Link (Order is ignored on input and populated on return)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, link *Link) error

	/*
		Update modifies the platform and URL of an owned link.

		The position never changes on update.

		Parameters:
		  - context: context.Context
		  - link: *Link (ID and UserID select the row)

		Returns:
		  - error: apperr.NotFound when the link does not exist or belongs to
		    another user, or persistence failures
	*/
	Update(context context.Context, link *Link) error

	/*
		Delete removes an owned link and compacts the remaining positions.

		Both steps run in one transaction so a reader never observes a gap.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - linkID: string

		Returns:
		  - error: apperr.NotFound when the link does not exist or belongs to
		    another user, or persistence failures
	*/
	Delete(context context.Context, userID, linkID string) error
}
