// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given (normalized) email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict on duplicate email, or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdateProfile persists changes to the mutable profile fields.

		The password hash is never written by this operation.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	UpdateProfile(context context.Context, user *User) error
}

// # Volatile Data Access

// LoginThrottle defines the contract for tracking failed login attempts
// per email address.
type LoginThrottle interface {

	/*
		Attempts returns the current failed-attempt count for an email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - int64: Current counter value (0 when absent)
		  - error: Retrieval failures
	*/
	Attempts(context context.Context, email string) (int64, error)

	/*
		Hit increments the failed-attempt counter, starting the expiry window
		on the first failure.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - int64: Counter value after the increment
		  - error: Persistence failures
	*/
	Hit(context context.Context, email string) (int64, error)

	/*
		Reset clears the counter after a successful login.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - error: Persistence failures
	*/
	Reset(context context.Context, email string) error

	/*
		RetryAfter reports how long until the counter expires.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - time.Duration: Remaining window (0 when no counter exists)
		  - error: Retrieval failures
	*/
	RetryAfter(context context.Context, email string) (time.Duration, error)
}
