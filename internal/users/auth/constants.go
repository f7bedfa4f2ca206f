// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package auth

import "time"

// # Authentication Constraints

const (
	// SessionTokenTTL is the fixed absolute lifetime of a session token.
	// One calendar day, no sliding renewal — clients re-authenticate after expiry.
	SessionTokenTTL = 24 * time.Hour

	// MinPasswordLength is the lower bound enforced at registration and login.
	MinPasswordLength = 8

	// LoginMaxAttempts is the number of failed logins per email before the
	// throttle rejects further attempts.
	LoginMaxAttempts = 10

	// LoginAttemptWindow is how long failed-attempt counters are remembered.
	LoginAttemptWindow = 15 * time.Minute
)
