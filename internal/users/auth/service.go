// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package auth implements the core identity and session management system.

It handles user registration, secure password hashing, credential
verification, and stateless session token issuance.

Architecture:

  - Service: Orchestrates business logic (Register, Login).
  - Repository: Abstracted interfaces for Postgres (Users) and Redis (Throttle).
  - Security: Leverages bcrypt hashing and HMAC-signed session tokens.

Sessions are fully stateless: possession of a valid, unexpired, correctly
signed token is the sole proof of identity. Logout is a transport concern
(cookie removal) and leaves already-issued tokens valid until expiry.
*/
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/linkifyapp/linkify/internal/platform/apperr"
	"github.com/linkifyapp/linkify/internal/platform/sec"
	"github.com/linkifyapp/linkify/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating session tokens.
type TokenProvider interface {
	// GenerateSessionToken creates a signed token string for the given user.
	//
	// # Parameters
	//   - userID: The ID of the account.
	//   - timeToLive: The duration before the token expires.
	//
	// # Returns
	//   - A signed token string, or an err if signing fails.
	GenerateSessionToken(userID string, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	loginThrottle  LoginThrottle
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
//
// loginThrottle may be nil, in which case brute-force throttling is disabled
// (useful in tests and single-user development setups).
func NewService(
	userRepo UserRepository,
	throttle LoginThrottle,
	tokenProv TokenProvider,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository: userRepo,
		loginThrottle:  throttle,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email    string
	Password string
}

// Session represents a successfully established stateless session.
type Session struct {
	Token     string
	ExpiresAt time.Time
	UserID    string
}

/*
Register validates, hashes, and persists a brand new user account.

Description: Creates the account with an empty profile and immediately
issues a session token so registration doubles as the first login.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Session: Transport-ready session for the new account
  - err: Conflict (if the email exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Session, error) {
	email := NormalizeEmail(input.Email)

	// Verify email uniqueness up front for a clean Conflict err. The unique
	// index in the repository remains the authoritative guard under races.
	if _, err := service.userRepository.FindByEmail(context, email); err == nil {
		return nil, apperr.Conflict("User already exist.")
	}

	// Prevent storing plain-text passwords. Hashing happens exactly once,
	// here — repositories only ever see the finished hash, so no later code
	// path can double-hash an already-hashed value.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hashedPassword,
		Profile:      Profile{},
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))

	return service.issueSession(user.ID)
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

/*
Login validates user credentials and issues a fresh session token.

Description: Verifies identity with a constant-time password comparison and
issues a stateless token. Nothing is persisted on success — the token itself
is the session.

The error for an unknown email and the error for a wrong password are
identical in status and message, so callers cannot probe which accounts exist.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session identifiers
  - err: InvalidCredentials, RateLimited, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	email := NormalizeEmail(input.Email)

	// Reject early when this account is under a brute-force lockout.
	if err := service.checkThrottle(context, email); err != nil {
		return nil, err
	}

	// Look up the account. Generic error to prevent enumeration.
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		service.recordFailure(context, email)
		return nil, apperr.InvalidCredentials()
	}

	// Verify the password hash. bcrypt compares in constant time, which
	// prevents timing attacks distinguishing near-misses from garbage.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		service.recordFailure(context, email)
		return nil, apperr.InvalidCredentials()
	}

	// Clear the failure counter on success.
	if service.loginThrottle != nil {
		if err := service.loginThrottle.Reset(context, email); err != nil {
			service.logger.Warn("login_throttle_reset_failed", slog.Any("error", err))
		}
	}

	service.logger.Info("user_logged_in", slog.String("user_id", user.ID))

	return service.issueSession(user.ID)
}

// issueSession generates a signed session token with the fixed absolute TTL.
func (service *Service) issueSession(userID string) (*Session, error) {
	token, err := service.tokenProvider.GenerateSessionToken(userID, SessionTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &Session{
		Token:     token,
		ExpiresAt: time.Now().Add(SessionTokenTTL),
		UserID:    userID,
	}, nil
}

// checkThrottle returns RateLimited when the email has exhausted its attempts.
//
// Throttle storage failures are logged and ignored — a Redis outage must not
// lock every user out of login.
func (service *Service) checkThrottle(context context.Context, email string) error {
	if service.loginThrottle == nil {
		return nil
	}

	attempts, err := service.loginThrottle.Attempts(context, email)
	if err != nil {
		service.logger.Warn("login_throttle_unavailable", slog.Any("error", err))
		return nil
	}

	if attempts < LoginMaxAttempts {
		return nil
	}

	retryAfter, err := service.loginThrottle.RetryAfter(context, email)
	if err != nil || retryAfter <= 0 {
		retryAfter = LoginAttemptWindow
	}

	return apperr.RateLimited(int(math.Ceil(retryAfter.Seconds())))
}

// recordFailure bumps the failed-attempt counter, tolerating throttle outages.
func (service *Service) recordFailure(context context.Context, email string) {
	if service.loginThrottle == nil {
		return
	}

	if _, err := service.loginThrottle.Hit(context, email); err != nil {
		service.logger.Warn("login_throttle_hit_failed", slog.Any("error", err))
	}
}
