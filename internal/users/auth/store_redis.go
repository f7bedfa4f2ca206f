// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linkifyapp/linkify/internal/platform/constants"
)

// # Login Throttle

// RedisLoginThrottle implements LoginThrottle using Redis counters with TTL.
//
// Counters are keyed by normalized email, so the throttle protects a targeted
// account regardless of which IPs the attempts come from.
type RedisLoginThrottle struct {
	client *redis.Client
}

// NewLoginThrottle creates a new Redis-backed LoginThrottle.
func NewLoginThrottle(client *redis.Client) *RedisLoginThrottle {
	return &RedisLoginThrottle{client: client}
}

/*
Attempts returns the current failed-attempt count for an email.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - int64: Counter value (0 when no failures are recorded)
  - error: Connectivity errors
*/
func (throttle *RedisLoginThrottle) Attempts(context context.Context, email string) (int64, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixLoginAttempts + email

	// Read the counter; a missing key means a clean slate
	count, err := throttle.client.Get(context, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}

	return count, nil
}

/*
Hit increments the failed-attempt counter for an email.

Description: The expiry window starts on the first failure; later failures
inside the window do not extend it, so a locked-out account always frees up.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - int64: Counter value after the increment
  - error: Connectivity errors
*/
func (throttle *RedisLoginThrottle) Hit(context context.Context, email string) (int64, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixLoginAttempts + email

	// Increment the counter
	count, err := throttle.client.Incr(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	// Start the window on the first failure only
	if count == 1 {
		if err := throttle.client.Expire(context, key, LoginAttemptWindow).Err(); err != nil {
			return count, fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
		}
	}

	return count, nil
}

/*
Reset clears the counter after a successful login.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Connectivity errors
*/
func (throttle *RedisLoginThrottle) Reset(context context.Context, email string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixLoginAttempts + email

	// Delete the counter
	if err := throttle.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_reset_failed: %w", err)
	}

	return nil
}

/*
RetryAfter reports the remaining lifetime of the attempt window.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - time.Duration: Remaining window, 0 when no counter exists
  - error: Connectivity errors
*/
func (throttle *RedisLoginThrottle) RetryAfter(context context.Context, email string) (time.Duration, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixLoginAttempts + email

	// TTL returns a negative duration for missing or persistent keys
	ttl, err := throttle.client.TTL(context, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_ttl_failed: %w", err)
	}

	if ttl < 0 {
		return 0, nil
	}

	return ttl, nil
}
