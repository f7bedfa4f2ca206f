// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkifyapp/linkify/internal/platform/sec"
)

const testIssuer = "linkify.app"

/*
TestNewTokenService rejects an empty signing secret.
*/
func TestNewTokenService(t *testing.T) {
	_, err := sec.NewTokenService("", testIssuer)
	assert.Error(t, err)

	service, err := sec.NewTokenService("a-real-secret", testIssuer)
	require.NoError(t, err)
	assert.NotNil(t, service)
}

/*
TestTokenService_RoundTrip verifies the issue-then-verify loop preserves the
embedded identity and the absolute expiry.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	service, err := sec.NewTokenService("round-trip-secret", testIssuer)
	require.NoError(t, err)

	tokenString, err := service.GenerateSessionToken("user-123", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := service.VerifyToken(tokenString)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, testIssuer, claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

/*
TestTokenService_Rejections walks the fail-closed paths: garbage input,
expired tokens, wrong secrets, and tampered payloads all fail verification.
*/
func TestTokenService_Rejections(t *testing.T) {
	service, err := sec.NewTokenService("primary-secret", testIssuer)
	require.NoError(t, err)

	t.Run("garbage_input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-token", "a.b", "a.b.c.d"} {
			_, err := service.VerifyToken(input)
			assert.Error(t, err, "input %q should fail verification", input)
		}
	})

	t.Run("expired_token", func(t *testing.T) {
		tokenString, err := service.GenerateSessionToken("user-123", -time.Minute)
		require.NoError(t, err)

		_, err = service.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("wrong_secret", func(t *testing.T) {
		other, err := sec.NewTokenService("different-secret", testIssuer)
		require.NoError(t, err)

		tokenString, err := other.GenerateSessionToken("user-123", time.Hour)
		require.NoError(t, err)

		_, err = service.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("tampered_signature", func(t *testing.T) {
		tokenString, err := service.GenerateSessionToken("user-123", time.Hour)
		require.NoError(t, err)

		_, err = service.VerifyToken(tokenString + "x")
		assert.Error(t, err)
	})

	t.Run("unsigned_alg_none", func(t *testing.T) {
		// An attacker stripping the signature must not bypass verification.
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &sec.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-123",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			UserID: "user-123",
		})
		tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = service.VerifyToken(tokenString)
		assert.Error(t, err)
	})

	t.Run("missing_identity", func(t *testing.T) {
		// A structurally valid token without a uid claim carries no identity.
		anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, &sec.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		tokenString, err := anonymous.SignedString([]byte("primary-secret"))
		require.NoError(t, err)

		_, err = service.VerifyToken(tokenString)
		assert.Error(t, err)
	})
}
