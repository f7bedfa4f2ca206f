// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package middleware

import (
	"net/http"

	"github.com/linkifyapp/linkify/internal/platform/apperr"
	"github.com/linkifyapp/linkify/internal/platform/constants"
	"github.com/linkifyapp/linkify/internal/platform/ctxutil"
	"github.com/linkifyapp/linkify/internal/platform/respond"
	"github.com/linkifyapp/linkify/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify session tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenService]
// implementation, allowing us to easily inject fakes during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.SessionClaims, error)
}

// Authenticate extracts and verifies the session token from the auth cookie.
//
// # Flow
//  1. Look for the HTTP-only session cookie.
//  2. If absent, the request proceeds as anonymous.
//  3. If present, parse and verify the token via [TokenVerifier]. A malformed,
//     expired, or tampered token is treated as no token at all: no claims are
//     injected, so protected routes still fail closed at [RequireAuth] while
//     public routes (login, logout, register) keep working for a browser
//     holding a stale cookie.
//  4. On success, inject [*sec.SessionClaims] into the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			cookie, err := request.Cookie(constants.SessionCookieName)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(cookie.Value)
			if err != nil {
				// Unverifiable token: continue as anonymous so public
				// endpoints stay reachable with a stale cookie.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if [*sec.SessionClaims] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
