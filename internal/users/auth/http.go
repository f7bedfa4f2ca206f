// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package auth provides the HTTP delivery layer for the authentication lifecycle.

The handler acts as a thin mediation layer between the web and domain services:
  - Protocol: Standard RESTful JSON interface.
  - Security: Injects the HTTP-only session cookie on register/login and
    clears it on logout.
  - Verification: Enforces strict input validation before passing to [Service].

This layer is strictly responsible for transport concerns (status codes, headers, JSON).
*/
package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/linkifyapp/linkify/internal/platform/constants"
	"github.com/linkifyapp/linkify/internal/platform/middleware"
	requestutil "github.com/linkifyapp/linkify/internal/platform/request"
	"github.com/linkifyapp/linkify/internal/platform/respond"
	"github.com/linkifyapp/linkify/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages the user lifecycle entry points (Registration, Login,
// Token validation, Logout).
type Handler struct {
	authService   *Service
	secureCookies bool
}

// NewHandler constructs a new [Handler] with its service dependency.
//
// secureCookies should be true in production so the session cookie is only
// sent over TLS.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{authService: service, secureCookies: secureCookies}
}

// Routes returns a [chi.Router] with the /api/auth endpoints.
//
// # Endpoints
//   - POST /login          : Authenticates and sets the session cookie.
//   - GET  /validate-token : Confirms the current session is valid.
//   - POST /logout         : Clears the session cookie.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/validate-token", handler.validateToken)
	})

	return router
}

// RegisterUserRoutes attaches the /api/user registration endpoint to an
// existing router (the rest of /api/user belongs to the account handler).
func (handler *Handler) RegisterUserRoutes(router chi.Router) {
	router.Post("/register", handler.register)
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new user account.

POST /api/user/register

Description: Validates input, checks for identity conflicts, persists a new
user with an empty profile, and establishes the first session.

Request:
  - Body: registerRequest (Email, Password)

Response:
  - 201: Message + session cookie
  - 400: ErrInvalidJSON, validation failure, or duplicate email
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token, session.ExpiresAt)

	respond.Created(writer, map[string]string{
		constants.FieldMessage: "User registered successfully",
	})
}

/*
Login authenticates a user and establishes a session.

POST /api/auth/login

Description: Verifies credentials and injects the HTTP-only session cookie
into the response. The failure message never reveals whether the email exists.

Request:
  - Body: loginRequest (Email, Password)

Response:
  - 200: {userId} + session cookie
  - 400: Invalid credentials or validation failure
  - 429: Too many failed attempts for this account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookie(writer, session.Token, session.ExpiresAt)

	respond.OK(writer, map[string]string{
		constants.FieldUserID: session.UserID,
	})
}

/*
ValidateToken confirms the current session token is valid.

GET /api/auth/validate-token

Description: The Authenticate middleware has already verified the cookie's
signature and expiry; this endpoint simply echoes the embedded identity. No
store round trip is performed.

Response:
  - 200: {userId}
  - 401: Missing, malformed, or expired token
*/
func (handler *Handler) validateToken(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		constants.FieldUserID: claims.UserID,
	})
}

/*
Logout terminates the current session on the client.

POST /api/auth/logout

Description: Stateless — always succeeds. The only effect is an expired
replacement cookie. Tokens already issued remain valid until their fixed
expiry elapses.

Response:
  - 200: Message, cookie cleared
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	handler.clearSessionCookie(writer)
	respond.Message(writer, "Logged out successfully")
}

// # Cookie Helpers

// setSessionCookie installs the HTTP-only session cookie.
//
// The cookie expiry matches the token's own absolute lifetime; it must never
// be readable from script.
func (handler *Handler) setSessionCookie(writer http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     constants.SessionCookiePath,
		Expires:  expiresAt,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie replaces the session cookie with an expired empty one.
func (handler *Handler) clearSessionCookie(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     constants.SessionCookiePath,
		MaxAge:   -1,
		Secure:   handler.secureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
