// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package links provides the HTTP delivery layer for link collections.

# Security

Every endpoint requires an authenticated session; the collection in scope is
always the caller's own. Link IDs from other users resolve to 404.
*/
package links

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkifyapp/linkify/internal/platform/middleware"
	requestutil "github.com/linkifyapp/linkify/internal/platform/request"
	"github.com/linkifyapp/linkify/internal/platform/respond"
	"github.com/linkifyapp/linkify/internal/platform/validate"
)

// Handler implements the HTTP layer for the link collection.
type Handler struct {
	linkService *Service
}

// NewHandler constructs a new links [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{linkService: service}
}

// Routes returns a [chi.Router] configured with the link endpoints.
//
// # Endpoints
//   - GET    /          : The caller's links in display order.
//   - POST   /          : Appends a new link.
//   - PUT    /{linkId}  : Rewrites a link's platform and URL.
//   - DELETE /{linkId}  : Removes a link and compacts the order.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Put("/{linkId}", handler.update)
	router.Delete("/{linkId}", handler.delete)

	return router
}

// # Request Payloads

type linkRequest struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// validateLinkRequest applies the shared rules for create and update.
func validateLinkRequest(input linkRequest) error {
	validator := &validate.Validator{}
	validator.Required(FieldPlatform, input.Platform).
		MaxLen(FieldPlatform, input.Platform, MaxPlatformLength).
		Required(FieldURL, input.URL).
		AbsoluteURL(FieldURL, input.URL).
		MaxLen(FieldURL, input.URL, MaxURLLength)
	return validator.Err()
}

// # Collection Endpoints

/*
GET /api/links.

Description: Returns the caller's full collection sorted by position.

Response:
  - 200: []Link: Ordered collection (empty array when none)
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	collection, err := handler.linkService.List(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, collection)
}

/*
POST /api/links.

Description: Appends a new link at the end of the caller's collection.

Request:
  - body: linkRequest (Platform, URL)

Response:
  - 201: Link: The persisted link with its assigned position
  - 400: Validation: Missing platform or non-absolute URL
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input linkRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateLinkRequest(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.linkService.Create(request.Context(), userID, CreateInput{
		Platform: input.Platform,
		URL:      input.URL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, link)
}

/*
PUT /api/links/{linkId}.

Description: Rewrites the platform and URL of one of the caller's links. The
position never changes through this endpoint.

Request:
  - linkId: string (UUID)
  - body: linkRequest (Platform, URL)

Response:
  - 200: Link: The updated link
  - 400: Validation: Bad payload
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown link or owned by another user
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	linkID := requestutil.Param(request, FieldLinkID)

	var input linkRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if err := validateLinkRequest(input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.linkService.Update(request.Context(), userID, linkID, UpdateInput{
		Platform: input.Platform,
		URL:      input.URL,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, link)
}

/*
DELETE /api/links/{linkId}.

Description: Removes a link and shifts every later link down one position so
the collection stays dense.

Request:
  - linkId: string (UUID)

Response:
  - 200: Message: Link deleted successfully!
  - 401: ErrUnauthorized: Authentication required
  - 404: ErrNotFound: Unknown link or owned by another user
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	linkID := requestutil.Param(request, FieldLinkID)

	if err := handler.linkService.Delete(request.Context(), userID, linkID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Link deleted successfully!")
}
