// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package account provides the HTTP delivery layer for profile management.

It implements the RESTful interface for users to read their private profile,
update it (with an optional avatar upload), and remove the avatar.

# Security

All endpoints in this package require an active authentication session
provided by the RequireAuth middleware.
*/
package account

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/linkifyapp/linkify/internal/platform/apperr"
	"github.com/linkifyapp/linkify/internal/platform/middleware"
	requestutil "github.com/linkifyapp/linkify/internal/platform/request"
	"github.com/linkifyapp/linkify/internal/platform/respond"
	"github.com/linkifyapp/linkify/internal/platform/validate"
	"github.com/linkifyapp/linkify/internal/users/auth"
	"github.com/linkifyapp/linkify/pkg/pointer"
)

// multipartOverheadBytes leaves room for field boundaries and text fields on
// top of the avatar size cap.
const multipartOverheadBytes = 64 << 10

// Handler implements the HTTP layer for profile management.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new account [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// RegisterRoutes attaches the account endpoints to the /api/user router.
//
// # Endpoints
//   - GET    /me            : Private profile of the authenticated user.
//   - PUT    /profile       : Partial profile update, multipart with optional avatar.
//   - DELETE /profile/image : Removes the current avatar.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/me", handler.getMe)
		r.Put("/profile", handler.updateProfile)
		r.Delete("/profile/image", handler.deleteProfileImage)
	})
}

// # Profile Endpoints

/*
GET /api/user/me.

Description: Retrieves the full private profile of the authenticated user.

Response:
  - 200: User: Fully hydrated user profile
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PUT /api/user/profile.

Description: Applies partial updates to the authenticated user's profile. The
body is multipart/form-data so a replacement avatar can ride along with the
text fields. Absent fields are left unchanged.

Request:
  - firstName: string (optional)
  - lastName: string (optional)
  - imageFile: file (optional, jpeg/jpg/png, max 1 MiB)

Response:
  - 200: User: The updated profile
  - 400: Validation: Oversized or non-image upload, malformed form
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, MaxImageBytes+multipartOverheadBytes)
	if err := request.ParseMultipartForm(MaxImageBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid multipart form data."))
		return
	}

	input := UpdateProfileInput{}

	// Only fields present in the form are treated as changes.
	if values, ok := request.MultipartForm.Value[auth.FieldFirstName]; ok && len(values) > 0 {
		input.FirstName = pointer.To(values[0])
	}
	if values, ok := request.MultipartForm.Value[auth.FieldLastName]; ok && len(values) > 0 {
		input.LastName = pointer.To(values[0])
	}

	validator := &validate.Validator{}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, 50)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, 50)
	}
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	image, err := handler.readImageUpload(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.Image = image

	user, err := handler.accountService.UpdateProfile(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
DELETE /api/user/profile/image.

Description: Removes the authenticated user's avatar from the profile and
from object storage.

Response:
  - 200: Message: Confirmation of the removal
  - 400: Validation: No avatar to delete
  - 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) deleteProfileImage(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.accountService.DeleteProfileImage(request.Context(), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Profile image deleted successfully")
}

// # Upload Handling

// readImageUpload extracts and validates the optional avatar file.
//
// A missing file field is not an error; the profile update simply carries no
// image. The content type is sniffed from the actual bytes rather than
// trusted from the client's part header.
func (handler *Handler) readImageUpload(request *http.Request) (*ImageUpload, error) {
	file, header, err := request.FormFile(auth.FieldImageFile)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, apperr.ValidationError("Invalid image upload.")
	}
	defer file.Close()

	if header.Size > MaxImageBytes {
		return nil, apperr.ValidationError("Image must be 1 MB or smaller.")
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return nil, apperr.ValidationError("Invalid image upload.")
	}
	if len(data) > MaxImageBytes {
		return nil, apperr.ValidationError("Image must be 1 MB or smaller.")
	}

	contentType := http.DetectContentType(data)
	if !AllowedImageTypes[contentType] {
		return nil, apperr.ValidationError("Only jpeg, jpg, and png images are allowed.")
	}

	return &ImageUpload{Data: data, ContentType: contentType}, nil
}
