// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

/*
Package account implements profile management for authenticated users.

It covers reading the private profile, partial profile updates, and the
avatar lifecycle against the object store.

# Architecture

The service composes the auth domain's [auth.UserRepository] with an
[objstore.Store] collaborator. Object storage is treated as best-effort for
cleanup: an orphaned blob is preferable to a failed profile update.
*/
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkifyapp/linkify/internal/platform/apperr"
	"github.com/linkifyapp/linkify/internal/platform/objstore"
	"github.com/linkifyapp/linkify/internal/users/auth"
)

// # Upload Constraints

const (
	// MaxImageBytes caps avatar uploads at one mebibyte.
	MaxImageBytes = 1 << 20
)

// AllowedImageTypes are the accepted avatar content types.
var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
}

// # Service Layer

// Service orchestrates business logic for user profiles and avatars.
type Service struct {
	userRepository auth.UserRepository
	images         objstore.Store
	logger         *slog.Logger
}

// NewService constructs a new account [Service] with its dependencies.
func NewService(userRepo auth.UserRepository, images objstore.Store, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		images:         images,
		logger:         logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ImageUpload carries the raw bytes of a validated avatar upload.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// UpdateProfileInput defines the mutable subset of profile fields.
//
// Nil pointers mean "leave unchanged"; Image is optional and, when present,
// replaces the current avatar.
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Image     *ImageUpload
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Description: Fetches the existing state, uploads the replacement avatar if one
was attached, overrides the provided fields, and persists the result. The
previous avatar blob is removed only after the new state is safely stored, so
a mid-flight failure can orphan a blob but never lose a profile.

An avatar upload failure is tolerated: the textual fields still persist and
the old image stays in place.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *auth.User: The updated user profile
  - error: Lookup, update, or storage failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	previousStorageID := user.Profile.ImageStorageID

	replacedImage := false
	if input.Image != nil {
		url, storageID, err := service.images.Upload(context, input.Image.Data, input.Image.ContentType)
		if err != nil {
			service.logger.Warn("profile_image_upload_failed",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		} else {
			user.Profile.ImageURL = &url
			user.Profile.ImageStorageID = &storageID
			replacedImage = true
		}
	}

	// Apply delta updates
	if input.FirstName != nil {
		user.Profile.FirstName = input.FirstName
	}

	// Apply delta updates
	if input.LastName != nil {
		user.Profile.LastName = input.LastName
	}

	// Persist changes
	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	// Remove the replaced blob last. Cleanup failures only orphan storage.
	if replacedImage && previousStorageID != nil && *previousStorageID != "" {
		if err := service.images.Delete(context, *previousStorageID); err != nil {
			service.logger.Warn("profile_image_cleanup_failed",
				slog.String("user_id", userID),
				slog.String("storage_id", *previousStorageID),
				slog.Any("error", err),
			)
		}
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

/*
DeleteProfileImage removes the user's current avatar.

Description: Clears both image fields on the profile and removes the blob
from object storage. The database is the source of truth: the profile update
must succeed, while the storage deletion is best-effort.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The profile with the avatar removed
  - error: ValidationError when no avatar exists, or persistence failures
*/
func (service *Service) DeleteProfileImage(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if !user.Profile.HasImage() {
		return nil, apperr.ValidationError("No profile image to delete.")
	}

	storageID := *user.Profile.ImageStorageID

	user.Profile.ImageURL = nil
	user.Profile.ImageStorageID = nil

	if err := service.userRepository.UpdateProfile(context, user); err != nil {
		return nil, fmt.Errorf("account_service_delete_image_failed: %w", err)
	}

	if err := service.images.Delete(context, storageID); err != nil {
		service.logger.Warn("profile_image_cleanup_failed",
			slog.String("user_id", userID),
			slog.String("storage_id", storageID),
			slog.Any("error", err),
		)
	}

	service.logger.Info("user_profile_image_deleted", slog.String("user_id", userID))

	return user, nil
}
