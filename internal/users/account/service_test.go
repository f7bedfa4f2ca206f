// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package account_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkifyapp/linkify/internal/platform/apperr"
	"github.com/linkifyapp/linkify/internal/users/account"
	"github.com/linkifyapp/linkify/internal/users/auth"
	"github.com/linkifyapp/linkify/pkg/pointer"
)

// # Test Doubles

type fakeUserRepository struct {
	byID map[string]*auth.User
}

func newFakeUserRepository(users ...*auth.User) *fakeUserRepository {
	repo := &fakeUserRepository{byID: make(map[string]*auth.User)}
	for _, user := range users {
		repo.byID[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range r.byID {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepository) UpdateProfile(_ context.Context, user *auth.User) error {
	stored, ok := r.byID[user.ID]
	if !ok {
		return apperr.NotFound("User")
	}
	stored.Profile = user.Profile
	return nil
}

// fakeImageStore records uploads and deletions in memory.
type fakeImageStore struct {
	uploads   int
	deleted   []string
	uploadErr error
	deleteErr error
}

func (s *fakeImageStore) Upload(_ context.Context, _ []byte, _ string) (string, string, error) {
	if s.uploadErr != nil {
		return "", "", s.uploadErr
	}
	s.uploads++
	storageID := fmt.Sprintf("avatars/blob-%d", s.uploads)
	return "https://cdn.linkify.app/" + storageID, storageID, nil
}

func (s *fakeImageStore) Delete(_ context.Context, storageID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, storageID)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testUser() *auth.User {
	return &auth.User{
		ID:    "0192aa00-0000-7000-8000-000000000001",
		Email: "member@linkify.app",
	}
}

// # Profile Retrieval

/*
TestService_GetProfile covers the lookup paths.
*/
func TestService_GetProfile(t *testing.T) {
	user := testUser()
	service := account.NewService(newFakeUserRepository(user), &fakeImageStore{}, discardLogger())

	found, err := service.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = service.GetProfile(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

// # Profile Updates

/*
TestService_UpdateProfile_Names verifies partial updates: provided fields
change, absent fields stay untouched.
*/
func TestService_UpdateProfile_Names(t *testing.T) {
	user := testUser()
	user.Profile.LastName = pointer.To("Existing")
	repo := newFakeUserRepository(user)
	service := account.NewService(repo, &fakeImageStore{}, discardLogger())

	updated, err := service.UpdateProfile(context.Background(), user.ID, account.UpdateProfileInput{
		FirstName: pointer.To("Ada"),
	})

	require.NoError(t, err)
	require.NotNil(t, updated.Profile.FirstName)
	assert.Equal(t, "Ada", *updated.Profile.FirstName)

	// The last name the input omitted survives the update.
	require.NotNil(t, updated.Profile.LastName)
	assert.Equal(t, "Existing", *updated.Profile.LastName)
}

/*
TestService_UpdateProfile_ImageReplacement verifies the avatar swap order:
upload first, persist, then clean up the old blob.
*/
func TestService_UpdateProfile_ImageReplacement(t *testing.T) {
	user := testUser()
	user.Profile.ImageURL = pointer.To("https://cdn.linkify.app/avatars/old")
	user.Profile.ImageStorageID = pointer.To("avatars/old")
	repo := newFakeUserRepository(user)
	store := &fakeImageStore{}
	service := account.NewService(repo, store, discardLogger())

	updated, err := service.UpdateProfile(context.Background(), user.ID, account.UpdateProfileInput{
		Image: &account.ImageUpload{Data: []byte("png-bytes"), ContentType: "image/png"},
	})

	require.NoError(t, err)
	require.True(t, updated.Profile.HasImage())
	assert.Equal(t, "avatars/blob-1", *updated.Profile.ImageStorageID)

	// The replaced blob was removed from storage.
	assert.Equal(t, []string{"avatars/old"}, store.deleted)
}

/*
TestService_UpdateProfile_UploadFailureTolerated asserts a broken object
store does not block the textual part of the update.
*/
func TestService_UpdateProfile_UploadFailureTolerated(t *testing.T) {
	user := testUser()
	user.Profile.ImageStorageID = pointer.To("avatars/old")
	repo := newFakeUserRepository(user)
	store := &fakeImageStore{uploadErr: fmt.Errorf("bucket unavailable")}
	service := account.NewService(repo, store, discardLogger())

	updated, err := service.UpdateProfile(context.Background(), user.ID, account.UpdateProfileInput{
		FirstName: pointer.To("Ada"),
		Image:     &account.ImageUpload{Data: []byte("png-bytes"), ContentType: "image/png"},
	})

	require.NoError(t, err)
	assert.Equal(t, "Ada", *updated.Profile.FirstName)

	// The old avatar is untouched when the replacement upload failed.
	assert.Equal(t, "avatars/old", *updated.Profile.ImageStorageID)
	assert.Empty(t, store.deleted)
}

// # Avatar Deletion

/*
TestService_DeleteProfileImage covers deletion, the no-avatar rejection, and
tolerance of storage cleanup failures.
*/
func TestService_DeleteProfileImage(t *testing.T) {
	t.Run("removes_avatar", func(t *testing.T) {
		user := testUser()
		user.Profile.ImageURL = pointer.To("https://cdn.linkify.app/avatars/old")
		user.Profile.ImageStorageID = pointer.To("avatars/old")
		repo := newFakeUserRepository(user)
		store := &fakeImageStore{}
		service := account.NewService(repo, store, discardLogger())

		updated, err := service.DeleteProfileImage(context.Background(), user.ID)
		require.NoError(t, err)

		assert.Nil(t, updated.Profile.ImageURL)
		assert.Nil(t, updated.Profile.ImageStorageID)
		assert.Equal(t, []string{"avatars/old"}, store.deleted)
	})

	t.Run("rejects_when_no_avatar", func(t *testing.T) {
		user := testUser()
		service := account.NewService(newFakeUserRepository(user), &fakeImageStore{}, discardLogger())

		_, err := service.DeleteProfileImage(context.Background(), user.ID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("tolerates_storage_failure", func(t *testing.T) {
		user := testUser()
		user.Profile.ImageURL = pointer.To("https://cdn.linkify.app/avatars/old")
		user.Profile.ImageStorageID = pointer.To("avatars/old")
		repo := newFakeUserRepository(user)
		store := &fakeImageStore{deleteErr: fmt.Errorf("bucket unavailable")}
		service := account.NewService(repo, store, discardLogger())

		updated, err := service.DeleteProfileImage(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Nil(t, updated.Profile.ImageStorageID)
	})
}
