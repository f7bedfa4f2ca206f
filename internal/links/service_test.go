// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package links_test

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linkifyapp/linkify/internal/platform/apperr"
	"github.com/linkifyapp/linkify/internal/links"
)

// # Test Doubles

// fakeRepository is an in-memory Repository with the same append and repack
// semantics as the PostgreSQL implementation.
type fakeRepository struct {
	byUser map[string][]*links.Link
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byUser: make(map[string][]*links.Link)}
}

func (r *fakeRepository) ListByUser(_ context.Context, userID string) ([]*links.Link, error) {
	collection := make([]*links.Link, len(r.byUser[userID]))
	copy(collection, r.byUser[userID])
	sort.Slice(collection, func(i, j int) bool { return collection[i].Order < collection[j].Order })
	return collection, nil
}

func (r *fakeRepository) Create(_ context.Context, link *links.Link) error {
	next := 0
	for _, existing := range r.byUser[link.UserID] {
		if existing.Order >= next {
			next = existing.Order + 1
		}
	}
	link.Order = next
	r.byUser[link.UserID] = append(r.byUser[link.UserID], link)
	return nil
}

func (r *fakeRepository) Update(_ context.Context, link *links.Link) error {
	for _, existing := range r.byUser[link.UserID] {
		if existing.ID == link.ID {
			existing.Platform = link.Platform
			existing.URL = link.URL
			link.Order = existing.Order
			link.CreatedAt = existing.CreatedAt
			return nil
		}
	}
	return apperr.NotFound("Link")
}

func (r *fakeRepository) Delete(_ context.Context, userID, linkID string) error {
	collection := r.byUser[userID]
	for index, existing := range collection {
		if existing.ID == linkID {
			vacated := existing.Order
			collection = append(collection[:index], collection[index+1:]...)
			for _, survivor := range collection {
				if survivor.Order > vacated {
					survivor.Order--
				}
			}
			r.byUser[userID] = collection
			return nil
		}
	}
	return apperr.NotFound("Link")
}

func newTestService() (*links.Service, *fakeRepository) {
	repo := newFakeRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return links.NewService(repo, logger), repo
}

// assertDenseOrder fails unless the collection's positions are exactly
// 0..n-1 in listing order.
func assertDenseOrder(t *testing.T, collection []*links.Link) {
	t.Helper()
	for index, link := range collection {
		assert.Equal(t, index, link.Order, "position at index %d", index)
	}
}

// # Ordering Invariant

/*
TestService_Create_AppendsAtEnd verifies each new link lands one past the
previous maximum, keeping positions dense from 0.
*/
func TestService_Create_AppendsAtEnd(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	for index, platform := range []string{"github", "twitter", "youtube"} {
		link, err := service.Create(ctx, "user-1", links.CreateInput{
			Platform: platform,
			URL:      "https://example.com/" + platform,
		})
		require.NoError(t, err)
		assert.Equal(t, index, link.Order)
	}

	collection, err := service.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, collection, 3)
	assertDenseOrder(t, collection)
}

/*
TestService_Delete_RepacksOrder checks that removing a middle link closes the
gap while preserving the relative order of the survivors.
*/
func TestService_Delete_RepacksOrder(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created := make([]*links.Link, 0, 4)
	for _, platform := range []string{"github", "twitter", "youtube", "twitch"} {
		link, err := service.Create(ctx, "user-1", links.CreateInput{
			Platform: platform,
			URL:      "https://example.com/" + platform,
		})
		require.NoError(t, err)
		created = append(created, link)
	}

	// Remove "twitter" at position 1.
	require.NoError(t, service.Delete(ctx, "user-1", created[1].ID))

	collection, err := service.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, collection, 3)
	assertDenseOrder(t, collection)

	// Relative order of the survivors is unchanged.
	platforms := []string{collection[0].Platform, collection[1].Platform, collection[2].Platform}
	assert.Equal(t, []string{"github", "youtube", "twitch"}, platforms)
}

/*
TestService_Lifecycle_KeepsRelativeOrder drives a longer create and delete
sequence and asserts density after every mutation.
*/
func TestService_Lifecycle_KeepsRelativeOrder(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	first, err := service.Create(ctx, "user-1", links.CreateInput{Platform: "a", URL: "https://a.example.com"})
	require.NoError(t, err)
	_, err = service.Create(ctx, "user-1", links.CreateInput{Platform: "b", URL: "https://b.example.com"})
	require.NoError(t, err)
	third, err := service.Create(ctx, "user-1", links.CreateInput{Platform: "c", URL: "https://c.example.com"})
	require.NoError(t, err)

	// Delete the head; survivors shift down.
	require.NoError(t, service.Delete(ctx, "user-1", first.ID))
	collection, err := service.List(ctx, "user-1")
	require.NoError(t, err)
	assertDenseOrder(t, collection)
	assert.Equal(t, "b", collection[0].Platform)

	// A fresh append lands after the survivors, not in the old head slot.
	fourth, err := service.Create(ctx, "user-1", links.CreateInput{Platform: "d", URL: "https://d.example.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, fourth.Order)

	// Delete the tail; the rest is untouched.
	require.NoError(t, service.Delete(ctx, "user-1", third.ID))
	collection, err = service.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, collection, 2)
	assertDenseOrder(t, collection)
	assert.Equal(t, []string{"b", "d"}, []string{collection[0].Platform, collection[1].Platform})
}

// # Ownership Isolation

/*
TestService_OwnershipIsolation verifies one user's mutations never touch
another user's collection, and foreign links read as missing.
*/
func TestService_OwnershipIsolation(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	mine, err := service.Create(ctx, "user-1", links.CreateInput{Platform: "github", URL: "https://github.com/me"})
	require.NoError(t, err)
	theirs, err := service.Create(ctx, "user-2", links.CreateInput{Platform: "github", URL: "https://github.com/them"})
	require.NoError(t, err)

	// Both collections start independently at position zero.
	assert.Equal(t, 0, mine.Order)
	assert.Equal(t, 0, theirs.Order)

	// Updating someone else's link reads as missing.
	_, err = service.Update(ctx, "user-1", theirs.ID, links.UpdateInput{
		Platform: "hijacked",
		URL:      "https://evil.example.com",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	// Deleting someone else's link reads as missing, and their collection survives.
	err = service.Delete(ctx, "user-1", theirs.ID)
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))

	otherCollection, err := service.List(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, otherCollection, 1)
	assert.Equal(t, "https://github.com/them", otherCollection[0].URL)
}

// # Updates

/*
TestService_Update preserves the position and rejects unknown IDs.
*/
func TestService_Update(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	_, err := service.Create(ctx, "user-1", links.CreateInput{Platform: "github", URL: "https://github.com/me"})
	require.NoError(t, err)
	second, err := service.Create(ctx, "user-1", links.CreateInput{Platform: "twitter", URL: "https://twitter.com/me"})
	require.NoError(t, err)

	updated, err := service.Update(ctx, "user-1", second.ID, links.UpdateInput{
		Platform: "mastodon",
		URL:      "https://mastodon.social/@me",
	})
	require.NoError(t, err)

	assert.Equal(t, "mastodon", updated.Platform)
	assert.Equal(t, 1, updated.Order)

	_, err = service.Update(ctx, "user-1", "missing-id", links.UpdateInput{
		Platform: "anything",
		URL:      "https://example.com",
	})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
}

/*
TestService_List_EmptyCollection returns an empty slice, not nil, so the JSON
encoding is an empty array.
*/
func TestService_List_EmptyCollection(t *testing.T) {
	service, _ := newTestService()

	collection, err := service.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotNil(t, collection)
	assert.Empty(t, collection)
}
