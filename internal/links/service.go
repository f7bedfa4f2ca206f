// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

package links

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linkifyapp/linkify/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for a user's link collection.
//
// Ownership scoping happens in the repository: every query filters by the
// caller's user ID, so the service never has to compare owners itself.
type Service struct {
	linkRepository Repository
	logger         *slog.Logger
}

// NewService constructs a new links [Service] with its repository dependency.
func NewService(linkRepo Repository, logger *slog.Logger) *Service {
	return &Service{
		linkRepository: linkRepo,
		logger:         logger,
	}
}

// # Collection Operations

/*
List returns the caller's links in display order.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Link: The ordered collection (empty, never nil)
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, userID string) ([]*Link, error) {
	collection, err := service.linkRepository.ListByUser(context, userID)
	if err != nil {
		return nil, fmt.Errorf("links_service_list_failed: %w", err)
	}
	return collection, nil
}

// CreateInput defines the fields for a new link.
type CreateInput struct {
	Platform string
	URL      string
}

/*
Create appends a new link to the end of the caller's collection.

Description: The repository assigns the position atomically; the returned
entity carries the final slot.

Parameters:
  - context: context.Context
  - userID: string
  - input: CreateInput

Returns:
  - *Link: The persisted link with its assigned position
  - error: Persistence failures
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Link, error) {
	link := &Link{
		ID:       uuid.New(),
		UserID:   userID,
		Platform: input.Platform,
		URL:      input.URL,
	}

	if err := service.linkRepository.Create(context, link); err != nil {
		return nil, fmt.Errorf("links_service_create_failed: %w", err)
	}

	service.logger.Info("link_created",
		slog.String("user_id", userID),
		slog.String("link_id", link.ID),
		slog.Int("position", link.Order),
	)

	return link, nil
}

// UpdateInput defines the mutable fields of an existing link.
type UpdateInput struct {
	Platform string
	URL      string
}

/*
Update rewrites the platform and URL of one of the caller's links.

Description: The position is untouched. A link owned by someone else
answers NotFound, identical to a missing one.

Parameters:
  - context: context.Context
  - userID: string
  - linkID: string
  - input: UpdateInput

Returns:
  - *Link: The updated link
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) Update(context context.Context, userID, linkID string, input UpdateInput) (*Link, error) {
	link := &Link{
		ID:       linkID,
		UserID:   userID,
		Platform: input.Platform,
		URL:      input.URL,
	}

	if err := service.linkRepository.Update(context, link); err != nil {
		return nil, err
	}

	service.logger.Info("link_updated",
		slog.String("user_id", userID),
		slog.String("link_id", linkID),
	)

	return link, nil
}

/*
Delete removes one of the caller's links and compacts the remainder.

Parameters:
  - context: context.Context
  - userID: string
  - linkID: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) Delete(context context.Context, userID, linkID string) error {
	if err := service.linkRepository.Delete(context, userID, linkID); err != nil {
		return err
	}

	service.logger.Info("link_deleted",
		slog.String("user_id", userID),
		slog.String("link_id", linkID),
	)

	return nil
}
