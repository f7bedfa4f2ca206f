// Copyright (c) 2026 Linkify. All rights reserved.
// Author: dev@linkify.app

// PostgreSQL implementation of the links storage contract.
//
// # Ordering
//
// The position column carries the display order. Appends compute the next
// position inside the INSERT itself, and deletions repack the survivors in
// the same transaction, so the dense 0..n-1 sequence holds at every commit
// point. The UNIQUE (user_id, position) index is the authoritative guard.
package links

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linkifyapp/linkify/internal/platform/dberr"
)

// # Link Repository

// PostgresRepository implements the [Repository] interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL implementation of the link Repository.
func NewRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
ListByUser retrieves the user's full link collection in display order.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Link: Links sorted by ascending position (empty slice when none)
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID string) ([]*Link, error) {
	const query = `
		SELECT id, user_id, platform, url, position, created_at, updated_at
		FROM links.link
		WHERE user_id = $1
		ORDER BY position ASC`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_link_repo_list_failed: %w", err)
	}
	defer rows.Close()

	collection := make([]*Link, 0)
	for rows.Next() {
		link := &Link{}
		if err := rows.Scan(
			&link.ID,
			&link.UserID,
			&link.Platform,
			&link.URL,
			&link.Order,
			&link.CreatedAt,
			&link.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres_link_repo_scan_failed: %w", err)
		}
		collection = append(collection, link)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_link_repo_rows_failed: %w", err)
	}

	return collection, nil
}

/*
Create appends a new link at the end of the owner's collection.

Description: The position is computed atomically inside the INSERT as
max(position)+1 over the owner's rows (0 for an empty collection). Computing
it in the statement rather than in application code keeps concurrent appends
from claiming the same slot. If two appends still race onto one position the
unique index rejects the loser, which surfaces as apperr.Conflict for the
client to retry.

Parameters:
  - context: context.Context
  - link: *Link (Order is populated from the assigned position)

Returns:
  - error: apperr.Conflict on a position collision, or persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, link *Link) error {
	const query = `
		INSERT INTO links.link (id, user_id, platform, url, position, created_at, updated_at)
		VALUES (
			$1, $2, $3, $4,
			(SELECT COALESCE(MAX(position) + 1, 0) FROM links.link WHERE user_id = $2),
			$5, $5
		)
		RETURNING position`

	now := time.Now()
	link.CreatedAt = now
	link.UpdatedAt = now

	err := repository.pool.QueryRow(context, query,
		link.ID,
		link.UserID,
		link.Platform,
		link.URL,
		now,
	).Scan(&link.Order)

	if err != nil {
		return dberr.Wrap(err, "Link")
	}

	return nil
}

/*
Update rewrites the platform and URL of an owned link.

Description: The row is selected by both ID and owner, so a foreign link is
indistinguishable from a missing one. The position is deliberately not
touched.

Parameters:
  - context: context.Context
  - link: *Link

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) Update(context context.Context, link *Link) error {
	const query = `
		UPDATE links.link
		SET platform = $1, url = $2, updated_at = $3
		WHERE id = $4 AND user_id = $5
		RETURNING position, created_at`

	link.UpdatedAt = time.Now()

	err := repository.pool.QueryRow(context, query,
		link.Platform,
		link.URL,
		link.UpdatedAt,
		link.ID,
		link.UserID,
	).Scan(&link.Order, &link.CreatedAt)

	if err != nil {
		return dberr.Wrap(err, "Link")
	}

	return nil
}

/*
Delete removes an owned link and closes the gap it leaves behind.

Description: Runs as one transaction: the DELETE returns the vacated
position, then every later link shifts down by one. Readers either see the
collection before the deletion or the fully repacked one, never the gap.

Parameters:
  - context: context.Context
  - userID: string
  - linkID: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) Delete(context context.Context, userID, linkID string) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_link_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const deleteQuery = `
		DELETE FROM links.link
		WHERE id = $1 AND user_id = $2
		RETURNING position`

	var vacated int
	if err := transaction.QueryRow(context, deleteQuery, linkID, userID).Scan(&vacated); err != nil {
		return dberr.Wrap(err, "Link")
	}

	const repackQuery = `
		UPDATE links.link
		SET position = position - 1
		WHERE user_id = $1 AND position > $2`

	if _, err := transaction.Exec(context, repackQuery, userID, vacated); err != nil {
		return fmt.Errorf("postgres_link_repo_repack_failed: %w", err)
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_link_repo_commit_failed: %w", err)
	}

	return nil
}
