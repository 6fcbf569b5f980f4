// Copyright (c) 2026 Socio. All rights reserved.

package share

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioapp/socio/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed share store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
Create persists a direct share row.

Parameters:
  - context: context.Context
  - share: *Share

Returns:
  - error: dberr.ErrNotFound on a missing post, sender, or receiver
*/
func (repository *PostgresRepository) Create(context context.Context, share *Share) error {
	const query = `
		INSERT INTO social.postshare (id, postid, senderid, receiverid)
		VALUES ($1, $2, $3, $4)
		RETURNING createdat
	`

	err := repository.db.QueryRow(context, query,
		share.ID, share.PostID, share.SenderID, share.ReceiverID,
	).Scan(&share.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "share_create")
	}

	return nil
}

// ListByReceiver returns a page of shares delivered to a user, newest first.
func (repository *PostgresRepository) ListByReceiver(context context.Context, receiverID string, limit, offset int) ([]*Share, int, error) {
	const query = `
		SELECT id, postid, senderid, receiverid, createdat, COUNT(*) OVER() AS total
		FROM social.postshare
		WHERE receiverid = $1
		ORDER BY createdat DESC, id ASC
		LIMIT $2 OFFSET $3
	`
	return repository.listShares(context, query, "share_list_by_receiver", receiverID, limit, offset)
}

// ListByPost returns a page of a post's direct shares, newest first.
func (repository *PostgresRepository) ListByPost(context context.Context, postID string, limit, offset int) ([]*Share, int, error) {
	const query = `
		SELECT id, postid, senderid, receiverid, createdat, COUNT(*) OVER() AS total
		FROM social.postshare
		WHERE postid = $1
		ORDER BY createdat DESC, id ASC
		LIMIT $2 OFFSET $3
	`
	return repository.listShares(context, query, "share_list_by_post", postID, limit, offset)
}

func (repository *PostgresRepository) listShares(context context.Context, query, action string, args ...any) ([]*Share, int, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var shares []*Share
	var total int
	for rows.Next() {
		share := &Share{}
		err := rows.Scan(&share.ID, &share.PostID, &share.SenderID, &share.ReceiverID, &share.CreatedAt, &total)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_share")
		}
		shares = append(shares, share)
	}

	return shares, total, nil
}
