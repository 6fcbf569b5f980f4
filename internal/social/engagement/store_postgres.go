// Copyright (c) 2026 Socio. All rights reserved.

package engagement

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioapp/socio/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed engagement store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Likes

/*
CreateLike persists a like edge row.

Parameters:
  - context: context.Context
  - like: *Like

Returns:
  - error: dberr.ErrDuplicate on repeated like, dberr.ErrNotFound on a
    missing post or user (foreign key violation)
*/
func (repository *PostgresRepository) CreateLike(context context.Context, like *Like) error {
	const query = `
		INSERT INTO social.postlike (id, postid, userid)
		VALUES ($1, $2, $3)
		RETURNING createdat
	`

	err := repository.db.QueryRow(context, query, like.ID, like.PostID, like.UserID).Scan(&like.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "like_create")
	}

	return nil
}

// DeleteLike removes the like edge from userID on postID.
func (repository *PostgresRepository) DeleteLike(context context.Context, postID, userID string) error {
	const query = `DELETE FROM social.postlike WHERE postid = $1 AND userid = $2`

	tag, err := repository.db.Exec(context, query, postID, userID)
	if err != nil {
		return dberr.Wrap(err, "like_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

// # Comments

/*
CreateComment persists a comment row and hydrates the author name in the
same statement.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: dberr.ErrNotFound on a missing post or user
*/
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO social.postcomment (id, postid, userid, content)
		VALUES ($1, $2, $3, $4)
		RETURNING createdat, (SELECT name FROM users.account WHERE id = $3)
	`

	err := repository.db.QueryRow(context, query,
		comment.ID, comment.PostID, comment.UserID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.AuthorName)
	if err != nil {
		return dberr.Wrap(err, "comment_create")
	}

	return nil
}

// FindCommentByID retrieves a single comment with its author name.
func (repository *PostgresRepository) FindCommentByID(context context.Context, id string) (*Comment, error) {
	const query = `
		SELECT c.id, c.postid, c.userid, a.name, c.content, c.createdat
		FROM social.postcomment c
		JOIN users.account a ON a.id = c.userid
		WHERE c.id = $1
	`

	comment := &Comment{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.UserID, &comment.AuthorName,
		&comment.Content, &comment.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "comment_find")
	}

	return comment, nil
}

// DeleteComment removes a comment by id.
func (repository *PostgresRepository) DeleteComment(context context.Context, id string) error {
	const query = `DELETE FROM social.postcomment WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "comment_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
ListComments returns a page of a post's comments, newest first.

Parameters:
  - context: context.Context
  - postID: string
  - limit, offset: int

Returns:
  - []*Comment: Ordered page
  - int: Total comment count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListComments(context context.Context, postID string, limit, offset int) ([]*Comment, int, error) {
	const query = `
		SELECT c.id, c.postid, c.userid, a.name, c.content, c.createdat, COUNT(*) OVER() AS total
		FROM social.postcomment c
		JOIN users.account a ON a.id = c.userid
		WHERE c.postid = $1
		ORDER BY c.createdat DESC, c.id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := repository.db.Query(context, query, postID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "comment_list")
	}
	defer rows.Close()

	var comments []*Comment
	var total int
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.PostID, &comment.UserID, &comment.AuthorName,
			&comment.Content, &comment.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_comment")
		}
		comments = append(comments, comment)
	}

	return comments, total, nil
}

// # Aggregation

/*
Counts reads a post's like and comment totals in a single statement so both
numbers come from the same snapshot.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - Counts: Engagement totals
  - error: dberr.ErrNotFound if the post is missing
*/
func (repository *PostgresRepository) Counts(context context.Context, postID string) (Counts, error) {
	const query = `
		SELECT
			(SELECT COUNT(*) FROM social.postlike l WHERE l.postid = p.id),
			(SELECT COUNT(*) FROM social.postcomment c WHERE c.postid = p.id)
		FROM social.post p
		WHERE p.id = $1
	`

	var counts Counts
	if err := repository.db.QueryRow(context, query, postID).Scan(&counts.Likes, &counts.Comments); err != nil {
		return Counts{}, dberr.Wrap(err, "engagement_counts")
	}

	return counts, nil
}
