// Copyright (c) 2026 Socio. All rights reserved.

package post

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/platform/storage"
	"github.com/socioapp/socio/internal/social/visibility"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed post store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// postColumns is the shared projection for hydrating a [Post] view model.
// Counts and the viewer's like flag are read in the same statement, so a
// single row never mixes commit points. The viewer id is always $1.
// Shares store no attachment of their own; the projection falls back to
// the root post's file so a share still renders it.
const postColumns = `
	p.id, p.userid, a.name,
	p.content,
	COALESCE(p.attachmentref, op.attachmentref),
	COALESCE(p.attachmentkind, op.attachmentkind),
	p.groupid,
	p.isshared, p.originalpostid, p.originaluserid, oa.name,
	(SELECT COUNT(*) FROM social.postlike l WHERE l.postid = p.id) AS likecount,
	(SELECT COUNT(*) FROM social.postcomment c WHERE c.postid = p.id) AS commentcount,
	EXISTS (SELECT 1 FROM social.postlike v WHERE v.postid = p.id AND v.userid = $1) AS likedbyviewer,
	p.createdat
`

// postJoins joins the author and, for shares, the root original post and
// its author.
const postJoins = `
	FROM social.post p
	JOIN users.account a ON a.id = p.userid
	LEFT JOIN social.post op ON op.id = p.originalpostid
	LEFT JOIN users.account oa ON oa.id = p.originaluserid
`

/*
Create persists a new post row.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: dberr.ErrNotFound on a missing author, group, or original post
    (foreign key violation)
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO social.post (id, userid, content, attachmentref, attachmentkind, groupid,
			isshared, originalpostid, originaluserid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING createdat
	`

	var kind *string
	if post.AttachmentKind != nil {
		value := string(*post.AttachmentKind)
		kind = &value
	}

	err := repository.db.QueryRow(context, query,
		post.ID, post.UserID, post.Content, post.AttachmentRef, kind, post.GroupID,
		post.IsShared, post.OriginalPostID, post.OriginalUserID,
	).Scan(&post.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "post_create")
	}

	return nil
}

/*
FindByID retrieves a single post view model.

Parameters:
  - context: context.Context
  - id: string
  - viewerID: string

Returns:
  - *Post: Hydrated view model
  - error: dberr.ErrNotFound if missing
*/
func (repository *PostgresRepository) FindByID(context context.Context, id, viewerID string) (*Post, error) {
	const query = `SELECT ` + postColumns + postJoins + ` WHERE p.id = $2`

	post := &Post{}
	var kind *string
	err := repository.db.QueryRow(context, query, viewerID, id).Scan(
		&post.ID, &post.UserID, &post.AuthorName,
		&post.Content, &post.AttachmentRef, &kind, &post.GroupID,
		&post.IsShared, &post.OriginalPostID, &post.OriginalUserID, &post.OriginalAuthorName,
		&post.LikeCount, &post.CommentCount, &post.LikedByViewer,
		&post.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "post_find")
	}

	post.AttachmentKind = toKind(kind)
	return post, nil
}

// ContentOf returns the owner and group scope for policy decisions.
func (repository *PostgresRepository) ContentOf(context context.Context, postID string) (visibility.Content, error) {
	const query = `SELECT userid, groupid FROM social.post WHERE id = $1`

	var content visibility.Content
	if err := repository.db.QueryRow(context, query, postID).Scan(&content.OwnerID, &content.GroupID); err != nil {
		return visibility.Content{}, dberr.Wrap(err, "post_content_of")
	}

	return content, nil
}

// IsLikedBy reports whether viewerID liked the post.
func (repository *PostgresRepository) IsLikedBy(context context.Context, postID, viewerID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM social.postlike WHERE postid = $1 AND userid = $2)`

	var liked bool
	if err := repository.db.QueryRow(context, query, postID, viewerID).Scan(&liked); err != nil {
		return false, dberr.Wrap(err, "post_is_liked_by")
	}

	return liked, nil
}

// Delete removes a post; dependent rows go with it by cascade.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	const query = `DELETE FROM social.post WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "post_delete")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}

	return nil
}

/*
ListByUser returns a page of an author's posts, newest first.

Parameters:
  - context: context.Context
  - userID: string (The author)
  - viewerID: string
  - limit, offset: int

Returns:
  - []*Post: Ordered page
  - int: Total post count for the author
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByUser(context context.Context, userID, viewerID string, limit, offset int) ([]*Post, int, error) {
	const query = `
		SELECT ` + postColumns + `, COUNT(*) OVER() AS total ` + postJoins + `
		WHERE p.userid = $2
		ORDER BY p.createdat DESC, p.id ASC
		LIMIT $3 OFFSET $4
	`
	return repository.listPosts(context, query, "post_list_by_user", viewerID, userID, limit, offset)
}

/*
ListByGroup returns a page of a group's posts, newest first.

Parameters:
  - context: context.Context
  - groupID: string
  - viewerID: string
  - limit, offset: int

Returns:
  - []*Post: Ordered page
  - int: Total post count for the group
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByGroup(context context.Context, groupID, viewerID string, limit, offset int) ([]*Post, int, error) {
	const query = `
		SELECT ` + postColumns + `, COUNT(*) OVER() AS total ` + postJoins + `
		WHERE p.groupid = $2
		ORDER BY p.createdat DESC, p.id ASC
		LIMIT $3 OFFSET $4
	`
	return repository.listPosts(context, query, "post_list_by_group", viewerID, groupID, limit, offset)
}

/*
ListFeed returns a page of the feed source set: the viewer's own posts plus
posts by followed authors.

Parameters:
  - context: context.Context
  - viewerID: string
  - limit, offset: int

Returns:
  - []*Post: Page ordered by creation time descending, id ascending
  - int: Total source set size
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListFeed(context context.Context, viewerID string, limit, offset int) ([]*Post, int, error) {
	const query = `
		SELECT ` + postColumns + `, COUNT(*) OVER() AS total ` + postJoins + `
		WHERE p.userid = $1
		   OR p.userid IN (SELECT f.followeeid FROM social.follow f WHERE f.followerid = $1)
		ORDER BY p.createdat DESC, p.id ASC
		LIMIT $2 OFFSET $3
	`
	return repository.listPosts(context, query, "post_list_feed", viewerID, limit, offset)
}

/*
ListAllWithCounts returns every post with counts for in-memory ranking.

Parameters:
  - context: context.Context
  - viewerID: string

Returns:
  - []*Post: Full set, unranked
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListAllWithCounts(context context.Context, viewerID string) ([]*Post, error) {
	const query = `SELECT ` + postColumns + postJoins

	rows, err := repository.db.Query(context, query, viewerID)
	if err != nil {
		return nil, dberr.Wrap(err, "post_list_all")
	}
	defer rows.Close()

	var posts []*Post
	for rows.Next() {
		post := &Post{}
		var kind *string
		err := rows.Scan(
			&post.ID, &post.UserID, &post.AuthorName,
			&post.Content, &post.AttachmentRef, &kind, &post.GroupID,
			&post.IsShared, &post.OriginalPostID, &post.OriginalUserID, &post.OriginalAuthorName,
			&post.LikeCount, &post.CommentCount, &post.LikedByViewer,
			&post.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_post")
		}
		post.AttachmentKind = toKind(kind)
		posts = append(posts, post)
	}

	return posts, nil
}

/*
ListByKind returns a page of attachment posts of one media kind.

Parameters:
  - context: context.Context
  - kind: storage.Kind
  - viewerID: string
  - limit, offset: int

Returns:
  - []*Post: Ordered page, newest first
  - int: Total matching count
  - error: Retrieval failures
*/
func (repository *PostgresRepository) ListByKind(context context.Context, kind storage.Kind, viewerID string, limit, offset int) ([]*Post, int, error) {
	const query = `
		SELECT ` + postColumns + `, COUNT(*) OVER() AS total ` + postJoins + `
		WHERE p.attachmentkind = $2
		ORDER BY p.createdat DESC, p.id ASC
		LIMIT $3 OFFSET $4
	`
	return repository.listPosts(context, query, "post_list_by_kind", viewerID, string(kind), limit, offset)
}

// listPosts runs a paged post query whose last column is the window total.
func (repository *PostgresRepository) listPosts(context context.Context, query, action string, args ...any) ([]*Post, int, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, action)
	}
	defer rows.Close()

	var posts []*Post
	var total int
	for rows.Next() {
		post := &Post{}
		var kind *string
		err := rows.Scan(
			&post.ID, &post.UserID, &post.AuthorName,
			&post.Content, &post.AttachmentRef, &kind, &post.GroupID,
			&post.IsShared, &post.OriginalPostID, &post.OriginalUserID, &post.OriginalAuthorName,
			&post.LikeCount, &post.CommentCount, &post.LikedByViewer,
			&post.CreatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_post")
		}
		post.AttachmentKind = toKind(kind)
		posts = append(posts, post)
	}

	return posts, total, nil
}

// toKind converts the nullable column value into a typed attachment kind.
func toKind(kind *string) *storage.Kind {
	if kind == nil {
		return nil
	}
	value := storage.Kind(*kind)
	return &value
}
