// Copyright (c) 2026 Socio. All rights reserved.

package post

import (
	"context"

	"github.com/socioapp/socio/internal/platform/storage"
	"github.com/socioapp/socio/internal/social/visibility"
)

// # Post Data Access

// Repository defines the data access contract for posts. Every read that
// returns posts hydrates engagement counts in the same statement; reads
// that take a viewerID also hydrate the liked-by-viewer flag.
type Repository interface {

	/*
		Create persists a new post.

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: dberr.ErrNotFound if the author or group is missing
	*/
	Create(context context.Context, post *Post) error

	/*
		FindByID retrieves a post with counts and the viewer's like flag.

		Parameters:
		  - context: context.Context
		  - id: string
		  - viewerID: string

		Returns:
		  - *Post: Hydrated view model
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id, viewerID string) (*Post, error)

	/*
		ContentOf returns the owner and group scope of a post for policy
		decisions without hydrating the whole row.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - visibility.Content: Owner id and optional group id
		  - error: dberr.ErrNotFound if missing
	*/
	ContentOf(context context.Context, postID string) (visibility.Content, error)

	/*
		Delete removes a post. Likes, comments, shares, and reports on it
		are removed by cascade.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound if missing
	*/
	Delete(context context.Context, id string) error

	/*
		ListByUser returns a page of a user's posts, newest first.

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
	ListByUser(context context.Context, userID, viewerID string, limit, offset int) ([]*Post, int, error)

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
	ListByGroup(context context.Context, groupID, viewerID string, limit, offset int) ([]*Post, int, error)

	/*
		ListFeed returns a page of the feed source set: the viewer's own
		posts plus posts by authors they follow, ordered by creation time
		descending with id as tiebreak.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - limit, offset: int

		Returns:
		  - []*Post: Ordered page before per-item visibility filtering
		  - int: Total source set size
		  - error: Retrieval failures
	*/
	ListFeed(context context.Context, viewerID string, limit, offset int) ([]*Post, int, error)

	/*
		ListAllWithCounts returns every post with engagement counts for
		in-memory ranking.

		Parameters:
		  - context: context.Context
		  - viewerID: string

		Returns:
		  - []*Post: Unordered full set
		  - error: Retrieval failures
	*/
	ListAllWithCounts(context context.Context, viewerID string) ([]*Post, error)

	/*
		ListByKind returns a page of posts carrying an attachment of the
		given kind, newest first.

		Parameters:
		  - context: context.Context
		  - kind: storage.Kind
		  - viewerID: string
		  - limit, offset: int

		Returns:
		  - []*Post: Ordered page
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	ListByKind(context context.Context, kind storage.Kind, viewerID string, limit, offset int) ([]*Post, int, error)
}
