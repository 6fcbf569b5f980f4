// Copyright (c) 2026 Socio. All rights reserved.

package engagement

import "context"

// # Engagement Data Access

// Repository defines the data access contract for likes and comments.
type Repository interface {

	/*
		CreateLike persists a like edge.

		Parameters:
		  - context: context.Context
		  - like: *Like

		Returns:
		  - error: dberr.ErrDuplicate if the user already liked the post,
		    dberr.ErrNotFound if the post or user is missing
	*/
	CreateLike(context context.Context, like *Like) error

	/*
		DeleteLike removes the like edge from userID on postID.

		Parameters:
		  - context: context.Context
		  - postID, userID: string

		Returns:
		  - error: dberr.ErrNotFound if the edge does not exist
	*/
	DeleteLike(context context.Context, postID, userID string) error

	/*
		CreateComment persists a comment.

		Parameters:
		  - context: context.Context
		  - comment: *Comment

		Returns:
		  - error: dberr.ErrNotFound if the post or user is missing
	*/
	CreateComment(context context.Context, comment *Comment) error

	/*
		FindCommentByID retrieves a single comment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Comment: Hydrated entity with author name
		  - error: dberr.ErrNotFound if missing
	*/
	FindCommentByID(context context.Context, id string) (*Comment, error)

	/*
		DeleteComment removes a comment by id.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: dberr.ErrNotFound if missing
	*/
	DeleteComment(context context.Context, id string) error

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
	ListComments(context context.Context, postID string, limit, offset int) ([]*Comment, int, error)

	/*
		Counts reads a post's like and comment totals in one statement,
		so both numbers come from the same snapshot.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - Counts: Engagement totals
		  - error: dberr.ErrNotFound if the post is missing
	*/
	Counts(context context.Context, postID string) (Counts, error)
}
