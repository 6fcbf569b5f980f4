// Copyright (c) 2026 Socio. All rights reserved.

package follow

import (
	"context"

	"github.com/socioapp/socio/internal/users/user"
)

// # Follow Data Access

// Repository defines the data access contract for follow edges.
type Repository interface {

	/*
		Create persists a new follow edge.

		Parameters:
		  - context: context.Context
		  - follow: *Follow

		Returns:
		  - error: dberr.ErrDuplicate if the edge already exists,
		    dberr.ErrNotFound if either endpoint is missing
	*/
	Create(context context.Context, follow *Follow) error

	/*
		Delete removes the edge from followerID to followeeID.

		Parameters:
		  - context: context.Context
		  - followerID, followeeID: string

		Returns:
		  - error: dberr.ErrNotFound if the edge does not exist
	*/
	Delete(context context.Context, followerID, followeeID string) error

	/*
		Exists reports whether followerID follows followeeID.

		Parameters:
		  - context: context.Context
		  - followerID, followeeID: string

		Returns:
		  - bool: Edge presence
		  - error: Retrieval failures
	*/
	Exists(context context.Context, followerID, followeeID string) (bool, error)

	/*
		ListFollowers returns a page of users following userID, newest
		edge first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit, offset: int

		Returns:
		  - []*user.User: Ordered page
		  - int: Total follower count
		  - error: Retrieval failures
	*/
	ListFollowers(context context.Context, userID string, limit, offset int) ([]*user.User, int, error)

	/*
		ListFollowing returns a page of users that userID follows, newest
		edge first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit, offset: int

		Returns:
		  - []*user.User: Ordered page
		  - int: Total following count
		  - error: Retrieval failures
	*/
	ListFollowing(context context.Context, userID string, limit, offset int) ([]*user.User, int, error)
}
