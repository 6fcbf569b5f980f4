// Copyright (c) 2026 Socio. All rights reserved.

package user

import "context"

// # User Data Access

// Repository defines the data access contract for member accounts.
type Repository interface {

	/*
		FindByID retrieves a user by their UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *User: Hydrated entity with follower count
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail retrieves a user by their unique email address.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: dberr.ErrNotFound if missing
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		ExistsByEmail reports whether an account with the email exists.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - bool: Presence flag
		  - error: Retrieval failures
	*/
	ExistsByEmail(context context.Context, email string) (bool, error)

	/*
		Create persists a new account.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrDuplicate on email collision
	*/
	Create(context context.Context, user *User) error

	/*
		Update modifies a user's mutable profile fields (name, date of
		birth, privacy flag).

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: dberr.ErrNotFound if missing
	*/
	Update(context context.Context, user *User) error

	/*
		ListByFollowerCount returns a page of member statistics ordered by
		follower count descending, ties broken by registration date then id.

		Parameters:
		  - context: context.Context
		  - limit, offset: int

		Returns:
		  - []*Stats: Ordered page
		  - int: Total member count
		  - error: Retrieval failures
	*/
	ListByFollowerCount(context context.Context, limit, offset int) ([]*Stats, int, error)
}
