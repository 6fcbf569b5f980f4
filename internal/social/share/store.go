// Copyright (c) 2026 Socio. All rights reserved.

package share

import "context"

// # Share Data Access

// Repository defines the data access contract for direct shares.
type Repository interface {

	/*
		Create persists a direct share.

		Parameters:
		  - context: context.Context
		  - share: *Share

		Returns:
		  - error: dberr.ErrNotFound if the post, sender, or receiver is
		    missing (foreign key violation)
	*/
	Create(context context.Context, share *Share) error

	/*
		ListByReceiver returns a page of shares delivered to a user,
		newest first.

		Parameters:
		  - context: context.Context
		  - receiverID: string
		  - limit, offset: int

		Returns:
		  - []*Share: Ordered page
		  - int: Total delivered count
		  - error: Retrieval failures
	*/
	ListByReceiver(context context.Context, receiverID string, limit, offset int) ([]*Share, int, error)

	/*
		ListByPost returns a page of a post's direct shares, newest first.

		Parameters:
		  - context: context.Context
		  - postID: string
		  - limit, offset: int

		Returns:
		  - []*Share: Ordered page
		  - int: Total share count
		  - error: Retrieval failures
	*/
	ListByPost(context context.Context, postID string, limit, offset int) ([]*Share, int, error)
}
