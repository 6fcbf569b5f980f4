// Copyright (c) 2026 Socio. All rights reserved.

package group

import (
	"context"

	"github.com/socioapp/socio/internal/social/visibility"
)

// # Group Data Access

// Repository defines the data access contract for groups and memberships.
// It doubles as the [visibility.GroupChecker] backing the policy engine.
type Repository interface {

	/*
		CreateWithCreator persists a new group and its creator membership
		in a single transaction. Either both rows exist afterwards or
		neither does.

		Parameters:
		  - context: context.Context
		  - group: *Group

		Returns:
		  - error: dberr.ErrDuplicate on slug collision
	*/
	CreateWithCreator(context context.Context, group *Group) error

	/*
		FindByID retrieves a group with its member count.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Group: Hydrated entity
		  - error: dberr.ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Group, error)

	/*
		UpdatePrivacy switches a group's privacy flag.

		Parameters:
		  - context: context.Context
		  - groupID: string
		  - isPrivate: bool

		Returns:
		  - error: dberr.ErrNotFound if missing
	*/
	UpdatePrivacy(context context.Context, groupID string, isPrivate bool) error

	/*
		GroupMeta returns the creator and privacy projection the policy
		engine evaluates.

		Parameters:
		  - context: context.Context
		  - groupID: string

		Returns:
		  - visibility.GroupMeta: Creator id and privacy flag
		  - error: dberr.ErrNotFound if missing
	*/
	GroupMeta(context context.Context, groupID string) (visibility.GroupMeta, error)

	/*
		IsMember reports whether userID belongs to the group.

		Parameters:
		  - context: context.Context
		  - groupID, userID: string

		Returns:
		  - bool: Membership flag
		  - error: Retrieval failures
	*/
	IsMember(context context.Context, groupID, userID string) (bool, error)

	/*
		AddMember persists a membership edge.

		Parameters:
		  - context: context.Context
		  - member: *Member

		Returns:
		  - error: dberr.ErrDuplicate if already a member,
		    dberr.ErrNotFound if the group or user is missing
	*/
	AddMember(context context.Context, member *Member) error

	/*
		RemoveMember deletes a membership edge.

		Parameters:
		  - context: context.Context
		  - groupID, userID: string

		Returns:
		  - error: dberr.ErrNotFound if the edge does not exist
	*/
	RemoveMember(context context.Context, groupID, userID string) error

	/*
		ListMembers returns a page of group members, earliest joiner
		first.

		Parameters:
		  - context: context.Context
		  - groupID: string
		  - limit, offset: int

		Returns:
		  - []*Member: Ordered page
		  - int: Total member count
		  - error: Retrieval failures
	*/
	ListMembers(context context.Context, groupID string, limit, offset int) ([]*Member, int, error)

	/*
		ListByMember returns a page of groups the user belongs to, newest
		membership first.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit, offset: int

		Returns:
		  - []*Group: Ordered page
		  - int: Total group count
		  - error: Retrieval failures
	*/
	ListByMember(context context.Context, userID string, limit, offset int) ([]*Group, int, error)
}
