// Copyright (c) 2026 Socio. All rights reserved.

/*
Package visibility is the access-control engine for all content operations.

Every read and write against a post, a profile's post list, or a group's
content funnels through this package. The engine consolidates what would
otherwise be scattered per-handler permission checks into a single ordered
decision procedure over the social graph.

# Decision Order

For reads, the first matching rule wins:

 1. Self-access is always permitted.
 2. Administrators see everything.
 3. Public owners (and public groups) are visible to everyone.
 4. Private owners are visible to their followers; private groups to their
    members and creator.
 5. Otherwise the access is denied with a reason.

Writes layer ownership and membership requirements on top: deleting requires
ownership or admin, and posting into a group requires membership even when the
group is public.

# Purity

The engine holds no state of its own. It consumes three narrow read-only
views of the graph and returns a tagged [Decision]; policy outcomes are never
reported as errors.
*/
package visibility

import (
	"context"

	"github.com/socioapp/socio/internal/users/user"
)

// # Decisions

// Reason tags why a decision allowed or denied access.
type Reason string

const (
	ReasonSelf     Reason = "self"
	ReasonAdmin    Reason = "admin"
	ReasonPublic   Reason = "public"
	ReasonFollower Reason = "follower"
	ReasonMember   Reason = "member"
	ReasonCreator  Reason = "creator"
	ReasonOwner    Reason = "owner"

	ReasonPrivateProfile Reason = "private_profile"
	ReasonPrivateGroup   Reason = "private_group"
	ReasonNotOwner       Reason = "not_owner"
	ReasonNotMember      Reason = "not_member"
)

// Decision is the tagged outcome of a visibility check.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow constructs a permitting decision.
func Allow(reason Reason) Decision {
	return Decision{Allowed: true, Reason: reason}
}

// Deny constructs a refusing decision.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// # Graph Views

// IdentityResolver resolves a user id to their role and privacy flags.
type IdentityResolver interface {
	Resolve(context context.Context, userID string) (user.Identity, error)
}

// FollowChecker answers follow-edge existence queries.
type FollowChecker interface {
	IsFollowing(context context.Context, followerID, followeeID string) (bool, error)
}

// GroupMeta is the slice of group state the engine needs.
type GroupMeta struct {
	CreatorID string
	IsPrivate bool
}

// GroupChecker answers group lookup and membership queries.
type GroupChecker interface {
	GroupMeta(context context.Context, groupID string) (GroupMeta, error)
	IsMember(context context.Context, groupID, userID string) (bool, error)
}

// # Content References

// Content identifies a piece of content by its owner and optional group scope.
// It is deliberately smaller than the post entity so that callers can gate
// whole collections (a user's post list, a group's post list) with the same
// engine calls.
type Content struct {
	OwnerID string
	GroupID *string
}
