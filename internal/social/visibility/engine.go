// Copyright (c) 2026 Socio. All rights reserved.

package visibility

import "context"

// Engine evaluates access decisions against the social graph.
type Engine struct {
	identities IdentityResolver
	follows    FollowChecker
	groups     GroupChecker
}

// NewEngine constructs a visibility [Engine] over the given graph views.
func NewEngine(identities IdentityResolver, follows FollowChecker, groups GroupChecker) *Engine {
	return &Engine{
		identities: identities,
		follows:    follows,
		groups:     groups,
	}
}

// # Read Decisions

/*
CanViewUser decides whether the actor may read content owned by ownerID.

Description: Implements the ordered rule set for user-owned resources:
self → admin → public owner → follower of private owner → deny.

Parameters:
  - context: context.Context
  - actorID: string (The requesting user)
  - ownerID: string (The content owner)

Returns:
  - Decision: Tagged allow/deny outcome
  - error: apperr.NotFound if either identity is unknown, or graph failures
*/
func (engine *Engine) CanViewUser(context context.Context, actorID, ownerID string) (Decision, error) {

	// 1. Self-access always permitted.
	if actorID == ownerID {
		return Allow(ReasonSelf), nil
	}

	// 2. Admin override is unconditional.
	actor, err := engine.identities.Resolve(context, actorID)
	if err != nil {
		return Decision{}, err
	}
	if actor.IsAdmin {
		return Allow(ReasonAdmin), nil
	}

	// 3. Public owners are visible to everyone.
	owner, err := engine.identities.Resolve(context, ownerID)
	if err != nil {
		return Decision{}, err
	}
	if !owner.IsPrivate {
		return Allow(ReasonPublic), nil
	}

	// 4. Private owners are visible to their followers.
	isFollowing, err := engine.follows.IsFollowing(context, actorID, ownerID)
	if err != nil {
		return Decision{}, err
	}
	if isFollowing {
		return Allow(ReasonFollower), nil
	}

	// 5. Deny.
	return Deny(ReasonPrivateProfile), nil
}

/*
CanViewGroup decides whether the actor may read content scoped to a group.

Description: self is meaningless for groups, so the order is creator → admin →
public group → member of private group → deny.

Parameters:
  - context: context.Context
  - actorID: string
  - groupID: string

Returns:
  - Decision: Tagged allow/deny outcome
  - error: apperr.NotFound if the group or actor is unknown
*/
func (engine *Engine) CanViewGroup(context context.Context, actorID, groupID string) (Decision, error) {
	group, err := engine.groups.GroupMeta(context, groupID)
	if err != nil {
		return Decision{}, err
	}

	// 1. The creator always sees their own group.
	if group.CreatorID == actorID {
		return Allow(ReasonCreator), nil
	}

	// 2. Admin override.
	actor, err := engine.identities.Resolve(context, actorID)
	if err != nil {
		return Decision{}, err
	}
	if actor.IsAdmin {
		return Allow(ReasonAdmin), nil
	}

	// 3. Public groups are visible to everyone.
	if !group.IsPrivate {
		return Allow(ReasonPublic), nil
	}

	// 4. Private groups are visible to members.
	isMember, err := engine.groups.IsMember(context, groupID, actorID)
	if err != nil {
		return Decision{}, err
	}
	if isMember {
		return Allow(ReasonMember), nil
	}

	// 5. Deny.
	return Deny(ReasonPrivateGroup), nil
}

/*
CanViewContent decides whether the actor may read a single piece of content.

Description: Group-scoped content is gated by group visibility; everything
else by the owner's profile visibility. Self-access short-circuits both paths,
so an author always sees their own group posts even after leaving the group.

Parameters:
  - context: context.Context
  - actorID: string
  - content: Content (Owner plus optional group scope)

Returns:
  - Decision: Tagged allow/deny outcome
  - error: Graph or identity lookup failures
*/
func (engine *Engine) CanViewContent(context context.Context, actorID string, content Content) (Decision, error) {
	if actorID == content.OwnerID {
		return Allow(ReasonSelf), nil
	}

	if content.GroupID != nil {
		return engine.CanViewGroup(context, actorID, *content.GroupID)
	}

	return engine.CanViewUser(context, actorID, content.OwnerID)
}

// # Write Decisions

/*
CanDelete decides whether the actor may delete content.

Description: Deletion requires ownership or the admin role; visibility alone
is never sufficient.

Parameters:
  - context: context.Context
  - actorID: string
  - ownerID: string (The content owner)

Returns:
  - Decision: Tagged allow/deny outcome
  - error: Identity lookup failures
*/
func (engine *Engine) CanDelete(context context.Context, actorID, ownerID string) (Decision, error) {
	if actorID == ownerID {
		return Allow(ReasonOwner), nil
	}

	actor, err := engine.identities.Resolve(context, actorID)
	if err != nil {
		return Decision{}, err
	}
	if actor.IsAdmin {
		return Allow(ReasonAdmin), nil
	}

	return Deny(ReasonNotOwner), nil
}

/*
CanShare decides whether the actor may share a post owned by ownerID.

Description: The sharer themselves must pass the read check against the
original owner; owners may always share their own posts.

Parameters:
  - context: context.Context
  - actorID: string (The sharer)
  - ownerID: string (The original post's owner)

Returns:
  - Decision: Tagged allow/deny outcome
  - error: Graph or identity lookup failures
*/
func (engine *Engine) CanShare(context context.Context, actorID, ownerID string) (Decision, error) {
	if actorID == ownerID {
		return Allow(ReasonOwner), nil
	}
	return engine.CanViewUser(context, actorID, ownerID)
}

/*
CanPostInGroup decides whether the actor may create content inside a group.

Description: Posting requires current membership or creator status, re-checked
even when the group is public. Admins do not bypass the membership requirement
for writes.

Parameters:
  - context: context.Context
  - actorID: string
  - groupID: string

Returns:
  - Decision: Tagged allow/deny outcome
  - error: apperr.NotFound if the group is unknown
*/
func (engine *Engine) CanPostInGroup(context context.Context, actorID, groupID string) (Decision, error) {
	group, err := engine.groups.GroupMeta(context, groupID)
	if err != nil {
		return Decision{}, err
	}

	if group.CreatorID == actorID {
		return Allow(ReasonCreator), nil
	}

	isMember, err := engine.groups.IsMember(context, groupID, actorID)
	if err != nil {
		return Decision{}, err
	}
	if isMember {
		return Allow(ReasonMember), nil
	}

	return Deny(ReasonNotMember), nil
}
