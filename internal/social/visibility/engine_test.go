// Copyright (c) 2026 Socio. All rights reserved.

package visibility_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/internal/users/user"
)

// fakeGraph is an in-memory social graph backing all three engine interfaces.
type fakeGraph struct {
	identities map[string]user.Identity
	follows    map[string]bool // "follower->followee"
	groups     map[string]visibility.GroupMeta
	members    map[string]bool // "group->user"
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{
		identities: make(map[string]user.Identity),
		follows:    make(map[string]bool),
		groups:     make(map[string]visibility.GroupMeta),
		members:    make(map[string]bool),
	}
}

func (f *fakeGraph) Resolve(_ context.Context, userID string) (user.Identity, error) {
	identity, ok := f.identities[userID]
	if !ok {
		return user.Identity{}, apperr.NotFound("User not found")
	}
	return identity, nil
}

func (f *fakeGraph) IsFollowing(_ context.Context, followerID, followeeID string) (bool, error) {
	return f.follows[followerID+"->"+followeeID], nil
}

func (f *fakeGraph) GroupMeta(_ context.Context, groupID string) (visibility.GroupMeta, error) {
	meta, ok := f.groups[groupID]
	if !ok {
		return visibility.GroupMeta{}, apperr.NotFound("Group not found")
	}
	return meta, nil
}

func (f *fakeGraph) IsMember(_ context.Context, groupID, userID string) (bool, error) {
	return f.members[groupID+"->"+userID], nil
}

func newTestGraph() *fakeGraph {
	graph := newFakeGraph()
	graph.identities["alice"] = user.Identity{IsPrivate: false}
	graph.identities["bob"] = user.Identity{IsPrivate: true}
	graph.identities["carol"] = user.Identity{IsPrivate: true}
	graph.identities["root"] = user.Identity{IsAdmin: true}
	graph.follows["alice->bob"] = true
	graph.groups["hikers"] = visibility.GroupMeta{CreatorID: "alice", IsPrivate: false}
	graph.groups["book-club"] = visibility.GroupMeta{CreatorID: "bob", IsPrivate: true}
	graph.members["book-club->carol"] = true
	return graph
}

/*
TestEngine_CanViewUser exercises the ordered user visibility rules.
*/
func TestEngine_CanViewUser(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())

	tests := []struct {
		name    string
		actorID string
		ownerID string
		allowed bool
		reason  visibility.Reason
	}{
		{"self_always_allowed", "bob", "bob", true, visibility.ReasonSelf},
		{"admin_sees_private", "root", "bob", true, visibility.ReasonAdmin},
		{"anyone_sees_public", "carol", "alice", true, visibility.ReasonPublic},
		{"follower_sees_private", "alice", "bob", true, visibility.ReasonFollower},
		{"stranger_denied_private", "carol", "bob", false, visibility.ReasonPrivateProfile},
		{"follow_is_directional", "bob", "carol", false, visibility.ReasonPrivateProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := engine.CanViewUser(context.Background(), tt.actorID, tt.ownerID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestEngine_CanViewUser_UnknownActor(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())

	_, err := engine.CanViewUser(context.Background(), "ghost", "alice")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestEngine_CanViewGroup exercises the ordered group visibility rules.
*/
func TestEngine_CanViewGroup(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())

	tests := []struct {
		name    string
		actorID string
		groupID string
		allowed bool
		reason  visibility.Reason
	}{
		{"creator_sees_own_group", "bob", "book-club", true, visibility.ReasonCreator},
		{"admin_sees_private_group", "root", "book-club", true, visibility.ReasonAdmin},
		{"anyone_sees_public_group", "carol", "hikers", true, visibility.ReasonPublic},
		{"member_sees_private_group", "carol", "book-club", true, visibility.ReasonMember},
		{"stranger_denied_private_group", "alice", "book-club", false, visibility.ReasonPrivateGroup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := engine.CanViewGroup(context.Background(), tt.actorID, tt.groupID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestEngine_CanViewContent(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())
	groupID := "book-club"

	tests := []struct {
		name    string
		actorID string
		content visibility.Content
		allowed bool
		reason  visibility.Reason
	}{
		{"author_sees_own_group_post", "carol", visibility.Content{OwnerID: "carol", GroupID: &groupID}, true, visibility.ReasonSelf},
		{"group_post_gated_by_group", "alice", visibility.Content{OwnerID: "carol", GroupID: &groupID}, false, visibility.ReasonPrivateGroup},
		{"profile_post_gated_by_owner", "carol", visibility.Content{OwnerID: "bob"}, false, visibility.ReasonPrivateProfile},
		{"follower_sees_profile_post", "alice", visibility.Content{OwnerID: "bob"}, true, visibility.ReasonFollower},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := engine.CanViewContent(context.Background(), tt.actorID, tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestEngine_CanDelete(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())

	tests := []struct {
		name    string
		actorID string
		ownerID string
		allowed bool
		reason  visibility.Reason
	}{
		{"owner_deletes_own", "alice", "alice", true, visibility.ReasonOwner},
		{"admin_deletes_any", "root", "alice", true, visibility.ReasonAdmin},
		{"follower_cannot_delete", "alice", "bob", false, visibility.ReasonNotOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := engine.CanDelete(context.Background(), tt.actorID, tt.ownerID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestEngine_CanShare(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())

	tests := []struct {
		name    string
		actorID string
		ownerID string
		allowed bool
		reason  visibility.Reason
	}{
		{"owner_shares_own", "bob", "bob", true, visibility.ReasonOwner},
		{"viewer_shares_visible", "alice", "bob", true, visibility.ReasonFollower},
		{"stranger_cannot_share_private", "carol", "bob", false, visibility.ReasonPrivateProfile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := engine.CanShare(context.Background(), tt.actorID, tt.ownerID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

/*
TestEngine_CanPostInGroup verifies that group writes require membership even
for admins and public groups.
*/
func TestEngine_CanPostInGroup(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())

	tests := []struct {
		name    string
		actorID string
		groupID string
		allowed bool
		reason  visibility.Reason
	}{
		{"creator_posts", "bob", "book-club", true, visibility.ReasonCreator},
		{"member_posts", "carol", "book-club", true, visibility.ReasonMember},
		{"admin_does_not_bypass_membership", "root", "book-club", false, visibility.ReasonNotMember},
		{"non_member_denied_even_in_public_group", "bob", "hikers", false, visibility.ReasonNotMember},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := engine.CanPostInGroup(context.Background(), tt.actorID, tt.groupID)
			require.NoError(t, err)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.Equal(t, tt.reason, decision.Reason)
		})
	}
}

func TestEngine_CanPostInGroup_UnknownGroup(t *testing.T) {
	engine := visibility.NewEngine(newTestGraph(), newTestGraph(), newTestGraph())

	_, err := engine.CanPostInGroup(context.Background(), "alice", "nope")
	require.Error(t, err)
	require.NotNil(t, apperr.As(err))
}
