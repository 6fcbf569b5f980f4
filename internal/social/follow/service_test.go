// Copyright (c) 2026 Socio. All rights reserved.

package follow_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/social/follow"
	"github.com/socioapp/socio/internal/users/user"
)

// fakeRepository is an in-memory follow store keyed by "follower->followee".
type fakeRepository struct {
	edges map[string]*follow.Follow
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{edges: make(map[string]*follow.Follow)}
}

func edgeKey(followerID, followeeID string) string {
	return followerID + "->" + followeeID
}

func (f *fakeRepository) Create(_ context.Context, edge *follow.Follow) error {
	key := edgeKey(edge.FollowerID, edge.FolloweeID)
	if _, ok := f.edges[key]; ok {
		return dberr.ErrDuplicate
	}
	f.edges[key] = edge
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, followerID, followeeID string) error {
	key := edgeKey(followerID, followeeID)
	if _, ok := f.edges[key]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.edges, key)
	return nil
}

func (f *fakeRepository) Exists(_ context.Context, followerID, followeeID string) (bool, error) {
	_, ok := f.edges[edgeKey(followerID, followeeID)]
	return ok, nil
}

func (f *fakeRepository) ListFollowers(_ context.Context, userID string, _, _ int) ([]*user.User, int, error) {
	var users []*user.User
	for _, edge := range f.edges {
		if edge.FolloweeID == userID {
			users = append(users, &user.User{ID: edge.FollowerID})
		}
	}
	return users, len(users), nil
}

func (f *fakeRepository) ListFollowing(_ context.Context, userID string, _, _ int) ([]*user.User, int, error) {
	var users []*user.User
	for _, edge := range f.edges {
		if edge.FollowerID == userID {
			users = append(users, &user.User{ID: edge.FolloweeID})
		}
	}
	return users, len(users), nil
}

// fakeResolver knows a fixed set of user ids.
type fakeResolver struct {
	known map[string]bool
}

func (f *fakeResolver) Resolve(_ context.Context, userID string) (user.Identity, error) {
	if !f.known[userID] {
		return user.Identity{}, apperr.NotFound("User not found")
	}
	return user.Identity{}, nil
}

func newTestService() (*follow.Service, *fakeRepository) {
	repo := newFakeRepository()
	resolver := &fakeResolver{known: map[string]bool{"alice": true, "bob": true}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return follow.NewService(repo, resolver, nil, logger), repo
}

func TestService_Follow(t *testing.T) {
	service, repo := newTestService()

	edge, err := service.Follow(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.NotEmpty(t, edge.ID)
	assert.Equal(t, "alice", edge.FollowerID)
	assert.Equal(t, "bob", edge.FolloweeID)
	assert.Len(t, repo.edges, 1)
}

/*
TestService_Follow_Rejections covers the coordinator's failure taxonomy for
edge creation.
*/
func TestService_Follow_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		actorID    string
		followeeID string
		seed       bool
		wantCode   string
	}{
		{"self_follow", "alice", "alice", false, "VALIDATION_ERROR"},
		{"unknown_followee", "alice", "ghost", false, "NOT_FOUND"},
		{"duplicate_edge", "alice", "bob", true, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService()
			if tt.seed {
				_, err := service.Follow(context.Background(), tt.actorID, tt.followeeID)
				require.NoError(t, err)
			}

			_, err := service.Follow(context.Background(), tt.actorID, tt.followeeID)
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestService_Unfollow(t *testing.T) {
	service, repo := newTestService()
	_, err := service.Follow(context.Background(), "alice", "bob")
	require.NoError(t, err)

	require.NoError(t, service.Unfollow(context.Background(), "alice", "bob"))
	assert.Empty(t, repo.edges)
}

func TestService_Unfollow_AbsentEdge(t *testing.T) {
	service, _ := newTestService()

	err := service.Unfollow(context.Background(), "alice", "bob")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestService_IsFollowing(t *testing.T) {
	service, _ := newTestService()
	_, err := service.Follow(context.Background(), "alice", "bob")
	require.NoError(t, err)

	following, err := service.IsFollowing(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed.
	reverse, err := service.IsFollowing(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.False(t, reverse)
}
