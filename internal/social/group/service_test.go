// Copyright (c) 2026 Socio. All rights reserved.

package group_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/social/group"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/internal/users/user"
)

// fakeRepository is an in-memory group store. Membership keys are
// "group->user".
type fakeRepository struct {
	groups  map[string]*group.Group
	members map[string]*group.Member
	slugs   map[string]bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		groups:  make(map[string]*group.Group),
		members: make(map[string]*group.Member),
		slugs:   make(map[string]bool),
	}
}

func memberKey(groupID, userID string) string {
	return groupID + "->" + userID
}

func (f *fakeRepository) CreateWithCreator(_ context.Context, entity *group.Group) error {
	if f.slugs[entity.Slug] {
		return dberr.ErrDuplicate
	}
	f.slugs[entity.Slug] = true
	f.groups[entity.ID] = entity
	f.members[memberKey(entity.ID, entity.CreatorID)] = &group.Member{GroupID: entity.ID, UserID: entity.CreatorID}
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*group.Group, error) {
	entity, ok := f.groups[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	return entity, nil
}

func (f *fakeRepository) UpdatePrivacy(_ context.Context, groupID string, isPrivate bool) error {
	entity, ok := f.groups[groupID]
	if !ok {
		return dberr.ErrNotFound
	}
	entity.IsPrivate = isPrivate
	return nil
}

func (f *fakeRepository) GroupMeta(_ context.Context, groupID string) (visibility.GroupMeta, error) {
	entity, ok := f.groups[groupID]
	if !ok {
		return visibility.GroupMeta{}, dberr.ErrNotFound
	}
	return visibility.GroupMeta{CreatorID: entity.CreatorID, IsPrivate: entity.IsPrivate}, nil
}

func (f *fakeRepository) IsMember(_ context.Context, groupID, userID string) (bool, error) {
	_, ok := f.members[memberKey(groupID, userID)]
	return ok, nil
}

func (f *fakeRepository) AddMember(_ context.Context, member *group.Member) error {
	if _, ok := f.groups[member.GroupID]; !ok {
		return dberr.ErrNotFound
	}
	key := memberKey(member.GroupID, member.UserID)
	if _, ok := f.members[key]; ok {
		return dberr.ErrDuplicate
	}
	f.members[key] = member
	return nil
}

func (f *fakeRepository) RemoveMember(_ context.Context, groupID, userID string) error {
	key := memberKey(groupID, userID)
	if _, ok := f.members[key]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.members, key)
	return nil
}

func (f *fakeRepository) ListMembers(_ context.Context, groupID string, _, _ int) ([]*group.Member, int, error) {
	var members []*group.Member
	for _, member := range f.members {
		if member.GroupID == groupID {
			members = append(members, member)
		}
	}
	return members, len(members), nil
}

func (f *fakeRepository) ListByMember(_ context.Context, userID string, _, _ int) ([]*group.Group, int, error) {
	var groups []*group.Group
	for _, member := range f.members {
		if member.UserID == userID {
			groups = append(groups, f.groups[member.GroupID])
		}
	}
	return groups, len(groups), nil
}

// fakeIdentities resolves every user as an ordinary member.
type fakeIdentities struct{}

func (fakeIdentities) Resolve(_ context.Context, _ string) (user.Identity, error) {
	return user.Identity{}, nil
}

// fakeFollows has no edges.
type fakeFollows struct{}

func (fakeFollows) IsFollowing(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func newTestService() (*group.Service, *fakeRepository) {
	repo := newFakeRepository()
	engine := visibility.NewEngine(fakeIdentities{}, fakeFollows{}, repo)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return group.NewService(repo, engine, logger), repo
}

func mustCreate(t *testing.T, service *group.Service, creatorID, name string, isPrivate bool) *group.Group {
	t.Helper()
	entity, err := service.Create(context.Background(), creatorID, group.CreateInput{Name: name, IsPrivate: isPrivate})
	require.NoError(t, err)
	return entity
}

func TestService_Create(t *testing.T) {
	service, repo := newTestService()

	entity := mustCreate(t, service, "carol", "Weekend Hikers", false)
	assert.Equal(t, "carol", entity.CreatorID)
	assert.Equal(t, "weekend-hikers", entity.Slug)
	assert.Equal(t, 1, entity.MemberCount)

	// The creator membership is written with the group.
	isMember, err := repo.IsMember(context.Background(), entity.ID, "carol")
	require.NoError(t, err)
	assert.True(t, isMember)
}

func TestService_Create_DuplicateName(t *testing.T) {
	service, _ := newTestService()
	mustCreate(t, service, "carol", "Weekend Hikers", false)

	_, err := service.Create(context.Background(), "dave", group.CreateInput{Name: "Weekend Hikers"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

func TestService_TogglePrivacy_CreatorOnly(t *testing.T) {
	service, _ := newTestService()
	entity := mustCreate(t, service, "carol", "Book Club", false)

	_, err := service.TogglePrivacy(context.Background(), "dave", entity.ID, true)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	updated, err := service.TogglePrivacy(context.Background(), "carol", entity.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsPrivate)
}

func TestService_AddMember(t *testing.T) {
	service, _ := newTestService()
	entity := mustCreate(t, service, "carol", "Book Club", true)

	tests := []struct {
		name     string
		actorID  string
		userID   string
		wantCode string
	}{
		{"creator_adds_member", "carol", "dave", ""},
		{"non_creator_forbidden", "dave", "erin", "FORBIDDEN"},
		{"duplicate_member", "carol", "dave", "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.AddMember(context.Background(), tt.actorID, entity.ID, tt.userID)
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.As(err).Code)
		})
	}
}

/*
TestService_RemoveMember verifies the membership invariant: removing a
non-creator member succeeds with the creator still in place, while removing
the creator is forbidden before any other check.
*/
func TestService_RemoveMember(t *testing.T) {
	service, repo := newTestService()
	entity := mustCreate(t, service, "carol", "Book Club", true)
	_, err := service.AddMember(context.Background(), "carol", entity.ID, "dave")
	require.NoError(t, err)

	// Creator removes a member.
	require.NoError(t, service.RemoveMember(context.Background(), "carol", entity.ID, "dave"))
	stillMember, err := repo.IsMember(context.Background(), entity.ID, "carol")
	require.NoError(t, err)
	assert.True(t, stillMember)

	// Creator removal is Forbidden, not NotFound, even by the creator.
	err = service.RemoveMember(context.Background(), "carol", entity.ID, "carol")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// Removing the already-removed member reports NotFound.
	err = service.RemoveMember(context.Background(), "carol", entity.ID, "dave")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestService_RemoveMember_SelfLeave(t *testing.T) {
	service, _ := newTestService()
	entity := mustCreate(t, service, "carol", "Book Club", true)
	_, err := service.AddMember(context.Background(), "carol", entity.ID, "dave")
	require.NoError(t, err)

	// A member can leave without being the creator.
	require.NoError(t, service.RemoveMember(context.Background(), "dave", entity.ID, "dave"))

	// But cannot remove someone else.
	_, err = service.AddMember(context.Background(), "carol", entity.ID, "erin")
	require.NoError(t, err)
	err = service.RemoveMember(context.Background(), "dave", entity.ID, "erin")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
}

func TestService_Members_PrivateGroupGated(t *testing.T) {
	service, _ := newTestService()
	entity := mustCreate(t, service, "carol", "Book Club", true)

	_, _, err := service.Members(context.Background(), "stranger", entity.ID, 20, 0)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	members, total, err := service.Members(context.Background(), "carol", entity.ID, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, members, 1)
}
