// Copyright (c) 2026 Socio. All rights reserved.

package post_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/platform/storage"
	"github.com/socioapp/socio/internal/social/post"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/internal/users/user"
)

// # Fakes

// fakeGraph backs the policy engine with in-memory identities, follow
// edges ("follower->followee"), and groups.
type fakeGraph struct {
	identities map[string]user.Identity
	follows    map[string]bool
	groups     map[string]visibility.GroupMeta
	members    map[string]bool
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

// fakeRepository is an in-memory post store with feed ordering matching the
// production queries.
type fakeRepository struct {
	posts map[string]*post.Post
	graph *fakeGraph
	likes map[string]bool // "post->user"
}

func (f *fakeRepository) Create(_ context.Context, entity *post.Post) error {
	if entity.CreatedAt.IsZero() {
		entity.CreatedAt = time.Now().UTC()
	}
	f.posts[entity.ID] = entity
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id, _ string) (*post.Post, error) {
	entity, ok := f.posts[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *entity
	return &clone, nil
}

func (f *fakeRepository) ContentOf(_ context.Context, postID string) (visibility.Content, error) {
	entity, ok := f.posts[postID]
	if !ok {
		return visibility.Content{}, dberr.ErrNotFound
	}
	return entity.ContentRef(), nil
}

func (f *fakeRepository) IsLikedBy(_ context.Context, postID, viewerID string) (bool, error) {
	return f.likes[postID+"->"+viewerID], nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeRepository) ListByUser(_ context.Context, userID, _ string, limit, offset int) ([]*post.Post, int, error) {
	matching := f.sorted(func(p *post.Post) bool { return p.UserID == userID })
	return page(matching, limit, offset), len(matching), nil
}

func (f *fakeRepository) ListByGroup(_ context.Context, groupID, _ string, limit, offset int) ([]*post.Post, int, error) {
	matching := f.sorted(func(p *post.Post) bool { return p.GroupID != nil && *p.GroupID == groupID })
	return page(matching, limit, offset), len(matching), nil
}

func (f *fakeRepository) ListFeed(_ context.Context, viewerID string, limit, offset int) ([]*post.Post, int, error) {
	matching := f.sorted(func(p *post.Post) bool {
		return p.UserID == viewerID || f.graph.follows[viewerID+"->"+p.UserID]
	})
	return page(matching, limit, offset), len(matching), nil
}

func (f *fakeRepository) ListAllWithCounts(_ context.Context, _ string) ([]*post.Post, error) {
	return f.sorted(func(*post.Post) bool { return true }), nil
}

func (f *fakeRepository) ListByKind(_ context.Context, kind storage.Kind, _ string, limit, offset int) ([]*post.Post, int, error) {
	matching := f.sorted(func(p *post.Post) bool {
		return p.AttachmentKind != nil && *p.AttachmentKind == kind
	})
	return page(matching, limit, offset), len(matching), nil
}

// sorted returns matching posts ordered like the store: createdat DESC,
// id ASC.
func (f *fakeRepository) sorted(match func(*post.Post) bool) []*post.Post {
	var matching []*post.Post
	for _, entity := range f.posts {
		if match(entity) {
			clone := *entity
			matching = append(matching, &clone)
		}
	}
	slices.SortFunc(matching, func(a, b *post.Post) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if a.CreatedAt.After(b.CreatedAt) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.ID, b.ID)
	})
	return matching
}

func page(posts []*post.Post, limit, offset int) []*post.Post {
	if offset >= len(posts) {
		return nil
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

// fakeFiles records uploads and deletes in memory.
type fakeFiles struct {
	uploads map[string][]byte
	deleted []string
	nextRef int
}

func (f *fakeFiles) Upload(_ context.Context, data []byte, _ string) (string, error) {
	f.nextRef++
	reference := fmt.Sprintf("file-%d", f.nextRef)
	f.uploads[reference] = data
	return reference, nil
}

func (f *fakeFiles) Delete(_ context.Context, reference string) error {
	delete(f.uploads, reference)
	f.deleted = append(f.deleted, reference)
	return nil
}

type fakeBirthdays struct {
	users []*user.User
}

func (f *fakeBirthdays) ListByBirthday(_ context.Context, _ time.Month, _ int) ([]*user.User, error) {
	return f.users, nil
}

// # Fixture

type fixture struct {
	service *post.Service
	repo    *fakeRepository
	graph   *fakeGraph
	files   *fakeFiles
}

// newFixture builds a service over a graph with:
// alice (public), bob (private, followed by alice), root (admin),
// a public group "hikers" (creator alice) and a private group "book-club"
// (creator bob, member carol).
func newFixture() *fixture {
	graph := &fakeGraph{
		identities: map[string]user.Identity{
			"alice": {},
			"bob":   {IsPrivate: true},
			"carol": {},
			"root":  {IsAdmin: true},
		},
		follows: map[string]bool{"alice->bob": true},
		groups: map[string]visibility.GroupMeta{
			"hikers":    {CreatorID: "alice"},
			"book-club": {CreatorID: "bob", IsPrivate: true},
		},
		members: map[string]bool{"book-club->carol": true},
	}
	repo := &fakeRepository{
		posts: make(map[string]*post.Post),
		graph: graph,
		likes: make(map[string]bool),
	}
	files := &fakeFiles{uploads: make(map[string][]byte)}
	engine := visibility.NewEngine(graph, graph, graph)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := post.NewService(repo, repo, engine, files, nil, &fakeBirthdays{}, logger)
	return &fixture{service: service, repo: repo, graph: graph, files: files}
}

// seed writes a post directly into the store with a fixed timestamp.
func (f *fixture) seed(id, userID string, groupID *string, at time.Time) *post.Post {
	entity := &post.Post{
		ID:        id,
		UserID:    userID,
		Content:   "post " + id,
		GroupID:   groupID,
		CreatedAt: at,
	}
	f.repo.posts[id] = entity
	return entity
}

// # Lifecycle

func TestService_Create(t *testing.T) {
	f := newFixture()

	created, err := f.service.Create(context.Background(), "alice", post.CreateInput{Content: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "alice", created.UserID)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.AttachmentRef)
}

func TestService_Create_WithAttachment(t *testing.T) {
	f := newFixture()

	created, err := f.service.Create(context.Background(), "alice", post.CreateInput{
		Content:     "trail photo",
		Attachment:  []byte("jpeg-bytes"),
		ContentType: "image/jpeg",
	})
	require.NoError(t, err)
	require.NotNil(t, created.AttachmentRef)
	require.NotNil(t, created.AttachmentKind)
	assert.Equal(t, storage.KindImage, *created.AttachmentKind)
	assert.Contains(t, f.files.uploads, *created.AttachmentRef)
}

/*
TestService_Create_GroupMembership verifies that group posting needs
membership even for public groups, and that admins get no bypass.
*/
func TestService_Create_GroupMembership(t *testing.T) {
	groupID := func(id string) *string { return &id }

	tests := []struct {
		name     string
		actorID  string
		groupID  *string
		wantCode string
	}{
		{"member_posts_in_private_group", "carol", groupID("book-club"), ""},
		{"creator_posts_in_own_group", "alice", groupID("hikers"), ""},
		{"non_member_forbidden_in_public_group", "carol", groupID("hikers"), "FORBIDDEN"},
		{"admin_gets_no_bypass", "root", groupID("book-club"), "FORBIDDEN"},
		{"unknown_group", "alice", groupID("nope"), "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.service.Create(context.Background(), tt.actorID, post.CreateInput{
				Content: "hi",
				GroupID: tt.groupID,
			})
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, apperr.As(err).Code)
		})
	}
}

func TestService_Get_VisibilityGate(t *testing.T) {
	f := newFixture()
	f.seed("p1", "bob", nil, time.Now())

	// bob is private; carol does not follow him.
	_, err := f.service.Get(context.Background(), "carol", "p1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// alice follows bob.
	got, err := f.service.Get(context.Background(), "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)

	// bob always sees his own post.
	_, err = f.service.Get(context.Background(), "bob", "p1")
	require.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	f := newFixture()
	reference := "file-9"
	entity := f.seed("p1", "alice", nil, time.Now())
	entity.AttachmentRef = &reference
	f.files.uploads[reference] = []byte("data")

	// Not the owner, not an admin.
	err := f.service.Delete(context.Background(), "carol", "p1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// The owner deletes; the attachment goes with the post.
	require.NoError(t, f.service.Delete(context.Background(), "alice", "p1"))
	assert.NotContains(t, f.repo.posts, "p1")
	assert.Contains(t, f.files.deleted, reference)
}

func TestService_Delete_AdminOverride(t *testing.T) {
	f := newFixture()
	f.seed("p1", "alice", nil, time.Now())

	require.NoError(t, f.service.Delete(context.Background(), "root", "p1"))
	assert.Empty(t, f.repo.posts)
}

// # Sharing

func TestService_Share(t *testing.T) {
	f := newFixture()
	f.seed("p1", "bob", nil, time.Now())

	// carol cannot see bob's post, so she cannot share it.
	_, err := f.service.Share(context.Background(), "carol", "p1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	// alice follows bob, so she can.
	share, err := f.service.Share(context.Background(), "alice", "p1")
	require.NoError(t, err)
	assert.True(t, share.IsShared)
	assert.Equal(t, "alice", share.UserID)
	require.NotNil(t, share.OriginalPostID)
	assert.Equal(t, "p1", *share.OriginalPostID)
	assert.Equal(t, "bob", *share.OriginalUserID)
}

func TestService_Share_OwnPostAlwaysAllowed(t *testing.T) {
	f := newFixture()
	f.seed("p1", "bob", nil, time.Now())

	// bob is private with no followers, but owners always share their own.
	share, err := f.service.Share(context.Background(), "bob", "p1")
	require.NoError(t, err)
	assert.Equal(t, "p1", *share.OriginalPostID)
}

func TestService_Share_OfShareLinksToRoot(t *testing.T) {
	f := newFixture()
	f.seed("p1", "alice", nil, time.Now())

	first, err := f.service.Share(context.Background(), "carol", "p1")
	require.NoError(t, err)

	second, err := f.service.Share(context.Background(), "alice", first.ID)
	require.NoError(t, err)
	assert.Equal(t, "p1", *second.OriginalPostID)
	assert.Equal(t, "alice", *second.OriginalUserID)
}

/*
TestService_Share_DeleteLeavesOriginalAttachment verifies that the file
behind a post survives its shares: a share row never owns the attachment,
so deleting the share must not touch the root post's file.
*/
func TestService_Share_DeleteLeavesOriginalAttachment(t *testing.T) {
	f := newFixture()
	reference := "file-9"
	entity := f.seed("p1", "alice", nil, time.Now())
	entity.AttachmentRef = &reference
	f.files.uploads[reference] = []byte("jpeg-bytes")

	share, err := f.service.Share(context.Background(), "carol", "p1")
	require.NoError(t, err)
	assert.Nil(t, share.AttachmentRef)
	assert.Nil(t, share.AttachmentKind)

	// Deleting the share must not destroy the root post's file.
	require.NoError(t, f.service.Delete(context.Background(), "carol", share.ID))
	assert.NotContains(t, f.files.deleted, reference)
	assert.Contains(t, f.files.uploads, reference)

	// Deleting the original still removes it.
	require.NoError(t, f.service.Delete(context.Background(), "alice", "p1"))
	assert.Contains(t, f.files.deleted, reference)
}

// # Collections

/*
TestService_PostsByUser_FollowUnlocks replays the private-profile scenario:
a stranger is rejected until a follow edge exists.
*/
func TestService_PostsByUser_FollowUnlocks(t *testing.T) {
	f := newFixture()
	f.seed("p1", "bob", nil, time.Now())

	_, _, err := f.service.PostsByUser(context.Background(), "carol", "bob", 0, 20)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	f.graph.follows["carol->bob"] = true

	posts, total, err := f.service.PostsByUser(context.Background(), "carol", "bob", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, posts, 1)
}

/*
TestService_PostsByGroup replays the private-group scenario: a non-member
is rejected, while a member sees the same set the creator sees.
*/
func TestService_PostsByGroup(t *testing.T) {
	f := newFixture()
	groupID := "book-club"
	f.seed("p1", "bob", &groupID, time.Now().Add(-time.Hour))
	f.seed("p2", "carol", &groupID, time.Now())

	_, _, err := f.service.PostsByGroup(context.Background(), "alice", groupID, 0, 20)
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

	memberView, _, err := f.service.PostsByGroup(context.Background(), "carol", groupID, 0, 20)
	require.NoError(t, err)
	creatorView, _, err := f.service.PostsByGroup(context.Background(), "bob", groupID, 0, 20)
	require.NoError(t, err)
	assert.Equal(t, ids(creatorView), ids(memberView))
	assert.Equal(t, []string{"p2", "p1"}, ids(memberView))
}

// # Feed

func TestService_Feed_SourceSetAndOrder(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.seed("a1", "alice", nil, base.Add(1*time.Minute))
	f.seed("b1", "bob", nil, base.Add(2*time.Minute))
	f.seed("c1", "carol", nil, base.Add(3*time.Minute)) // not followed
	f.seed("b2", "bob", nil, base.Add(4*time.Minute))

	posts, total, err := f.service.Feed(context.Background(), "alice", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"b2", "b1", "a1"}, ids(posts))
}

func TestService_Feed_TiesBrokenByID(t *testing.T) {
	f := newFixture()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.seed("z", "alice", nil, at)
	f.seed("a", "alice", nil, at)
	f.seed("m", "alice", nil, at)

	posts, _, err := f.service.Feed(context.Background(), "alice", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "m", "z"}, ids(posts))
}

/*
TestService_Feed_PaginationExhaustive checks that concatenating all pages
in order reproduces the full ordered source set exactly once each.
*/
func TestService_Feed_PaginationExhaustive(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		f.seed(fmt.Sprintf("p%d", i), "alice", nil, base.Add(time.Duration(i)*time.Minute))
	}

	full, _, err := f.service.Feed(context.Background(), "alice", 0, 20)
	require.NoError(t, err)
	require.Len(t, full, 7)

	var concatenated []string
	for page := 0; ; page++ {
		posts, total, err := f.service.Feed(context.Background(), "alice", page, 3)
		require.NoError(t, err)
		assert.Equal(t, 7, total)
		if len(posts) == 0 {
			break
		}
		concatenated = append(concatenated, ids(posts)...)
	}

	assert.Equal(t, ids(full), concatenated)
}

/*
TestService_Feed_FilterAfterPageCut verifies that a followed author's
private-group post is excluded per item: the page shrinks instead of
pulling in the next post.
*/
func TestService_Feed_FilterAfterPageCut(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	groupID := "book-club"
	f.seed("open", "bob", nil, base.Add(1*time.Minute))
	f.seed("hidden", "bob", &groupID, base.Add(2*time.Minute))

	// alice follows bob but is not a book-club member.
	posts, total, err := f.service.Feed(context.Background(), "alice", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, []string{"open"}, ids(posts))
}

func TestService_Feed_PageBeyondEndIsEmpty(t *testing.T) {
	f := newFixture()
	f.seed("p1", "alice", nil, time.Now())

	posts, total, err := f.service.Feed(context.Background(), "alice", 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, posts)
}

// # Ranking

func TestService_PostsByEngagement(t *testing.T) {
	f := newFixture()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	low := f.seed("low", "alice", nil, base.Add(2*time.Minute))
	high := f.seed("high", "alice", nil, base.Add(1*time.Minute))
	mid := f.seed("mid", "carol", nil, base)
	high.LikeCount, high.CommentCount = 5, 3
	mid.LikeCount = 4
	low.LikeCount = 1

	posts, total, err := f.service.PostsByEngagement(context.Background(), "alice", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"high", "mid", "low"}, ids(posts))

	// Repeated calls with unchanged counts never flip the order.
	again, _, err := f.service.PostsByEngagement(context.Background(), "alice", 0, 20)
	require.NoError(t, err)
	assert.Equal(t, ids(posts), ids(again))
}

func TestService_PostsByEngagement_ExcludesInvisible(t *testing.T) {
	f := newFixture()
	popular := f.seed("p1", "bob", nil, time.Now())
	popular.LikeCount = 100

	// carol cannot see bob's post at all, ranked or not.
	posts, total, err := f.service.PostsByEngagement(context.Background(), "carol", 0, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
}

// # Scheduled Content

func TestService_PublishBirthdayPosts(t *testing.T) {
	f := newFixture()
	birthdays := &fakeBirthdays{users: []*user.User{
		{ID: "alice", Name: "Alice"},
		{ID: "bob", Name: "Bob"},
	}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := visibility.NewEngine(f.graph, f.graph, f.graph)
	service := post.NewService(f.repo, f.repo, engine, f.files, nil, birthdays, logger)

	created, err := service.PublishBirthdayPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Len(t, f.repo.posts, 2)
}

func ids(posts []*post.Post) []string {
	out := make([]string, 0, len(posts))
	for _, entity := range posts {
		out = append(out, entity.ID)
	}
	return out
}
