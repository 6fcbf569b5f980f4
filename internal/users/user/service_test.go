// Copyright (c) 2026 Socio. All rights reserved.

package user_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/users/user"
)

// fakeRepository is an in-memory account store keyed by id and email.
type fakeRepository struct {
	byID    map[string]*user.User
	byEmail map[string]*user.User
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		byID:    make(map[string]*user.User),
		byEmail: make(map[string]*user.User),
	}
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepository) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeRepository) Create(_ context.Context, u *user.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return dberr.ErrDuplicate
	}
	clone := *u
	f.byID[u.ID] = &clone
	f.byEmail[u.Email] = &clone
	return nil
}

func (f *fakeRepository) Update(_ context.Context, u *user.User) error {
	stored, ok := f.byID[u.ID]
	if !ok {
		return dberr.ErrNotFound
	}
	*stored = *u
	return nil
}

func (f *fakeRepository) ListByFollowerCount(_ context.Context, _, _ int) ([]*user.Stats, int, error) {
	return nil, len(f.byID), nil
}

// fakeCache records profile evictions.
type fakeCache struct {
	evicted []string
}

func (f *fakeCache) Get(_ context.Context, _ string) (*user.User, bool) { return nil, false }
func (f *fakeCache) Set(_ context.Context, _ *user.User)               {}
func (f *fakeCache) Evict(_ context.Context, userID string) {
	f.evicted = append(f.evicted, userID)
}

func newTestService() (*user.Service, *fakeRepository, *fakeCache) {
	repo := newFakeRepository()
	cache := &fakeCache{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo.byID["root"] = &user.User{ID: "root", Email: "root@socio.com", Name: "Root", IsAdmin: true}
	repo.byEmail["root@socio.com"] = repo.byID["root"]
	repo.byID["alice"] = &user.User{ID: "alice", Email: "alice@example.com", Name: "Alice"}
	repo.byEmail["alice@example.com"] = repo.byID["alice"]

	return user.NewService(repo, cache, logger), repo, cache
}

func TestService_Resolve(t *testing.T) {
	service, _, _ := newTestService()

	identity, err := service.Resolve(context.Background(), "root")
	require.NoError(t, err)
	assert.True(t, identity.IsAdmin)

	_, err = service.Resolve(context.Background(), "ghost")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestService_UpdateProfile(t *testing.T) {
	service, repo, cache := newTestService()

	name := "Alice B"
	updated, err := service.UpdateProfile(context.Background(), "alice", user.UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "Alice B", repo.byID["alice"].Name)

	// Untouched fields survive a partial update.
	assert.Equal(t, "alice@example.com", updated.Email)
	assert.Contains(t, cache.evicted, "alice")
}

func TestService_SetPrivacy(t *testing.T) {
	service, repo, cache := newTestService()

	updated, err := service.SetPrivacy(context.Background(), "alice", true)
	require.NoError(t, err)
	assert.True(t, updated.IsPrivate)
	assert.True(t, repo.byID["alice"].IsPrivate)
	assert.Contains(t, cache.evicted, "alice")
}

func TestService_CreateAdmin(t *testing.T) {
	service, repo, _ := newTestService()

	admin, err := service.CreateAdmin(context.Background(), "root", user.CreateAdminInput{
		Email:    "mod@socio.com",
		Password: "s3cret-pass",
		Name:     "Moderator",
	})
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.NotEmpty(t, admin.ID)
	assert.NotEqual(t, "s3cret-pass", admin.PasswordHash)
	assert.Contains(t, repo.byEmail, "mod@socio.com")
}

/*
TestService_CreateAdmin_Rejections covers the enrollment rule set: only
admins may create admins, and admin emails must use the platform domain.
*/
func TestService_CreateAdmin_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		creatorID string
		email     string
		wantCode  string
	}{
		{"unknown_creator", "ghost", "mod@socio.com", "NOT_FOUND"},
		{"non_admin_creator", "alice", "mod@socio.com", "FORBIDDEN"},
		{"wrong_email_domain", "root", "mod@gmail.com", "VALIDATION_ERROR"},
		{"email_taken", "root", "root@socio.com", "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService()

			_, err := service.CreateAdmin(context.Background(), tt.creatorID, user.CreateAdminInput{
				Email:    tt.email,
				Password: "s3cret-pass",
				Name:     "Moderator",
			})
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

/*
TestService_BulkImport_PartialSuccess verifies that a run continues past bad
rows and reports each failure with its line number.
*/
func TestService_BulkImport_PartialSuccess(t *testing.T) {
	service, repo, _ := newTestService()

	csvBody := strings.Join([]string{
		"email,password,name",
		"bob@example.com,hunter2,Bob",
		"alice@example.com,hunter2,Alice Again", // duplicate email
		"carol@example.com,hunter2",             // missing name column
		",hunter2,Nameless",                     // empty email
		"dave@example.com,hunter2,Dave",
	}, "\n")

	report, err := service.BulkImport(context.Background(), "root", strings.NewReader(csvBody))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Imported)
	require.Len(t, report.Failures, 3)
	assert.Equal(t, 3, report.Failures[0].Line)
	assert.Equal(t, "alice@example.com", report.Failures[0].Email)
	assert.Equal(t, 4, report.Failures[1].Line)
	assert.Equal(t, 5, report.Failures[2].Line)

	assert.Contains(t, repo.byEmail, "bob@example.com")
	assert.Contains(t, repo.byEmail, "dave@example.com")
	assert.NotContains(t, repo.byEmail, "carol@example.com")
}

func TestService_BulkImport_AdminOnly(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.BulkImport(context.Background(), "alice", strings.NewReader("email,password,name\n"))
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)
}

func TestService_GetUser_CachesProfile(t *testing.T) {
	repo := newFakeRepository()
	repo.byID["alice"] = &user.User{ID: "alice", Email: "alice@example.com", Name: "Alice", CreatedAt: time.Now()}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// A nil cache must not change behavior.
	service := user.NewService(repo, nil, logger)

	fetched, err := service.GetUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", fetched.Name)
}
