// Copyright (c) 2026 Socio. All rights reserved.

package report_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/dberr"
	"github.com/socioapp/socio/internal/social/report"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/internal/users/user"
)

// fakeRepository is an in-memory report store enforcing the one-report-per-
// reporter constraint the same way the unique index does.
type fakeRepository struct {
	reports map[string]*report.Report
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{reports: make(map[string]*report.Report)}
}

func (f *fakeRepository) Create(_ context.Context, r *report.Report) error {
	for _, existing := range f.reports {
		if existing.PostID == r.PostID && existing.ReporterID == r.ReporterID {
			return dberr.ErrDuplicate
		}
	}
	f.reports[r.ID] = r
	return nil
}

func (f *fakeRepository) List(_ context.Context, _, _ int) ([]*report.Report, int, error) {
	var page []*report.Report
	for _, r := range f.reports {
		page = append(page, r)
	}
	return page, len(page), nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.reports[id]; !ok {
		return dberr.ErrNotFound
	}
	delete(f.reports, id)
	return nil
}

// fakePosts maps post ids to content references.
type fakePosts struct {
	content map[string]visibility.Content
}

func (f *fakePosts) ContentOf(_ context.Context, postID string) (visibility.Content, error) {
	content, ok := f.content[postID]
	if !ok {
		return visibility.Content{}, apperr.NotFound("Post not found")
	}
	return content, nil
}

// fakeIdentities marks "bob" as private; everyone else is public.
type fakeIdentities struct{}

func (fakeIdentities) Resolve(_ context.Context, userID string) (user.Identity, error) {
	return user.Identity{IsPrivate: userID == "bob"}, nil
}

type fakeFollows struct{}

func (fakeFollows) IsFollowing(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

type fakeGroups struct{}

func (fakeGroups) GroupMeta(_ context.Context, _ string) (visibility.GroupMeta, error) {
	return visibility.GroupMeta{}, apperr.NotFound("Group not found")
}

func (fakeGroups) IsMember(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func newTestService() (*report.Service, *fakeRepository) {
	repo := newFakeRepository()
	posts := &fakePosts{content: map[string]visibility.Content{
		"p1": {OwnerID: "alice"},
		"p2": {OwnerID: "bob"},
	}}
	engine := visibility.NewEngine(fakeIdentities{}, fakeFollows{}, fakeGroups{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return report.NewService(repo, posts, engine, logger), repo
}

func TestService_Report(t *testing.T) {
	service, repo := newTestService()

	flagged, err := service.Report(context.Background(), "carol", "p1", "Spam")
	require.NoError(t, err)
	assert.NotEmpty(t, flagged.ID)
	assert.Equal(t, "carol", flagged.ReporterID)
	assert.Len(t, repo.reports, 1)
}

/*
TestService_Report_Rejections covers the reporting failure taxonomy:
reporters can only flag posts they can see, and only once per post.
*/
func TestService_Report_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		actorID  string
		postID   string
		seed     bool
		wantCode string
	}{
		{"unknown_post", "carol", "p9", false, "NOT_FOUND"},
		{"invisible_post", "carol", "p2", false, "FORBIDDEN"},
		{"duplicate_report", "carol", "p1", true, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _ := newTestService()
			if tt.seed {
				_, err := service.Report(context.Background(), tt.actorID, tt.postID, "Spam")
				require.NoError(t, err)
			}

			_, err := service.Report(context.Background(), tt.actorID, tt.postID, "Spam")
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, tt.wantCode, ae.Code)
		})
	}
}

func TestService_Report_DifferentReportersAllowed(t *testing.T) {
	service, repo := newTestService()

	_, err := service.Report(context.Background(), "carol", "p1", "Spam")
	require.NoError(t, err)
	_, err = service.Report(context.Background(), "dave", "p1", "Harassment")
	require.NoError(t, err)

	assert.Len(t, repo.reports, 2)
}

func TestService_Resolve(t *testing.T) {
	service, repo := newTestService()

	flagged, err := service.Report(context.Background(), "carol", "p1", "Spam")
	require.NoError(t, err)

	require.NoError(t, service.Resolve(context.Background(), flagged.ID))
	assert.Empty(t, repo.reports)

	// A resolved report cannot be resolved twice.
	err = service.Resolve(context.Background(), flagged.ID)
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

func TestService_Queue(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Report(context.Background(), "carol", "p1", "Spam")
	require.NoError(t, err)

	queue, total, err := service.Queue(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, queue, 1)
	assert.Equal(t, "Spam", queue[0].Reason)
}
