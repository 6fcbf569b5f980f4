// Copyright (c) 2026 Socio. All rights reserved.

package post

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/storage"
	"github.com/socioapp/socio/internal/social/engagement"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/internal/users/user"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Service Layer

// Cache is the optional read cache for post projections and composed pages.
// A nil cache disables caching without changing behavior.
type Cache interface {
	GetPost(context context.Context, postID string) (*Post, bool)
	SetPost(context context.Context, post *Post)
	EvictPost(context context.Context, postID string)

	GetFeedPage(context context.Context, viewerID string, page, size int) ([]*Post, int, bool)
	SetFeedPage(context context.Context, viewerID string, page, size int, posts []*Post, total int)

	GetRankedPage(context context.Context, viewerID string, page, size int) ([]*Post, int, bool)
	SetRankedPage(context context.Context, viewerID string, page, size int, posts []*Post, total int)
}

// LikeChecker answers whether a viewer liked a post, used to rehydrate the
// viewer flag on cache hits.
type LikeChecker interface {
	IsLikedBy(context context.Context, postID, viewerID string) (bool, error)
}

// BirthdaySource lists the users whose birthday falls on a given day.
type BirthdaySource interface {
	ListByBirthday(context context.Context, month time.Month, day int) ([]*user.User, error)
}

// Service orchestrates post lifecycle, sharing, and feed composition.
type Service struct {
	repo      Repository
	likes     LikeChecker
	engine    *visibility.Engine
	files     storage.Store
	cache     Cache
	birthdays BirthdaySource
	logger    *slog.Logger
}

// NewService constructs a new post [Service].
func NewService(repo Repository, likes LikeChecker, engine *visibility.Engine, files storage.Store,
	cache Cache, birthdays BirthdaySource, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		likes:     likes,
		engine:    engine,
		files:     files,
		cache:     cache,
		birthdays: birthdays,
		logger:    logger,
	}
}

// CreateInput carries the fields for a new post.
type CreateInput struct {
	Content     string
	GroupID     *string
	Attachment  []byte
	ContentType string
}

// # Post Lifecycle

/*
Create publishes a new post, optionally scoped to a group and optionally
carrying one attachment.

Description: Group posts require current membership or creator status even
when the group is public; the admin role does not bypass this. The
attachment is uploaded before the row is written, so a failed insert leaves
only an orphaned file, never a post without its file.

Parameters:
  - context: context.Context
  - actorID: string (The author)
  - input: CreateInput

Returns:
  - *Post: The created post
  - error: apperr.NotFound on unknown group, apperr.Forbidden when not a
    member
*/
func (service *Service) Create(context context.Context, actorID string, input CreateInput) (*Post, error) {
	if input.GroupID != nil {
		decision, err := service.engine.CanPostInGroup(context, actorID, *input.GroupID)
		if err != nil {
			return nil, err
		}
		if !decision.Allowed {
			return nil, apperr.Forbidden("You must be a group member to post here")
		}
	}

	post := &Post{
		ID:      uuid.New(),
		UserID:  actorID,
		Content: input.Content,
		GroupID: input.GroupID,
	}

	if len(input.Attachment) > 0 {
		reference, err := service.files.Upload(context, input.Attachment, input.ContentType)
		if err != nil {
			return nil, err
		}
		kind := storage.KindFromContentType(input.ContentType)
		post.AttachmentRef = &reference
		post.AttachmentKind = &kind
	}

	if err := service.repo.Create(context, post); err != nil {
		return nil, err
	}

	service.logger.Info("post_created",
		slog.String("post_id", post.ID),
		slog.String("user_id", actorID))

	return post, nil
}

/*
Get retrieves a single post view model for the actor.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string

Returns:
  - *Post: View model with counts and the viewer's like flag
  - error: apperr.NotFound, apperr.Forbidden for denied visibility
*/
func (service *Service) Get(context context.Context, actorID, postID string) (*Post, error) {
	content, err := service.repo.ContentOf(context, postID)
	if err != nil {
		return nil, err
	}
	if err := service.gateContent(context, actorID, content); err != nil {
		return nil, err
	}

	if cached, found := service.cachedPost(context, postID); found {
		liked, err := service.likes.IsLikedBy(context, postID, actorID)
		if err != nil {
			return nil, err
		}
		cached.LikedByViewer = liked
		return cached, nil
	}

	post, err := service.repo.FindByID(context, postID, actorID)
	if err != nil {
		return nil, err
	}

	service.storePost(context, post)
	return post, nil
}

/*
Delete removes a post, its attachment, and its cached projection.

Description: Only the owner or an administrator may delete. The attachment
removal is best-effort; a stranded file never blocks the delete.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string

Returns:
  - error: apperr.NotFound, apperr.Forbidden when not owner or admin
*/
func (service *Service) Delete(context context.Context, actorID, postID string) error {
	post, err := service.repo.FindByID(context, postID, actorID)
	if err != nil {
		return err
	}

	decision, err := service.engine.CanDelete(context, actorID, post.UserID)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperr.Forbidden("Only the owner or an admin can delete this post")
	}

	if err := service.repo.Delete(context, postID); err != nil {
		return err
	}

	// Shares surface the root post's attachment but never own the file;
	// only deleting the original may remove it.
	if post.AttachmentRef != nil && !post.IsShared {
		if err := service.files.Delete(context, *post.AttachmentRef); err != nil {
			service.logger.Warn("attachment_delete_failed",
				slog.String("post_id", postID),
				slog.Any("error", err))
		}
	}

	if service.cache != nil {
		service.cache.EvictPost(context, postID)
	}

	service.logger.Info("post_deleted",
		slog.String("post_id", postID),
		slog.String("actor_id", actorID))

	return nil
}

// # Sharing

/*
Share republishes a post under the actor's name.

Description: The sharer must pass the read policy against the original
owner; owners can always share their own posts. Sharing a share links the
new post to the root original, so share chains never form. The share
carries the original's text only; the attachment stays with the root post
and views hydrate it from there.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string (The post being shared)

Returns:
  - *Post: The created share
  - error: apperr.NotFound, apperr.Forbidden for denied visibility
*/
func (service *Service) Share(context context.Context, actorID, postID string) (*Post, error) {
	original, err := service.repo.FindByID(context, postID, actorID)
	if err != nil {
		return nil, err
	}

	decision, err := service.engine.CanShare(context, actorID, original.UserID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperr.Forbidden("You do not have access to this post")
	}

	rootPostID, rootUserID := original.ID, original.UserID
	if original.IsShared && original.OriginalPostID != nil && original.OriginalUserID != nil {
		rootPostID, rootUserID = *original.OriginalPostID, *original.OriginalUserID
	}

	// The share row never owns the attachment; views hydrate it from the
	// root post, so the file stays bound to its original.
	share := &Post{
		ID:             uuid.New(),
		UserID:         actorID,
		Content:        original.Content,
		IsShared:       true,
		OriginalPostID: &rootPostID,
		OriginalUserID: &rootUserID,
	}
	if err := service.repo.Create(context, share); err != nil {
		return nil, err
	}

	service.logger.Info("post_shared",
		slog.String("post_id", share.ID),
		slog.String("original_post_id", rootPostID),
		slog.String("user_id", actorID))

	return share, nil
}

// # Collections

/*
PostsByUser returns a page of an author's posts visible to the actor.

Description: The whole collection is gated by the author's profile
visibility; a denied actor receives Forbidden rather than an empty page.

Parameters:
  - context: context.Context
  - actorID: string
  - userID: string (The author)
  - page, size: int

Returns:
  - []*Post: Ordered page, newest first
  - int: Total post count for the author
  - error: apperr.Forbidden for denied visibility
*/
func (service *Service) PostsByUser(context context.Context, actorID, userID string, page, size int) ([]*Post, int, error) {
	decision, err := service.engine.CanViewUser(context, actorID, userID)
	if err != nil {
		return nil, 0, err
	}
	if !decision.Allowed {
		return nil, 0, apperr.Forbidden("This profile is private")
	}

	return service.repo.ListByUser(context, userID, actorID, size, page*size)
}

/*
PostsByGroup returns a page of a group's posts visible to the actor.

Parameters:
  - context: context.Context
  - actorID: string
  - groupID: string
  - page, size: int

Returns:
  - []*Post: Ordered page, newest first
  - int: Total post count for the group
  - error: apperr.NotFound, apperr.Forbidden for denied visibility
*/
func (service *Service) PostsByGroup(context context.Context, actorID, groupID string, page, size int) ([]*Post, int, error) {
	decision, err := service.engine.CanViewGroup(context, actorID, groupID)
	if err != nil {
		return nil, 0, err
	}
	if !decision.Allowed {
		return nil, 0, apperr.Forbidden("This group is private")
	}

	return service.repo.ListByGroup(context, groupID, actorID, size, page*size)
}

/*
PostsByKind returns a page of attachment posts of one media kind, filtered
by per-item visibility.

Parameters:
  - context: context.Context
  - actorID: string
  - kind: storage.Kind
  - page, size: int

Returns:
  - []*Post: Visible subset of the page
  - int: Total matching count before filtering
  - error: Retrieval failures
*/
func (service *Service) PostsByKind(context context.Context, actorID string, kind storage.Kind, page, size int) ([]*Post, int, error) {
	posts, total, err := service.repo.ListByKind(context, kind, actorID, size, page*size)
	if err != nil {
		return nil, 0, err
	}

	visible, err := service.filterVisible(context, actorID, posts)
	if err != nil {
		return nil, 0, err
	}

	return visible, total, nil
}

// # Feed Composition

/*
Feed returns one page of the actor's feed.

Description: The source set is the actor's own posts plus posts by followed
authors, ordered newest first with id as tiebreak. The page is cut from the
source set before the per-item visibility filter runs, so pages are
non-overlapping and exhaustive over the source set even when filtering
shrinks them. Pages past the end are empty, not errors.

Parameters:
  - context: context.Context
  - actorID: string
  - page, size: int (0-indexed page)

Returns:
  - []*Post: Visible subset of the page
  - int: Total source set size
  - error: Retrieval failures
*/
func (service *Service) Feed(context context.Context, actorID string, page, size int) ([]*Post, int, error) {
	if service.cache != nil {
		if posts, total, found := service.cache.GetFeedPage(context, actorID, page, size); found {
			return posts, total, nil
		}
	}

	posts, total, err := service.repo.ListFeed(context, actorID, size, page*size)
	if err != nil {
		return nil, 0, err
	}

	visible, err := service.filterVisible(context, actorID, posts)
	if err != nil {
		return nil, 0, err
	}

	if service.cache != nil {
		service.cache.SetFeedPage(context, actorID, page, size, visible, total)
	}

	return visible, total, nil
}

/*
PostsByEngagement returns a page of posts ranked by total engagement.

Description: All posts are fetched with their counts and sorted in memory
by likes plus comments descending, ties broken by recency and then id. The
visibility filter runs before the page is cut, so the ranked pages cover
exactly the posts the actor may see.

Parameters:
  - context: context.Context
  - actorID: string
  - page, size: int (0-indexed page)

Returns:
  - []*Post: Ranked page
  - int: Total visible post count
  - error: Retrieval failures
*/
func (service *Service) PostsByEngagement(context context.Context, actorID string, page, size int) ([]*Post, int, error) {
	if service.cache != nil {
		if posts, total, found := service.cache.GetRankedPage(context, actorID, page, size); found {
			return posts, total, nil
		}
	}

	posts, err := service.repo.ListAllWithCounts(context, actorID)
	if err != nil {
		return nil, 0, err
	}

	visible, err := service.filterVisible(context, actorID, posts)
	if err != nil {
		return nil, 0, err
	}

	slices.SortFunc(visible, func(a, b *Post) int {
		return engagement.Compare(rankKey(a), rankKey(b))
	})

	total := len(visible)
	start := page * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	ranked := visible[start:end]

	if service.cache != nil {
		service.cache.SetRankedPage(context, actorID, page, size, ranked, total)
	}

	return ranked, total, nil
}

// # Scheduled Content

/*
PublishBirthdayPosts creates a celebratory post for every user whose
birthday is today. Intended to be invoked once a day by an external
scheduler; re-running it creates duplicate greetings, so scheduling owns
idempotency.

Parameters:
  - context: context.Context

Returns:
  - int: Number of posts created
  - error: Listing failures; per-user create failures are logged and skipped
*/
func (service *Service) PublishBirthdayPosts(context context.Context) (int, error) {
	now := time.Now().UTC()
	celebrants, err := service.birthdays.ListByBirthday(context, now.Month(), now.Day())
	if err != nil {
		return 0, err
	}

	created := 0
	for _, celebrant := range celebrants {
		post := &Post{
			ID:      uuid.New(),
			UserID:  celebrant.ID,
			Content: fmt.Sprintf("Happy birthday, %s!", celebrant.Name),
		}
		if err := service.repo.Create(context, post); err != nil {
			service.logger.Warn("birthday_post_failed",
				slog.String("user_id", celebrant.ID),
				slog.Any("error", err))
			continue
		}
		created++
	}

	service.logger.Info("birthday_posts_published", slog.Int("count", created))
	return created, nil
}

// # Helpers

// rankKey projects a post onto its engagement sort key.
func rankKey(p *Post) engagement.Key {
	return engagement.Key{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		Score:     p.LikeCount + p.CommentCount,
	}
}

// filterVisible keeps the posts the actor may see, preserving order.
func (service *Service) filterVisible(context context.Context, actorID string, posts []*Post) ([]*Post, error) {
	visible := make([]*Post, 0, len(posts))
	for _, post := range posts {
		decision, err := service.engine.CanViewContent(context, actorID, post.ContentRef())
		if err != nil {
			return nil, err
		}
		if decision.Allowed {
			visible = append(visible, post)
		}
	}
	return visible, nil
}

func (service *Service) gateContent(context context.Context, actorID string, content visibility.Content) error {
	decision, err := service.engine.CanViewContent(context, actorID, content)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperr.Forbidden("You do not have access to this post")
	}
	return nil
}

func (service *Service) cachedPost(context context.Context, postID string) (*Post, bool) {
	if service.cache == nil {
		return nil, false
	}
	return service.cache.GetPost(context, postID)
}

func (service *Service) storePost(context context.Context, post *Post) {
	if service.cache == nil {
		return
	}

	// The cached projection is viewer-independent; the like flag is
	// rehydrated per request.
	stripped := *post
	stripped.LikedByViewer = false
	service.cache.SetPost(context, &stripped)
}
