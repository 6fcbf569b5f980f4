// Copyright (c) 2026 Socio. All rights reserved.

package engagement

import (
	"context"
	"log/slog"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Service Layer

// ContentResolver locates the owner and group scope of a post so the
// policy engine can gate engagement against it.
type ContentResolver interface {
	ContentOf(context context.Context, postID string) (visibility.Content, error)
}

// Evictor drops cached post projections whose engagement counts went stale.
// A nil evictor disables eviction.
type Evictor interface {
	EvictPost(context context.Context, postID string)
}

// Service orchestrates like and comment use cases.
type Service struct {
	repo    Repository
	posts   ContentResolver
	engine  *visibility.Engine
	evictor Evictor
	logger  *slog.Logger
}

// NewService constructs a new engagement [Service].
func NewService(repo Repository, posts ContentResolver, engine *visibility.Engine, evictor Evictor, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		posts:   posts,
		engine:  engine,
		evictor: evictor,
		logger:  logger,
	}
}

// # Likes

/*
Like records that the actor liked a post.

Description: The actor must be able to view the post. A duplicate like
surfaces as a conflict via the unique constraint, so two concurrent likes
resolve to exactly one stored edge.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string

Returns:
  - *Like: The created edge
  - error: apperr.NotFound on unknown post, apperr.Forbidden for denied
    visibility, apperr.Conflict on duplicate
*/
func (service *Service) Like(context context.Context, actorID, postID string) (*Like, error) {
	if err := service.gate(context, actorID, postID); err != nil {
		return nil, err
	}

	like := &Like{
		ID:     uuid.New(),
		PostID: postID,
		UserID: actorID,
	}
	if err := service.repo.CreateLike(context, like); err != nil {
		return nil, err
	}

	service.evictPost(context, postID)
	service.logger.Info("post_liked",
		slog.String("post_id", postID),
		slog.String("user_id", actorID))

	return like, nil
}

/*
Unlike removes the actor's like from a post.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string

Returns:
  - error: apperr.NotFound if the like does not exist
*/
func (service *Service) Unlike(context context.Context, actorID, postID string) error {
	if err := service.repo.DeleteLike(context, postID, actorID); err != nil {
		return err
	}

	service.evictPost(context, postID)
	service.logger.Info("post_unliked",
		slog.String("post_id", postID),
		slog.String("user_id", actorID))

	return nil
}

// # Comments

/*
AddComment attaches a comment to a post.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string
  - content: string

Returns:
  - *Comment: The created comment
  - error: apperr.NotFound on unknown post, apperr.Forbidden for denied
    visibility
*/
func (service *Service) AddComment(context context.Context, actorID, postID, content string) (*Comment, error) {
	if err := service.gate(context, actorID, postID); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:      uuid.New(),
		PostID:  postID,
		UserID:  actorID,
		Content: content,
	}
	if err := service.repo.CreateComment(context, comment); err != nil {
		return nil, err
	}

	service.evictPost(context, postID)
	service.logger.Info("comment_created",
		slog.String("post_id", postID),
		slog.String("comment_id", comment.ID))

	return comment, nil
}

/*
DeleteComment removes a comment. Only its author may delete it.

Parameters:
  - context: context.Context
  - actorID: string
  - commentID: string

Returns:
  - error: apperr.NotFound if missing, apperr.Forbidden if the actor is not
    the author
*/
func (service *Service) DeleteComment(context context.Context, actorID, commentID string) error {
	comment, err := service.repo.FindCommentByID(context, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return apperr.Forbidden("Only the comment author can delete it")
	}

	if err := service.repo.DeleteComment(context, commentID); err != nil {
		return err
	}

	service.evictPost(context, comment.PostID)
	return nil
}

/*
Comments returns a page of a post's comments, newest first.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string
  - limit, offset: int

Returns:
  - []*Comment: Ordered page
  - int: Total comment count
  - error: apperr.Forbidden for denied visibility
*/
func (service *Service) Comments(context context.Context, actorID, postID string, limit, offset int) ([]*Comment, int, error) {
	if err := service.gate(context, actorID, postID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, postID, limit, offset)
}

// # Aggregation

/*
CountsFor returns a post's like and comment totals from one snapshot.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string

Returns:
  - Counts: Engagement totals
  - error: apperr.NotFound on unknown post, apperr.Forbidden for denied
    visibility
*/
func (service *Service) CountsFor(context context.Context, actorID, postID string) (Counts, error) {
	if err := service.gate(context, actorID, postID); err != nil {
		return Counts{}, err
	}
	return service.repo.Counts(context, postID)
}

// gate resolves the post's content reference and applies the read policy.
func (service *Service) gate(context context.Context, actorID, postID string) error {
	content, err := service.posts.ContentOf(context, postID)
	if err != nil {
		return err
	}

	decision, err := service.engine.CanViewContent(context, actorID, content)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		return apperr.Forbidden("You do not have access to this post")
	}

	return nil
}

func (service *Service) evictPost(context context.Context, postID string) {
	if service.evictor == nil {
		return
	}
	service.evictor.EvictPost(context, postID)
}
