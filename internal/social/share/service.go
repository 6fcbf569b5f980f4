// Copyright (c) 2026 Socio. All rights reserved.

package share

import (
	"context"
	"log/slog"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/internal/users/user"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Service Layer

// ContentResolver locates the owner of a post for the share policy.
type ContentResolver interface {
	ContentOf(context context.Context, postID string) (visibility.Content, error)
}

// IdentityResolver verifies that the receiver is a real user.
type IdentityResolver interface {
	Resolve(context context.Context, userID string) (user.Identity, error)
}

// Service orchestrates direct share use cases.
type Service struct {
	repo   Repository
	posts  ContentResolver
	users  IdentityResolver
	engine *visibility.Engine
	logger *slog.Logger
}

// NewService constructs a new share [Service].
func NewService(repo Repository, posts ContentResolver, users IdentityResolver, engine *visibility.Engine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  posts,
		users:  users,
		engine: engine,
		logger: logger,
	}
}

/*
Send delivers a post to another member.

Description: The sender, not the receiver, must pass the share policy
against the post's owner; owners can always send their own posts. Sending
to yourself is rejected.

Parameters:
  - context: context.Context
  - actorID: string (The sender)
  - postID: string
  - receiverID: string

Returns:
  - *Share: The recorded delivery
  - error: apperr.ValidationError on self-share, apperr.NotFound on unknown
    post or receiver, apperr.Forbidden for denied visibility
*/
func (service *Service) Send(context context.Context, actorID, postID, receiverID string) (*Share, error) {
	if actorID == receiverID {
		return nil, apperr.ValidationError("Cannot share a post with yourself")
	}

	if _, err := service.users.Resolve(context, receiverID); err != nil {
		return nil, err
	}

	content, err := service.posts.ContentOf(context, postID)
	if err != nil {
		return nil, err
	}

	decision, err := service.engine.CanShare(context, actorID, content.OwnerID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperr.Forbidden("You do not have access to this post")
	}

	share := &Share{
		ID:         uuid.New(),
		PostID:     postID,
		SenderID:   actorID,
		ReceiverID: receiverID,
	}
	if err := service.repo.Create(context, share); err != nil {
		return nil, err
	}

	service.logger.Info("share_sent",
		slog.String("post_id", postID),
		slog.String("sender_id", actorID),
		slog.String("receiver_id", receiverID))

	return share, nil
}

/*
Inbox returns a page of shares delivered to the actor.

Parameters:
  - context: context.Context
  - actorID: string
  - limit, offset: int

Returns:
  - []*Share: Ordered page, newest first
  - int: Total delivered count
  - error: Retrieval failures
*/
func (service *Service) Inbox(context context.Context, actorID string, limit, offset int) ([]*Share, int, error) {
	return service.repo.ListByReceiver(context, actorID, limit, offset)
}

/*
SharesOfPost returns a page of a post's direct shares, gated by the post's
visibility.

Parameters:
  - context: context.Context
  - actorID: string
  - postID: string
  - limit, offset: int

Returns:
  - []*Share: Ordered page, newest first
  - int: Total share count
  - error: apperr.NotFound, apperr.Forbidden for denied visibility
*/
func (service *Service) SharesOfPost(context context.Context, actorID, postID string, limit, offset int) ([]*Share, int, error) {
	content, err := service.posts.ContentOf(context, postID)
	if err != nil {
		return nil, 0, err
	}

	decision, err := service.engine.CanViewContent(context, actorID, content)
	if err != nil {
		return nil, 0, err
	}
	if !decision.Allowed {
		return nil, 0, apperr.Forbidden("You do not have access to this post")
	}

	return service.repo.ListByPost(context, postID, limit, offset)
}
