// Copyright (c) 2026 Socio. All rights reserved.

package follow

import (
	"context"
	"log/slog"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/users/user"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Service Layer

// IdentityResolver verifies that a follow endpoint refers to a real user.
type IdentityResolver interface {
	Resolve(context context.Context, userID string) (user.Identity, error)
}

// ProfileEvictor drops cached profiles whose follower count went stale.
// A nil evictor disables eviction.
type ProfileEvictor interface {
	Evict(context context.Context, userID string)
}

// Service orchestrates follow and unfollow use cases.
type Service struct {
	repo    Repository
	users   IdentityResolver
	evictor ProfileEvictor
	logger  *slog.Logger
}

// NewService constructs a new follow [Service].
func NewService(repo Repository, users IdentityResolver, evictor ProfileEvictor, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		users:   users,
		evictor: evictor,
		logger:  logger,
	}
}

// # Edge Mutations

/*
Follow creates a follow edge from the actor to the followee.

Description: Self-follows are rejected before touching storage. The followee
must exist; a duplicate edge surfaces as a conflict via the unique constraint,
so concurrent attempts resolve to one winner.

Parameters:
  - context: context.Context
  - actorID: string (The follower)
  - followeeID: string

Returns:
  - *Follow: The created edge
  - error: apperr.ValidationError on self-follow, apperr.NotFound on unknown
    followee, apperr.Conflict on duplicate
*/
func (service *Service) Follow(context context.Context, actorID, followeeID string) (*Follow, error) {
	if actorID == followeeID {
		return nil, apperr.ValidationError("Cannot follow yourself")
	}

	if _, err := service.users.Resolve(context, followeeID); err != nil {
		return nil, err
	}

	edge := &Follow{
		ID:         uuid.New(),
		FollowerID: actorID,
		FolloweeID: followeeID,
	}
	if err := service.repo.Create(context, edge); err != nil {
		return nil, err
	}

	service.evictProfile(context, followeeID)
	service.logger.Info("follow_created",
		slog.String("follower_id", actorID),
		slog.String("followee_id", followeeID))

	return edge, nil
}

/*
Unfollow removes the follow edge from the actor to the followee.

Parameters:
  - context: context.Context
  - actorID: string
  - followeeID: string

Returns:
  - error: apperr.NotFound if the edge does not exist
*/
func (service *Service) Unfollow(context context.Context, actorID, followeeID string) error {
	if err := service.repo.Delete(context, actorID, followeeID); err != nil {
		return err
	}

	service.evictProfile(context, followeeID)
	service.logger.Info("follow_removed",
		slog.String("follower_id", actorID),
		slog.String("followee_id", followeeID))

	return nil
}

// # Graph Queries

// IsFollowing reports whether followerID currently follows followeeID.
func (service *Service) IsFollowing(context context.Context, followerID, followeeID string) (bool, error) {
	return service.repo.Exists(context, followerID, followeeID)
}

/*
Followers returns a page of users following userID.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*user.User: Ordered page, newest follower first
  - int: Total follower count
  - error: Retrieval failures
*/
func (service *Service) Followers(context context.Context, userID string, limit, offset int) ([]*user.User, int, error) {
	if _, err := service.users.Resolve(context, userID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListFollowers(context, userID, limit, offset)
}

/*
Following returns a page of users that userID follows.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*user.User: Ordered page, newest edge first
  - int: Total following count
  - error: Retrieval failures
*/
func (service *Service) Following(context context.Context, userID string, limit, offset int) ([]*user.User, int, error) {
	if _, err := service.users.Resolve(context, userID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListFollowing(context, userID, limit, offset)
}

func (service *Service) evictProfile(context context.Context, userID string) {
	if service.evictor == nil {
		return
	}
	service.evictor.Evict(context, userID)
}
