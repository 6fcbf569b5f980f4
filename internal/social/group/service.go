// Copyright (c) 2026 Socio. All rights reserved.

package group

import (
	"context"
	"log/slog"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/pkg/slug"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Service Layer

// Service orchestrates group lifecycle and membership use cases.
type Service struct {
	repo   Repository
	engine *visibility.Engine
	logger *slog.Logger
}

// NewService constructs a new group [Service].
func NewService(repo Repository, engine *visibility.Engine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// CreateInput carries the fields for a new group.
type CreateInput struct {
	Name      string
	IsPrivate bool
}

// # Group Lifecycle

/*
Create registers a new group with the actor as creator and first member.

Description: The group row and the creator's membership are written in one
transaction, so a group can never exist without its creator as member.

Parameters:
  - context: context.Context
  - actorID: string (Becomes the creator)
  - input: CreateInput

Returns:
  - *Group: The created group
  - error: apperr.Conflict if a group with the same slug exists
*/
func (service *Service) Create(context context.Context, actorID string, input CreateInput) (*Group, error) {
	group := &Group{
		ID:        uuid.New(),
		CreatorID: actorID,
		Name:      input.Name,
		Slug:      slug.From(input.Name),
		IsPrivate: input.IsPrivate,
	}
	if err := service.repo.CreateWithCreator(context, group); err != nil {
		return nil, err
	}

	group.MemberCount = 1
	service.logger.Info("group_created",
		slog.String("group_id", group.ID),
		slog.String("creator_id", actorID))

	return group, nil
}

/*
Get retrieves a group's detail for the actor.

Description: Private groups are only returned to members, the creator, and
administrators.

Parameters:
  - context: context.Context
  - actorID: string
  - groupID: string

Returns:
  - *Group: Hydrated entity with member count
  - error: apperr.NotFound, apperr.Forbidden for denied access
*/
func (service *Service) Get(context context.Context, actorID, groupID string) (*Group, error) {
	decision, err := service.engine.CanViewGroup(context, actorID, groupID)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperr.Forbidden("You do not have access to this group")
	}

	return service.repo.FindByID(context, groupID)
}

/*
TogglePrivacy switches the group's privacy flag.

Parameters:
  - context: context.Context
  - actorID: string (Must be the creator)
  - groupID: string
  - isPrivate: bool

Returns:
  - *Group: Updated group
  - error: apperr.Forbidden if the actor is not the creator
*/
func (service *Service) TogglePrivacy(context context.Context, actorID, groupID string, isPrivate bool) (*Group, error) {
	meta, err := service.repo.GroupMeta(context, groupID)
	if err != nil {
		return nil, err
	}
	if meta.CreatorID != actorID {
		return nil, apperr.Forbidden("Only the group creator can change privacy")
	}

	if err := service.repo.UpdatePrivacy(context, groupID, isPrivate); err != nil {
		return nil, err
	}

	return service.repo.FindByID(context, groupID)
}

// # Membership

/*
AddMember enrolls a user into the group.

Parameters:
  - context: context.Context
  - actorID: string (Must be the creator)
  - groupID: string
  - userID: string

Returns:
  - *Member: The created membership
  - error: apperr.Forbidden if the actor is not the creator,
    apperr.NotFound on unknown group or user, apperr.Conflict if already
    a member
*/
func (service *Service) AddMember(context context.Context, actorID, groupID, userID string) (*Member, error) {
	meta, err := service.repo.GroupMeta(context, groupID)
	if err != nil {
		return nil, err
	}
	if meta.CreatorID != actorID {
		return nil, apperr.Forbidden("Only the group creator can add members")
	}

	member := &Member{GroupID: groupID, UserID: userID}
	if err := service.repo.AddMember(context, member); err != nil {
		return nil, err
	}

	service.logger.Info("group_member_added",
		slog.String("group_id", groupID),
		slog.String("user_id", userID))

	return member, nil
}

/*
RemoveMember withdraws a user from the group.

Description: The creator can remove anyone but themselves; any member can
remove themselves. The creator check precedes the existence check, so
removing the creator reports Forbidden even when other checks would fail.

Parameters:
  - context: context.Context
  - actorID: string
  - groupID: string
  - userID: string

Returns:
  - error: apperr.Forbidden for a creator removal or an unauthorized actor,
    apperr.NotFound if the membership does not exist
*/
func (service *Service) RemoveMember(context context.Context, actorID, groupID, userID string) error {
	meta, err := service.repo.GroupMeta(context, groupID)
	if err != nil {
		return err
	}

	if userID == meta.CreatorID {
		return apperr.Forbidden("The group creator cannot be removed")
	}
	if actorID != meta.CreatorID && actorID != userID {
		return apperr.Forbidden("Only the group creator can remove other members")
	}

	if err := service.repo.RemoveMember(context, groupID, userID); err != nil {
		return err
	}

	service.logger.Info("group_member_removed",
		slog.String("group_id", groupID),
		slog.String("user_id", userID))

	return nil
}

/*
Members returns a page of the group's members.

Parameters:
  - context: context.Context
  - actorID: string
  - groupID: string
  - limit, offset: int

Returns:
  - []*Member: Page ordered by earliest joiner first
  - int: Total member count
  - error: apperr.Forbidden for denied access
*/
func (service *Service) Members(context context.Context, actorID, groupID string, limit, offset int) ([]*Member, int, error) {
	decision, err := service.engine.CanViewGroup(context, actorID, groupID)
	if err != nil {
		return nil, 0, err
	}
	if !decision.Allowed {
		return nil, 0, apperr.Forbidden("You do not have access to this group")
	}

	return service.repo.ListMembers(context, groupID, limit, offset)
}

/*
GroupsOfUser returns a page of groups the user belongs to.

Parameters:
  - context: context.Context
  - userID: string
  - limit, offset: int

Returns:
  - []*Group: Page ordered by newest membership first
  - int: Total group count
  - error: Retrieval failures
*/
func (service *Service) GroupsOfUser(context context.Context, userID string, limit, offset int) ([]*Group, int, error) {
	return service.repo.ListByMember(context, userID, limit, offset)
}
