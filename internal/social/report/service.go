// Copyright (c) 2026 Socio. All rights reserved.

package report

import (
	"context"
	"log/slog"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/social/visibility"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Service Layer

// ContentResolver locates the owner and group scope of a post so reporting
// is limited to posts the reporter can actually see.
type ContentResolver interface {
	ContentOf(context context.Context, postID string) (visibility.Content, error)
}

// Service orchestrates the moderation queue.
type Service struct {
	repo   Repository
	posts  ContentResolver
	engine *visibility.Engine
	logger *slog.Logger
}

// NewService constructs a new report [Service].
func NewService(repo Repository, posts ContentResolver, engine *visibility.Engine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		posts:  posts,
		engine: engine,
		logger: logger,
	}
}

/*
Report flags a post for moderation.

Parameters:
  - context: context.Context
  - actorID: string (The reporter)
  - postID: string
  - reason: string

Returns:
  - *Report: The recorded report
  - error: apperr.NotFound on unknown post, apperr.Forbidden for denied
    visibility, apperr.Conflict if the actor already reported the post
*/
func (service *Service) Report(context context.Context, actorID, postID, reason string) (*Report, error) {
	content, err := service.posts.ContentOf(context, postID)
	if err != nil {
		return nil, err
	}

	decision, err := service.engine.CanViewContent(context, actorID, content)
	if err != nil {
		return nil, err
	}
	if !decision.Allowed {
		return nil, apperr.Forbidden("You do not have access to this post")
	}

	report := &Report{
		ID:         uuid.New(),
		PostID:     postID,
		ReporterID: actorID,
		Reason:     reason,
	}
	if err := service.repo.Create(context, report); err != nil {
		return nil, err
	}

	service.logger.Info("post_reported",
		slog.String("post_id", postID),
		slog.String("reporter_id", actorID))

	return report, nil
}

/*
Queue returns a page of open reports, oldest first.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Report: Ordered page
  - int: Total report count
  - error: Retrieval failures
*/
func (service *Service) Queue(context context.Context, limit, offset int) ([]*Report, int, error) {
	return service.repo.List(context, limit, offset)
}

/*
Resolve removes a report from the queue.

Parameters:
  - context: context.Context
  - reportID: string

Returns:
  - error: apperr.NotFound if missing
*/
func (service *Service) Resolve(context context.Context, reportID string) error {
	if err := service.repo.Delete(context, reportID); err != nil {
		return err
	}

	service.logger.Info("report_resolved", slog.String("report_id", reportID))
	return nil
}
