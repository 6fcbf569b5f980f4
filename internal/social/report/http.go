// Copyright (c) 2026 Socio. All rights reserved.

package report

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/socioapp/socio/internal/platform/middleware"
	requestutil "github.com/socioapp/socio/internal/platform/request"
	"github.com/socioapp/socio/internal/platform/respond"
	"github.com/socioapp/socio/internal/platform/validate"
	"github.com/socioapp/socio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the moderation queue.
type Handler struct {
	service *Service
}

// NewHandler constructs a new report [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with moderation endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/{postID}", handler.report)

	// ## Administration
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Get("/", handler.queue)
		admin.Delete("/{id}", handler.resolve)
	})

	return router
}

/*
POST /api/v1/reports/{postID}.

Description: Flags a post for moderation.

Request:
  - reason: string

Response:
  - 201: Report: The recorded report
  - 403: Forbidden: Post not visible to the actor
  - 404: NotFound: Unknown post
  - 409: Conflict: Already reported by the actor
*/
func (handler *Handler) report(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldReason, body.Reason).MaxLen(FieldReason, body.Reason, 500)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Report(request.Context(), actorID, requestutil.Param(request, "postID"), body.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}

/*
GET /api/v1/reports.

Description: Lists the moderation queue, oldest first. Admin only.

Response:
  - 200: []Report: Paginated queue
*/
func (handler *Handler) queue(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	reports, total, err := handler.service.Queue(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
DELETE /api/v1/reports/{id}.

Description: Removes a resolved report. Admin only.

Response:
  - 204: No content
  - 404: NotFound: Unknown report
*/
func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.Resolve(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
