// Copyright (c) 2026 Socio. All rights reserved.

package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/socioapp/socio/internal/platform/middleware"
	requestutil "github.com/socioapp/socio/internal/platform/request"
	"github.com/socioapp/socio/internal/platform/respond"
	"github.com/socioapp/socio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for follow edges.
type Handler struct {
	service *Service
}

// NewHandler constructs a new follow [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with follow endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Graph Pages
	router.Get("/followers/{userID}", handler.listFollowers)
	router.Get("/following/{userID}", handler.listFollowing)

	// ## Edge Mutations (Auth Required)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/{userID}", handler.follow)
		authed.Delete("/{userID}", handler.unfollow)
	})

	return router
}

// # Edge Endpoints

/*
POST /api/v1/follows/{userID}.

Description: The authenticated member starts following the target user.

Response:
  - 201: Follow: Created edge
  - 400: Validation: Self-follow
  - 404: NotFound: Unknown target
  - 409: Conflict: Already following
*/
func (handler *Handler) follow(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	edge, err := handler.service.Follow(request.Context(), actorID, requestutil.Param(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, edge)
}

/*
DELETE /api/v1/follows/{userID}.

Description: The authenticated member stops following the target user.

Response:
  - 204: No content
  - 404: NotFound: No such edge
*/
func (handler *Handler) unfollow(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unfollow(request.Context(), actorID, requestutil.Param(request, "userID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Graph Endpoints

/*
GET /api/v1/follows/followers/{userID}.

Description: Lists the users following the target, newest first.

Response:
  - 200: []User: Paginated followers
  - 404: NotFound: Unknown target
*/
func (handler *Handler) listFollowers(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	users, total, err := handler.service.Followers(request.Context(), requestutil.Param(request, "userID"),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/follows/following/{userID}.

Description: Lists the users the target follows, newest first.

Response:
  - 200: []User: Paginated following
  - 404: NotFound: Unknown target
*/
func (handler *Handler) listFollowing(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	users, total, err := handler.service.Following(request.Context(), requestutil.Param(request, "userID"),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, users, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
