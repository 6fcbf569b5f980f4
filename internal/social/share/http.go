// Copyright (c) 2026 Socio. All rights reserved.

package share

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/socioapp/socio/internal/platform/middleware"
	requestutil "github.com/socioapp/socio/internal/platform/request"
	"github.com/socioapp/socio/internal/platform/respond"
	"github.com/socioapp/socio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for direct shares.
type Handler struct {
	service *Service
}

// NewHandler constructs a new share [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with direct share endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/{postID}/to/{userID}", handler.send)
	router.Get("/inbox", handler.inbox)
	router.Get("/post/{postID}", handler.sharesOfPost)

	return router
}

/*
POST /api/v1/shares/{postID}/to/{userID}.

Description: Delivers a post to another member.

Response:
  - 201: Share: The recorded delivery
  - 400: Validation: Self-share
  - 403: Forbidden: Post not shareable by the actor
  - 404: NotFound: Unknown post or receiver
*/
func (handler *Handler) send(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	share, err := handler.service.Send(request.Context(), actorID,
		requestutil.Param(request, "postID"), requestutil.Param(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, share)
}

/*
GET /api/v1/shares/inbox.

Description: Lists the shares delivered to the authenticated member.

Response:
  - 200: []Share: Paginated deliveries, newest first
*/
func (handler *Handler) inbox(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	shares, total, err := handler.service.Inbox(request.Context(), actorID,
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, shares, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/shares/post/{postID}.

Description: Lists the direct shares of a post, gated by its visibility.

Response:
  - 200: []Share: Paginated shares, newest first
  - 403: Forbidden: Post not visible to the actor
  - 404: NotFound: Unknown post
*/
func (handler *Handler) sharesOfPost(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	shares, total, err := handler.service.SharesOfPost(request.Context(), actorID,
		requestutil.Param(request, "postID"), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, shares, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
