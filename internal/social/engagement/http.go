// Copyright (c) 2026 Socio. All rights reserved.

package engagement

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

// Handler implements the HTTP layer for likes and comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new engagement [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with engagement endpoints.
// All of them need an actor for the visibility decision.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// ## Likes
	router.Post("/{postID}/likes", handler.like)
	router.Delete("/{postID}/likes", handler.unlike)

	// ## Comments
	router.Post("/{postID}/comments", handler.addComment)
	router.Get("/{postID}/comments", handler.listComments)
	router.Delete("/comments/{commentID}", handler.deleteComment)

	// ## Aggregation
	router.Get("/{postID}/counts", handler.counts)

	return router
}

// # Like Endpoints

/*
POST /api/v1/engagement/{postID}/likes.

Response:
  - 201: Like: Created edge
  - 403: Forbidden: Post not visible to the actor
  - 404: NotFound: Unknown post
  - 409: Conflict: Already liked
*/
func (handler *Handler) like(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	like, err := handler.service.Like(request.Context(), actorID, requestutil.Param(request, "postID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, like)
}

/*
DELETE /api/v1/engagement/{postID}/likes.

Response:
  - 204: No content
  - 404: NotFound: No such like
*/
func (handler *Handler) unlike(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Unlike(request.Context(), actorID, requestutil.Param(request, "postID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Comment Endpoints

/*
POST /api/v1/engagement/{postID}/comments.

Request:
  - content: string

Response:
  - 201: Comment: Created comment
  - 403: Forbidden: Post not visible to the actor
  - 404: NotFound: Unknown post
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, body.Content).MaxLen(FieldContent, body.Content, 2000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(), actorID, requestutil.Param(request, "postID"), body.Content)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
GET /api/v1/engagement/{postID}/comments.

Response:
  - 200: []Comment: Paginated comments, newest first
  - 403: Forbidden: Post not visible to the actor
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.Comments(request.Context(), actorID, requestutil.Param(request, "postID"),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
DELETE /api/v1/engagement/comments/{commentID}.

Response:
  - 204: No content
  - 403: Forbidden: Actor is not the author
  - 404: NotFound: Unknown comment
*/
func (handler *Handler) deleteComment(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteComment(request.Context(), actorID, requestutil.Param(request, "commentID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Aggregation Endpoints

/*
GET /api/v1/engagement/{postID}/counts.

Response:
  - 200: Counts: Like and comment totals from one snapshot
  - 403: Forbidden: Post not visible to the actor
  - 404: NotFound: Unknown post
*/
func (handler *Handler) counts(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	counts, err := handler.service.CountsFor(request.Context(), actorID, requestutil.Param(request, "postID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, counts)
}
