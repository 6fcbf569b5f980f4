// Copyright (c) 2026 Socio. All rights reserved.

package post

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/middleware"
	requestutil "github.com/socioapp/socio/internal/platform/request"
	"github.com/socioapp/socio/internal/platform/respond"
	"github.com/socioapp/socio/internal/platform/storage"
	"github.com/socioapp/socio/internal/platform/validate"
	"github.com/socioapp/socio/pkg/pagination"
)

// maxAttachmentSize caps multipart uploads at 10 MiB.
const maxAttachmentSize = 10 << 20

// # Handler Implementation

// Handler implements the HTTP layer for posts and the feed.
type Handler struct {
	service *Service
}

// NewHandler constructs a new post [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with post endpoints.
// All of them need an actor for the visibility decision.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	// ## Lifecycle
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Delete("/{id}", handler.delete)
	router.Post("/{id}/share", handler.share)

	// ## Collections
	router.Get("/user/{userID}", handler.postsByUser)
	router.Get("/group/{groupID}", handler.postsByGroup)
	router.Get("/kind/{kind}", handler.postsByKind)

	// ## Composition
	router.Get("/feed", handler.feed)
	router.Get("/ranked", handler.ranked)

	return router
}

// # Lifecycle Endpoints

/*
POST /api/v1/posts.

Description: Publishes a post from a multipart form. The optional attachment
file is classified by its declared content type.

Request (multipart/form-data):
  - content: string
  - group_id: string (optional)
  - attachment: file (optional, max 10 MiB)

Response:
  - 201: Post: Created post
  - 403: Forbidden: Not a member of the target group
  - 404: NotFound: Unknown group
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := request.ParseMultipartForm(maxAttachmentSize); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Malformed multipart form"))
		return
	}

	input := CreateInput{Content: request.FormValue("content")}
	if groupID := request.FormValue("group_id"); groupID != "" {
		input.GroupID = &groupID
	}

	validator := &validate.Validator{}
	validator.Required(FieldContent, input.Content).MaxLen(FieldContent, input.Content, 5000)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	file, header, err := request.FormFile("attachment")
	if err == nil {
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize))
		if err != nil {
			respond.Error(writer, request, apperr.Internal(err))
			return
		}
		input.Attachment = data
		input.ContentType = header.Header.Get("Content-Type")
	}

	post, err := handler.service.Create(request.Context(), actorID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, post)
}

/*
GET /api/v1/posts/{id}.

Response:
  - 200: Post: View model with counts and the viewer's like flag
  - 403: Forbidden: Post not visible to the actor
  - 404: NotFound: Unknown post
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	post, err := handler.service.Get(request.Context(), actorID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, post)
}

/*
DELETE /api/v1/posts/{id}.

Response:
  - 204: No content
  - 403: Forbidden: Actor is neither owner nor admin
  - 404: NotFound: Unknown post
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), actorID, requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/posts/{id}/share.

Response:
  - 201: Post: The created share, linked to the root original
  - 403: Forbidden: Original not visible to the actor
  - 404: NotFound: Unknown post
*/
func (handler *Handler) share(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	share, err := handler.service.Share(request.Context(), actorID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, share)
}

// # Collection Endpoints

/*
GET /api/v1/posts/user/{userID}.

Response:
  - 200: []Post: Paginated author posts, newest first
  - 403: Forbidden: Private profile, actor not a follower
*/
func (handler *Handler) postsByUser(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.PostsByUser(request.Context(), actorID, requestutil.Param(request, "userID"),
		paginationParams.Page, paginationParams.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/posts/group/{groupID}.

Response:
  - 200: []Post: Paginated group posts, newest first
  - 403: Forbidden: Private group, actor not a member
  - 404: NotFound: Unknown group
*/
func (handler *Handler) postsByGroup(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.PostsByGroup(request.Context(), actorID, requestutil.Param(request, "groupID"),
		paginationParams.Page, paginationParams.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/posts/kind/{kind}.

Description: Lists attachment posts of one media kind (image, video, pdf,
audio, document), filtered by per-item visibility.

Response:
  - 200: []Post: Paginated posts
*/
func (handler *Handler) postsByKind(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.PostsByKind(request.Context(), actorID,
		storage.Kind(requestutil.Param(request, "kind")),
		paginationParams.Page, paginationParams.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Composition Endpoints

/*
GET /api/v1/posts/feed.

Response:
  - 200: []Post: One composed feed page for the authenticated member
*/
func (handler *Handler) feed(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.Feed(request.Context(), actorID,
		paginationParams.Page, paginationParams.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/posts/ranked.

Response:
  - 200: []Post: One engagement-ranked page of the posts visible to the actor
*/
func (handler *Handler) ranked(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	posts, total, err := handler.service.PostsByEngagement(request.Context(), actorID,
		paginationParams.Page, paginationParams.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, posts, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
