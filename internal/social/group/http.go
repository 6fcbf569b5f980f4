// Copyright (c) 2026 Socio. All rights reserved.

package group

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

// Handler implements the HTTP layer for groups.
type Handler struct {
	service *Service
}

// NewHandler constructs a new group [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with group endpoints.
// Every endpoint requires authentication because visibility decisions
// need an actor.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}/privacy", handler.togglePrivacy)
	router.Get("/user/{userID}", handler.groupsOfUser)

	// ## Membership
	router.Get("/{id}/members", handler.listMembers)
	router.Post("/{id}/members/{userID}", handler.addMember)
	router.Delete("/{id}/members/{userID}", handler.removeMember)

	return router
}

// # Lifecycle Endpoints

/*
POST /api/v1/groups.

Description: Creates a group with the authenticated member as creator and
first member.

Request:
  - name: string
  - is_private: bool

Response:
  - 201: Group: Created group
  - 409: Conflict: A group with the same name exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Name      string `json:"name"`
		IsPrivate bool   `json:"is_private"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, body.Name).MaxLen(FieldName, body.Name, 120)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.Create(request.Context(), actorID, CreateInput{
		Name:      body.Name,
		IsPrivate: body.IsPrivate,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, group)
}

/*
GET /api/v1/groups/{id}.

Description: Retrieves a group's detail. Private groups require membership,
creator status, or the admin role.

Response:
  - 200: Group
  - 403: Forbidden: Private group, actor not a member
  - 404: NotFound: Unknown group
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.Get(request.Context(), actorID, requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
PUT /api/v1/groups/{id}/privacy.

Description: Switches the group's privacy flag. Creator only.

Request:
  - is_private: bool

Response:
  - 200: Group: Updated group
  - 403: Forbidden: Actor is not the creator
*/
func (handler *Handler) togglePrivacy(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		IsPrivate bool `json:"is_private"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	group, err := handler.service.TogglePrivacy(request.Context(), actorID, requestutil.Param(request, "id"), body.IsPrivate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, group)
}

/*
GET /api/v1/groups/user/{userID}.

Description: Lists the groups a user belongs to.

Response:
  - 200: []Group: Paginated memberships
*/
func (handler *Handler) groupsOfUser(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	groups, total, err := handler.service.GroupsOfUser(request.Context(), requestutil.Param(request, "userID"),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, groups, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Membership Endpoints

/*
GET /api/v1/groups/{id}/members.

Description: Lists the group's members, earliest joiner first. Private
groups gate the list like any other group content.

Response:
  - 200: []Member: Paginated members
  - 403: Forbidden: Private group, actor not a member
*/
func (handler *Handler) listMembers(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	members, total, err := handler.service.Members(request.Context(), actorID, requestutil.Param(request, "id"),
		paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, members, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/groups/{id}/members/{userID}.

Description: Enrolls a user into the group. Creator only.

Response:
  - 201: Member: Created membership
  - 403: Forbidden: Actor is not the creator
  - 404: NotFound: Unknown group or user
  - 409: Conflict: Already a member
*/
func (handler *Handler) addMember(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	member, err := handler.service.AddMember(request.Context(), actorID,
		requestutil.Param(request, "id"), requestutil.Param(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, member)
}

/*
DELETE /api/v1/groups/{id}/members/{userID}.

Description: Withdraws a member. The creator can remove anyone but
themselves; members can remove themselves.

Response:
  - 204: No content
  - 403: Forbidden: Creator removal, or actor not authorized
  - 404: NotFound: No such membership
*/
func (handler *Handler) removeMember(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	err = handler.service.RemoveMember(request.Context(), actorID,
		requestutil.Param(request, "id"), requestutil.Param(request, "userID"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
