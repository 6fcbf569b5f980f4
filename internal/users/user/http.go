// Copyright (c) 2026 Socio. All rights reserved.

package user

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/socioapp/socio/internal/platform/middleware"
	requestutil "github.com/socioapp/socio/internal/platform/request"
	"github.com/socioapp/socio/internal/platform/respond"
	"github.com/socioapp/socio/internal/platform/validate"
	"github.com/socioapp/socio/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for member accounts.
type Handler struct {
	service *Service
}

// NewHandler constructs a new user [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with account endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Profiles
	router.Get("/{id}", handler.getUser)
	router.Get("/stats/followers", handler.listByFollowerCount)

	// ## Self Service (Auth Required)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Patch("/me", handler.updateProfile)
		authed.Put("/me/privacy", handler.setPrivacy)
	})

	// ## Administration
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Post("/admins", handler.createAdmin)
		admin.Post("/import", handler.bulkImport)
	})

	return router
}

// # Profile Endpoints

/*
GET /api/v1/users/{id}.

Description: Retrieves a member's public profile with follower count.

Response:
  - 200: User: Success
  - 404: ErrNotFound: Unknown user id
*/
func (handler *Handler) getUser(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.Param(request, "id")

	user, err := handler.service.GetUser(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PATCH /api/v1/users/me.

Description: Applies a partial profile update to the authenticated member.

Request:
  - name: string (optional)
  - date_of_birth: RFC 3339 timestamp (optional)

Response:
  - 200: User: Updated profile
  - 400: Validation: Malformed payload
*/
func (handler *Handler) updateProfile(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Name        *string `json:"name"`
		DateOfBirth *string `json:"date_of_birth"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := UpdateProfileInput{Name: body.Name}
	if body.DateOfBirth != nil {
		parsed, err := time.Parse(time.RFC3339, *body.DateOfBirth)
		if err != nil {
			respond.Error(writer, request, validate.ErrInvalidJSON)
			return
		}
		input.DateOfBirth = &parsed
	}

	user, err := handler.service.UpdateProfile(request.Context(), actorID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
PUT /api/v1/users/me/privacy.

Description: Switches the authenticated member's profile privacy flag.

Request:
  - is_private: bool

Response:
  - 200: User: Updated profile
*/
func (handler *Handler) setPrivacy(writer http.ResponseWriter, request *http.Request) {
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

	user, err := handler.service.SetPrivacy(request.Context(), actorID, body.IsPrivate)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

// # Administration Endpoints

/*
POST /api/v1/users/admins.

Description: Creates a new administrator account. Restricted to admins.

Request:
  - email: string (must end with the reserved admin domain)
  - password: string
  - name: string

Response:
  - 201: User: Created administrator
  - 403: Forbidden: Actor is not an administrator
  - 409: Conflict: Email already registered
*/
func (handler *Handler) createAdmin(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, body.Email).Email(FieldEmail, body.Email)
	validator.Required(FieldPassword, body.Password).MinLen(FieldPassword, body.Password, 8)
	validator.Required(FieldName, body.Name).MaxLen(FieldName, body.Name, 120)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	admin, err := handler.service.CreateAdmin(request.Context(), actorID, CreateAdminInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, admin)
}

/*
POST /api/v1/users/import.

Description: Bulk-enrolls members from a CSV body (email,password,name per
row, first row is a header). Rows fail independently; the response reports a
success count plus per-row failure reasons.

Response:
  - 200: ImportReport
  - 403: Forbidden: Actor is not an administrator
*/
func (handler *Handler) bulkImport(writer http.ResponseWriter, request *http.Request) {
	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.BulkImport(request.Context(), actorID, request.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// # Statistics Endpoints

/*
GET /api/v1/users/stats/followers.

Description: Retrieves a page of members ordered by follower count.

Request:
  - page, limit: int (query)

Response:
  - 200: []Stats: Paginated leaderboard
*/
func (handler *Handler) listByFollowerCount(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	stats, total, err := handler.service.ListByFollowerCount(request.Context(), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, stats, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}
