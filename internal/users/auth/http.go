// Copyright (c) 2026 Socio. All rights reserved.

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/socioapp/socio/internal/platform/request"
	"github.com/socioapp/socio/internal/platform/respond"
	"github.com/socioapp/socio/internal/platform/validate"
	"github.com/socioapp/socio/internal/users/user"
)

// # Handler Implementation

// Handler implements the HTTP layer for authentication.
type Handler struct {
	service *Service
}

// NewHandler constructs a new auth [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	return router
}

/*
POST /api/v1/auth/register.

Description: Enrolls a new member and returns an access token.

Request:
  - email, password, name: string
  - date_of_birth: RFC 3339 timestamp (optional)

Response:
  - 201: TokenResult
  - 409: Conflict: Email already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Email       string  `json:"email"`
		Password    string  `json:"password"`
		Name        string  `json:"name"`
		DateOfBirth *string `json:"date_of_birth"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(user.FieldEmail, body.Email).Email(user.FieldEmail, body.Email)
	validator.Required(user.FieldPassword, body.Password).MinLen(user.FieldPassword, body.Password, 8)
	validator.Required(user.FieldName, body.Name).MaxLen(user.FieldName, body.Name, 120)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	input := RegisterInput{
		Email:    body.Email,
		Password: body.Password,
		Name:     body.Name,
	}
	if body.DateOfBirth != nil {
		parsed, err := time.Parse(time.RFC3339, *body.DateOfBirth)
		if err != nil {
			respond.Error(writer, request, validate.ErrInvalidJSON)
			return
		}
		input.DateOfBirth = &parsed
	}

	result, err := handler.service.Register(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
POST /api/v1/auth/login.

Description: Verifies credentials and returns a fresh access token.

Request:
  - email, password: string

Response:
  - 200: TokenResult
  - 401: Unauthorized: Invalid credentials
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(user.FieldEmail, body.Email)
	validator.Required(user.FieldPassword, body.Password)
	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Login(request.Context(), body.Email, body.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
