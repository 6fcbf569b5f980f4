// Copyright (c) 2026 Socio. All rights reserved.

/*
Package auth implements registration and login for the Socio platform.

It verifies credentials against the user store and issues RS256-signed access
tokens whose claims carry the member's id, display name, and admin flag. The
rest of the system trusts those claims for the duration of a request; the
visibility engine re-resolves role and privacy from the store per operation.
*/
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/constants"
	"github.com/socioapp/socio/internal/platform/sec"
	"github.com/socioapp/socio/internal/users/user"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating security tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT string for the given user.
	GenerateAccessToken(userID, name string, isAdmin bool, timeToLive time.Duration) (string, error)
}

// Service implements user authentication use cases.
type Service struct {
	userRepository user.Repository
	tokenProvider  TokenProvider
	logger         *slog.Logger
}

// NewService constructs a new auth [Service].
func NewService(userRepo user.Repository, tokenProv TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		userRepository: userRepo,
		tokenProvider:  tokenProv,
		logger:         logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Email       string
	Password    string
	Name        string
	DateOfBirth *time.Time
}

// TokenResult is returned by both registration and login.
type TokenResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        *user.User `json:"user"`
}

/*
Register validates, hashes, and persists a brand new member account.

Description: New members are never administrators and start with a public
profile, matching the platform's default privacy posture.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *TokenResult: Access token plus created profile
  - error: Conflict (email registered) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*TokenResult, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	taken, err := service.userRepository.ExistsByEmail(context, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("Email is already registered")
	}

	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	member := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		DateOfBirth:  input.DateOfBirth,
	}

	if err := service.userRepository.Create(context, member); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", member.ID))

	return service.issueToken(member)
}

// # Login Flow

/*
Login verifies credentials and issues a fresh access token.

Parameters:
  - context: context.Context
  - email, password: string

Returns:
  - *TokenResult: Access token plus profile
  - error: apperr.Unauthorized on bad credentials
*/
func (service *Service) Login(context context.Context, email, password string) (*TokenResult, error) {
	member, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		// Deliberately indistinct from a bad password.
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(password, member.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	service.logger.Info("user_logged_in", slog.String("user_id", member.ID))

	return service.issueToken(member)
}

// issueToken signs an access token for the member.
func (service *Service) issueToken(member *user.User) (*TokenResult, error) {
	token, err := service.tokenProvider.GenerateAccessToken(member.ID, member.Name, member.IsAdmin, constants.AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenResult{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        member,
	}, nil
}
