// Copyright (c) 2026 Socio. All rights reserved.

package user

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/socioapp/socio/internal/platform/apperr"
	"github.com/socioapp/socio/internal/platform/constants"
	"github.com/socioapp/socio/internal/platform/sec"
	"github.com/socioapp/socio/pkg/uuid"
)

// # Service Layer

// ProfileCache is the optional read cache for user profiles, keyed by user id.
// A nil cache disables caching without changing behavior.
type ProfileCache interface {
	Get(context context.Context, userID string) (*User, bool)
	Set(context context.Context, user *User)
	Evict(context context.Context, userID string)
}

// Service orchestrates account, identity, and administration use cases.
type Service struct {
	repo   Repository
	cache  ProfileCache
	logger *slog.Logger
}

// NewService constructs a new user [Service].
func NewService(repo Repository, cache ProfileCache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// # Identity Resolution

/*
Resolve returns the role and privacy projection for a user id.

Description: Pure lookup with no side effects. Downstream access decisions
treat the result as authoritative for the duration of one operation.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - Identity: Role and privacy flags
  - error: apperr.NotFound if the user id is unknown
*/
func (service *Service) Resolve(context context.Context, userID string) (Identity, error) {
	if cached, found := service.cachedProfile(context, userID); found {
		return Identity{IsAdmin: cached.IsAdmin, IsPrivate: cached.IsPrivate}, nil
	}

	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return Identity{}, err
	}

	return Identity{IsAdmin: user.IsAdmin, IsPrivate: user.IsPrivate}, nil
}

// # Profile Management

/*
GetUser retrieves a user's public profile, including follower count.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *User: Hydrated profile
  - error: apperr.NotFound if missing
*/
func (service *Service) GetUser(context context.Context, userID string) (*User, error) {
	if cached, found := service.cachedProfile(context, userID); found {
		return cached, nil
	}

	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if service.cache != nil {
		service.cache.Set(context, user)
	}

	return user, nil
}

// UpdateProfileInput defines the mutable subset of profile fields.
type UpdateProfileInput struct {
	Name        *string
	DateOfBirth *time.Time
}

/*
UpdateProfile applies a partial set of changes to a user's profile.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateProfileInput

Returns:
  - *User: The updated profile
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*User, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}

	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.evictProfile(context, userID)
	service.logger.Info("user_profile_updated", slog.String("user_id", userID))

	return user, nil
}

/*
SetPrivacy switches the profile privacy flag for a user.

Description: A private profile hides the user's posts from everyone except
themselves, their followers, and administrators.

Parameters:
  - context: context.Context
  - userID: string
  - isPrivate: bool

Returns:
  - *User: The updated profile
  - error: apperr.NotFound or persistence failures
*/
func (service *Service) SetPrivacy(context context.Context, userID string, isPrivate bool) (*User, error) {
	user, err := service.repo.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	user.IsPrivate = isPrivate
	if err := service.repo.Update(context, user); err != nil {
		return nil, err
	}

	service.evictProfile(context, userID)
	service.logger.Info("user_privacy_changed",
		slog.String("user_id", userID),
		slog.Bool("is_private", isPrivate),
	)

	return user, nil
}

// # Administration

// CreateAdminInput holds the data required to enroll a new administrator.
type CreateAdminInput struct {
	Email    string
	Password string
	Name     string
}

/*
CreateAdmin enrolls a new administrator account.

Description: Only an existing administrator may create another one, and admin
emails must belong to the reserved platform domain.

Parameters:
  - context: context.Context
  - creatorID: string (The acting administrator)
  - input: CreateAdminInput

Returns:
  - *User: Created administrator
  - error: Forbidden (creator not admin), Validation (email domain),
    Conflict (email taken)
*/
func (service *Service) CreateAdmin(context context.Context, creatorID string, input CreateAdminInput) (*User, error) {
	creator, err := service.repo.FindByID(context, creatorID)
	if err != nil {
		return nil, err
	}
	if !creator.IsAdmin {
		return nil, apperr.Forbidden("Only administrators can create other administrators")
	}

	if !strings.HasSuffix(input.Email, constants.AdminEmailDomain) {
		return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
			Field:   FieldEmail,
			Message: fmt.Sprintf("Administrator email must end with %s", constants.AdminEmailDomain),
		})
	}

	taken, err := service.repo.ExistsByEmail(context, input.Email)
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

	admin := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	}

	if err := service.repo.Create(context, admin); err != nil {
		return nil, err
	}

	service.logger.Info("admin_created",
		slog.String("admin_id", admin.ID),
		slog.String("created_by", creatorID),
	)

	return admin, nil
}

// # Bulk Import

// ImportFailure records one rejected row of a bulk import.
type ImportFailure struct {
	Line   int    `json:"line"`
	Email  string `json:"email,omitempty"`
	Reason string `json:"reason"`
}

// ImportReport summarizes a completed bulk import run.
type ImportReport struct {
	Imported int             `json:"imported"`
	Failures []ImportFailure `json:"failures,omitempty"`
}

/*
BulkImport enrolls members from a CSV stream (email,password,name per row).

Description: Partial-success semantics. Each row is attempted independently:
rows with missing columns, duplicate emails, or persistence failures are
recorded as failures and the run continues. The first row is treated as a
header and skipped.

Parameters:
  - context: context.Context
  - actorID: string (Must be an administrator)
  - reader: io.Reader (CSV content)

Returns:
  - *ImportReport: Success count plus per-row failure reasons
  - error: Forbidden (actor not admin) or unreadable input
*/
func (service *Service) BulkImport(context context.Context, actorID string, reader io.Reader) (*ImportReport, error) {
	actor, err := service.repo.FindByID(context, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin {
		return nil, apperr.Forbidden("Only administrators can import users")
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1 // rows are validated individually

	report := &ImportReport{}
	line := 0

	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			report.Failures = append(report.Failures, ImportFailure{Line: line, Reason: "Malformed CSV row"})
			continue
		}

		// Header row
		if line == 1 {
			continue
		}

		failure := service.importRow(context, line, record, report)
		if failure != nil {
			report.Failures = append(report.Failures, *failure)
		}
	}

	service.logger.Info("bulk_import_finished",
		slog.String("actor_id", actorID),
		slog.Int("imported", report.Imported),
		slog.Int("failed", len(report.Failures)),
	)

	return report, nil
}

// importRow attempts to enroll a single CSV row. It returns a failure record
// or nil on success.
func (service *Service) importRow(context context.Context, line int, record []string, report *ImportReport) *ImportFailure {
	if len(record) < 3 {
		return &ImportFailure{Line: line, Reason: "Expected at least 3 columns (email,password,name)"}
	}

	email := strings.TrimSpace(record[0])
	password := record[1]
	name := strings.TrimSpace(record[2])

	if email == "" || password == "" || name == "" {
		return &ImportFailure{Line: line, Email: email, Reason: "Empty email, password, or name"}
	}

	exists, err := service.repo.ExistsByEmail(context, email)
	if err != nil {
		return &ImportFailure{Line: line, Email: email, Reason: "Lookup failed"}
	}
	if exists {
		return &ImportFailure{Line: line, Email: email, Reason: "Email already registered"}
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return &ImportFailure{Line: line, Email: email, Reason: "Password hashing failed"}
	}

	member := &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
	}

	if err := service.repo.Create(context, member); err != nil {
		return &ImportFailure{Line: line, Email: email, Reason: "Persistence failed"}
	}

	report.Imported++
	return nil
}

// # Statistics

/*
ListByFollowerCount returns a page of member statistics ordered by follower
count descending.

Parameters:
  - context: context.Context
  - limit, offset: int

Returns:
  - []*Stats: Ordered page
  - int: Total member count
  - error: Retrieval failures
*/
func (service *Service) ListByFollowerCount(context context.Context, limit, offset int) ([]*Stats, int, error) {
	return service.repo.ListByFollowerCount(context, limit, offset)
}

// # Cache Helpers

func (service *Service) cachedProfile(context context.Context, userID string) (*User, bool) {
	if service.cache == nil {
		return nil, false
	}
	return service.cache.Get(context, userID)
}

func (service *Service) evictProfile(context context.Context, userID string) {
	if service.cache != nil {
		service.cache.Evict(context, userID)
	}
}
