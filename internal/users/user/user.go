// Copyright (c) 2026 Socio. All rights reserved.

/*
Package user manages member accounts, identity resolution, and profile settings.

It is the authority for who a user is: their role (administrator or regular
member) and their privacy flag. Every content decision in the social layer
starts by resolving an identity here.

# Core Responsibility

  - Identity: Defines the [User] entity and the compact [Identity] projection.
  - Privacy: Owns the profile privacy toggle consumed by the visibility engine.
  - Administration: Admin account creation and bulk member imports.
*/
package user

import "time"

// # Domain Entities

// User represents a registered member of the Socio platform.
type User struct {
	ID            string     `json:"id"` // UUIDv7
	Email         string     `json:"email"`
	Name          string     `json:"name"`
	PasswordHash  string     `json:"-"` // Explicitly omitted from JSON for security.
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	IsAdmin       bool       `json:"is_admin"`
	IsPrivate     bool       `json:"is_private"`
	FollowerCount int        `json:"follower_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Identity is the role/privacy projection of a user that every downstream
// access decision consumes. It is resolved once per operation and treated as
// authoritative for that operation's duration.
type Identity struct {
	IsAdmin   bool
	IsPrivate bool
}

// Stats is the follower-count leaderboard projection.
type Stats struct {
	UserID           string    `json:"user_id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	FollowerCount    int       `json:"follower_count"`
	RegistrationDate time.Time `json:"registration_date"`
}

// # Field Identifiers

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldName        = "name"
	FieldDateOfBirth = "date_of_birth"
	FieldIsPrivate   = "is_private"
	FieldFile        = "file"
)
