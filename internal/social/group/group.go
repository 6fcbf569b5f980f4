// Copyright (c) 2026 Socio. All rights reserved.

/*
Package group manages user groups and their memberships.

A group is created atomically with its creator as the first member; the
creator can never be removed while the group exists. Private groups gate
their content and member lists to members, the creator, and administrators.
*/
package group

import "time"

// Group is a named collection of members owned by its creator.
type Group struct {
	ID          string    `json:"id"`
	CreatorID   string    `json:"creator_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	IsPrivate   bool      `json:"is_private"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Member is a membership edge between a group and a user.
type Member struct {
	GroupID  string    `json:"group_id"`
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	JoinedAt time.Time `json:"joined_at"`
}

// Field identifiers used in validation messages.
const (
	FieldName = "name"
)
