// Copyright (c) 2026 Socio. All rights reserved.

/*
Package report lets members flag posts for moderation. Reports are write
only for regular members; reading and resolving the queue is an
administrator concern.
*/
package report

import "time"

// Report is a member's complaint about a post.
type Report struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	ReporterID string    `json:"reporter_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// Field identifiers used in validation messages.
const (
	FieldReason = "reason"
)
