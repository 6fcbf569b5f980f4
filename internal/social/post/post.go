// Copyright (c) 2026 Socio. All rights reserved.

/*
Package post implements posts, shares, and the feed composer.

A post is owned by a user, optionally scoped to a group, and optionally
carries one attachment stored outside the database. Shares are posts that
reference the root original post and its author.

The feed is the union of the actor's own posts and posts by followed
authors, newest first, ties broken by id. Visibility is re-checked per item
after the page is cut, so a follower can still be excluded from a followed
author's private-group post.
*/
package post

import (
	"time"

	"github.com/socioapp/socio/internal/platform/storage"
	"github.com/socioapp/socio/internal/social/visibility"
)

// Post is a user's post, share, or group post.
type Post struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	AuthorName string `json:"author_name"`
	Content    string `json:"content"`

	AttachmentRef  *string       `json:"attachment_ref,omitempty"`
	AttachmentKind *storage.Kind `json:"attachment_kind,omitempty"`

	GroupID *string `json:"group_id,omitempty"`

	// Share linkage always points at the root original, never at an
	// intermediate share.
	IsShared           bool    `json:"is_shared"`
	OriginalPostID     *string `json:"original_post_id,omitempty"`
	OriginalUserID     *string `json:"original_user_id,omitempty"`
	OriginalAuthorName *string `json:"original_author_name,omitempty"`

	LikeCount     int  `json:"like_count"`
	CommentCount  int  `json:"comment_count"`
	LikedByViewer bool `json:"liked_by_viewer"`

	CreatedAt time.Time `json:"created_at"`
}

// ContentRef returns the post's reference for visibility decisions.
func (p *Post) ContentRef() visibility.Content {
	return visibility.Content{OwnerID: p.UserID, GroupID: p.GroupID}
}

// Field identifiers used in validation messages.
const (
	FieldContent = "content"
)
