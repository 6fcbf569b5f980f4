// Copyright (c) 2026 Socio. All rights reserved.

/*
Package engagement aggregates likes and comments on posts.

Like edges carry mutation-coordinator semantics (duplicate like is a
conflict, unliking an absent edge is not found). Counts for a post are read
in a single statement so a caller never observes likes and comments from
different commit points.

# Ranking

Engagement ranking orders posts by total engagement (likes plus comments)
descending, ties broken by recency and then id, so the order is a total
order that never flips between calls with unchanged counts.
*/
package engagement

import (
	"time"
)

// Like is an edge marking that a user liked a post.
type Like struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a user's comment on a post.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	UserID     string    `json:"user_id"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// Counts is a snapshot of a post's engagement totals.
type Counts struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
}

// Field identifiers used in validation messages.
const (
	FieldContent = "content"
)

// # Ranking

// Key is the sortable engagement projection of a post.
type Key struct {
	ID        string
	CreatedAt time.Time
	Score     int
}

// Compare orders two keys: higher score first, then newer, then smaller id.
// The id tiebreak makes the order total, so equal-score equal-time posts
// still rank deterministically.
func Compare(a, b Key) int {
	if a.Score != b.Score {
		if a.Score > b.Score {
			return -1
		}
		return 1
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.After(b.CreatedAt) {
			return -1
		}
		return 1
	}
	switch {
	case a.ID < b.ID:
		return -1
	case a.ID > b.ID:
		return 1
	}
	return 0
}

// Less reports whether a ranks before b.
func Less(a, b Key) bool {
	return Compare(a, b) < 0
}
