// Copyright (c) 2026 Socio. All rights reserved.

/*
Package share implements direct shares: a member sends a post to another
member's inbox. The sender must pass the same policy as a public reshare,
so a private post never travels further than its owner allows.
*/
package share

import "time"

// Share is a directed delivery of a post from a sender to a receiver.
type Share struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	CreatedAt  time.Time `json:"created_at"`
}
