// Copyright (c) 2026 Socio. All rights reserved.

/*
Package follow manages the directed follow edges of the social graph.

A follow is a two-state relationship: either the edge exists or it does not.
The database unique constraint is the arbiter under concurrency, so two
simultaneous follow attempts resolve to exactly one stored edge and one
conflict.
*/
package follow

import "time"

// Follow is a directed edge from a follower to a followee.
type Follow struct {
	ID         string    `json:"id"`
	FollowerID string    `json:"follower_id"`
	FolloweeID string    `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}
