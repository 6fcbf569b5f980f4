// Copyright (c) 2026 Socio. All rights reserved.

package engagement_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/socioapp/socio/internal/social/engagement"
)

/*
TestCompare_TotalOrder verifies that the ranking comparator is a strict
total order: score descending, then recency, then id, with no pair left
unordered.
*/
func TestCompare_TotalOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Listed in expected rank order.
	keys := []engagement.Key{
		{ID: "d", CreatedAt: base, Score: 9},
		{ID: "a", CreatedAt: base.Add(time.Hour), Score: 5},
		{ID: "b", CreatedAt: base, Score: 5},
		{ID: "c", CreatedAt: base, Score: 5},
		{ID: "e", CreatedAt: base, Score: 0},
	}

	for i := range keys {
		for j := range keys {
			got := engagement.Compare(keys[i], keys[j])
			switch {
			case i < j:
				assert.Negative(t, got, "expected %s before %s", keys[i].ID, keys[j].ID)
			case i > j:
				assert.Positive(t, got, "expected %s after %s", keys[i].ID, keys[j].ID)
			default:
				assert.Zero(t, got)
			}
		}
	}
}

func TestCompare_Deterministic(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	shuffled := []engagement.Key{
		{ID: "c", CreatedAt: base, Score: 5},
		{ID: "a", CreatedAt: base.Add(time.Hour), Score: 5},
		{ID: "e", CreatedAt: base, Score: 0},
		{ID: "d", CreatedAt: base, Score: 9},
		{ID: "b", CreatedAt: base, Score: 5},
	}

	// Sorting from any starting permutation lands on the same order.
	first := slices.Clone(shuffled)
	slices.SortFunc(first, engagement.Compare)
	slices.Reverse(shuffled)
	slices.SortFunc(shuffled, engagement.Compare)

	assert.Equal(t, first, shuffled)
	assert.Equal(t, "d", first[0].ID)
	assert.Equal(t, "e", first[len(first)-1].ID)
}

func TestLess(t *testing.T) {
	now := time.Now()
	higher := engagement.Key{ID: "x", CreatedAt: now, Score: 3}
	lower := engagement.Key{ID: "y", CreatedAt: now, Score: 1}

	assert.True(t, engagement.Less(higher, lower))
	assert.False(t, engagement.Less(lower, higher))
	assert.False(t, engagement.Less(higher, higher))
}
