package search

import (
	"cmp"
	"math/rand/v2"
	"reflect"

	"github.com/blevesearch/gtreap"
)

// Result is one ranked match.
type Result struct {
	Item      any    `json:"item"`
	Index     int    `json:"index"`
	Score     int64  `json:"score"`
	Formatted string `json:"formatted"`
}

// compareResults orders by score descending, then original index ascending.
// Indices are unique within a search, so the order is total.
func compareResults(a, b any) int {
	ra, rb := a.(*Result), b.(*Result)
	if c := cmp.Compare(rb.Score, ra.Score); c != 0 {
		return c
	}
	return cmp.Compare(ra.Index, rb.Index)
}

// collector accumulates results of one search in rank order.
type collector struct {
	treap  *gtreap.Treap
	policy DedupPolicy
	seen   map[any]*Result
	size   int
}

func newCollector(policy DedupPolicy) *collector {
	c := &collector{
		treap:  gtreap.NewTreap(compareResults),
		policy: policy,
	}
	if policy != DedupNone {
		c.seen = make(map[any]*Result)
	}
	return c
}

// insert adds r, applying the dedup policy to candidates equal to an
// earlier one. Candidates that cannot be compared are never duplicates.
func (c *collector) insert(r *Result) {
	if c.seen != nil {
		if key, ok := dedupKey(r.Item); ok {
			if prev, dup := c.seen[key]; dup {
				if c.policy == DedupFirst {
					return
				}
				c.treap = c.treap.Delete(prev)
				c.size--
			}
			c.seen[key] = r
		}
	}

	c.treap = c.treap.Upsert(r, rand.Int())
	c.size++
}

// drain returns the collected results in rank order.
func (c *collector) drain() []Result {
	out := make([]Result, 0, c.size)
	if c.size == 0 {
		return out
	}
	c.treap.VisitAscend(c.treap.Min(), func(i gtreap.Item) bool {
		out = append(out, *i.(*Result))
		return true
	})
	return out
}

func dedupKey(item any) (any, bool) {
	if item == nil {
		return nil, true
	}
	if !reflect.ValueOf(item).Comparable() {
		return nil, false
	}
	return item, true
}
