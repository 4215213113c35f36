package table

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Recent remembers the latest outcomes by game id. Entries fall out when
// the cache is full or after ttl.
type Recent struct {
	cache *expirable.LRU[string, Outcome]
}

func NewRecent(size int, ttl time.Duration) *Recent {
	if size <= 0 {
		size = 128
	}
	return &Recent{cache: expirable.NewLRU[string, Outcome](size, nil, ttl)}
}

func (r *Recent) Add(o Outcome) {
	r.cache.Add(o.Game, o)
}

func (r *Recent) Get(game string) (Outcome, bool) {
	return r.cache.Get(game)
}

// Outcomes returns the cached outcomes, oldest first.
func (r *Recent) Outcomes() []Outcome {
	return r.cache.Values()
}

func (r *Recent) Len() int {
	return r.cache.Len()
}
