package kiwi

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cacheKey identifies one analysis request. Constraints take part in the key
// by wrapper identity and mutation count: analyses under different
// blocklists or pre-tokenizations never alias each other, a native handle
// value recycled by the allocator cannot revive an older constraint's
// entries, and mutating a constraint stops matching entries recorded before
// the change.
type cacheKey struct {
	op              string
	text            string
	topN            int32
	matchOptions    int32
	openEnding      bool
	allowedDialects int32
	dialectCost     float32
	blocklist       constraintKey
	pretokenized    constraintKey
}

// constraintKey is the cache identity of one constraint wrapper: a
// process-unique id plus the number of mutations applied so far. The zero
// value stands for no constraint.
type constraintKey struct {
	id      uint64
	version uint64
}

var constraintIDs atomic.Uint64

func nextConstraintID() uint64 {
	return constraintIDs.Add(1)
}

func newCacheKey(op, text string, topN int32, opts AnalyzeOptions, blocklist, pretokenized constraintKey) cacheKey {
	return cacheKey{
		op:              op,
		text:            text,
		topN:            topN,
		matchOptions:    opts.MatchOptions,
		openEnding:      opts.OpenEnding,
		allowedDialects: opts.AllowedDialects,
		dialectCost:     opts.DialectCost,
		blocklist:       blocklist,
		pretokenized:    pretokenized,
	}
}

// resultCache is a bounded LRU over analysis results. A nil *resultCache is
// a valid disabled cache. Entries are deep-copied both ways so cached slices
// are never shared with callers.
type resultCache struct {
	entries *lru.Cache[cacheKey, []Candidate]
}

func newResultCache(size int) *resultCache {
	if size <= 0 {
		return nil
	}
	entries, err := lru.New[cacheKey, []Candidate](size)
	if err != nil {
		return nil
	}
	return &resultCache{entries: entries}
}

func (c *resultCache) get(key cacheKey) ([]Candidate, bool) {
	if c == nil {
		return nil, false
	}
	cached, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return copyCandidates(cached), true
}

func (c *resultCache) put(key cacheKey, candidates []Candidate) {
	if c == nil {
		return
	}
	c.entries.Add(key, copyCandidates(candidates))
}

func (c *resultCache) purge() {
	if c == nil {
		return
	}
	c.entries.Purge()
}

func (c *resultCache) len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}

func copyCandidates(candidates []Candidate) []Candidate {
	out := make([]Candidate, len(candidates))
	for i, candidate := range candidates {
		tokens := make([]Token, len(candidate.Tokens))
		copy(tokens, candidate.Tokens)
		out[i] = Candidate{Probability: candidate.Probability, Tokens: tokens}
	}
	return out
}
