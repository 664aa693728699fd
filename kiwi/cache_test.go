package kiwi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCandidates() []Candidate {
	return []Candidate{
		{
			Probability: -12.5,
			Tokens: []Token{
				{Form: "안녕", Tag: "IC", Position: 0, Length: 2, PairedToken: -1, MorphemeID: 42},
				{Form: "하", Tag: "XSA", Position: 2, Length: 1, PairedToken: -1, MorphemeID: -1},
			},
		},
	}
}

func analyzeKey(text string, topN int32) cacheKey {
	return newCacheKey("analyze", text, topN, DefaultAnalyzeOptions(), constraintKey{}, constraintKey{})
}

func TestResultCache_NilIsDisabled(t *testing.T) {
	var cache *resultCache

	cache.put(analyzeKey("텍스트", 1), sampleCandidates())
	_, ok := cache.get(analyzeKey("텍스트", 1))
	assert.False(t, ok)
	assert.Equal(t, 0, cache.len())
	cache.purge()
}

func TestResultCache_HitReturnsEqualValue(t *testing.T) {
	cache := newResultCache(8)
	key := analyzeKey("아버지가 방에 들어가신다", 1)

	cache.put(key, sampleCandidates())
	got, ok := cache.get(key)
	require.True(t, ok)
	assert.Equal(t, sampleCandidates(), got)
}

func TestResultCache_ReturnedSlicesAreIsolated(t *testing.T) {
	cache := newResultCache(8)
	key := analyzeKey("텍스트", 1)

	stored := sampleCandidates()
	cache.put(key, stored)
	stored[0].Tokens[0].Form = "mutated after put"

	first, ok := cache.get(key)
	require.True(t, ok)
	first[0].Tokens[0].Form = "mutated after get"

	second, ok := cache.get(key)
	require.True(t, ok)
	assert.Equal(t, "안녕", second[0].Tokens[0].Form)
}

func TestResultCache_KeyDiscrimination(t *testing.T) {
	cache := newResultCache(32)
	base := analyzeKey("같은 텍스트", 1)
	cache.put(base, sampleCandidates())

	differing := []cacheKey{
		analyzeKey("다른 텍스트", 1),
		analyzeKey("같은 텍스트", 3),
		func() cacheKey { k := base; k.matchOptions = 0; return k }(),
		func() cacheKey { k := base; k.openEnding = true; return k }(),
		func() cacheKey { k := base; k.allowedDialects = 1; return k }(),
		func() cacheKey { k := base; k.dialectCost = 1.5; return k }(),
		func() cacheKey { k := base; k.blocklist = constraintKey{id: 7}; return k }(),
		func() cacheKey { k := base; k.pretokenized = constraintKey{id: 9}; return k }(),
		func() cacheKey { k := base; k.op = "tokenize"; return k }(),
	}
	for i, key := range differing {
		_, ok := cache.get(key)
		assert.False(t, ok, "key variant %d must miss", i)
	}

	_, ok := cache.get(base)
	assert.True(t, ok)
}

func constrainedKey(set *MorphemeSet, pt *Pretokenized) cacheKey {
	return newCacheKey("analyze", "텍스트", 1, DefaultAnalyzeOptions(), set.key(), pt.key())
}

func TestResultCache_ConstraintMutationMissesOldEntries(t *testing.T) {
	cache := newResultCache(8)
	set := &MorphemeSet{id: nextConstraintID()}

	cache.put(constrainedKey(set, nil), sampleCandidates())
	_, ok := cache.get(constrainedKey(set, nil))
	require.True(t, ok)

	// Add bumps the version after every successful native call.
	set.version++
	_, ok = cache.get(constrainedKey(set, nil))
	assert.False(t, ok, "entries recorded before the mutation must not be served")
}

func TestResultCache_PretokenizedMutationMissesOldEntries(t *testing.T) {
	cache := newResultCache(8)
	pt := &Pretokenized{id: nextConstraintID()}

	cache.put(constrainedKey(nil, pt), sampleCandidates())
	pt.version++
	_, ok := cache.get(constrainedKey(nil, pt))
	assert.False(t, ok)
}

func TestResultCache_ConstraintInstancesNeverAlias(t *testing.T) {
	// Two wrappers can end up with the same native handle value when the
	// allocator recycles it; their entries must stay apart.
	cache := newResultCache(8)
	first := &MorphemeSet{id: nextConstraintID(), handle: 0x1000}
	second := &MorphemeSet{id: nextConstraintID(), handle: 0x1000}

	cache.put(constrainedKey(first, nil), sampleCandidates())
	_, ok := cache.get(constrainedKey(second, nil))
	assert.False(t, ok)
	_, ok = cache.get(constrainedKey(first, nil))
	assert.True(t, ok)
}

func TestConstraintKey_NilMeansUnconstrained(t *testing.T) {
	var set *MorphemeSet
	var pt *Pretokenized
	assert.Equal(t, constraintKey{}, set.key())
	assert.Equal(t, constraintKey{}, pt.key())
}

func TestResultCache_PurgeDropsEverything(t *testing.T) {
	cache := newResultCache(8)
	for i := 0; i < 5; i++ {
		cache.put(analyzeKey(fmt.Sprintf("문장 %d", i), 1), sampleCandidates())
	}
	require.Equal(t, 5, cache.len())

	cache.purge()
	assert.Equal(t, 0, cache.len())
	_, ok := cache.get(analyzeKey("문장 0", 1))
	assert.False(t, ok)
}

func TestResultCache_BoundedEviction(t *testing.T) {
	cache := newResultCache(2)
	for i := 0; i < 10; i++ {
		cache.put(analyzeKey(fmt.Sprintf("문장 %d", i), 1), sampleCandidates())
	}
	assert.Equal(t, 2, cache.len())

	// The two most recent entries survive.
	_, ok := cache.get(analyzeKey("문장 9", 1))
	assert.True(t, ok)
	_, ok = cache.get(analyzeKey("문장 8", 1))
	assert.True(t, ok)
	_, ok = cache.get(analyzeKey("문장 0", 1))
	assert.False(t, ok)
}

func TestResultCache_ZeroSizeDisabled(t *testing.T) {
	assert.Nil(t, newResultCache(0))
	assert.Nil(t, newResultCache(-4))
}

func BenchmarkNewCacheKey(b *testing.B) {
	opts := DefaultAnalyzeOptions()
	for i := 0; i < b.N; i++ {
		benchmarkSink = newCacheKey("analyze", "아버지가 방에 들어가신다", 3, opts, constraintKey{}, constraintKey{})
	}
}
