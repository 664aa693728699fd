package kiwi

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/kiwigo/native"
)

func TestDefaultAnalyzeOptions(t *testing.T) {
	opts := DefaultAnalyzeOptions()
	assert.Equal(t, 1, opts.TopN)
	assert.Equal(t, int32(native.MatchAllWithNormalizing), opts.MatchOptions)
	assert.False(t, opts.OpenEnding)
	assert.Equal(t, int32(native.DialectStandard), opts.AllowedDialects)
	assert.Equal(t, float32(3.0), opts.DialectCost)
}

func TestAnalyzeOptions_ValidatedTopN(t *testing.T) {
	testCases := []struct {
		name    string
		topN    int
		want    int32
		wantErr bool
	}{
		{name: "one", topN: 1, want: 1},
		{name: "many", topN: 50, want: 50},
		{name: "zero rejected", topN: 0, wantErr: true},
		{name: "negative rejected", topN: -3, wantErr: true},
		{name: "max int32 accepted", topN: math.MaxInt32, want: math.MaxInt32},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultAnalyzeOptions()
			opts.TopN = tc.topN

			got, err := opts.validatedTopN()
			if tc.wantErr {
				var argErr *native.ArgumentError
				require.ErrorAs(t, err, &argErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAnalyzeOptions_Raw(t *testing.T) {
	opts := AnalyzeOptions{
		TopN:            3,
		MatchOptions:    native.MatchAll,
		OpenEnding:      true,
		AllowedDialects: native.DialectJeju,
		DialectCost:     1.25,
	}

	raw := opts.raw(native.MorphsetHandle(7))
	assert.Equal(t, int32(native.MatchAll), raw.MatchOptions)
	assert.Equal(t, native.MorphsetHandle(7), raw.Blocklist)
	assert.Equal(t, int32(1), raw.OpenEnding)
	assert.Equal(t, int32(native.DialectJeju), raw.AllowedDialects)
	assert.Equal(t, float32(1.25), raw.DialectCost)

	raw = DefaultAnalyzeOptions().raw(0)
	assert.Equal(t, int32(0), raw.OpenEnding)
	assert.Equal(t, native.MorphsetHandle(0), raw.Blocklist)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int32(-1), cfg.Builder.NumThreads)
	assert.Equal(t, int32(native.BuildDefault), cfg.Builder.BuildOptions)
	assert.Equal(t, int32(native.DialectStandard), cfg.Builder.EnabledDialects)
	assert.Zero(t, cfg.Builder.TypoCostThreshold)
	assert.Equal(t, DefaultAnalyzeOptions(), cfg.DefaultAnalyzeOptions)
	assert.Zero(t, cfg.CacheSize)
}

func TestGlobalConfigRoundTrip(t *testing.T) {
	cfg := GlobalConfig{
		IntegrateAllomorph: true,
		CutOffThreshold:    5.5,
		UnkFormScoreScale:  3.0,
		UnkFormScoreBias:   2.0,
		SpacePenalty:       6.0,
		TypoCostWeight:     4.0,
		MaxUnkFormSize:     8,
		SpaceTolerance:     2,
	}
	assert.Equal(t, cfg, globalConfigFromRaw(cfg.raw()))

	cfg.IntegrateAllomorph = false
	assert.Equal(t, uint8(0), cfg.raw().IntegrateAllomorph)
}

func TestDefaultGlobalConfig(t *testing.T) {
	cfg := DefaultGlobalConfig()
	assert.True(t, cfg.IntegrateAllomorph)
	assert.Equal(t, float32(8.0), cfg.CutOffThreshold)
	assert.Equal(t, uint32(6), cfg.MaxUnkFormSize)
	assert.Equal(t, uint32(0), cfg.SpaceTolerance)
}

func TestPreAnalyzedTokenSpans(t *testing.T) {
	token := NewPreAnalyzedToken("갔", "VV")
	assert.Equal(t, -1, token.Begin)
	assert.Equal(t, -1, token.End)

	spanned := token.WithSpan(0, 1)
	assert.Equal(t, 0, spanned.Begin)
	assert.Equal(t, 1, spanned.End)
	// The original stays unspanned.
	assert.Equal(t, -1, token.Begin)
}
