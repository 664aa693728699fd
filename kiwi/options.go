package kiwi

import (
	"fmt"
	"math"

	"github.com/steosofficial/kiwigo/native"
)

// AnalyzeOptions controls analyze and tokenize calls. The zero value is not
// useful; start from DefaultAnalyzeOptions.
type AnalyzeOptions struct {
	// TopN is the number of candidate analyses to return, at least 1.
	TopN int
	// MatchOptions is a native.Match* bit mask.
	MatchOptions int32
	// OpenEnding enables open-ended analysis mode.
	OpenEnding bool
	// AllowedDialects is a native.Dialect* bit mask.
	AllowedDialects int32
	// DialectCost penalizes dialectal analyses.
	DialectCost float32
}

// DefaultAnalyzeOptions returns the options convenience APIs use:
// one candidate, full matching with coda normalization, standard dialect.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		TopN:            1,
		MatchOptions:    native.MatchAllWithNormalizing,
		AllowedDialects: native.DialectStandard,
		DialectCost:     3.0,
	}
}

func (o AnalyzeOptions) validatedTopN() (int32, error) {
	if o.TopN < 1 {
		return 0, &native.ArgumentError{Reason: "TopN must be >= 1"}
	}
	if o.TopN > math.MaxInt32 {
		return 0, &native.ArgumentError{Reason: fmt.Sprintf("TopN must be <= %d", math.MaxInt32)}
	}
	return int32(o.TopN), nil
}

func (o AnalyzeOptions) raw(blocklist native.MorphsetHandle) native.AnalyzeOption {
	raw := native.AnalyzeOption{
		MatchOptions:    o.MatchOptions,
		Blocklist:       blocklist,
		AllowedDialects: o.AllowedDialects,
		DialectCost:     o.DialectCost,
	}
	if o.OpenEnding {
		raw.OpenEnding = 1
	}
	return raw
}

// BuilderConfig carries builder-time settings for constructing an engine.
type BuilderConfig struct {
	// ModelPath is the model root directory, e.g. ".../models/cong/base".
	// Empty falls back to the KIWI_MODEL_PATH environment variable and then
	// the platform default locations.
	ModelPath string
	// NumThreads is the worker thread count; -1 follows engine defaults.
	NumThreads int32
	// BuildOptions is a native.Build* bit mask.
	BuildOptions int32
	// EnabledDialects is a native.Dialect* bit mask.
	EnabledDialects int32
	// TypoCostThreshold is the cutoff applied when a typo model is attached.
	TypoCostThreshold float32
}

// DefaultBuilderConfig returns the default build settings.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		NumThreads:      -1,
		BuildOptions:    native.BuildDefault,
		EnabledDialects: native.DialectStandard,
	}
}

// Config is the top-level configuration consumed by New.
type Config struct {
	// LibraryPath locates the shared library. Empty falls back to the
	// KIWI_LIBRARY_PATH environment variable and then the platform default
	// candidates.
	LibraryPath string
	// Builder holds builder-time settings.
	Builder BuilderConfig
	// DefaultAnalyzeOptions are applied by the convenience analyze APIs.
	DefaultAnalyzeOptions AnalyzeOptions
	// UserWords are inserted before the engine is built.
	UserWords []UserWord
	// CacheSize bounds the analysis result cache; 0 disables caching.
	CacheSize int
}

// DefaultConfig returns a ready-to-use configuration.
func DefaultConfig() Config {
	return Config{
		Builder:               DefaultBuilderConfig(),
		DefaultAnalyzeOptions: DefaultAnalyzeOptions(),
	}
}
