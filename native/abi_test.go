package native

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructWordsFlattenAnalyzeOption(t *testing.T) {
	option := AnalyzeOption{
		MatchOptions:    MatchAll,
		Blocklist:       MorphsetHandle(0xdead),
		OpenEnding:      1,
		AllowedDialects: 3,
		DialectCost:     1.5,
	}

	words := structWords(unsafe.Pointer(&option), unsafe.Sizeof(option))
	require.Len(t, words, 4)
	// The handle occupies the second 64-bit word on its own.
	assert.Equal(t, uintptr(0xdead), words[1])
}

func TestStructWordsFlattenGlobalConfig(t *testing.T) {
	cfg := DefaultGlobalConfig()
	words := structWords(unsafe.Pointer(&cfg), unsafe.Sizeof(cfg))
	assert.Len(t, words, 4)
}

// A platform veto narrows the capability set but must never be able to fail
// a load: every vetoed symbol has to be optional and covered by a capability
// group, so gated callers see a CapabilityError instead of a nil call.
func TestStructABIVetoStaysOptional(t *testing.T) {
	optional := map[string]bool{
		"kiwi_analyze_w":         true,
		"kiwi_analyze_m":         true,
		"kiwi_analyze_mw":        true,
		"kiwi_set_global_config": true,
		"kiwi_get_global_config": true,
		"kiwi_get_morpheme_info": true,
	}
	for _, symbol := range structABIVeto() {
		assert.True(t, optional[symbol], "vetoed symbol %s must be optional", symbol)

		gated := false
		for _, group := range capabilitySymbols {
			for _, name := range group {
				if name == symbol {
					gated = true
				}
			}
		}
		assert.True(t, gated, "vetoed symbol %s must belong to a capability group", symbol)
	}
}

func TestVetoedSymbolsDisableTheirCapability(t *testing.T) {
	absent := map[string]bool{
		"kiwi_get_global_config": true,
		"kiwi_get_morpheme_info": true,
	}
	set := newCapabilitySet(absent)

	assert.False(t, set.Has(CapGlobalConfig))
	assert.False(t, set.Has(CapMorphemeInfo))
	assert.Contains(t, set.MissingFor(CapGlobalConfig), "kiwi_get_global_config")
	assert.True(t, set.Has(CapBatch))
}
