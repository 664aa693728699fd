package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "load error with detail",
			err:  &LoadError{Path: "/opt/libkiwi.so", Detail: "no such file"},
			want: `kiwi: cannot load library "/opt/libkiwi.so": no such file`,
		},
		{
			name: "missing symbol",
			err:  &MissingSymbolError{Symbol: "kiwi_analyze"},
			want: `kiwi: required symbol "kiwi_analyze" not found in library`,
		},
		{
			name: "capability with missing symbols",
			err:  &CapabilityError{Capability: CapJoiner, Missing: []string{"kiwi_new_joiner"}},
			want: `kiwi: capability "joiner" not available (missing symbols: kiwi_new_joiner)`,
		},
		{
			name: "call error",
			err:  &CallError{Op: "kiwi_builder_build", Message: "model file corrupted"},
			want: "kiwi: kiwi_builder_build: model file corrupted",
		},
		{
			name: "argument error",
			err:  &ArgumentError{Reason: "TopN must be >= 1"},
			want: "kiwi: invalid argument: TopN must be >= 1",
		},
		{
			name: "state error",
			err:  &StateError{Handle: "builder"},
			want: "kiwi: builder handle is closed",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}
