package kiwi

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/kiwigo/native"
)

func TestPreAnalyzedPositions(t *testing.T) {
	form := "갔다"
	cases := []struct {
		name    string
		tokens  []PreAnalyzedToken
		want    []int32
		wantErr bool
	}{
		{
			name: "sentinel tokens stay unspanned",
			tokens: []PreAnalyzedToken{
				NewPreAnalyzedToken("가", "VV"),
				NewPreAnalyzedToken("았", "EP"),
			},
			want: nil,
		},
		{
			name: "zero-value tokens stay unspanned",
			tokens: []PreAnalyzedToken{
				{Form: "가", Tag: "VV"},
				{Form: "았", Tag: "EP"},
			},
			want: nil,
		},
		{
			name: "explicit spans flatten to begin-end pairs",
			tokens: []PreAnalyzedToken{
				NewPreAnalyzedToken("가", "VV").WithSpan(0, 1),
				NewPreAnalyzedToken("았", "EP").WithSpan(1, 2),
			},
			want: []int32{0, 1, 1, 2},
		},
		{
			name: "mixed explicit and zero-value spans fail loudly",
			tokens: []PreAnalyzedToken{
				NewPreAnalyzedToken("가", "VV").WithSpan(0, 1),
				{Form: "았", Tag: "EP"},
			},
			wantErr: true,
		},
		{
			name: "span beyond the form is rejected",
			tokens: []PreAnalyzedToken{
				NewPreAnalyzedToken("갔다", "VV").WithSpan(0, 3),
			},
			wantErr: true,
		},
		{
			name: "inverted span is rejected",
			tokens: []PreAnalyzedToken{
				NewPreAnalyzedToken("가", "VV").WithSpan(2, 1),
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := preAnalyzedPositions(form, tc.tokens)
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

func TestNewBuilderModelPathErrors(t *testing.T) {
	lib := &Library{}

	t.Run("missing directory", func(t *testing.T) {
		t.Setenv(EnvModelPath, filepath.Join(t.TempDir(), "no-such-model"))
		_, err := lib.NewBuilder(BuilderConfig{})
		var argErr *native.ArgumentError
		require.ErrorAs(t, err, &argErr)
	})

	t.Run("directory without model files", func(t *testing.T) {
		t.Setenv(EnvModelPath, t.TempDir())
		_, err := lib.NewBuilder(BuilderConfig{})
		var argErr *native.ArgumentError
		require.ErrorAs(t, err, &argErr)
		assert.Contains(t, argErr.Reason, "expected model files")
	})
}
