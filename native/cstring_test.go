package native

import (
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoString(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{name: "ascii", text: "kiwi"},
		{name: "hangul", text: "안녕하세요"},
		{name: "mixed with emoji", text: "kiwi 🥝 분석기"},
		{name: "empty", text: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := append([]byte(tc.text), 0)
			assert.Equal(t, tc.text, GoString(&buf[0]))
		})
	}
}

func TestGoString_NilPointer(t *testing.T) {
	assert.Equal(t, "", GoString(nil))
}

func TestGoUTF16String(t *testing.T) {
	testCases := []struct {
		name string
		text string
	}{
		{name: "hangul", text: "형태소 분석"},
		{name: "supplementary plane", text: "a𐍈b"},
		{name: "empty", text: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			units := append(utf16.Encode([]rune(tc.text)), 0)
			assert.Equal(t, tc.text, GoUTF16String(&units[0]))
		})
	}
}

func TestUTF16z(t *testing.T) {
	units, err := UTF16z("한글")
	require.NoError(t, err)
	require.Len(t, units, 3)
	assert.Equal(t, uint16(0), units[len(units)-1])
	assert.Equal(t, "한글", string(utf16.Decode(units[:len(units)-1])))
}

func TestUTF16z_RejectsInteriorNUL(t *testing.T) {
	_, err := UTF16z("a\x00b")
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestCStrings(t *testing.T) {
	values := []string{"하", "지", "kiwi"}
	pointers, err := CStrings("form", values)
	require.NoError(t, err)
	require.Len(t, pointers, len(values))
	for i, p := range pointers {
		assert.Equal(t, values[i], GoString(p))
	}
}

func TestCStrings_RejectsInteriorNUL(t *testing.T) {
	_, err := CStrings("form", []string{"ok", "bad\x00"})
	var argErr *ArgumentError
	require.ErrorAs(t, err, &argErr)
	assert.Contains(t, err.Error(), "form")
}

func TestCheckNoNUL(t *testing.T) {
	assert.NoError(t, CheckNoNUL("text", "clean"))
	assert.Error(t, CheckNoNUL("text", "dir\x00ty"))
}
