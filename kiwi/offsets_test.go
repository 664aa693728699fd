package kiwi

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// The sample mixes one-byte ASCII, three-byte Hangul and a four-byte
// supplementary-plane rune (surrogate pair in UTF-16).
const offsetSample = "a한b😀c"

func TestByteToCharIndex(t *testing.T) {
	testCases := []struct {
		name      string
		byteIndex int
		want      int
	}{
		{name: "start", byteIndex: 0, want: 0},
		{name: "after ascii", byteIndex: 1, want: 1},
		{name: "inside hangul snaps back", byteIndex: 2, want: 1},
		{name: "after hangul", byteIndex: 4, want: 2},
		{name: "inside emoji snaps back", byteIndex: 7, want: 3},
		{name: "past the end clamps", byteIndex: 100, want: 5},
		{name: "negative clamps to zero", byteIndex: -3, want: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, byteToCharIndex(offsetSample, tc.byteIndex))
		})
	}
}

func TestCharToByteMapRoundTrip(t *testing.T) {
	m := buildCharToByteMap(offsetSample)
	assert.Len(t, m, utf8.RuneCountInString(offsetSample)+1)
	assert.Equal(t, len(offsetSample), m[len(m)-1])

	for char, byteOffset := range m[:len(m)-1] {
		assert.Equal(t, char, byteToCharIndex(offsetSample, byteOffset))
	}
}

func TestSliceCharRange(t *testing.T) {
	m := buildCharToByteMap(offsetSample)

	assert.Equal(t, "한b", sliceCharRange(offsetSample, m, 1, 3))
	assert.Equal(t, "😀", sliceCharRange(offsetSample, m, 3, 4))
	assert.Equal(t, offsetSample, sliceCharRange(offsetSample, m, 0, 5))
	assert.Equal(t, "", sliceCharRange(offsetSample, m, 2, 2))
	assert.Equal(t, "c", sliceCharRange(offsetSample, m, 4, 99), "end clamps")
	assert.Equal(t, "", sliceCharRange(offsetSample, m, 4, 1), "inverted range collapses")
	assert.Equal(t, "", sliceCharRange("", buildCharToByteMap(""), 0, 1))
}

func TestUTF16CharConversion(t *testing.T) {
	// UTF-16 layout: a=1 unit, 한=1, b=1, 😀=2, c=1.
	testCases := []struct {
		name string
		unit int
		char int
	}{
		{name: "start", unit: 0, char: 0},
		{name: "bmp runes count one unit", unit: 2, char: 2},
		{name: "before surrogate pair", unit: 3, char: 3},
		{name: "after surrogate pair", unit: 5, char: 4},
		{name: "end", unit: 6, char: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.char, utf16ToCharIndex(offsetSample, tc.unit))
			assert.Equal(t, tc.unit, charToUTF16Index(offsetSample, tc.char))
		})
	}
}

func TestUTF16ToCharIndex_LowSurrogateSnapsBack(t *testing.T) {
	// Unit 4 is the low half of the 😀 surrogate pair.
	assert.Equal(t, 3, utf16ToCharIndex(offsetSample, 4))
}

func TestUTF16ToCharIndex_Clamps(t *testing.T) {
	assert.Equal(t, 0, utf16ToCharIndex(offsetSample, -1))
	assert.Equal(t, 5, utf16ToCharIndex(offsetSample, 100))
	assert.Equal(t, 6, charToUTF16Index(offsetSample, 100))
}

func TestBuildUTF16ToCharMap(t *testing.T) {
	m := buildUTF16ToCharMap(offsetSample)
	assert.Equal(t, []int{0, 1, 2, 3, 3, 4, 5}, m)

	for unit := 0; unit < len(m)-1; unit++ {
		assert.Equal(t, utf16ToCharIndex(offsetSample, unit), m[unit], "unit %d", unit)
	}

	assert.Equal(t, []int{0}, buildUTF16ToCharMap(""))
}

// benchmarkSink keeps the compiler from eliding benchmarked calls.
var benchmarkSink interface{}

func benchmarkText() string {
	var b strings.Builder
	for i := 0; i < 64; i++ {
		b.WriteString("안녕하세요 Kiwi 형태소 분석기 😀 test. ")
	}
	return b.String()
}

func BenchmarkBuildCharToByteMap(b *testing.B) {
	text := benchmarkText()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchmarkSink = buildCharToByteMap(text)
	}
}

func BenchmarkBuildUTF16ToCharMap(b *testing.B) {
	text := benchmarkText()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchmarkSink = buildUTF16ToCharMap(text)
	}
}
