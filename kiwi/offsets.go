package kiwi

import (
	"unicode/utf8"
)

// The engine reports positions in its own text units while this package
// exposes character (rune) indices. The helpers below translate between
// byte offsets, UTF-16 code-unit offsets and rune indices. Out-of-range
// offsets clamp to the text boundaries instead of failing; a truncated
// native position must never panic a caller.

// byteToCharIndex converts a byte offset into a rune index. Offsets inside
// a multi-byte rune snap back to the rune's start; offsets past the end
// yield the rune count.
func byteToCharIndex(text string, byteIndex int) int {
	if byteIndex >= len(text) {
		return utf8.RuneCountInString(text)
	}
	if byteIndex < 0 {
		return 0
	}
	boundary := byteIndex
	for boundary > 0 && !utf8.RuneStart(text[boundary]) {
		boundary--
	}
	return utf8.RuneCountInString(text[:boundary])
}

// buildCharToByteMap returns, for each rune index, the byte offset where
// that rune starts, with one trailing entry holding len(text). Built once
// per input in linear time so repeated slicing stays O(1).
func buildCharToByteMap(text string) []int {
	m := make([]int, 0, utf8.RuneCountInString(text)+1)
	for index := range text {
		m = append(m, index)
	}
	return append(m, len(text))
}

// sliceCharRange slices text by rune indices using a prebuilt map,
// clamping both ends to the text boundaries.
func sliceCharRange(text string, m []int, begin, end int) string {
	max := len(m) - 1
	if max < 0 {
		return ""
	}
	if begin < 0 {
		begin = 0
	}
	if begin > max {
		begin = max
	}
	if end < 0 {
		end = 0
	}
	if end > max {
		end = max
	}
	if end < begin {
		end = begin
	}
	return text[m[begin]:m[end]]
}

// buildUTF16ToCharMap returns, for each UTF-16 code-unit offset, the rune
// index it falls in, with one trailing entry holding the rune count. Both
// halves of a surrogate pair map to the pair's rune.
func buildUTF16ToCharMap(text string) []int {
	m := make([]int, 0, len(text)+1)
	chars := 0
	for _, r := range text {
		m = append(m, chars)
		if r > 0xFFFF {
			m = append(m, chars)
		}
		chars++
	}
	return append(m, chars)
}

// utf16ToCharIndex converts a UTF-16 code-unit offset into a rune index.
// Offsets landing on the low half of a surrogate pair snap back to the
// pair's start; offsets past the end yield the rune count.
func utf16ToCharIndex(text string, unitIndex int) int {
	if unitIndex <= 0 {
		return 0
	}
	units := 0
	chars := 0
	for _, r := range text {
		width := 1
		if r > 0xFFFF {
			width = 2
		}
		if units+width > unitIndex {
			return chars
		}
		units += width
		chars++
	}
	return chars
}

// charToUTF16Index converts a rune index into a UTF-16 code-unit offset,
// clamping past-the-end indices to the total unit count.
func charToUTF16Index(text string, charIndex int) int {
	if charIndex <= 0 {
		return 0
	}
	units := 0
	chars := 0
	for _, r := range text {
		if chars >= charIndex {
			return units
		}
		if r > 0xFFFF {
			units += 2
		} else {
			units++
		}
		chars++
	}
	return units
}
