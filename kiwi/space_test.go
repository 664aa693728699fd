package kiwi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResetHangulWhitespace(t *testing.T) {
	testCases := []struct {
		name string
		text string
		want string
	}{
		{
			name: "space between hangul syllables removed",
			text: "안녕 하세요",
			want: "안녕하세요",
		},
		{
			name: "whitespace run collapses entirely",
			text: "안녕 \t 하세요",
			want: "안녕하세요",
		},
		{
			name: "space before sentence punctuation removed",
			text: "끝 .",
			want: "끝.",
		},
		{
			name: "space after latin kept",
			text: "hello 세계",
			want: "hello 세계",
		},
		{
			name: "space before latin kept",
			text: "한국 kiwi",
			want: "한국 kiwi",
		},
		{
			name: "leading space kept",
			text: " 가나",
			want: " 가나",
		},
		{
			name: "trailing space kept",
			text: "가나 ",
			want: "가나 ",
		},
		{name: "empty", text: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, resetHangulWhitespace(tc.text))
		})
	}
}

func TestStripAllWhitespace(t *testing.T) {
	assert.Equal(t, "가나다", stripAllWhitespace("가 나\t다"))
	assert.Equal(t, "", stripAllWhitespace(" \n\t"))
}

func TestEndsWithASCIIWord(t *testing.T) {
	assert.True(t, endsWithASCIIWord("model v2"))
	assert.True(t, endsWithASCIIWord("abc  "))
	assert.False(t, endsWithASCIIWord("한글"))
	assert.False(t, endsWithASCIIWord("done!"))
	assert.False(t, endsWithASCIIWord(""))
	assert.False(t, endsWithASCIIWord("   "))
}

func TestShouldInsertSpaceBetween(t *testing.T) {
	testCases := []struct {
		name    string
		prevTag string
		tag     string
		form    string
		want    bool
	}{
		{name: "noun after particle", prevTag: "JX", tag: "NNG", want: true},
		{name: "verb after noun", prevTag: "NNG", tag: "VV", want: true},
		{name: "particle never separated", prevTag: "NNG", tag: "JKB", want: false},
		{name: "ending never separated", prevTag: "VV", tag: "EF", want: false},
		{name: "auxiliary 하 glues", prevTag: "EC", tag: "VX", form: "하", want: false},
		{name: "auxiliary 지 glues", prevTag: "EC", tag: "VX", form: "지", want: false},
		{name: "other auxiliary separates", prevTag: "EC", tag: "VX", form: "버리", want: true},
		{name: "after number only strict targets", prevTag: "SN", tag: "NNB", want: false},
		{name: "proper noun after number", prevTag: "SN", tag: "NNP", want: true},
		{name: "after sentence punct strict target", prevTag: "SF", tag: "MM", want: true},
		{name: "after sentence punct non-strict target", prevTag: "SF", tag: "SN", want: false},
		{name: "symbol prev blocks", prevTag: "SSO", tag: "NNG", want: false},
		{name: "suffix prev allows", prevTag: "XSN", tag: "NNG", want: true},
		{name: "root prev allows", prevTag: "XR", tag: "NNG", want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shouldInsertSpaceBetween(tc.prevTag, tc.tag, tc.form))
		})
	}
}

func TestShouldStripGap(t *testing.T) {
	testCases := []struct {
		name    string
		prevTag string
		tag     string
		form    string
		want    bool
	}{
		{name: "ending", tag: "EF", want: true},
		{name: "particle", tag: "JX", want: true},
		{name: "suffix", tag: "XSV", want: true},
		{name: "auxiliary 하", tag: "VX", form: "하", want: true},
		{name: "auxiliary 지", tag: "VX", form: "지", want: true},
		{name: "other auxiliary", tag: "VX", form: "버리", want: false},
		{name: "bound noun after number", prevTag: "SN", tag: "NNB", want: true},
		{name: "bound noun elsewhere", prevTag: "NNG", tag: "NNB", want: false},
		{name: "plain noun", tag: "NNG", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shouldStripGap(tc.prevTag, tc.tag, tc.form))
		})
	}
}

func TestReconstructSpacedText_InsertsWordBoundaries(t *testing.T) {
	raw := "나는학교에간다"
	tokens := []Token{
		{Form: "나", Tag: "NP", Position: 0, Length: 1},
		{Form: "는", Tag: "JX", Position: 1, Length: 1},
		{Form: "학교", Tag: "NNG", Position: 2, Length: 2},
		{Form: "에", Tag: "JKB", Position: 4, Length: 1},
		{Form: "간다", Tag: "VV", Position: 5, Length: 2},
	}

	assert.Equal(t, "나는 학교에 간다", reconstructSpacedText(raw, tokens))
}

func TestReconstructSpacedText_StripsGapBeforeBoundMorpheme(t *testing.T) {
	raw := "먹 었다"
	tokens := []Token{
		{Form: "먹", Tag: "VV", Position: 0, Length: 1},
		{Form: "었", Tag: "EP", Position: 2, Length: 1},
		{Form: "다", Tag: "EF", Position: 3, Length: 1},
	}

	assert.Equal(t, "먹었다", reconstructSpacedText(raw, tokens))
}

func TestReconstructSpacedText_KeepsTrailingText(t *testing.T) {
	raw := "한국어!"
	tokens := []Token{
		{Form: "한국어", Tag: "NNP", Position: 0, Length: 3},
	}

	assert.Equal(t, "한국어!", reconstructSpacedText(raw, tokens))
}

func TestReconstructSpacedText_NoTokensReturnsInput(t *testing.T) {
	assert.Equal(t, "있는 그대로", reconstructSpacedText("있는 그대로", nil))
}
