package kiwi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSentencesFromTokens_GroupsBySentenceIndex(t *testing.T) {
	text := "안녕하세요. 반갑습니다."
	tokens := []Token{
		{Form: "안녕", Tag: "NNG", Position: 0, Length: 2, SentPosition: 0},
		{Form: "하", Tag: "XSA", Position: 2, Length: 1, SentPosition: 0},
		{Form: "세요", Tag: "EF", Position: 3, Length: 2, SentPosition: 0},
		{Form: ".", Tag: "SF", Position: 5, Length: 1, SentPosition: 0},
		{Form: "반갑", Tag: "VA", Position: 7, Length: 2, SentPosition: 1},
		{Form: "습니다", Tag: "EF", Position: 9, Length: 3, SentPosition: 1},
		{Form: ".", Tag: "SF", Position: 12, Length: 1, SentPosition: 1},
	}

	sentences := buildSentencesFromTokens(text, tokens)
	require.Len(t, sentences, 2)

	assert.Equal(t, "안녕하세요.", sentences[0].Text)
	assert.Equal(t, 0, sentences[0].Start)
	assert.Equal(t, 6, sentences[0].End)
	assert.Len(t, sentences[0].Tokens, 4)
	assert.Empty(t, sentences[0].Subs)

	assert.Equal(t, "반갑습니다.", sentences[1].Text)
	assert.Equal(t, 7, sentences[1].Start)
	assert.Equal(t, 13, sentences[1].End)
	assert.Len(t, sentences[1].Tokens, 3)
}

func TestBuildSentencesFromTokens_OrdersSentencesByIndex(t *testing.T) {
	text := "가나 다라"
	tokens := []Token{
		{Form: "다라", Tag: "NNG", Position: 3, Length: 2, SentPosition: 1},
		{Form: "가나", Tag: "NNG", Position: 0, Length: 2, SentPosition: 0},
	}

	sentences := buildSentencesFromTokens(text, tokens)
	require.Len(t, sentences, 2)
	assert.Equal(t, "가나", sentences[0].Text)
	assert.Equal(t, "다라", sentences[1].Text)
}

func TestBuildSentencesFromTokens_Empty(t *testing.T) {
	assert.Nil(t, buildSentencesFromTokens("문장", nil))
}

func TestBuildSubSentences_MaximalRuns(t *testing.T) {
	text := "abcdefg"
	charToByte := buildCharToByteMap(text)
	tokens := []Token{
		{Form: "a", Position: 0, Length: 1, SubSentPosition: 0},
		{Form: "b", Position: 1, Length: 1, SubSentPosition: 1},
		{Form: "c", Position: 2, Length: 1, SubSentPosition: 1},
		{Form: "d", Position: 3, Length: 1, SubSentPosition: 0},
		{Form: "e", Position: 4, Length: 1, SubSentPosition: 2},
	}

	subs := buildSubSentences(text, charToByte, tokens)
	require.Len(t, subs, 2)

	assert.Equal(t, "bc", subs[0].Text)
	assert.Equal(t, 1, subs[0].Start)
	assert.Equal(t, 3, subs[0].End)
	require.Len(t, subs[0].Tokens, 2)
	assert.Equal(t, "b", subs[0].Tokens[0].Form)

	assert.Equal(t, "e", subs[1].Text)
	assert.Equal(t, 4, subs[1].Start)
	assert.Equal(t, 5, subs[1].End)
}

func TestBuildSubSentences_NewRunOnIndexChange(t *testing.T) {
	text := "xyz"
	charToByte := buildCharToByteMap(text)
	tokens := []Token{
		{Form: "x", Position: 0, Length: 1, SubSentPosition: 1},
		{Form: "y", Position: 1, Length: 1, SubSentPosition: 2},
		{Form: "z", Position: 2, Length: 1, SubSentPosition: 2},
	}

	subs := buildSubSentences(text, charToByte, tokens)
	require.Len(t, subs, 2)
	assert.Equal(t, "x", subs[0].Text)
	assert.Equal(t, "yz", subs[1].Text)
}

func TestBuildSubSentences_NoNestedSentences(t *testing.T) {
	text := "ab"
	charToByte := buildCharToByteMap(text)
	tokens := []Token{
		{Form: "a", Position: 0, Length: 1},
		{Form: "b", Position: 1, Length: 1},
	}

	assert.Empty(t, buildSubSentences(text, charToByte, tokens))
}
