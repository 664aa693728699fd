package kiwi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeTag(t *testing.T) {
	assert.Equal(t, "common noun", DescribeTag("NNG"))
	assert.Equal(t, "final ending", DescribeTag("EF"))
	assert.Equal(t, "URL", DescribeTag("W_URL"))
	assert.Equal(t, "", DescribeTag("BOGUS"))
}

func TestDescribeTag_IgnoresJoinerSuffix(t *testing.T) {
	assert.Equal(t, "verb", DescribeTag("VV-"))
	assert.True(t, IsKnownTag("NNP-"))
}

func TestIsKnownTag(t *testing.T) {
	assert.True(t, IsKnownTag("JKS"))
	assert.True(t, IsKnownTag("Z_CODA"))
	assert.False(t, IsKnownTag("QQ"))
	assert.False(t, IsKnownTag(""))
}

func TestCoarseClass(t *testing.T) {
	testCases := []struct {
		tag  string
		want string
	}{
		{tag: "NNG", want: "noun"},
		{tag: "NP", want: "noun"},
		{tag: "VV", want: "verbal"},
		{tag: "VCP", want: "verbal"},
		{tag: "MAG", want: "modifier"},
		{tag: "IC", want: "modifier"},
		{tag: "JKO", want: "particle"},
		{tag: "ETM", want: "ending"},
		{tag: "XSN", want: "affix"},
		{tag: "Z_SIOT", want: "affix"},
		{tag: "SL", want: "foreign"},
		{tag: "SN", want: "foreign"},
		{tag: "SF", want: "symbol"},
		{tag: "SSO", want: "symbol"},
		{tag: "W_HASHTAG", want: "web"},
		{tag: "VV-", want: "verbal"},
		{tag: "", want: "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			assert.Equal(t, tc.want, CoarseClass(tc.tag))
		})
	}
}

func TestToken_TagHelpers(t *testing.T) {
	token := Token{Form: "나무", Tag: "NNG"}
	assert.Equal(t, "common noun", token.TagDescription())
	assert.Equal(t, "noun", token.CoarseClass())
}
