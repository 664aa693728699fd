package kiwi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallbackStateRegistry(t *testing.T) {
	feed := &lineFeed{lines: [][]byte{[]byte("a")}}
	token := registerCallbackState(feed)
	require.NotZero(t, token)

	assert.Same(t, feed, callbackState(token))

	other := registerCallbackState(&batchSink{})
	assert.NotEqual(t, token, other, "tokens must be unique")
	releaseCallbackState(other)

	releaseCallbackState(token)
	assert.Nil(t, callbackState(token))
	// releasing twice is harmless
	releaseCallbackState(token)
}

func TestFeedFromState(t *testing.T) {
	feed := &lineFeed{}
	assert.Same(t, feed, feedFromState(feed))

	sink := &batchSink{feed: lineFeed{lines: [][]byte{[]byte("x")}}}
	got := feedFromState(sink)
	require.NotNil(t, got)
	assert.Equal(t, [][]byte{[]byte("x")}, got.lines)

	assert.Nil(t, feedFromState(nil))
	assert.Nil(t, feedFromState("not a feed"))
}

func TestCret(t *testing.T) {
	assert.Equal(t, uintptr(0), cret(0))
	assert.Equal(t, uintptr(7), cret(7))
	// negative values round-trip through int32 on the receiving side
	assert.Equal(t, int32(-1), int32(cret(-1)))
}
