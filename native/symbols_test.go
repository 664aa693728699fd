package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryReferenceCounting(t *testing.T) {
	lib := &Library{}
	lib.refs.Store(1)

	// Two derived handles retain the image.
	lib.Retain()
	lib.Retain()

	require.NoError(t, lib.Release())
	require.NoError(t, lib.Release())
	assert.EqualValues(t, 1, lib.refs.Load(), "the loader's own reference survives the handles")

	require.NoError(t, lib.Release())
	assert.EqualValues(t, 0, lib.refs.Load())
}

func TestLibraryReleaseOrderIndependent(t *testing.T) {
	// Dropping the loader's reference before the handle's must keep the
	// image alive for the handle.
	lib := &Library{}
	lib.refs.Store(1)
	lib.Retain()

	require.NoError(t, lib.Release())
	assert.EqualValues(t, 1, lib.refs.Load())
	require.NoError(t, lib.Release())
	assert.EqualValues(t, 0, lib.refs.Load())
}
