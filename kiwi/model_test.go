package kiwi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steosofficial/kiwigo/native"
)

func writeModelFile(t *testing.T, dir, name string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o644))
}

func TestValidateModelDir(t *testing.T) {
	dir := t.TempDir()
	writeModelFile(t, dir, "cong.mdl", []byte("model bytes"))

	assert.NoError(t, ValidateModelDir(dir))
}

func TestValidateModelDir_SecondaryModelFile(t *testing.T) {
	dir := t.TempDir()
	writeModelFile(t, dir, "sj.knlm", []byte{0x01, 0x02})

	assert.NoError(t, ValidateModelDir(dir))
}

func TestValidateModelDir_MissingPath(t *testing.T) {
	err := ValidateModelDir(filepath.Join(t.TempDir(), "nope"))

	var argErr *native.ArgumentError
	require.ErrorAs(t, err, &argErr)
}

func TestValidateModelDir_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cong.mdl")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	var argErr *native.ArgumentError
	require.ErrorAs(t, ValidateModelDir(file), &argErr)
	assert.Contains(t, argErr.Reason, "not a directory")
}

func TestValidateModelDir_NoModelFiles(t *testing.T) {
	dir := t.TempDir()
	writeModelFile(t, dir, "readme.txt", []byte("unrelated"))

	var argErr *native.ArgumentError
	require.ErrorAs(t, ValidateModelDir(dir), &argErr)
	assert.Contains(t, argErr.Reason, "none of the expected model files")
}

func TestValidateModelDir_EmptyModelFile(t *testing.T) {
	dir := t.TempDir()
	writeModelFile(t, dir, "cong.mdl", nil)

	var argErr *native.ArgumentError
	require.ErrorAs(t, ValidateModelDir(dir), &argErr)
	assert.Contains(t, argErr.Reason, "empty")
}

func TestDiscoverModelPath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvModelPath, dir)

	assert.Equal(t, dir, DiscoverModelPath())
}
