package attendance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNumericTokenMapsToCode(t *testing.T) {
	dir := newFakeDirectory()
	dir.byID[1001] = "EMP-1001"
	r := NewIdentityResolver(dir)

	code, err := r.Resolve(context.Background(), "1001")

	require.NoError(t, err)
	assert.Equal(t, "EMP-1001", code)
}

func TestResolveUnmappedNumericTokenStaysVerbatim(t *testing.T) {
	dir := newFakeDirectory()
	r := NewIdentityResolver(dir)

	code, err := r.Resolve(context.Background(), "9999")

	require.NoError(t, err)
	assert.Equal(t, "9999", code)
}

func TestResolveKnownCodePassesThrough(t *testing.T) {
	dir := newFakeDirectory()
	dir.codes["EMP-42"] = true
	r := NewIdentityResolver(dir)

	code, err := r.Resolve(context.Background(), "EMP-42")

	require.NoError(t, err)
	assert.Equal(t, "EMP-42", code)
}

func TestResolveUnknownTokenStaysVerbatim(t *testing.T) {
	dir := newFakeDirectory()
	r := NewIdentityResolver(dir)

	code, err := r.Resolve(context.Background(), "GHOST-1")

	require.NoError(t, err)
	assert.Equal(t, "GHOST-1", code)
}

func TestResolveEmptyToken(t *testing.T) {
	r := NewIdentityResolver(newFakeDirectory())

	code, err := r.Resolve(context.Background(), "   ")

	require.NoError(t, err)
	assert.Equal(t, "", code)
}

func TestResolveDirectoryFailurePropagates(t *testing.T) {
	dir := newFakeDirectory()
	dir.dirErr = errors.New("connection refused")
	r := NewIdentityResolver(dir)

	_, err := r.Resolve(context.Background(), "1001")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
