package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultAdmin(t *testing.T) {
	store := tempStore(t)
	dir := NewAdminDirectory(store)

	require.NoError(t, dir.SeedDefault())
	admin, err := dir.Authenticate(DefaultAdminUsername, DefaultAdminSecret)
	require.NoError(t, err)
	assert.Equal(t, DefaultAdminUsername, admin.Username)

	// Seeding again is a no-op even after the credential changed.
	require.NoError(t, dir.ChangeSecret(DefaultAdminUsername, DefaultAdminSecret, "stronger"))
	require.NoError(t, dir.SeedDefault())
	_, err = dir.Authenticate(DefaultAdminUsername, DefaultAdminSecret)
	assert.Error(t, err, "old default must not come back")
	_, err = dir.Authenticate(DefaultAdminUsername, "stronger")
	assert.NoError(t, err)
}

func TestAdminAuthenticateFailures(t *testing.T) {
	store := tempStore(t)
	dir := NewAdminDirectory(store)
	require.NoError(t, dir.SeedDefault())

	_, err := dir.Authenticate(DefaultAdminUsername, "nope")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = dir.Authenticate("ghost", DefaultAdminSecret)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Error(t, dir.ChangeSecret(DefaultAdminUsername, "wrong-old", "new"))
}

func TestOpenBootstrapsCollections(t *testing.T) {
	dir := t.TempDir()
	e, err := Open(dir, true, nil)
	require.NoError(t, err)

	_, err = e.Admins().Authenticate(DefaultAdminUsername, DefaultAdminSecret)
	assert.NoError(t, err, "default admin seeded on first run")

	books, err := e.ListBooks()
	require.NoError(t, err)
	assert.Empty(t, books)

	// Reopening with seeding disabled leaves the existing admin alone.
	e2, err := Open(dir, false, nil)
	require.NoError(t, err)
	_, err = e2.Admins().Authenticate(DefaultAdminUsername, DefaultAdminSecret)
	assert.NoError(t, err)
}

func TestOpenWithoutSeedHasNoAdmin(t *testing.T) {
	e, err := Open(t.TempDir(), false, nil)
	require.NoError(t, err)
	_, err = e.Admins().Authenticate(DefaultAdminUsername, DefaultAdminSecret)
	assert.ErrorIs(t, err, ErrNotFound)
}
