package auth

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestLoginKnownAccounts(t *testing.T) {
	path := sessionPath(t)

	session, err := Login(path, "admin", "admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, session.Role)
	assert.Equal(t, PortalMain, session.Portal)
	assert.True(t, session.IsAdmin())

	session, err = Login(path, "student", "student")
	require.NoError(t, err)
	assert.Equal(t, RoleStudent, session.Role)
	assert.Equal(t, PortalElearning, session.Portal)
	assert.False(t, session.IsAdmin())
}

func TestLoginUnknownCredentialsFallBackToUser(t *testing.T) {
	session, err := Login(sessionPath(t), "someone", "whatever")
	require.NoError(t, err)
	assert.Equal(t, RoleUser, session.Role)
	assert.Equal(t, PortalMain, session.Portal)
	assert.Equal(t, "someone", session.Name)
}

func TestLoginRequiresCredentials(t *testing.T) {
	_, err := Login(sessionPath(t), "", "secret")
	require.Error(t, err)
	_, err = Login(sessionPath(t), "someone", "")
	require.Error(t, err)
}

func TestSessionFlagsPersistAndClearTogether(t *testing.T) {
	path := sessionPath(t)

	_, err := Login(path, "lecturer", "lecturer")
	require.NoError(t, err)

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "lecturer", loaded.Username)
	assert.Equal(t, RoleLecturer, loaded.Role)
	assert.Equal(t, PortalElearning, loaded.Portal)
	assert.Equal(t, "Giảng viên", loaded.Name)

	require.NoError(t, Logout(path))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// Logging out twice is not an error.
	require.NoError(t, Logout(path))
}
