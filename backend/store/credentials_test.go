package store

import (
	"encoding/json"
	"testing"
	"time"

	"formadapt/backend/models"
	"formadapt/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStoreCreateAndFind(t *testing.T) {
	s := NewCredentialStore(testDB)

	user, err := s.Create("Alice", "alice@example.com", "secret123", "user")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "user", user.Role)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.Salt)
	assert.True(t, utils.VerifyPassword("secret123", user.PasswordHash, user.Salt))

	_, err = s.Create("Alice Again", "alice@example.com", "other", "user")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	found, err := s.FindByEmail("alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = s.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByID(999999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialStoreUpdateProfile(t *testing.T) {
	s := NewCredentialStore(testDB)

	bob, err := s.Create("Bob", "bob@example.com", "secret123", "user")
	require.NoError(t, err)
	carol, err := s.Create("Carol", "carol@example.com", "secret123", "user")
	require.NoError(t, err)

	newName := "Robert"
	newRole := "admin"
	updated, err := s.UpdateProfile(bob.ID, &newName, nil, &newRole)
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.Equal(t, "admin", updated.Role)

	// Colliding with another account's email
	takenEmail := "carol@example.com"
	_, err = s.UpdateProfile(bob.ID, nil, &takenEmail, nil)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Re-submitting your own email is not a collision
	ownEmail := "carol@example.com"
	_, err = s.UpdateProfile(carol.ID, nil, &ownEmail, nil)
	assert.NoError(t, err)

	_, err = s.UpdateProfile(999999, &newName, nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialStoreUpdatePassword(t *testing.T) {
	s := NewCredentialStore(testDB)

	user, err := s.Create("Dave", "dave@example.com", "oldpassword", "user")
	require.NoError(t, err)
	oldHash := user.PasswordHash
	oldSalt := user.Salt

	require.NoError(t, s.UpdatePassword(user.ID, "newpassword"))

	reloaded, err := s.FindByID(user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, reloaded.PasswordHash)
	assert.NotEqual(t, oldSalt, reloaded.Salt)
	assert.False(t, utils.VerifyPassword("oldpassword", reloaded.PasswordHash, reloaded.Salt))
	assert.True(t, utils.VerifyPassword("newpassword", reloaded.PasswordHash, reloaded.Salt))

	assert.ErrorIs(t, s.UpdatePassword(999999, "whatever"), ErrNotFound)
}

func TestCredentialStoreDeleteIsIdempotent(t *testing.T) {
	s := NewCredentialStore(testDB)

	user, err := s.Create("Eve", "eve@example.com", "secret123", "user")
	require.NoError(t, err)

	removed, err := s.Delete(user.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = s.Delete(user.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = s.FindByID(user.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialStoreListHidesSecrets(t *testing.T) {
	s := NewCredentialStore(testDB)

	_, err := s.Create("Frank", "frank@example.com", "secret123", "user")
	require.NoError(t, err)

	users, err := s.List()
	require.NoError(t, err)
	assert.NotEmpty(t, users)

	// The JSON tags keep password material out of every serialized account.
	data, err := json.Marshal(users)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password_hash")
	assert.NotContains(t, string(data), "salt")
	assert.NotContains(t, string(data), "secret123")
}

func TestResetTokenSingleUse(t *testing.T) {
	s := NewCredentialStore(testDB)

	user, err := s.Create("Grace", "grace@example.com", "secret123", "user")
	require.NoError(t, err)

	token, err := s.CreateResetToken(user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := s.ConsumeResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// Second use fails: the ticket was deleted on first consumption.
	_, err = s.ConsumeResetToken(token)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.ConsumeResetToken("no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResetTokenExpiry(t *testing.T) {
	s := NewCredentialStore(testDB)

	user, err := s.Create("Heidi", "heidi@example.com", "secret123", "user")
	require.NoError(t, err)

	token, err := s.CreateResetToken(user.ID)
	require.NoError(t, err)

	// Backdate the ticket past its TTL.
	require.NoError(t, testDB.Model(&models.PasswordResetToken{}).
		Where("token = ?", token).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = s.ConsumeResetToken(token)
	assert.ErrorIs(t, err, ErrNotFound)

	// An expired ticket is also gone for good.
	var count int64
	testDB.Model(&models.PasswordResetToken{}).Where("token = ?", token).Count(&count)
	assert.Zero(t, count)
}
