package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sidhant-sriv/expiry-tracker/config"
)

func bcryptHash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func sha256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore([]config.UserConfig{
		{Username: "admin", PasswordHash: bcryptHash(t, "admin-pass"), Section: "all"},
		{Username: "baker", PasswordHash: bcryptHash(t, "bread"), Section: "bakery"},
		{Username: "legacy", PasswordHash: strings.ToUpper(sha256Hex("old")), Section: "dairy"},
	})
	require.NoError(t, err)
	return s
}

func TestStore_Authenticate(t *testing.T) {
	s := newTestStore(t)

	tests := []struct {
		name     string
		username string
		password string
		want     Account
		wantErr  error
	}{
		{"admin", "admin", "admin-pass", Account{"admin", "all"}, nil},
		{"section user", "baker", "bread", Account{"baker", "bakery"}, nil},
		{"legacy sha256", "legacy", "old", Account{"legacy", "dairy"}, nil},
		{"wrong password", "baker", "cake", Account{}, ErrBadCredentials},
		{"wrong legacy password", "legacy", "new", Account{}, ErrBadCredentials},
		{"unknown user", "ghost", "bread", Account{}, ErrUnknownUser},
		{"unknown user empty password", "ghost", "", Account{}, ErrUnknownUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Authenticate(tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_Lookup(t *testing.T) {
	s := newTestStore(t)

	acc, err := s.Lookup("admin")
	require.NoError(t, err)
	assert.True(t, acc.IsAdmin())

	acc, err = s.Lookup("baker")
	require.NoError(t, err)
	assert.False(t, acc.IsAdmin())

	_, err = s.Lookup("ghost")
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestNewStore_RejectsBadHashes(t *testing.T) {
	for _, hash := range []string{"plaintext", "$2a$not-a-hash", sha256Hex("x")[:60]} {
		_, err := NewStore([]config.UserConfig{{Username: "u", PasswordHash: hash, Section: "all"}})
		assert.Error(t, err, hash)
	}
}

func TestTokenIssuer(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Minute, time.Hour)

	access, refresh, err := ti.Issue("baker")
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	name, err := ti.Parse(access, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "baker", name)

	name, err = ti.Parse(refresh, RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "baker", name)

	_, err = ti.Parse(refresh, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewTokenIssuer("other", time.Minute, time.Hour).Parse(access, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ti.Parse("garbage", AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Expired(t *testing.T) {
	ti := NewTokenIssuer("secret", -time.Minute, time.Hour)

	access, _, err := ti.Issue("baker")
	require.NoError(t, err)

	_, err = ti.Parse(access, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
