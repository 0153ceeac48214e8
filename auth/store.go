// Package auth resolves users against the configured credential table and
// issues the tokens that identify them on later requests.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/sidhant-sriv/expiry-tracker/config"
	"github.com/sidhant-sriv/expiry-tracker/models"
)

var (
	ErrUnknownUser    = errors.New("unknown user")
	ErrBadCredentials = errors.New("bad credentials")
)

// Account is an authenticated user and the section it works in.
type Account struct {
	Username string `json:"username"`
	Section  string `json:"section"`
}

// IsAdmin reports whether the account may see every section and delete rows.
func (a Account) IsAdmin() bool {
	return a.Section == models.AllSections
}

type credential struct {
	hash    string
	section string
}

// Store is the read-only credential table. It is safe for concurrent use.
type Store struct {
	users map[string]credential
}

// NewStore builds a Store from the configured users. Every hash must be a
// bcrypt hash or a hex SHA-256 digest.
func NewStore(users []config.UserConfig) (*Store, error) {
	s := &Store{users: make(map[string]credential, len(users))}
	for _, u := range users {
		hash := strings.TrimSpace(u.PasswordHash)
		if err := checkHash(hash); err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		if isSHA256(hash) {
			hash = strings.ToLower(hash)
		}
		s.users[u.Username] = credential{hash: hash, section: u.Section}
	}
	return s, nil
}

// Authenticate checks password against the stored hash of username.
func (s *Store) Authenticate(username, password string) (Account, error) {
	cred, ok := s.users[username]
	if !ok {
		return Account{}, ErrUnknownUser
	}
	if !matches(cred.hash, password) {
		return Account{}, ErrBadCredentials
	}
	return Account{Username: username, Section: cred.section}, nil
}

// Lookup resolves username without checking a password.
func (s *Store) Lookup(username string) (Account, error) {
	cred, ok := s.users[username]
	if !ok {
		return Account{}, ErrUnknownUser
	}
	return Account{Username: username, Section: cred.section}, nil
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}

func isSHA256(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

func checkHash(hash string) error {
	switch {
	case isBcrypt(hash):
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return fmt.Errorf("malformed bcrypt hash: %w", err)
		}
		return nil
	case isSHA256(hash):
		return nil
	default:
		return errors.New("password_hash must be bcrypt or hex sha256")
	}
}

func matches(hash, password string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	sum := sha256.Sum256([]byte(password))
	return subtle.ConstantTimeCompare([]byte(hash), []byte(hex.EncodeToString(sum[:]))) == 1
}
