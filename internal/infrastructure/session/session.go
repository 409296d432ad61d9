// Package session persists the logged-in portal session on disk, sealed with
// the same authenticated encryption the portal's cookie layer would use.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/securecookie"
)

const sealName = "readingctl_session"

// Session is the persisted login state. The profile fields are a convenience
// cache for display; eligibility always consults the live profile endpoint.
type Session struct {
	AccessToken string    `json:"access_token"`
	Email       string    `json:"email"`
	SavedAt     time.Time `json:"saved_at"`
}

type Store struct {
	path string
	sc   *securecookie.SecureCookie
}

// NewStore seals sessions at path with the given hash/block keys (32 bytes
// each; the keys command generates a pair).
func NewStore(path string, hashKey, blockKey []byte) *Store {
	sc := securecookie.New(hashKey, blockKey)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int((30 * 24 * time.Hour).Seconds()))
	return &Store{path: path, sc: sc}
}

// Save seals and writes the session, creating parent directories as needed.
func (s *Store) Save(sess Session) error {
	encoded, err := s.sc.Encode(sealName, sess)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(encoded), 0o600)
}

// Load returns the stored session. A missing, tampered, or expired file reads
// as "not logged in", never as an error.
func (s *Store) Load() (Session, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return Session{}, false
	}
	var sess Session
	if err := s.sc.Decode(sealName, string(b), &sess); err != nil {
		return Session{}, false
	}
	if sess.AccessToken == "" {
		return Session{}, false
	}
	return sess, true
}

// Clear removes the stored session.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Token returns the current access token, empty when logged out. Shaped to
// plug straight into the API client as its token source.
func (s *Store) Token() string {
	sess, ok := s.Load()
	if !ok {
		return ""
	}
	return sess.AccessToken
}
