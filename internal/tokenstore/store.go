// Package tokenstore persists the access/refresh token pair on disk.
// It is the CLI equivalent of the browser's localStorage entries: one file
// holding both tokens, replaced atomically so the pair is never half-written.
package tokenstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/gtank/cryptopasta"
	"github.com/pkg/errors"
)

type Store struct {
	path   string
	secret *[32]byte

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	stop    chan struct{}
	done    chan struct{}
}

type pair struct {
	Access  string `json:"accessToken"`
	Refresh string `json:"refreshToken"`
}

// New creates a store backed by the file at path. If secret is non-empty the
// file content is encrypted with AES-GCM; the key is derived by copying the
// secret into a fixed 32-byte buffer.
func New(path, secret string) *Store {
	s := &Store{path: path}
	if secret != "" {
		key := &[32]byte{}
		copy(key[:], secret)
		s.secret = key
	}
	return s
}

// AccessToken returns the stored access token, or "" when the store is
// missing or unreadable. Storage failures read as "not authenticated".
func (s *Store) AccessToken() string {
	p, err := s.read()
	if err != nil {
		return ""
	}
	return p.Access
}

// RefreshToken returns the stored refresh token, or "" when absent.
func (s *Store) RefreshToken() string {
	p, err := s.read()
	if err != nil {
		return ""
	}
	return p.Refresh
}

func (s *Store) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

// SetTokens overwrites both tokens in a single atomic file replace.
func (s *Store) SetTokens(access, refresh string) error {
	raw, err := json.Marshal(pair{Access: access, Refresh: refresh})
	if err != nil {
		return errors.Wrap(err, "marshal token pair")
	}
	if s.secret != nil {
		raw, err = cryptopasta.Encrypt(raw, s.secret)
		if err != nil {
			return errors.Wrap(err, "encrypt token pair")
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "create store dir")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "write token file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace token file")
	}
	return nil
}

// ClearTokens removes the file, dropping both tokens at once.
func (s *Store) ClearTokens() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove token file")
	}
	return nil
}

func (s *Store) read() (pair, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return pair{}, err
	}
	if s.secret != nil {
		raw, err = cryptopasta.Decrypt(raw, s.secret)
		if err != nil {
			return pair{}, errors.Wrap(err, "decrypt token pair")
		}
	}
	var p pair
	if err := json.Unmarshal(raw, &p); err != nil {
		return pair{}, errors.Wrap(err, "unmarshal token pair")
	}
	return p, nil
}

// Watch invokes onChange whenever another process rewrites or removes the
// token file, so concurrent invocations converge on the latest pair. The
// parent directory is watched because the atomic rename in SetTokens replaces
// the file inode.
func (s *Store) Watch(onChange func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher != nil {
		return errors.New("watch already started")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		w.Close()
		return errors.Wrap(err, "create store dir")
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return errors.Wrap(err, "watch store dir")
	}

	s.watcher = w
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Name != s.path {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
					onChange()
				}
			case <-w.Errors:
			case <-s.stop:
				return
			}
		}
	}()
	return nil
}

// Close stops the watcher if one was started.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.watcher == nil {
		return nil
	}
	close(s.stop)
	err := s.watcher.Close()
	<-s.done
	s.watcher = nil
	return err
}
