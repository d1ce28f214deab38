// Package cache keeps fetched portfolio content on disk so the public site
// can serve it between backend round trips.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrStale    = errors.New("entry is stale")
)

var bktContent = []byte("content")

// well-known entry keys
const (
	KeyProfile        = "profile"
	KeyProjects       = "projects"
	KeyExperiences    = "experiences"
	KeyEducation      = "education"
	KeySkills         = "skills"
	KeyCertifications = "certifications"
)

type entry struct {
	SavedAt time.Time       `json:"saved_at"`
	Payload json.RawMessage `json:"payload"`
}

// Cache is a wrapper around bolt.DB
type Cache struct {
	db        *bolt.DB
	ttl       time.Duration
	closeFunc func() error
	now       func() time.Time
}

// New opens the cache file, creating it if needed. ttl <= 0 means entries
// never expire.
func New(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(err, "failed to create cache dir")
	}
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &Cache{
		db:        db,
		ttl:       ttl,
		closeFunc: db.Close,
		now:       time.Now,
	}, nil
}

func NewTemp(ttl time.Duration) (*Cache, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("portfolio-cache-%s.db", uuid.New().String()))
	c, err := New(path, ttl)
	if err != nil {
		return nil, err
	}
	originalCloseFunc := c.closeFunc
	c.closeFunc = func() error {
		if err := originalCloseFunc(); err != nil {
			return err
		}
		return os.Remove(path)
	}
	return c, nil
}

// Close closes the cache
func (c *Cache) Close() error {
	return c.closeFunc()
}

// Put stores v under key, stamped with the current time.
func (c *Cache) Put(key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "failed to marshal payload")
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bktContent)
		if err != nil {
			return err
		}
		return putEntry(b, []byte(key), entry{SavedAt: c.now(), Payload: payload})
	})
}

// Get loads the entry under key into out. Returns ErrNotFound when the key
// was never stored and ErrStale when it outlived the ttl; the stale payload
// is still decoded into out so callers may serve it as a fallback.
func (c *Cache) Get(key string, out any) error {
	var e entry
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bktContent)
		if b == nil {
			return ErrNotFound
		}
		var err error
		e, err = getEntry(b, []byte(key))
		return err
	})
	if err != nil {
		return err
	}
	if err = json.Unmarshal(e.Payload, out); err != nil {
		return errors.Wrap(err, "failed to unmarshal payload")
	}
	if c.ttl > 0 && c.now().Sub(e.SavedAt) > c.ttl {
		return ErrStale
	}
	return nil
}

// SavedAt reports when the entry under key was stored.
func (c *Cache) SavedAt(key string) (time.Time, error) {
	var e entry
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bktContent)
		if b == nil {
			return ErrNotFound
		}
		var err error
		e, err = getEntry(b, []byte(key))
		return err
	})
	return e.SavedAt, err
}

// Invalidate drops a single entry. Missing keys are not an error.
func (c *Cache) Invalidate(key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bktContent)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Purge drops every cached entry.
func (c *Cache) Purge() error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(bktContent) == nil {
			return nil
		}
		return tx.DeleteBucket(bktContent)
	})
}

// helper functions

func putEntry(b *bolt.Bucket, key []byte, e entry) error {
	encoded, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return b.Put(key, encoded)
}

func getEntry(b *bolt.Bucket, key []byte) (e entry, err error) {
	v := b.Get(key)
	if v == nil {
		return e, ErrNotFound
	}
	err = json.Unmarshal(v, &e)
	if err != nil {
		return e, errors.Wrap(err, "failed to unmarshal entry")
	}
	return e, nil
}
