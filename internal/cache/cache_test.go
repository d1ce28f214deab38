package cache

import (
	"testing"
	"time"

	"github.com/jtetteh/portfolio-cli/internal/models"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	c, err := NewTemp(ttl)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, c.Close()) })
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	c := newTestCache(t, time.Hour)

	in := &models.User{ID: "u1", Email: "a@b.c", Role: models.RoleSuperAdmin}
	require.NoError(t, c.Put(KeyProfile, in))

	var out models.User
	require.NoError(t, c.Get(KeyProfile, &out))
	require.Equal(t, in.ID, out.ID)
	require.Equal(t, in.Email, out.Email)
}

func TestGetMissingKey(t *testing.T) {
	c := newTestCache(t, time.Hour)

	var out models.User
	require.ErrorIs(t, c.Get(KeyProfile, &out), ErrNotFound)
}

func TestStaleEntryStillDecodes(t *testing.T) {
	c := newTestCache(t, time.Minute)

	require.NoError(t, c.Put(KeySkills, []models.Skill{{ID: "s1", Name: "Go"}}))
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	var out []models.Skill
	err := c.Get(KeySkills, &out)
	require.ErrorIs(t, err, ErrStale)
	require.Len(t, out, 1)
	require.Equal(t, "Go", out[0].Name)
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := newTestCache(t, 0)

	require.NoError(t, c.Put(KeyProjects, []models.Project{{ID: "p1"}}))
	c.now = func() time.Time { return time.Now().Add(24 * time.Hour) }

	var out []models.Project
	require.NoError(t, c.Get(KeyProjects, &out))
	require.Len(t, out, 1)
}

func TestInvalidateAndPurge(t *testing.T) {
	c := newTestCache(t, time.Hour)

	require.NoError(t, c.Put(KeyProfile, &models.User{ID: "u1"}))
	require.NoError(t, c.Put(KeyProjects, []models.Project{{ID: "p1"}}))

	require.NoError(t, c.Invalidate(KeyProfile))
	var u models.User
	require.ErrorIs(t, c.Get(KeyProfile, &u), ErrNotFound)

	var ps []models.Project
	require.NoError(t, c.Get(KeyProjects, &ps))

	require.NoError(t, c.Purge())
	require.ErrorIs(t, c.Get(KeyProjects, &ps), ErrNotFound)

	// invalidating a missing key is fine
	require.NoError(t, c.Invalidate("nope"))
}

func TestSavedAt(t *testing.T) {
	c := newTestCache(t, time.Hour)

	_, err := c.SavedAt(KeyProfile)
	require.ErrorIs(t, err, ErrNotFound)

	before := time.Now()
	require.NoError(t, c.Put(KeyProfile, &models.User{ID: "u1"}))
	at, err := c.SavedAt(KeyProfile)
	require.NoError(t, err)
	require.False(t, at.Before(before.Truncate(time.Second)))
}
