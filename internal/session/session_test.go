package session

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lemuel.com/eduspaceadmin/internal/entity"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestNew_UsesTokenExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	s := New(signedToken(t, exp), &entity.User{ID: 7, Role: entity.RoleAdmin}, time.Minute)

	assert.NotEmpty(t, s.ID)
	assert.True(t, s.ExpiresAt.Equal(exp))
	assert.True(t, s.IsAuthenticated())
}

func TestNew_OpaqueTokenFallsBackToTTL(t *testing.T) {
	before := time.Now()
	s := New("not-a-jwt", &entity.User{ID: 1}, time.Hour)

	assert.WithinDuration(t, before.Add(time.Hour), s.ExpiresAt, time.Second)
}

func TestSession_IsAuthenticated(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.IsAuthenticated())
	assert.False(t, (&Session{Token: "t"}).IsAuthenticated())
	assert.False(t, (&Session{Token: "t", User: &entity.User{}, ExpiresAt: time.Now().Add(-time.Second)}).IsAuthenticated())
}

func TestSession_PutLoadDrop(t *testing.T) {
	s := &Session{}
	require.NoError(t, s.Put("ids", []int{1, 2}))

	var ids []int
	ok, err := s.Load("ids", &ids)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, ids)

	s.Drop("ids")
	ok, err = s.Load("ids", &ids)
	require.NoError(t, err)
	assert.False(t, ok)
}

func storeRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	s := New("tok", &entity.User{ID: 3, Email: "a@b.c", Role: entity.RoleTeacher}, time.Hour)
	require.NoError(t, s.Put("k", "v"))
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)
	assert.Equal(t, 3, got.User.ID)
	var v string
	ok, err := got.Load("k", &v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, store.Delete(ctx, s.ID))
	_, err = store.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func storeUpdate(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	s := New("tok", &entity.User{ID: 3}, time.Hour)
	require.NoError(t, s.Put("kept", "yes"))
	require.NoError(t, store.Save(ctx, s))

	got, err := store.Update(ctx, s.ID, func(fresh *Session) error {
		return fresh.Put("added", 1)
	})
	require.NoError(t, err)
	assert.Contains(t, got.Data, "added")
	assert.Contains(t, got.Data, "kept")

	boom := errors.New("boom")
	_, err = store.Update(ctx, s.ID, func(fresh *Session) error {
		fresh.Drop("kept")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Contains(t, stored.Data, "kept", "a failed update writes nothing")
	assert.Contains(t, stored.Data, "added")
}

// concurrentUpdates appends n ids to one list from n goroutines.
func concurrentUpdates(t *testing.T, store Store, n int) {
	t.Helper()
	ctx := context.Background()

	s := New("tok", &entity.User{ID: 3}, time.Hour)
	require.NoError(t, s.Put("ids", []int{}))
	require.NoError(t, store.Save(ctx, s))

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_, err := store.Update(ctx, s.ID, func(fresh *Session) error {
				var ids []int
				if _, err := fresh.Load("ids", &ids); err != nil {
					return err
				}
				return fresh.Put("ids", append(ids, id))
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := store.Get(ctx, s.ID)
	require.NoError(t, err)
	var ids []int
	_, err = stored.Load("ids", &ids)
	require.NoError(t, err)
	assert.Len(t, ids, n)
}

func TestMemoryStore(t *testing.T) {
	storeRoundTrip(t, NewMemoryStore())
}

func TestMemoryStore_Update(t *testing.T) {
	store := NewMemoryStore()
	storeUpdate(t, store)
	concurrentUpdates(t, store, 20)

	_, err := store.Update(context.Background(), "missing", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Expired(t *testing.T) {
	store := NewMemoryStore()
	s := &Session{ID: "x", Token: "t", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(context.Background(), s))

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err := store.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(rdb, time.Hour)

	storeRoundTrip(t, store)

	s := &Session{ID: "ttl", Token: "t", ExpiresAt: time.Now().Add(30 * time.Minute)}
	require.NoError(t, store.Save(context.Background(), s))
	ttl := mr.TTL(redisKeyPrefix + "ttl")
	assert.True(t, ttl > 29*time.Minute && ttl <= 30*time.Minute, "ttl = %v", ttl)

	mr.FastForward(31 * time.Minute)
	_, err := store.Get(context.Background(), "ttl")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Update(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)

	storeUpdate(t, store)
	concurrentUpdates(t, store, 4)

	_, err := store.Update(context.Background(), "missing", func(*Session) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_UpdateRetriesAfterConcurrentWrite(t *testing.T) {
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	ctx := context.Background()

	s := New("tok", &entity.User{ID: 3}, time.Hour)
	require.NoError(t, store.Save(ctx, s))

	calls := 0
	got, err := store.Update(ctx, s.ID, func(fresh *Session) error {
		calls++
		if calls == 1 {
			// another request saves between our read and our write
			other := *s
			other.Data = map[string]json.RawMessage{}
			require.NoError(t, other.Put("other", true))
			require.NoError(t, store.Save(ctx, &other))
		}
		return fresh.Put("mine", true)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, got.Data, "other")
	assert.Contains(t, got.Data, "mine")

	ttl := mr.TTL(redisKeyPrefix + s.ID)
	assert.True(t, ttl > 0, "update keeps the expiry")
}

func TestFileStore_Update(t *testing.T) {
	storeUpdate(t, NewFileStore(filepath.Join(t.TempDir(), "session.json")))
}

func TestFileStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "session.json"))
	storeRoundTrip(t, store)

	// deleting twice is fine
	assert.NoError(t, store.Delete(context.Background(), ""))
}

func TestTokenExpiry(t *testing.T) {
	_, ok := TokenExpiry("")
	assert.False(t, ok)
	_, ok = TokenExpiry("a.b.c")
	assert.False(t, ok)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "1"}).SignedString([]byte("k"))
	require.NoError(t, err)
	_, ok = TokenExpiry(noExp)
	assert.False(t, ok)
}
