package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lemuel.com/eduspaceadmin/internal/client"
	"lemuel.com/eduspaceadmin/internal/entity"
	"lemuel.com/eduspaceadmin/internal/modules/promotion"
	"lemuel.com/eduspaceadmin/internal/session"
	"lemuel.com/eduspaceadmin/pkg/apperror"
)

const previewBody = `{
	"promoted": [
		{"student_id": 5, "student_name": "Ani", "status": "promoted"},
		{"student_id": 7, "student_name": "Budi", "status": "promoted"}
	],
	"graduated": [
		{"student_id": 9, "student_name": "Citra", "status": "graduated"},
		{"student_id": 11, "student_name": "Dewi", "status": "graduated"}
	]
}`

type backend struct {
	confirms atomic.Int32
	details  atomic.Int32

	mu       sync.Mutex
	excluded []int

	// onPreview runs inside the preview request, before it answers.
	onPreview func()
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /promotion/preview", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		hook := b.onPreview
		b.mu.Unlock()
		if hook != nil {
			hook()
		}
		_, _ = io.WriteString(w, previewBody)
	})
	mux.HandleFunc("POST /promotion/confirm", func(w http.ResponseWriter, r *http.Request) {
		b.confirms.Add(1)
		var req client.ConfirmPromotionRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		b.mu.Lock()
		b.excluded = req.ExcludedStudentIDs
		b.mu.Unlock()
		_, _ = io.WriteString(w, `{"message":"done","promoted_count":1,"graduated_count":1,"history_id":3}`)
	})
	mux.HandleFunc("GET /promotion/history", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":3,"status":"applied","promoted_count":1,"graduated_count":1,"created_at":"2026-06-30T10:00:00Z"}]`)
	})
	mux.HandleFunc("GET /promotion/history/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.details.Add(1)
		_, _ = io.WriteString(w, `{"id":3,"status":"applied","created_at":"2026-06-30T10:00:00Z","details":[{"student_id":5,"student_name":"Ani","status":"promoted"}]}`)
	})
	return mux
}

func (b *backend) sentExclusions() []int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.excluded
}

type storeCase struct {
	name  string
	store func(t *testing.T) session.Store
}

var stores = []storeCase{
	{"memory", func(t *testing.T) session.Store { return session.NewMemoryStore() }},
	{"redis", func(t *testing.T) session.Store {
		mr := miniredis.RunT(t)
		return session.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	}},
}

func setup(t *testing.T, store session.Store) (PromotionService, *backend, *session.Session) {
	t.Helper()

	b := &backend{}
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	sess := &session.Session{
		ID:        "sid-1",
		Token:     "tok",
		User:      &entity.User{ID: 1, Role: entity.RoleAdmin},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), sess))

	return NewPromotionService(client.New(srv.URL), store, zap.NewNop()), b, sess
}

// openPreview takes the wizard to the preview step.
func openPreview(t *testing.T, svc PromotionService, sess *session.Session) {
	t.Helper()
	ctx := context.Background()
	_, err := svc.Start(ctx, sess)
	require.NoError(t, err)
	view, err := svc.Preview(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, promotion.StepPreview, view.Step)
}

func storedWizard(t *testing.T, store session.Store, id string) *promotion.Wizard {
	t.Helper()
	s, err := store.Get(context.Background(), id)
	require.NoError(t, err)
	w, err := promotion.LoadWizard(s)
	require.NoError(t, err)
	return w
}

func TestToggleExclusion_StaleCopiesKeepBothChanges(t *testing.T) {
	for _, tc := range stores {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.store(t)
			svc, _, sess := setup(t, store)
			openPreview(t, svc, sess)

			ctx := context.Background()
			first, err := store.Get(ctx, sess.ID)
			require.NoError(t, err)
			second, err := store.Get(ctx, sess.ID)
			require.NoError(t, err)

			_, err = svc.ToggleExclusion(ctx, first, 5)
			require.NoError(t, err)
			view, err := svc.ToggleExclusion(ctx, second, 7)
			require.NoError(t, err)

			assert.Equal(t, []int{5, 7}, view.Excluded)
			assert.Equal(t, []int{5, 7}, storedWizard(t, store, sess.ID).ExcludedIDs())
			assert.Equal(t, promotion.Counts{Promoted: 0, Graduated: 2}, view.Counts)
		})
	}
}

func TestToggleExclusion_ConcurrentRequests(t *testing.T) {
	for _, tc := range stores {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.store(t)
			svc, _, sess := setup(t, store)
			openPreview(t, svc, sess)

			ids := []int{5, 7, 9, 11}
			var wg sync.WaitGroup
			errs := make([]error, len(ids))
			for i, id := range ids {
				wg.Add(1)
				go func(i, id int) {
					defer wg.Done()
					copyOf, err := store.Get(context.Background(), sess.ID)
					if err != nil {
						errs[i] = err
						return
					}
					_, errs[i] = svc.ToggleExclusion(context.Background(), copyOf, id)
				}(i, id)
			}
			wg.Wait()

			for _, err := range errs {
				require.NoError(t, err)
			}
			w := storedWizard(t, store, sess.ID)
			assert.Equal(t, ids, w.ExcludedIDs())
			assert.Equal(t, promotion.Counts{}, w.Counts())
		})
	}
}

func TestConfirm_SendsExactlyTheToggledSet(t *testing.T) {
	for _, tc := range stores {
		t.Run(tc.name, func(t *testing.T) {
			store := tc.store(t)
			svc, b, sess := setup(t, store)
			openPreview(t, svc, sess)
			ctx := context.Background()

			_, err := svc.ToggleExclusion(ctx, sess, 7)
			require.NoError(t, err)
			_, err = svc.ToggleExclusion(ctx, sess, 11)
			require.NoError(t, err)

			view, err := svc.Confirm(ctx, sess)
			require.NoError(t, err)
			assert.Equal(t, promotion.StepSuccess, view.Step)
			assert.Equal(t, []int{7, 11}, b.sentExclusions())

			// another request writing its own key must not roll the wizard back
			_, err = store.Update(ctx, sess.ID, func(s *session.Session) error {
				return s.Put("student_detail", 5)
			})
			require.NoError(t, err)
			assert.Equal(t, promotion.StepSuccess, storedWizard(t, store, sess.ID).Step)

			_, err = svc.Confirm(ctx, sess)
			assert.ErrorIs(t, err, apperror.ErrConflict)
			assert.Equal(t, int32(1), b.confirms.Load())
		})
	}
}

func TestToggleExclusion_AfterConfirmIsRefused(t *testing.T) {
	store := session.NewMemoryStore()
	svc, _, sess := setup(t, store)
	openPreview(t, svc, sess)
	ctx := context.Background()

	stale, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, sess)
	require.NoError(t, err)

	_, err = svc.ToggleExclusion(ctx, stale, 5)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Empty(t, storedWizard(t, store, sess.ID).ExcludedIDs())
}

func TestPreview_DiscardedWhenWizardClosedMeanwhile(t *testing.T) {
	store := session.NewMemoryStore()
	svc, b, sess := setup(t, store)
	ctx := context.Background()

	_, err := svc.Start(ctx, sess)
	require.NoError(t, err)
	b.mu.Lock()
	b.onPreview = func() {
		assert.NoError(t, svc.Close(ctx, sess))
	}
	b.mu.Unlock()

	_, err = svc.Preview(ctx, sess)
	assert.ErrorIs(t, err, apperror.ErrConflict)
	assert.Equal(t, promotion.StepClosed, storedWizard(t, store, sess.ID).Step)
}

func TestHistory_CollapseKeepsCachedDetail(t *testing.T) {
	store := session.NewMemoryStore()
	svc, b, sess := setup(t, store)
	ctx := context.Background()

	h, err := svc.History(ctx, sess)
	require.NoError(t, err)
	require.Len(t, h.Items, 1)

	detail, err := svc.HistoryDetail(ctx, sess, 3)
	require.NoError(t, err)
	assert.Len(t, detail.Details, 1)

	h, err = svc.CollapseDetail(ctx, sess, 3)
	require.NoError(t, err)
	assert.Empty(t, h.ExpandedIDs())
	assert.Contains(t, h.Details, 3)

	_, err = svc.HistoryDetail(ctx, sess, 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), b.details.Load(), "detail is fetched once")

	stored, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	h, err = promotion.LoadHistory(stored)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, h.ExpandedIDs())
}
