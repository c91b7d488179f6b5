package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbonus-admin/pkg/api"
)

func sampleDashboard() api.Dashboard {
	return api.Dashboard{
		Summary: api.Summary{TotalReferrals: 8, TotalCash: 4000},
		Referrers: []api.Referrer{
			{ID: 1, Name: "Alice", BaseCPM: 0.55, ReferralCount: 5, Referrals: []api.Referral{
				{ID: 10, Name: "Driver One"},
				{ID: 11, Name: "Driver Two", IsRemoved: true, RemovedAt: "2026-08-01", RemovedReason: "quit"},
			}},
			{ID: 2, Name: "Bob", BaseCPM: 0.60, ReferralCount: 3},
		},
		Leaderboard: []api.LeaderboardRow{
			{Name: "Alice", Count: 5, Bonus: 10},
			{Name: "Bob", Count: 3, Bonus: 5},
		},
	}
}

func TestApplyDashboardReplacesSlices(t *testing.T) {
	s := New()
	s.ApplyDashboard(sampleDashboard())

	snap := s.Snapshot()
	assert.Len(t, snap.Referrers, 2)
	assert.Equal(t, "Alice", snap.TopLeader())

	s.ApplyDashboard(api.Dashboard{})
	snap = s.Snapshot()
	assert.Empty(t, snap.Referrers)
	assert.Empty(t, snap.TopLeader())
}

func TestRemovalCandidatesExcludeRemoved(t *testing.T) {
	s := New()
	s.ApplyDashboard(sampleDashboard())

	cands := s.Snapshot().RemovalCandidates(1)
	require.Len(t, cands, 1)
	assert.Equal(t, int64(10), cands[0].ID)

	assert.Empty(t, s.Snapshot().RemovalCandidates(99))
}

func TestReferrerByID(t *testing.T) {
	s := New()
	s.ApplyDashboard(sampleDashboard())

	ref := s.Snapshot().ReferrerByID(2)
	require.NotNil(t, ref)
	assert.Equal(t, "Bob", ref.Name)
	assert.Nil(t, s.Snapshot().ReferrerByID(42))
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []string
	primary  bool
	failMe   bool
}

func (f *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	record := func(path string) {
		f.mu.Lock()
		f.requests = append(f.requests, path)
		f.mu.Unlock()
	}
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		record("/api/me")
		if f.failMe {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"ok":false,"error":"Unauthorized"}`))
			return
		}
		if f.primary {
			w.Write([]byte(`{"ok":true,"user":{"id":1},"is_primary":true}`))
		} else {
			w.Write([]byte(`{"ok":true,"user":{"id":2},"is_primary":false}`))
		}
	})
	mux.HandleFunc("/api/referrers", func(w http.ResponseWriter, r *http.Request) {
		record("/api/referrers")
		w.Write([]byte(`{"ok":true,"summary":{"total_referrals":1,"total_cash":500,"program":{"step":5,"step_bonus":1,"cash_per_referral":500}},"referrers":[{"id":1,"name":"Alice","base_cpm":0.55,"referral_count":1,"bonus_cpm":0,"new_cpm":0.55,"referrals":[]}],"leaderboard":[{"name":"Alice","count":1,"bonus":0}]}`))
	})
	mux.HandleFunc("/api/reminders", func(w http.ResponseWriter, r *http.Request) {
		record("/api/reminders")
		w.Write([]byte(`{"ok":true,"reminders":[{"id":1,"text":"hi","type":"once","schedule":"[Once] soon","active":true,"has_media":false}]}`))
	})
	mux.HandleFunc("/api/admins", func(w http.ResponseWriter, r *http.Request) {
		record("/api/admins")
		w.Write([]byte(`{"ok":true,"base":[{"id":1,"username":"boss","is_primary":true}],"extras":[{"user_id":5,"username":"helper"}]}`))
	})
	mux.HandleFunc("/api/approved_chats", func(w http.ResponseWriter, r *http.Request) {
		record("/api/approved_chats")
		w.Write([]byte(`{"ok":true,"base":[{"chat_id":-100,"title":"Chat -100"}],"entries":[{"chat_id":-200,"title":"Drivers"}]}`))
	})
	return mux
}

func newBootstrapFixture(t *testing.T, f *fakeBackend) (*Store, *api.Client) {
	t.Helper()
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return New(), api.New(srv.URL, "init", 5*time.Second)
}

func TestBootstrapPrimaryFetchesAccessControl(t *testing.T) {
	f := &fakeBackend{primary: true}
	s, c := newBootstrapFixture(t, f)

	require.NoError(t, s.Bootstrap(context.Background(), c))

	snap := s.Snapshot()
	assert.True(t, snap.User.IsPrimary)
	assert.Len(t, snap.Referrers, 1)
	assert.Len(t, snap.Reminders, 1)
	assert.Len(t, snap.Admins.Extras, 1)
	assert.Len(t, snap.Chats.Entries, 1)

	// Identity always first; access-control data only after the first wave.
	require.GreaterOrEqual(t, len(f.requests), 5)
	assert.Equal(t, "/api/me", f.requests[0])
	idx := map[string]int{}
	for i, p := range f.requests {
		idx[p] = i
	}
	assert.Greater(t, idx["/api/admins"], idx["/api/referrers"])
	assert.Greater(t, idx["/api/admins"], idx["/api/reminders"])
	assert.Greater(t, idx["/api/approved_chats"], idx["/api/referrers"])
}

func TestBootstrapNonPrimarySkipsAccessControl(t *testing.T) {
	f := &fakeBackend{}
	s, c := newBootstrapFixture(t, f)

	require.NoError(t, s.Bootstrap(context.Background(), c))

	assert.NotContains(t, f.requests, "/api/admins")
	assert.NotContains(t, f.requests, "/api/approved_chats")
	assert.Empty(t, s.Snapshot().Admins.Base)
}

func TestBootstrapAbortsOnIdentityFailure(t *testing.T) {
	f := &fakeBackend{failMe: true}
	s, c := newBootstrapFixture(t, f)

	err := s.Bootstrap(context.Background(), c)
	require.Error(t, err)
	assert.EqualError(t, err, "Unauthorized")
	assert.Equal(t, []string{"/api/me"}, f.requests)
	assert.Empty(t, s.Snapshot().Referrers)
}

func TestFailedRefreshLeavesSnapshotIntact(t *testing.T) {
	s := New()
	s.ApplyDashboard(sampleDashboard())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"ok":false,"error":"down"}`))
	}))
	defer srv.Close()
	c := api.New(srv.URL, "init", 5*time.Second)

	_, err := c.Referrers(context.Background())
	require.Error(t, err)
	// Nothing applied: the previous snapshot is untouched.
	assert.Len(t, s.Snapshot().Referrers, 2)
	assert.Equal(t, "Alice", s.Snapshot().TopLeader())
}

func TestEveryReferralBelongsToItsReferrer(t *testing.T) {
	s := New()
	s.ApplyDashboard(sampleDashboard())

	snap := s.Snapshot()
	for _, ref := range snap.Referrers {
		for _, r := range ref.Referrals {
			owner := snap.ReferrerByID(ref.ID)
			require.NotNil(t, owner, "referral %d has no referrer in snapshot", r.ID)
		}
	}
}
