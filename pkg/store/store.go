// Package store holds the client's authoritative in-memory snapshot of the
// referral program. Slices are replaced wholesale after a confirmed fetch and
// never patched in place: mutations go to the backend, become visible only
// through the next refresh, and a failed fetch leaves the prior snapshot
// intact. Overlapping refreshes are last-write-wins per slice; the event loop
// applies completions one at a time, so no locking is needed there.
package store

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/refbonus-admin/pkg/api"
)

type Snapshot struct {
	User        api.Me
	Summary     api.Summary
	Referrers   []api.Referrer
	Leaderboard []api.LeaderboardRow
	Reminders   []api.Reminder
	Admins      api.AdminList
	Chats       api.ChatList
	Schedule    api.AnnouncementSchedule
}

type Store struct {
	snap Snapshot
}

func New() *Store { return &Store{} }

func (s *Store) Snapshot() Snapshot { return s.snap }

func (s *Store) ApplyMe(me api.Me) { s.snap.User = me }

func (s *Store) ApplyDashboard(d api.Dashboard) {
	s.snap.Summary = d.Summary
	s.snap.Referrers = d.Referrers
	s.snap.Leaderboard = d.Leaderboard
}

func (s *Store) ApplyReminders(rs []api.Reminder) { s.snap.Reminders = rs }

func (s *Store) ApplyAdmins(l api.AdminList) { s.snap.Admins = l }

func (s *Store) ApplyChats(l api.ChatList) { s.snap.Chats = l }

func (s *Store) ApplySchedule(sc api.AnnouncementSchedule) { s.snap.Schedule = sc }

func (s *Store) IsPrimary() bool { return s.snap.User.IsPrimary }

// ReferrerByID returns nil when the id is not in the current snapshot.
func (s Snapshot) ReferrerByID(id int64) *api.Referrer {
	for i := range s.Referrers {
		if s.Referrers[i].ID == id {
			return &s.Referrers[i]
		}
	}
	return nil
}

// RemovalCandidates lists the referrals of one referrer that are still
// eligible for removal, i.e. not already marked removed.
func (s Snapshot) RemovalCandidates(referrerID int64) []api.Referral {
	ref := s.ReferrerByID(referrerID)
	if ref == nil {
		return nil
	}
	var out []api.Referral
	for _, r := range ref.Referrals {
		if !r.IsRemoved {
			out = append(out, r)
		}
	}
	return out
}

// TopLeader returns the first leaderboard name, "" when empty.
func (s Snapshot) TopLeader() string {
	if len(s.Leaderboard) == 0 {
		return ""
	}
	return s.Leaderboard[0].Name
}

// Bootstrap performs the initial load: identity first (abort on failure, so
// no partial state is ever shown as logged in), then referrers and reminders
// concurrently, then — for the primary admin only — admins and chats
// concurrently once the first wave has settled.
func (s *Store) Bootstrap(ctx context.Context, c *api.Client) error {
	me, err := c.Me(ctx)
	if err != nil {
		return err
	}
	s.ApplyMe(*me)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := c.Referrers(gctx)
		if err != nil {
			return err
		}
		s.ApplyDashboard(*d)
		return nil
	})
	g.Go(func() error {
		rs, err := c.Reminders(gctx)
		if err != nil {
			return err
		}
		s.ApplyReminders(rs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if !me.IsPrimary {
		return nil
	}
	g2, g2ctx := errgroup.WithContext(ctx)
	g2.Go(func() error {
		l, err := c.Admins(g2ctx)
		if err != nil {
			return err
		}
		s.ApplyAdmins(*l)
		return nil
	})
	g2.Go(func() error {
		l, err := c.Chats(g2ctx)
		if err != nil {
			return err
		}
		s.ApplyChats(*l)
		return nil
	})
	return g2.Wait()
}
