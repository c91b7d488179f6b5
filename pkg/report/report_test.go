package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refbonus-admin/pkg/api"
	"github.com/refbonus-admin/pkg/store"
)

func TestWriteRendersAllSections(t *testing.T) {
	s := store.New()
	s.ApplyDashboard(api.Dashboard{
		Summary: api.Summary{TotalReferrals: 4, TotalCash: 2000},
		Referrers: []api.Referrer{
			{ID: 1, Name: "Alice", BaseCPM: 0.55, NewCPM: 0.57, BonusCPM: 2, ReferralCount: 4},
		},
		Leaderboard: []api.LeaderboardRow{{Name: "Alice", Count: 4, Bonus: 2}},
	})
	s.ApplyReminders([]api.Reminder{{ID: 9, Text: "weekly ping", Schedule: "[Schedule Mon] 09:00", Active: true}})

	var buf bytes.Buffer
	Write(&buf, s.Snapshot())
	out := buf.String()

	assert.Contains(t, out, "Total referrals: 4")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "0.57")
	assert.Contains(t, out, "weekly ping")
}
