package ui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refbonus-admin/pkg/api"
	"github.com/refbonus-admin/pkg/config"
)

func newTestModel() *Model {
	cfg := &config.Config{Theme: "light", ExportPath: "."}
	return NewModel(cfg, api.New("http://backend.invalid", "init", time.Second))
}

func testDashboard() api.Dashboard {
	return api.Dashboard{
		Summary: api.Summary{TotalReferrals: 3, TotalCash: 1500},
		Referrers: []api.Referrer{
			{ID: 1, Name: "Alice", BaseCPM: 0.55, NewCPM: 0.55, ReferralCount: 2, Referrals: []api.Referral{
				{ID: 10, Name: "Driver One"},
				{ID: 11, Name: "Driver Two", IsRemoved: true, RemovedAt: "2026-08-01"},
			}},
			{ID: 2, Name: "Bob", BaseCPM: 0.60, NewCPM: 0.60, ReferralCount: 1},
		},
		Leaderboard: []api.LeaderboardRow{{Name: "Alice", Count: 2, Bonus: 0}},
	}
}

func signIn(m *Model, primary bool) {
	m.Update(meMsg{me: &api.Me{User: api.User{ID: 1}, IsPrimary: primary}})
	m.Update(dashboardMsg{dash: ptr(testDashboard())})
	m.Update(remindersMsg{})
	m.Update(scheduleMsg{schedule: &api.AnnouncementSchedule{}})
}

func ptr[T any](v T) *T { return &v }

func key(s string) tea.KeyMsg {
	if s == "esc" {
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoginFailureBlocksUI(t *testing.T) {
	m := newTestModel()
	m.Update(meMsg{err: &api.Error{Status: 401, Message: "Unauthorized"}})

	assert.True(t, m.bootFailed)
	assert.Equal(t, modalAlert, m.modal)
	assert.Equal(t, "Unauthorized", m.alertText)

	// Dismissing the alert leaves the sign-in failure screen, not a dashboard.
	m.Update(key("x"))
	assert.Contains(t, m.View(), "Could not sign in")
}

func TestBootstrapWavesForPrimary(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(meMsg{me: &api.Me{IsPrimary: true}})
	require.NotNil(t, cmd)
	assert.Equal(t, 3, m.bootPending)

	m.Update(dashboardMsg{dash: ptr(testDashboard())})
	m.Update(remindersMsg{})
	assert.Equal(t, 1, m.bootPending)

	// The last completion of the first wave triggers the privileged wave.
	_, cmd = m.Update(scheduleMsg{schedule: &api.AnnouncementSchedule{}})
	assert.Zero(t, m.bootPending)
	assert.NotNil(t, cmd)
}

func TestBootstrapNoSecondWaveForRegularAdmin(t *testing.T) {
	m := newTestModel()
	m.Update(meMsg{me: &api.Me{IsPrimary: false}})
	m.Update(dashboardMsg{dash: ptr(testDashboard())})
	m.Update(remindersMsg{})
	_, cmd := m.Update(scheduleMsg{schedule: &api.AnnouncementSchedule{}})
	assert.Nil(t, cmd)
}

func TestAdminTabsGatedByPrimary(t *testing.T) {
	m := newTestModel()
	signIn(m, false)

	m.Update(key("3"))
	assert.Equal(t, tabDashboard, m.tab)

	m2 := newTestModel()
	signIn(m2, true)
	m2.Update(key("3"))
	assert.Equal(t, tabAdmins, m2.tab)
}

func TestFailedMutationLeavesRenderedValueAndShowsError(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	require.Contains(t, m.renderTab(), "0.55")

	// Simulated PATCH failure: the store was never touched, so the rendered
	// CPM is unchanged and the backend message is displayed.
	m.Update(actionDoneMsg{err: &api.Error{Status: 400, Message: "bad rate"}})
	assert.Equal(t, modalAlert, m.modal)
	assert.Contains(t, m.View(), "bad rate")

	m.Update(key("x")) // dismiss
	assert.Contains(t, m.renderTab(), "0.55")
}

func TestSuccessfulMutationClosesModalAndRefreshes(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	m.openModal(modalNewReferrer)

	_, cmd := m.Update(actionDoneMsg{status: "Referrer added", refresh: refreshDashboard})
	assert.Equal(t, modalNone, m.modal)
	assert.Equal(t, "Referrer added", m.status)
	assert.NotNil(t, cmd)
}

func TestClosingReminderModalResetsMediaState(t *testing.T) {
	m := newTestModel()
	signIn(m, false)

	m.openModal(modalReminder)
	m.reminderMediaTok = "abc123.jpg"
	m.closeModal()
	assert.Empty(t, m.reminderMediaTok)

	m.openModal(modalReminder)
	assert.Equal(t, "No photo selected.", m.mediaStateLabel())
}

func TestUploadFailureRollsBackFileField(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	m.openModal(modalReminder)
	m.inputs[3].SetValue("/tmp/photo.jpg")
	m.reminderMediaTok = "stale"

	m.Update(uploadDoneMsg{err: assert.AnError})
	assert.Empty(t, m.reminderMediaTok)
	assert.Empty(t, m.inputs[3].Value())
	assert.Equal(t, modalAlert, m.modal)

	// Dismissing the alert returns to the reminder form.
	m.Update(key("x"))
	assert.Equal(t, modalReminder, m.modal)
}

func TestDashboardRefreshPreservesSelection(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	m.Update(key("j")) // move selection to Bob (id 2)
	require.Equal(t, int64(2), m.selReferrer)

	d := api.Dashboard{Referrers: []api.Referrer{{ID: 2, Name: "Bob"}, {ID: 3, Name: "Cara"}}}
	m.Update(dashboardMsg{dash: &d})
	assert.Equal(t, int64(2), m.selReferrer)

	d2 := api.Dashboard{Referrers: []api.Referrer{{ID: 3, Name: "Cara"}}}
	m.Update(dashboardMsg{dash: &d2})
	assert.Equal(t, int64(3), m.selReferrer)
}

func TestRemoveModalExcludesRemovedReferrals(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	require.Equal(t, int64(1), m.selReferrer)

	m.openModal(modalRemoveReferrals)
	require.Len(t, m.candidates, 1)
	assert.Equal(t, int64(10), m.candidates[0].ID)

	// Space toggles the highlighted candidate.
	m.Update(key(" "))
	assert.Equal(t, []int64{10}, m.selectedCandidateIDs())
}

func TestValidationErrorReturnsToForm(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	m.openModal(modalNewReferrer) // empty fields

	m.submit()
	assert.Equal(t, modalAlert, m.modal)
	assert.Equal(t, "Name required", m.alertText)

	m.Update(key("x"))
	assert.Equal(t, modalNewReferrer, m.modal)
	assert.NotNil(t, m.inputs)
}

func TestEscClosesModal(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	m.openModal(modalAdminAdd)

	m.Update(key("esc"))
	assert.Equal(t, modalNone, m.modal)
	assert.Nil(t, m.inputs)
}

func TestConfirmCancelRestoresForm(t *testing.T) {
	m := newTestModel()
	signIn(m, false)
	m.openModal(modalAddReferrals)
	m.area.SetValue("a, b\nc")

	m.submit()
	require.Equal(t, modalConfirm, m.modal)
	assert.Contains(t, m.confirm.prompt, "3 referral(s)")

	m.Update(key("n"))
	assert.Equal(t, modalAddReferrals, m.modal)
	assert.Equal(t, "a, b\nc", m.area.Value())
}

func TestFailedRefreshKeepsPreviousSnapshot(t *testing.T) {
	m := newTestModel()
	signIn(m, false)

	m.Update(dashboardMsg{err: &api.Error{Message: "down"}})
	assert.Contains(t, m.renderTab(), "Alice")
	assert.Contains(t, m.status, "down")
}
