package ui

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/refbonus-admin/pkg/api"
)

// Messages carry refresh completions and action results back onto the event
// loop; the store is only ever touched from Update when these arrive.

type meMsg struct {
	me  *api.Me
	err error
}

type dashboardMsg struct {
	dash *api.Dashboard
	err  error
}

type remindersMsg struct {
	reminders []api.Reminder
	err       error
}

type adminsMsg struct {
	list *api.AdminList
	err  error
}

type chatsMsg struct {
	list *api.ChatList
	err  error
}

type scheduleMsg struct {
	schedule *api.AnnouncementSchedule
	err      error
}

type refreshKind int

const (
	refreshNone refreshKind = iota
	refreshDashboard
	refreshReminders
	refreshAdmins
	refreshChats
	refreshSchedule
)

// actionDoneMsg is the single success/failure result of a dispatched
// mutation. On success the named refresh is issued; the response body is
// never applied directly.
type actionDoneMsg struct {
	status  string
	refresh refreshKind
	err     error
}

type uploadDoneMsg struct {
	path string
	err  error
}

type exportDoneMsg struct {
	path string
	err  error
}

type tickMsg time.Time

func (m *Model) fetchMeCmd() tea.Cmd {
	return func() tea.Msg {
		me, err := m.client.Me(context.Background())
		return meMsg{me: me, err: err}
	}
}

func (m *Model) fetchDashboardCmd() tea.Cmd {
	return func() tea.Msg {
		dash, err := m.client.Referrers(context.Background())
		return dashboardMsg{dash: dash, err: err}
	}
}

func (m *Model) fetchRemindersCmd() tea.Cmd {
	return func() tea.Msg {
		rs, err := m.client.Reminders(context.Background())
		return remindersMsg{reminders: rs, err: err}
	}
}

func (m *Model) fetchAdminsCmd() tea.Cmd {
	return func() tea.Msg {
		l, err := m.client.Admins(context.Background())
		return adminsMsg{list: l, err: err}
	}
}

func (m *Model) fetchChatsCmd() tea.Cmd {
	return func() tea.Msg {
		l, err := m.client.Chats(context.Background())
		return chatsMsg{list: l, err: err}
	}
}

func (m *Model) fetchScheduleCmd() tea.Cmd {
	return func() tea.Msg {
		sc, err := m.client.AnnouncementSchedule(context.Background())
		return scheduleMsg{schedule: sc, err: err}
	}
}

func (m *Model) refreshCmd(kind refreshKind) tea.Cmd {
	switch kind {
	case refreshDashboard:
		return m.fetchDashboardCmd()
	case refreshReminders:
		return m.fetchRemindersCmd()
	case refreshAdmins:
		return m.fetchAdminsCmd()
	case refreshChats:
		return m.fetchChatsCmd()
	case refreshSchedule:
		return m.fetchScheduleCmd()
	}
	return nil
}

// actionCmd wraps a mutation: the call's error (already message-bearing from
// the client) rides back in actionDoneMsg untouched.
func actionCmd(status string, refresh refreshKind, call func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := call(context.Background()); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: status, refresh: refresh}
	}
}

func (m *Model) uploadMediaCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadDoneMsg{err: err}
		}
		defer f.Close()
		token, err := m.client.UploadReminderMedia(context.Background(), filepath.Base(path), f)
		return uploadDoneMsg{path: token, err: err}
	}
}

func (m *Model) exportCmd() tea.Cmd {
	dir := m.exportPath
	return func() tea.Msg {
		data, filename, err := m.client.ExportReferrals(context.Background())
		if err != nil {
			return exportDoneMsg{err: err}
		}
		if filename == "" {
			filename = "referrals.xlsx"
		}
		dest := filepath.Join(dir, filename)
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: dest}
	}
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}
