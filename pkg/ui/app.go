// Package ui is the terminal front end for the referral-bonus admin
// dashboard. It follows the Elm architecture: all state lives in Model, every
// network call is a command, and the store snapshot is only replaced by
// refresh completions arriving in Update.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/refbonus-admin/pkg/api"
	"github.com/refbonus-admin/pkg/config"
	"github.com/refbonus-admin/pkg/store"
)

type tab int

const (
	tabDashboard tab = iota
	tabReminders
	tabAdmins
	tabChats
)

type modalKind int

const (
	modalNone modalKind = iota
	modalNewReferrer
	modalAddReferrals
	modalRemoveReferrals
	modalCPM
	modalReminder
	modalAdminAdd
	modalChatAdd
	modalSchedule
	modalConfirm
	modalAlert
)

type confirmState struct {
	prompt string
	cmd    tea.Cmd
	ret    modalKind // modal to restore when the dialog is dismissed
}

type Model struct {
	client       *api.Client
	store        *store.Store
	theme        Theme
	exportPath   string
	refreshEvery time.Duration

	tab   tab
	modal modalKind

	width  int
	height int
	status string

	alertText   string
	alertReturn modalKind
	confirm     confirmState

	// bootstrap: referrers/reminders/schedule fire together after /me; the
	// privileged admins+chats wave waits until all of them settle.
	bootPending int
	bootFailed  bool

	// dashboard selection
	refCursor   int
	selReferrer int64

	remCursor   int
	adminCursor int
	chatCursor  int

	// form state, rebuilt on every modal open
	inputs   []textinput.Model
	labels   []string
	focusIdx int
	area     textarea.Model

	reminderMode     string
	reminderSendNow  bool
	reminderMediaTok string // server token of the pending upload
	uploading        bool

	// removal candidates for the currently selected referrer
	candidates   []api.Referral
	candCursor   int
	candSelected map[int64]bool
}

func NewModel(cfg *config.Config, client *api.Client) *Model {
	area := textarea.New()
	area.ShowLineNumbers = false
	area.SetWidth(60)
	area.SetHeight(5)

	return &Model{
		client:       client,
		store:        store.New(),
		theme:        NewTheme(DetectScheme(cfg.Theme)),
		exportPath:   cfg.ExportPath,
		refreshEvery: cfg.RefreshInterval,
		area:         area,
		reminderMode: "once",
		candSelected: map[int64]bool{},
		status:       "Connecting...",
	}
}

func Run(cfg *config.Config, client *api.Client) error {
	p := tea.NewProgram(NewModel(cfg, client), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.fetchMeCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case meMsg:
		if msg.err != nil {
			// No partial UI pretending to be logged in.
			m.bootFailed = true
			m.status = "Login failed"
			return m, m.openAlert(msg.err.Error())
		}
		m.store.ApplyMe(*msg.me)
		m.status = "Loading..."
		m.bootPending = 3
		return m, tea.Batch(m.fetchDashboardCmd(), m.fetchRemindersCmd(), m.fetchScheduleCmd())

	case dashboardMsg:
		cmd := m.bootStep()
		if msg.err != nil {
			m.status = "Refresh failed: " + msg.err.Error()
			return m, cmd
		}
		m.store.ApplyDashboard(*msg.dash)
		m.syncReferrerSelection()
		m.status = fmt.Sprintf("Updated %s", time.Now().Format("15:04:05"))
		return m, cmd

	case remindersMsg:
		cmd := m.bootStep()
		if msg.err != nil {
			m.status = "Refresh failed: " + msg.err.Error()
			return m, cmd
		}
		m.store.ApplyReminders(msg.reminders)
		if n := len(msg.reminders); m.remCursor >= n && n > 0 {
			m.remCursor = n - 1
		}
		return m, cmd

	case scheduleMsg:
		cmd := m.bootStep()
		if msg.err == nil {
			m.store.ApplySchedule(*msg.schedule)
		}
		return m, cmd

	case adminsMsg:
		if msg.err != nil {
			m.status = "Refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.store.ApplyAdmins(*msg.list)
		if n := len(msg.list.Extras); m.adminCursor >= n && n > 0 {
			m.adminCursor = n - 1
		}
		return m, nil

	case chatsMsg:
		if msg.err != nil {
			m.status = "Refresh failed: " + msg.err.Error()
			return m, nil
		}
		m.store.ApplyChats(*msg.list)
		if n := len(msg.list.Entries); m.chatCursor >= n && n > 0 {
			m.chatCursor = n - 1
		}
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			// Inputs stay as typed; nothing was mutated locally.
			return m, m.openAlert(msg.err.Error())
		}
		m.status = msg.status
		m.closeModal()
		return m, m.refreshCmd(msg.refresh)

	case uploadDoneMsg:
		m.uploading = false
		if msg.err != nil {
			// Roll back the file field so a retry starts clean.
			m.reminderMediaTok = ""
			if m.modal == modalReminder && len(m.inputs) == 4 {
				m.inputs[3].SetValue("")
			}
			return m, m.openAlert(msg.err.Error())
		}
		m.reminderMediaTok = msg.path
		m.status = "Photo attached"
		return m, nil

	case previewSentMsg:
		m.status = "Preview sent"
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			return m, m.openAlert(msg.err.Error())
		}
		m.status = "Exported to " + msg.path
		return m, nil

	case tickMsg:
		if m.refreshEvery <= 0 {
			return m, nil
		}
		return m, tea.Batch(m.fetchDashboardCmd(), tickCmd(m.refreshEvery))

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Non-key messages (cursor blink and friends) still feed the focused
	// field while a form is open.
	if m.modal != modalNone {
		return m, m.updateFocusedField(msg)
	}
	return m, nil
}

// bootStep counts down the first refresh wave; when it settles a primary
// admin gets the access-control wave, and background refresh starts.
func (m *Model) bootStep() tea.Cmd {
	if m.bootPending == 0 {
		return nil
	}
	m.bootPending--
	if m.bootPending > 0 {
		return nil
	}
	var cmds []tea.Cmd
	if m.refreshEvery > 0 {
		cmds = append(cmds, tickCmd(m.refreshEvery))
	}
	if m.store.IsPrimary() {
		cmds = append(cmds, m.fetchAdminsCmd(), m.fetchChatsCmd())
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// syncReferrerSelection repopulates everything derived from the referrer
// list: the selection itself (kept only when still present) and the removal
// candidates for the remove dialog.
func (m *Model) syncReferrerSelection() {
	snap := m.store.Snapshot()
	ids := referrerIDs(snap.Referrers)
	m.selReferrer = retainSelection(ids, m.selReferrer)
	m.refCursor = 0
	for i, id := range ids {
		if id == m.selReferrer {
			m.refCursor = i
			break
		}
	}
	m.reloadCandidates()
}

func (m *Model) reloadCandidates() {
	m.candidates = m.store.Snapshot().RemovalCandidates(m.selReferrer)
	m.candCursor = 0
	for id := range m.candSelected {
		if !containsReferral(m.candidates, id) {
			delete(m.candSelected, id)
		}
	}
}

func containsReferral(rs []api.Referral, id int64) bool {
	for _, r := range rs {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		return m, tea.Quit
	}
	if m.modal != modalNone {
		return m.handleModalKey(msg)
	}
	if m.bootFailed {
		if key == "q" {
			return m, tea.Quit
		}
		return m, nil
	}

	switch key {
	case "q":
		return m, tea.Quit
	case "R":
		return m, tea.Batch(m.fetchDashboardCmd(), m.fetchRemindersCmd(), m.fetchScheduleCmd())
	case "1":
		m.tab = tabDashboard
		return m, nil
	case "2":
		m.tab = tabReminders
		return m, nil
	case "3":
		if m.store.IsPrimary() {
			m.tab = tabAdmins
		}
		return m, nil
	case "4":
		if m.store.IsPrimary() {
			m.tab = tabChats
		}
		return m, nil
	}

	switch m.tab {
	case tabDashboard:
		return m.handleDashboardKey(key)
	case tabReminders:
		return m.handleRemindersKey(key)
	case tabAdmins:
		return m.handleAdminsKey(key)
	case tabChats:
		return m.handleChatsKey(key)
	}
	return m, nil
}

func (m *Model) handleDashboardKey(key string) (tea.Model, tea.Cmd) {
	snap := m.store.Snapshot()
	switch key {
	case "j", "down":
		if m.refCursor < len(snap.Referrers)-1 {
			m.refCursor++
			m.selReferrer = snap.Referrers[m.refCursor].ID
			m.reloadCandidates()
		}
	case "k", "up":
		if m.refCursor > 0 {
			m.refCursor--
			m.selReferrer = snap.Referrers[m.refCursor].ID
			m.reloadCandidates()
		}
	case "n":
		return m, m.openModal(modalNewReferrer)
	case "a":
		if m.selReferrer != 0 {
			return m, m.openModal(modalAddReferrals)
		}
	case "r":
		if m.selReferrer != 0 {
			return m, m.openModal(modalRemoveReferrals)
		}
	case "c":
		if m.selReferrer != 0 {
			return m, m.openModal(modalCPM)
		}
	case "s":
		return m, m.openModal(modalSchedule)
	case "A":
		ref := snap.ReferrerByID(m.selReferrer)
		if ref == nil {
			return m, nil
		}
		id := ref.ID
		return m, m.openConfirm(
			fmt.Sprintf("Send the bonus announcement for %s to all approved chats?", ref.Name),
			actionCmd("Announcement sent", refreshDashboard, func(ctx context.Context) error {
				return m.client.Announce(ctx, id)
			}),
		)
	case "e":
		m.status = "Exporting..."
		return m, m.exportCmd()
	}
	return m, nil
}

func (m *Model) handleRemindersKey(key string) (tea.Model, tea.Cmd) {
	reminders := m.store.Snapshot().Reminders
	switch key {
	case "j", "down":
		if m.remCursor < len(reminders)-1 {
			m.remCursor++
		}
	case "k", "up":
		if m.remCursor > 0 {
			m.remCursor--
		}
	case "n":
		return m, m.openModal(modalReminder)
	case "t":
		if m.remCursor >= len(reminders) {
			return m, nil
		}
		r := reminders[m.remCursor]
		// The control shows "Disable" while active, so acting on it flips
		// the displayed state.
		next := !r.Active
		id := r.ID
		return m, actionCmd("Reminder updated", refreshReminders, func(ctx context.Context) error {
			return m.client.ToggleReminder(ctx, id, next)
		})
	case "d":
		if m.remCursor >= len(reminders) {
			return m, nil
		}
		id := reminders[m.remCursor].ID
		return m, m.openConfirm("Delete this reminder?",
			actionCmd("Reminder deleted", refreshReminders, func(ctx context.Context) error {
				return m.client.DeleteReminder(ctx, id)
			}))
	}
	return m, nil
}

func (m *Model) handleAdminsKey(key string) (tea.Model, tea.Cmd) {
	extras := m.store.Snapshot().Admins.Extras
	switch key {
	case "j", "down":
		if m.adminCursor < len(extras)-1 {
			m.adminCursor++
		}
	case "k", "up":
		if m.adminCursor > 0 {
			m.adminCursor--
		}
	case "a":
		return m, m.openModal(modalAdminAdd)
	case "d":
		if m.adminCursor >= len(extras) {
			return m, nil
		}
		entry := extras[m.adminCursor]
		uid := entry.UID()
		return m, m.openConfirm(fmt.Sprintf("Remove admin %s?", adminLabel(entry)),
			actionCmd("Admin removed", refreshAdmins, func(ctx context.Context) error {
				return m.client.RemoveAdmin(ctx, uid)
			}))
	}
	return m, nil
}

func (m *Model) handleChatsKey(key string) (tea.Model, tea.Cmd) {
	entries := m.store.Snapshot().Chats.Entries
	switch key {
	case "j", "down":
		if m.chatCursor < len(entries)-1 {
			m.chatCursor++
		}
	case "k", "up":
		if m.chatCursor > 0 {
			m.chatCursor--
		}
	case "a":
		return m, m.openModal(modalChatAdd)
	case "d":
		if m.chatCursor >= len(entries) {
			return m, nil
		}
		entry := entries[m.chatCursor]
		id := entry.ChatID
		return m, m.openConfirm(fmt.Sprintf("Remove %s from approved chats?", chatLabel(entry)),
			actionCmd("Chat removed", refreshChats, func(ctx context.Context) error {
				return m.client.RemoveChat(ctx, id)
			}))
	}
	return m, nil
}

// openAlert interrupts with a blocking message. When a form is open its
// fields stay as typed and dismissing the alert returns to it.
func (m *Model) openAlert(text string) tea.Cmd {
	log.Debug().Str("alert", text).Msg("alert shown")
	if m.modal != modalNone && m.modal != modalAlert && m.modal != modalConfirm {
		m.alertReturn = m.modal
	}
	m.alertText = text
	m.modal = modalAlert
	return nil
}

func (m *Model) openConfirm(prompt string, cmd tea.Cmd) tea.Cmd {
	ret := m.modal
	if ret == modalConfirm || ret == modalAlert {
		ret = modalNone
	}
	m.confirm = confirmState{prompt: prompt, cmd: cmd, ret: ret}
	m.modal = modalConfirm
	return nil
}
