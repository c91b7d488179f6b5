package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newInput(placeholder, value string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.SetValue(value)
	in.CharLimit = 128
	in.Width = 40
	return in
}

// openModal shows exactly one modal and runs its open hooks: the removal
// dialog recomputes its candidate list, the reminder dialog starts from a
// clean draft.
func (m *Model) openModal(kind modalKind) tea.Cmd {
	m.modal = kind
	m.focusIdx = 0
	m.inputs = nil
	m.labels = nil
	snap := m.store.Snapshot()

	switch kind {
	case modalNewReferrer:
		m.inputs = []textinput.Model{
			newInput("Referrer name", ""),
			newInput("0.55", ""),
		}
		m.labels = []string{"Name", "Base CPM"}
	case modalAddReferrals:
		m.area.SetValue("")
		m.area.Placeholder = "One driver per line, or comma separated"
	case modalRemoveReferrals:
		m.reloadCandidates()
		m.candSelected = map[int64]bool{}
		m.inputs = []textinput.Model{
			newInput("optional", ""),
			newInput("YYYY-MM-DD (optional)", ""),
		}
		m.labels = []string{"Reason", "Removed on"}
	case modalCPM:
		seed := seedCPM(snap.Referrers, m.selReferrer)
		m.inputs = []textinput.Model{
			newInput("0.55", fmt.Sprintf("%.2f", seed)),
		}
		m.labels = []string{"Base CPM"}
	case modalReminder:
		m.area.SetValue("")
		m.area.Placeholder = "Reminder text"
		m.reminderMode = "once"
		m.reminderSendNow = false
		m.inputs = []textinput.Model{
			newInput("YYYY-MM-DDTHH:MM", ""),
			newInput("Mon,Wed,Fri", ""),
			newInput("HH:MM", ""),
			newInput("path/to/photo.jpg", ""),
		}
		m.labels = []string{"Run at", "Days", "Time", "Photo file"}
	case modalAdminAdd:
		m.inputs = []textinput.Model{newInput("@username", "")}
		m.labels = []string{"Username"}
	case modalChatAdd:
		m.inputs = []textinput.Model{
			newInput("-100123456789", ""),
			newInput("optional", ""),
		}
		m.labels = []string{"Chat id", "Title"}
	case modalSchedule:
		m.inputs = []textinput.Model{
			newInput("Mon,Thu", weekdayList(snap.Schedule.Days)),
			newInput("HH:MM", snap.Schedule.TimeOfDay),
		}
		m.labels = []string{"Days", "Time"}
	}

	if kind == modalRemoveReferrals {
		// Land on the candidate list so j/k/space work right away.
		m.focusIdx = m.fieldCount()
	}
	return m.applyFocus()
}

// closeModal hides everything and resets transient state; a pending photo
// upload does not survive the reminder dialog closing.
func (m *Model) closeModal() {
	if m.modal == modalReminder {
		m.reminderMediaTok = ""
		m.uploading = false
	}
	m.modal = modalNone
	m.alertReturn = modalNone
	m.inputs = nil
	m.labels = nil
	m.area.Blur()
	m.confirm = confirmState{}
}

func (m *Model) usesArea() bool {
	return m.modal == modalAddReferrals || m.modal == modalReminder
}

func (m *Model) fieldCount() int {
	n := len(m.inputs)
	if m.usesArea() {
		n++
	}
	return n
}

func (m *Model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	areaOffset := 0
	if m.usesArea() {
		areaOffset = 1
		if m.focusIdx == 0 {
			cmd = m.area.Focus()
		} else {
			m.area.Blur()
		}
	}
	for i := range m.inputs {
		if i+areaOffset == m.focusIdx {
			c := m.inputs[i].Focus()
			if cmd == nil {
				cmd = c
			}
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

func (m *Model) cycleFocus(delta int) tea.Cmd {
	n := m.fieldCount()
	if m.modal == modalRemoveReferrals {
		n++ // extra slot for the candidate list
	}
	if n == 0 {
		return nil
	}
	m.focusIdx = (m.focusIdx + delta + n) % n
	return m.applyFocus()
}

func (m *Model) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.modal {
	case modalAlert:
		ret := m.alertReturn
		m.alertReturn = modalNone
		if ret != modalNone {
			m.modal = ret
			return m, nil
		}
		m.closeModal()
		return m, nil
	case modalConfirm:
		switch key {
		case "y", "enter":
			cmd := m.confirm.cmd
			m.modal = m.confirm.ret
			m.confirm = confirmState{}
			return m, cmd
		case "n", "esc":
			m.modal = m.confirm.ret
			m.confirm = confirmState{}
			return m, nil
		}
		return m, nil
	}

	switch key {
	case "esc":
		m.closeModal()
		return m, nil
	case "tab":
		return m, m.cycleFocus(1)
	case "shift+tab":
		return m, m.cycleFocus(-1)
	case "ctrl+s":
		return m, m.submit()
	case "enter":
		// Enter inside the textarea stays a newline.
		if !(m.usesArea() && m.focusIdx == 0) {
			return m, m.submit()
		}
	}

	if m.modal == modalReminder {
		switch key {
		case "ctrl+o":
			if m.reminderMode == "once" {
				m.reminderMode = "schedule"
			} else {
				m.reminderMode = "once"
			}
			return m, nil
		case "ctrl+n":
			m.reminderSendNow = !m.reminderSendNow
			return m, nil
		case "ctrl+u":
			path := strings.TrimSpace(m.inputs[3].Value())
			if path == "" {
				return m, m.openAlert("Pick a photo file first")
			}
			m.uploading = true
			return m, m.uploadMediaCmd(path)
		case "ctrl+p":
			return m, m.preview()
		}
	}

	if m.modal == modalRemoveReferrals && m.focusIdx == m.fieldCount() {
		// List slot focused: cursor and toggling.
		switch key {
		case "j", "down":
			if m.candCursor < len(m.candidates)-1 {
				m.candCursor++
			}
			return m, nil
		case "k", "up":
			if m.candCursor > 0 {
				m.candCursor--
			}
			return m, nil
		case " ":
			if m.candCursor < len(m.candidates) {
				id := m.candidates[m.candCursor].ID
				m.candSelected[id] = !m.candSelected[id]
			}
			return m, nil
		}
		return m, nil
	}

	return m, m.updateFocusedField(msg)
}

func (m *Model) updateFocusedField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.usesArea() && m.focusIdx == 0 {
		m.area, cmd = m.area.Update(msg)
		return cmd
	}
	idx := m.focusIdx
	if m.usesArea() {
		idx--
	}
	if idx >= 0 && idx < len(m.inputs) {
		m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	}
	return cmd
}

func (m *Model) selectedCandidateIDs() []int64 {
	var ids []int64
	for _, c := range m.candidates {
		if m.candSelected[c.ID] {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func (m *Model) submit() tea.Cmd {
	switch m.modal {
	case modalNewReferrer:
		f := newReferrerForm{name: m.inputs[0].Value(), rate: m.inputs[1].Value()}
		name, rate, err := f.validate()
		if err != nil {
			return m.openAlert(err.Error())
		}
		return actionCmd("Referrer added", refreshDashboard, func(ctx context.Context) error {
			return m.client.CreateReferrer(ctx, name, rate)
		})

	case modalAddReferrals:
		f := addReferralsForm{referrerID: m.selReferrer, names: m.area.Value()}
		if err := f.validate(); err != nil {
			return m.openAlert(err.Error())
		}
		count := len(splitNames(f.names))
		raw := f.names
		id := f.referrerID
		return m.openConfirm(fmt.Sprintf("Add %d referral(s)?", count),
			actionCmd("Referrals added", refreshDashboard, func(ctx context.Context) error {
				return m.client.AddReferrals(ctx, id, raw)
			}))

	case modalRemoveReferrals:
		f := removeReferralsForm{
			referrerID: m.selReferrer,
			selected:   m.selectedCandidateIDs(),
			reason:     m.inputs[0].Value(),
			removedAt:  m.inputs[1].Value(),
		}
		req, err := f.validate()
		if err != nil {
			return m.openAlert(err.Error())
		}
		id := f.referrerID
		return actionCmd("Referrals removed", refreshDashboard, func(ctx context.Context) error {
			return m.client.RemoveReferrals(ctx, id, req)
		})

	case modalCPM:
		f := cpmForm{referrerID: m.selReferrer, rate: m.inputs[0].Value()}
		rate, err := f.validate()
		if err != nil {
			return m.openAlert(err.Error())
		}
		id := f.referrerID
		return actionCmd("CPM updated", refreshDashboard, func(ctx context.Context) error {
			return m.client.UpdateReferrerCPM(ctx, id, rate)
		})

	case modalReminder:
		req, err := m.reminderDraft().build()
		if err != nil {
			return m.openAlert(err.Error())
		}
		return actionCmd("Reminder saved", refreshReminders, func(ctx context.Context) error {
			return m.client.CreateReminder(ctx, req)
		})

	case modalAdminAdd:
		f := adminAddForm{username: m.inputs[0].Value()}
		username, err := f.validate()
		if err != nil {
			return m.openAlert(err.Error())
		}
		return actionCmd("Admin added", refreshAdmins, func(ctx context.Context) error {
			return m.client.AddAdmin(ctx, username)
		})

	case modalChatAdd:
		f := chatAddForm{chatID: m.inputs[0].Value(), title: m.inputs[1].Value()}
		id, title, err := f.validate()
		if err != nil {
			return m.openAlert(err.Error())
		}
		return actionCmd("Chat approved", refreshChats, func(ctx context.Context) error {
			return m.client.AddChat(ctx, id, title)
		})

	case modalSchedule:
		f := scheduleForm{daysText: m.inputs[0].Value(), timeOfDay: m.inputs[1].Value()}
		days, tod, err := f.validate()
		if err != nil {
			return m.openAlert(err.Error())
		}
		return actionCmd("Schedule updated", refreshSchedule, func(ctx context.Context) error {
			_, err := m.client.UpdateAnnouncementSchedule(ctx, days, tod)
			return err
		})
	}
	return nil
}

func (m *Model) reminderDraft() reminderForm {
	return reminderForm{
		text:      m.area.Value(),
		mode:      m.reminderMode,
		sendNow:   m.reminderSendNow,
		runAt:     m.inputs[0].Value(),
		daysText:  m.inputs[1].Value(),
		timeOfDay: m.inputs[2].Value(),
		mediaPath: m.reminderMediaTok,
	}
}

// preview shares the create form's validation but hits the preview endpoint
// and never clears the draft.
func (m *Model) preview() tea.Cmd {
	req, err := m.reminderDraft().build()
	if err != nil {
		return m.openAlert(err.Error())
	}
	return func() tea.Msg {
		if err := m.client.PreviewReminder(context.Background(), req); err != nil {
			return actionDoneMsg{err: err}
		}
		return previewSentMsg{}
	}
}

type previewSentMsg struct{}
