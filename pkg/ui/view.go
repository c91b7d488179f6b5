package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.bootFailed && m.modal == modalNone {
		return m.theme.ErrorText.Render("Could not sign in.") + "\n" + m.theme.Muted.Render("Press q to quit.") + "\n"
	}

	var b strings.Builder
	b.WriteString(m.renderHeader() + "\n\n")

	if m.modal != modalNone {
		b.WriteString(m.renderModal())
	} else {
		b.WriteString(m.renderTab())
	}

	b.WriteString("\n" + m.theme.Muted.Render(m.status) + "\n")
	b.WriteString(m.theme.Muted.Render(m.helpLine()) + "\n")
	return b.String()
}

func (m *Model) renderHeader() string {
	type tabDef struct {
		t     tab
		label string
	}
	tabs := []tabDef{
		{tabDashboard, "1 Dashboard"},
		{tabReminders, "2 Reminders"},
	}
	if m.store.IsPrimary() {
		tabs = append(tabs, tabDef{tabAdmins, "3 Admins"}, tabDef{tabChats, "4 Chats"})
	}
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		if t.t == m.tab {
			parts = append(parts, m.theme.ActiveTab.Render(t.label))
		} else {
			parts = append(parts, m.theme.Tab.Render(t.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderTab() string {
	snap := m.store.Snapshot()
	switch m.tab {
	case tabDashboard:
		sections := []string{
			renderSummary(snap, m.theme),
			renderLeaderboard(snap.Leaderboard, m.theme),
			renderSchedule(snap.Schedule, m.theme),
			m.renderReferrerList(),
		}
		return strings.Join(sections, "\n")
	case tabReminders:
		return renderReminders(snap.Reminders, m.theme)
	case tabAdmins:
		return renderAdmins(snap.Admins, m.theme)
	case tabChats:
		return renderChats(snap.Chats, m.theme)
	}
	return ""
}

// renderReferrerList decorates the pure card renderer with the cursor.
func (m *Model) renderReferrerList() string {
	snap := m.store.Snapshot()
	if len(snap.Referrers) == 0 {
		return renderReferrers(nil, m.theme)
	}
	var b strings.Builder
	for i, r := range snap.Referrers {
		card := m.theme.Card.Render(renderReferrerCard(r, m.theme))
		if i == m.refCursor {
			card = m.theme.Selected.Render("▸") + " " + card
		} else {
			card = "  " + card
		}
		b.WriteString(card + "\n")
	}
	return b.String()
}

func (m *Model) renderModal() string {
	var body string
	switch m.modal {
	case modalAlert:
		body = m.theme.ErrorText.Render(m.alertText) + "\n\n" + m.theme.Muted.Render("press any key")
	case modalConfirm:
		body = m.confirm.prompt + "\n\n" + m.theme.Muted.Render("y: yes   n: no")
	case modalNewReferrer:
		body = m.theme.Title.Render("New referrer") + "\n" + m.renderFields()
	case modalAddReferrals:
		body = m.theme.Title.Render("Add referrals — "+m.selReferrerName()) + "\n" + m.area.View()
	case modalRemoveReferrals:
		body = m.renderRemoveModal()
	case modalCPM:
		body = m.theme.Title.Render("Update CPM — "+m.selReferrerName()) + "\n" + m.renderFields()
	case modalReminder:
		body = m.renderReminderModal()
	case modalAdminAdd:
		body = m.theme.Title.Render("Add admin") + "\n" + m.renderFields()
	case modalChatAdd:
		body = m.theme.Title.Render("Approve chat") + "\n" + m.renderFields()
	case modalSchedule:
		body = m.theme.Title.Render("Auto announcement schedule") + "\n" + m.renderFields()
	}
	return m.theme.Modal.Render(body)
}

func (m *Model) selReferrerName() string {
	if ref := m.store.Snapshot().ReferrerByID(m.selReferrer); ref != nil {
		return ref.Name
	}
	return "?"
}

func (m *Model) renderFields() string {
	var b strings.Builder
	for i := range m.inputs {
		label := ""
		if i < len(m.labels) {
			label = m.labels[i]
		}
		b.WriteString(fmt.Sprintf("%-12s %s\n", label, m.inputs[i].View()))
	}
	return b.String()
}

func (m *Model) renderRemoveModal() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Remove referrals — "+m.selReferrerName()) + "\n")
	if len(m.candidates) == 0 {
		b.WriteString(m.theme.Muted.Render("Nothing left to remove") + "\n")
	}
	for i, c := range m.candidates {
		mark := "[ ]"
		if m.candSelected[c.ID] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, c.Name)
		if i == m.candCursor && m.focusIdx == m.fieldCount() {
			line = m.theme.Selected.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n" + m.renderFields())
	return b.String()
}

func (m *Model) renderReminderModal() string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("New reminder") + "\n")
	b.WriteString(m.area.View() + "\n\n")

	modeLabel := "Once"
	if m.reminderMode == "schedule" {
		modeLabel = "Schedule"
	}
	b.WriteString(fmt.Sprintf("%-12s %s  %s\n", "Mode", modeLabel, m.theme.Muted.Render("(^o switches)")))

	if m.reminderMode == "once" {
		sendNow := "no"
		if m.reminderSendNow {
			sendNow = "yes"
		}
		b.WriteString(fmt.Sprintf("%-12s %s  %s\n", "Send now", sendNow, m.theme.Muted.Render("(^n toggles)")))
		b.WriteString(fmt.Sprintf("%-12s %s\n", m.labels[0], m.inputs[0].View()))
	} else {
		b.WriteString(fmt.Sprintf("%-12s %s\n", m.labels[1], m.inputs[1].View()))
		b.WriteString(fmt.Sprintf("%-12s %s\n", m.labels[2], m.inputs[2].View()))
	}

	b.WriteString(fmt.Sprintf("%-12s %s\n", m.labels[3], m.inputs[3].View()))
	b.WriteString(fmt.Sprintf("%-12s %s\n", "Photo", m.mediaStateLabel()))
	b.WriteString("\n" + m.theme.Muted.Render("^u upload   ^p preview   ^s save") + "\n")
	return b.String()
}

func (m *Model) mediaStateLabel() string {
	if m.uploading {
		return "Uploading..."
	}
	if m.reminderMediaTok == "" {
		return "No photo selected."
	}
	return m.theme.Success.Render("Attached: " + m.reminderMediaTok)
}

func (m *Model) helpLine() string {
	if m.modal != modalNone {
		return "tab: next field · enter/^s: submit · esc: close"
	}
	switch m.tab {
	case tabDashboard:
		return "j/k: pick referrer · n: new · a: add referrals · r: remove · c: CPM · A: announce · s: schedule · e: export · R: reload · q: quit"
	case tabReminders:
		return "j/k: pick · n: new · t: enable/disable · d: delete · q: quit"
	case tabAdmins:
		return "j/k: pick · a: add admin · d: remove · q: quit"
	case tabChats:
		return "j/k: pick · a: approve chat · d: remove · q: quit"
	}
	return ""
}
