package ui

import (
	"fmt"
	"strings"

	"github.com/refbonus-admin/pkg/api"
	"github.com/refbonus-admin/pkg/store"
)

// Renderers are pure functions from snapshot to text, re-run wholesale after
// every refresh of their slice. No incremental diffing.

func renderSummary(snap store.Snapshot, th Theme) string {
	var b strings.Builder
	s := snap.Summary
	b.WriteString(th.Title.Render("Program summary") + "\n")
	b.WriteString(fmt.Sprintf("Referrals: %d   Cash paid: $%s\n", s.TotalReferrals, formatThousands(s.TotalCash)))
	b.WriteString(th.Muted.Render(fmt.Sprintf("$%.0f per referral · +%.1f CPM every %d referrals",
		s.Program.CashPerReferral, s.Program.StepBonus, s.Program.Step)) + "\n")
	if leader := snap.TopLeader(); leader != "" {
		b.WriteString(th.Badge.Render("Leader: "+leader) + "\n")
	} else {
		b.WriteString(th.Muted.Render("No referrals yet") + "\n")
	}
	return b.String()
}

func renderLeaderboard(rows []api.LeaderboardRow, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Leaderboard") + "\n")
	if len(rows) == 0 {
		b.WriteString(th.Muted.Render("Nothing to rank yet") + "\n")
		return b.String()
	}
	for i, row := range rows {
		b.WriteString(fmt.Sprintf("%d. %s — %d referrals, +%.1f CPM\n", i+1, row.Name, row.Count, row.Bonus))
	}
	return b.String()
}

func renderReferrers(refs []api.Referrer, th Theme) string {
	if len(refs) == 0 {
		return th.Muted.Render("No referrers yet. Press n to add one.") + "\n"
	}
	cards := make([]string, 0, len(refs))
	for _, r := range refs {
		cards = append(cards, th.Card.Render(renderReferrerCard(r, th)))
	}
	return strings.Join(cards, "\n") + "\n"
}

func renderReferrerCard(r api.Referrer, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render(r.Name))
	b.WriteString(fmt.Sprintf("  %d referrals  ", r.ReferralCount))
	b.WriteString(fmt.Sprintf("CPM %.2f→%.2f ", r.BaseCPM, r.NewCPM))
	if r.BonusCPM > 0 {
		b.WriteString(th.Badge.Render(fmt.Sprintf("+%.1f bonus", r.BonusCPM)))
	}
	b.WriteString("\n")
	if len(r.Referrals) == 0 {
		b.WriteString(th.Muted.Render("No drivers referred yet"))
		return b.String()
	}
	for _, ref := range r.Referrals {
		if ref.IsRemoved {
			line := ref.Name
			if ref.RemovedAt != "" {
				line += " · removed " + ref.RemovedAt
			}
			if ref.RemovedReason != "" {
				line += " (" + ref.RemovedReason + ")"
			}
			b.WriteString("  " + th.Removed.Render(line) + "\n")
			continue
		}
		b.WriteString("  " + ref.Name + th.Muted.Render("  "+ref.CreatedAt) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderReminders(rs []api.Reminder, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Reminders") + "\n")
	if len(rs) == 0 {
		b.WriteString(th.Muted.Render("No reminders configured") + "\n")
		return b.String()
	}
	for _, r := range rs {
		glyph := "  "
		if r.HasMedia {
			glyph = "📷 "
		}
		b.WriteString(glyph + r.Text + "\n")
		b.WriteString("   " + th.Muted.Render(r.Schedule) + "  [" + toggleLabel(r.Active) + "] [Delete]\n")
	}
	return b.String()
}

// toggleLabel names the action, not the state: an active reminder offers
// "Disable".
func toggleLabel(active bool) string {
	if active {
		return "Disable"
	}
	return "Enable"
}

func renderAdmins(l api.AdminList, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Administrators") + "\n")
	for _, a := range l.Base {
		line := adminLabel(a)
		if a.IsPrimary {
			line += " (Primary)"
		}
		b.WriteString(line + "\n")
	}
	for _, a := range l.Extras {
		b.WriteString(adminLabel(a) + th.Muted.Render(fmt.Sprintf("  [Remove #%d]", a.UID())) + "\n")
	}
	return b.String()
}

func adminLabel(a api.AdminEntry) string {
	if a.Username != "" {
		return "@" + a.Username
	}
	return fmt.Sprintf("%d", a.UID())
}

func renderChats(l api.ChatList, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Approved chats") + "\n")
	for _, c := range l.Base {
		b.WriteString(chatLabel(c) + th.Muted.Render("  (configured)") + "\n")
	}
	for _, c := range l.Entries {
		b.WriteString(chatLabel(c) + th.Muted.Render(fmt.Sprintf("  [Remove %d]", c.ChatID)) + "\n")
	}
	return b.String()
}

func chatLabel(c api.ApprovedChat) string {
	if c.Title != "" {
		return c.Title
	}
	return fmt.Sprintf("Chat %d", c.ChatID)
}

func renderSchedule(sc api.AnnouncementSchedule, th Theme) string {
	var b strings.Builder
	b.WriteString(th.Title.Render("Auto announcements") + "\n")
	if len(sc.Days) == 0 {
		b.WriteString(th.Muted.Render("No days configured") + "\n")
		return b.String()
	}
	b.WriteString(weekdayList(sc.Days) + " at " + sc.TimeOfDay + "\n")
	return b.String()
}

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func weekdayName(day int) string {
	if day < 0 || day >= len(weekdayNames) {
		return "?"
	}
	return weekdayNames[day]
}

func weekdayList(days []int) string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, weekdayName(d))
	}
	return strings.Join(names, ", ")
}

// formatThousands renders a non-negative amount with comma separators, the
// closest terminal analogue of the webapp's locale formatting.
func formatThousands(v float64) string {
	s := fmt.Sprintf("%.0f", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		s = "-" + s
	}
	return s
}
