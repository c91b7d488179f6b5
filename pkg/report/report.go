// Package report prints a one-shot snapshot of the referral program as plain
// tables, for terminals where the interactive UI is unwanted (cron mails,
// CI logs, quick checks over ssh).
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/refbonus-admin/pkg/store"
)

func Write(w io.Writer, snap store.Snapshot) {
	header := color.New(color.Bold, color.FgCyan)
	header.Fprintln(w, "REFERRAL BONUS PROGRAM")
	fmt.Fprintf(w, "Total referrals: %d   Cash paid: $%.0f\n", snap.Summary.TotalReferrals, snap.Summary.TotalCash)
	if leader := snap.TopLeader(); leader != "" {
		fmt.Fprintf(w, "Leader: %s\n", leader)
	}
	fmt.Fprintln(w)

	header.Fprintln(w, "Referrers")
	rt := tablewriter.NewWriter(w)
	rt.SetHeader([]string{"ID", "Name", "Referrals", "Base CPM", "New CPM", "Bonus"})
	for _, r := range snap.Referrers {
		rt.Append([]string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			strconv.Itoa(r.ReferralCount),
			fmt.Sprintf("%.2f", r.BaseCPM),
			fmt.Sprintf("%.2f", r.NewCPM),
			fmt.Sprintf("%.1f", r.BonusCPM),
		})
	}
	rt.Render()
	fmt.Fprintln(w)

	header.Fprintln(w, "Leaderboard")
	lt := tablewriter.NewWriter(w)
	lt.SetHeader([]string{"#", "Name", "Count", "Bonus"})
	for i, row := range snap.Leaderboard {
		lt.Append([]string{
			strconv.Itoa(i + 1),
			row.Name,
			strconv.Itoa(row.Count),
			fmt.Sprintf("%.1f", row.Bonus),
		})
	}
	lt.Render()
	fmt.Fprintln(w)

	header.Fprintln(w, "Reminders")
	mt := tablewriter.NewWriter(w)
	mt.SetHeader([]string{"ID", "Text", "Schedule", "Active", "Media"})
	for _, r := range snap.Reminders {
		mt.Append([]string{
			strconv.FormatInt(r.ID, 10),
			r.Text,
			r.Schedule,
			strconv.FormatBool(r.Active),
			strconv.FormatBool(r.HasMedia),
		})
	}
	mt.Render()
}
