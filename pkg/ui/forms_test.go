package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitNames(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitNames("a, b\nc"))
	assert.Equal(t, []string{"one"}, splitNames("  one  "))
	assert.Empty(t, splitNames(" , \n , "))
}

func TestNewReferrerFormValidation(t *testing.T) {
	_, _, err := newReferrerForm{name: "  ", rate: "0.5"}.validate()
	assert.EqualError(t, err, "Name required")

	_, _, err = newReferrerForm{name: "Alice", rate: "abc"}.validate()
	assert.EqualError(t, err, "Enter a valid base CPM")

	name, rate, err := newReferrerForm{name: " Alice ", rate: "0.55"}.validate()
	require.NoError(t, err)
	assert.Equal(t, "Alice", name)
	assert.Equal(t, 0.55, rate)
}

func TestAddReferralsFormValidation(t *testing.T) {
	assert.Error(t, addReferralsForm{referrerID: 0, names: "x"}.validate())
	assert.Error(t, addReferralsForm{referrerID: 1, names: " ,\n "}.validate())
	assert.NoError(t, addReferralsForm{referrerID: 1, names: "a,b"}.validate())
}

func TestRemoveReferralsFormValidation(t *testing.T) {
	_, err := removeReferralsForm{referrerID: 1}.validate()
	assert.EqualError(t, err, "Select at least one referral to remove")

	_, err = removeReferralsForm{referrerID: 1, selected: []int64{10}, removedAt: "01.02.2026"}.validate()
	assert.EqualError(t, err, "Removal date must be YYYY-MM-DD")

	req, err := removeReferralsForm{referrerID: 1, selected: []int64{10}, reason: " quit ", removedAt: "2026-08-01"}.validate()
	require.NoError(t, err)
	assert.Equal(t, []int64{10}, req.ReferralIDs)
	assert.Equal(t, "quit", req.Reason)
	assert.Equal(t, "2026-08-01", req.RemovedAt)
}

func TestCPMFormValidation(t *testing.T) {
	_, err := cpmForm{referrerID: 1, rate: "not-a-number"}.validate()
	assert.Error(t, err)

	rate, err := cpmForm{referrerID: 1, rate: " 0.61 "}.validate()
	require.NoError(t, err)
	assert.Equal(t, 0.61, rate)
}

func TestReminderOnceModeRequiresTimestampOrSendNow(t *testing.T) {
	// Rejected locally; no request payload is produced.
	_, err := reminderForm{text: "hi", mode: "once"}.build()
	assert.EqualError(t, err, "Pick a date and time, or send now")

	_, err = reminderForm{text: "hi", mode: "once", runAt: "tomorrow"}.build()
	assert.Error(t, err)

	req, err := reminderForm{text: "hi", mode: "once", sendNow: true}.build()
	require.NoError(t, err)
	assert.True(t, req.SendNow)
	assert.Empty(t, req.RunAt)

	req, err = reminderForm{text: "hi", mode: "once", runAt: "2026-09-01T10:30"}.build()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01T10:30", req.RunAt)
}

func TestReminderScheduleModeRequiresDays(t *testing.T) {
	// Empty day set is rejected regardless of the time value.
	_, err := reminderForm{text: "hi", mode: "schedule", timeOfDay: "10:00"}.build()
	assert.EqualError(t, err, "Select at least one day")

	_, err = reminderForm{text: "hi", mode: "schedule", daysText: "Mon", timeOfDay: "25:99"}.build()
	assert.EqualError(t, err, "Time must be HH:MM")

	req, err := reminderForm{text: "hi", mode: "schedule", daysText: "Wed,Mon", timeOfDay: "09:15"}.build()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, req.Days)
	assert.Equal(t, "09:15", req.TimeOfDay)
}

func TestReminderRequiresText(t *testing.T) {
	_, err := reminderForm{mode: "once", sendNow: true}.build()
	assert.EqualError(t, err, "Reminder text required")
}

func TestParseWeekdays(t *testing.T) {
	days, err := parseWeekdays("monday, wed, 6")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 6}, days)

	days, err = parseWeekdays("")
	require.NoError(t, err)
	assert.Empty(t, days)

	_, err = parseWeekdays("Mon,funday")
	assert.EqualError(t, err, "Unknown day: funday")

	_, err = parseWeekdays("9")
	assert.Error(t, err)
}

func TestAdminAndChatForms(t *testing.T) {
	_, err := adminAddForm{username: " @ "}.validate()
	assert.Error(t, err)

	username, err := adminAddForm{username: " @helper "}.validate()
	require.NoError(t, err)
	assert.Equal(t, "helper", username)

	_, _, err = chatAddForm{chatID: "abc"}.validate()
	assert.EqualError(t, err, "Chat id required")

	id, title, err := chatAddForm{chatID: " -100200 ", title: " Drivers "}.validate()
	require.NoError(t, err)
	assert.Equal(t, int64(-100200), id)
	assert.Equal(t, "Drivers", title)
}

func TestScheduleFormValidation(t *testing.T) {
	_, _, err := scheduleForm{timeOfDay: "10:00"}.validate()
	assert.EqualError(t, err, "Select at least one day")

	days, tod, err := scheduleForm{daysText: "Mon,Thu", timeOfDay: "08:00"}.validate()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 3}, days)
	assert.Equal(t, "08:00", tod)
}
