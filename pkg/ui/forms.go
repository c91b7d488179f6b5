package ui

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/refbonus-admin/pkg/api"
)

// Form validation happens before any network call; a validation error is
// surfaced as a blocking alert and leaves every field untouched.

var nameSplitRE = regexp.MustCompile(`[,\n]+`)

// splitNames mirrors the backend's delimiter handling. The client only uses
// the result for the confirmation count; the raw text is what gets sent.
func splitNames(raw string) []string {
	var out []string
	for _, part := range nameSplitRE.Split(raw, -1) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type newReferrerForm struct {
	name string
	rate string
}

func (f newReferrerForm) validate() (string, float64, error) {
	name := strings.TrimSpace(f.name)
	if name == "" {
		return "", 0, errors.New("Name required")
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(f.rate), 64)
	if err != nil {
		return "", 0, errors.New("Enter a valid base CPM")
	}
	return name, rate, nil
}

type addReferralsForm struct {
	referrerID int64
	names      string
}

func (f addReferralsForm) validate() error {
	if f.referrerID == 0 {
		return errors.New("Pick a referrer first")
	}
	if len(splitNames(f.names)) == 0 {
		return errors.New("Enter at least one driver name")
	}
	return nil
}

type removeReferralsForm struct {
	referrerID int64
	selected   []int64
	reason     string
	removedAt  string
}

func (f removeReferralsForm) validate() (api.RemoveReferralsRequest, error) {
	var req api.RemoveReferralsRequest
	if len(f.selected) == 0 {
		return req, errors.New("Select at least one referral to remove")
	}
	removedAt := strings.TrimSpace(f.removedAt)
	if removedAt != "" {
		if _, err := time.Parse("2006-01-02", removedAt); err != nil {
			return req, errors.New("Removal date must be YYYY-MM-DD")
		}
	}
	req.ReferralIDs = f.selected
	req.Reason = strings.TrimSpace(f.reason)
	req.RemovedAt = removedAt
	return req, nil
}

type cpmForm struct {
	referrerID int64
	rate       string
}

func (f cpmForm) validate() (float64, error) {
	if f.referrerID == 0 {
		return 0, errors.New("Pick a referrer first")
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(f.rate), 64)
	if err != nil {
		return 0, errors.New("Enter a valid CPM value")
	}
	return rate, nil
}

type reminderForm struct {
	text      string
	mode      string // "once" | "schedule"
	sendNow   bool
	runAt     string
	daysText  string // weekday names or indices, comma separated
	timeOfDay string
	mediaPath string // server token from a completed upload
}

// build validates the draft and produces the create/preview payload. Once
// mode needs send_now or a parseable absolute timestamp; schedule mode needs
// at least one weekday and a HH:MM time.
func (f reminderForm) build() (api.CreateReminderRequest, error) {
	var req api.CreateReminderRequest
	text := strings.TrimSpace(f.text)
	if text == "" {
		return req, errors.New("Reminder text required")
	}
	req.Text = text
	req.Mode = f.mode
	req.MediaPath = f.mediaPath

	switch f.mode {
	case "once":
		if f.sendNow {
			req.SendNow = true
			return req, nil
		}
		runAt := strings.TrimSpace(f.runAt)
		if runAt == "" {
			return req, errors.New("Pick a date and time, or send now")
		}
		if _, err := time.Parse("2006-01-02T15:04", runAt); err != nil {
			return req, errors.New("Date/time must be YYYY-MM-DDTHH:MM")
		}
		req.RunAt = runAt
	case "schedule":
		days, err := parseWeekdays(f.daysText)
		if err != nil {
			return req, err
		}
		if len(days) == 0 {
			return req, errors.New("Select at least one day")
		}
		tod := strings.TrimSpace(f.timeOfDay)
		if _, err := time.Parse("15:04", tod); err != nil {
			return req, errors.New("Time must be HH:MM")
		}
		req.Days = days
		req.TimeOfDay = tod
	default:
		return req, errors.New("Invalid reminder mode")
	}
	return req, nil
}

var weekdayAliases = map[string]int{
	"mon": 0, "monday": 0,
	"tue": 1, "tuesday": 1,
	"wed": 2, "wednesday": 2,
	"thu": 3, "thursday": 3,
	"fri": 4, "friday": 4,
	"sat": 5, "saturday": 5,
	"sun": 6, "sunday": 6,
}

// parseWeekdays accepts comma-separated weekday names or 0-based indices,
// Monday first, and returns a sorted unique set. An empty string is an empty
// set, not an error; validators decide whether that is acceptable.
func parseWeekdays(raw string) ([]int, error) {
	seen := map[int]bool{}
	for _, part := range strings.Split(raw, ",") {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		if d, ok := weekdayAliases[token]; ok {
			seen[d] = true
			continue
		}
		d, err := strconv.Atoi(token)
		if err != nil || d < 0 || d > 6 {
			return nil, errors.New("Unknown day: " + strings.TrimSpace(part))
		}
		seen[d] = true
	}
	var out []int
	for d := 0; d < 7; d++ {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out, nil
}

type adminAddForm struct {
	username string
}

func (f adminAddForm) validate() (string, error) {
	username := strings.TrimPrefix(strings.TrimSpace(f.username), "@")
	if username == "" {
		return "", errors.New("Username required")
	}
	return username, nil
}

type chatAddForm struct {
	chatID string
	title  string
}

func (f chatAddForm) validate() (int64, string, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(f.chatID), 10, 64)
	if err != nil {
		return 0, "", errors.New("Chat id required")
	}
	return id, strings.TrimSpace(f.title), nil
}

type scheduleForm struct {
	daysText  string
	timeOfDay string
}

func (f scheduleForm) validate() ([]int, string, error) {
	days, err := parseWeekdays(f.daysText)
	if err != nil {
		return nil, "", err
	}
	if len(days) == 0 {
		return nil, "", errors.New("Select at least one day")
	}
	tod := strings.TrimSpace(f.timeOfDay)
	if _, err := time.Parse("15:04", tod); err != nil {
		return nil, "", errors.New("Time must be HH:MM")
	}
	return days, tod, nil
}
