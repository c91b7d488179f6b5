package api

// ---- Identity ----

type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
}

type Me struct {
	User      User `json:"user"`
	IsPrimary bool `json:"is_primary"`
}

// ---- Referral program ----

type Referral struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CreatedAt     string `json:"created_at"`
	IsRemoved     bool   `json:"is_removed"`
	RemovedAt     string `json:"removed_at"`
	RemovedReason string `json:"removed_reason"`
}

type Referrer struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	BaseCPM       float64    `json:"base_cpm"`
	BonusCPM      float64    `json:"bonus_cpm"`
	NewCPM        float64    `json:"new_cpm"`
	ReferralCount int        `json:"referral_count"`
	Referrals     []Referral `json:"referrals"`
}

type LeaderboardRow struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Bonus float64 `json:"bonus"`
}

type ProgramRules struct {
	Step            int     `json:"step"`
	StepBonus       float64 `json:"step_bonus"`
	CashPerReferral float64 `json:"cash_per_referral"`
}

type Summary struct {
	TotalReferrals int          `json:"total_referrals"`
	TotalCash      float64      `json:"total_cash"`
	Program        ProgramRules `json:"program"`
}

// Dashboard is the full referrer-side payload returned by GET /api/referrers.
type Dashboard struct {
	Summary     Summary          `json:"summary"`
	Referrers   []Referrer       `json:"referrers"`
	Leaderboard []LeaderboardRow `json:"leaderboard"`
}

// ---- Reminders ----

type Reminder struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	Schedule  string `json:"schedule"` // human description built server-side
	Active    bool   `json:"active"`
	TimeOfDay string `json:"time_of_day"`
	Weekdays  string `json:"weekdays"`
	RunAt     string `json:"run_at"`
	HasMedia  bool   `json:"has_media"`
}

// CreateReminderRequest covers both modes. In "once" mode either SendNow is
// set or RunAt carries an absolute timestamp; in "schedule" mode Days and
// TimeOfDay are required.
type CreateReminderRequest struct {
	Text      string `json:"text"`
	Mode      string `json:"mode"` // "once" | "schedule"
	MediaPath string `json:"media_path,omitempty"`
	SendNow   bool   `json:"send_now,omitempty"`
	RunAt     string `json:"run_at,omitempty"`
	Days      []int  `json:"days,omitempty"`
	TimeOfDay string `json:"time_of_day,omitempty"`
}

// ---- Access control ----

type AdminEntry struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	IsPrimary bool   `json:"is_primary"`
}

// UID returns whichever id field the backend populated: base admins carry
// "id", extras carry "user_id".
func (a AdminEntry) UID() int64 {
	if a.UserID != 0 {
		return a.UserID
	}
	return a.ID
}

type AdminList struct {
	Base   []AdminEntry `json:"base"`
	Extras []AdminEntry `json:"extras"`
}

type ApprovedChat struct {
	ChatID int64  `json:"chat_id"`
	Title  string `json:"title"`
}

type ChatList struct {
	Base    []ApprovedChat `json:"base"`
	Entries []ApprovedChat `json:"entries"`
}

// ---- Announcement schedule ----

type AnnouncementSchedule struct {
	Days      []int  `json:"days"`
	TimeOfDay string `json:"time_of_day"`
}

type RemoveReferralsRequest struct {
	ReferralIDs []int64 `json:"referral_ids"`
	Reason      string  `json:"reason,omitempty"`
	RemovedAt   string  `json:"removed_at,omitempty"`
}
