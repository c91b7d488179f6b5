package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

func (c *Client) Me(ctx context.Context) (*Me, error) {
	var out Me
	if err := c.Call(ctx, http.MethodGet, "/api/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Referrers(ctx context.Context) (*Dashboard, error) {
	var out Dashboard
	if err := c.Call(ctx, http.MethodGet, "/api/referrers", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateReferrer(ctx context.Context, name string, baseCPM float64) error {
	body := map[string]any{"name": name, "base_cpm": baseCPM}
	return c.Call(ctx, http.MethodPost, "/api/referrers", body, nil)
}

func (c *Client) UpdateReferrerCPM(ctx context.Context, referrerID int64, baseCPM float64) error {
	body := map[string]any{"base_cpm": baseCPM}
	return c.Call(ctx, http.MethodPatch, fmt.Sprintf("/api/referrers/%d", referrerID), body, nil)
}

// AddReferrals sends the raw name text; the backend does the splitting.
func (c *Client) AddReferrals(ctx context.Context, referrerID int64, names string) error {
	body := map[string]any{"names": names}
	return c.Call(ctx, http.MethodPost, fmt.Sprintf("/api/referrers/%d/referrals", referrerID), body, nil)
}

func (c *Client) RemoveReferrals(ctx context.Context, referrerID int64, req RemoveReferralsRequest) error {
	return c.Call(ctx, http.MethodPost, fmt.Sprintf("/api/referrers/%d/referrals/remove", referrerID), req, nil)
}

func (c *Client) Announce(ctx context.Context, referrerID int64) error {
	return c.Call(ctx, http.MethodPost, fmt.Sprintf("/api/referrers/%d/announce", referrerID), nil, nil)
}

func (c *Client) ExportReferrals(ctx context.Context) ([]byte, string, error) {
	return c.CallForFile(ctx, "/api/referrals/export")
}

func (c *Client) Reminders(ctx context.Context) ([]Reminder, error) {
	var out struct {
		Reminders []Reminder `json:"reminders"`
	}
	if err := c.Call(ctx, http.MethodGet, "/api/reminders", nil, &out); err != nil {
		return nil, err
	}
	return out.Reminders, nil
}

func (c *Client) CreateReminder(ctx context.Context, req CreateReminderRequest) error {
	return c.Call(ctx, http.MethodPost, "/api/reminders", req, nil)
}

// PreviewReminder sends the draft to the caller's own chat without storing it.
func (c *Client) PreviewReminder(ctx context.Context, req CreateReminderRequest) error {
	return c.Call(ctx, http.MethodPost, "/api/reminders/preview", req, nil)
}

func (c *Client) ToggleReminder(ctx context.Context, reminderID int64, active bool) error {
	body := map[string]any{"active": active}
	return c.Call(ctx, http.MethodPatch, fmt.Sprintf("/api/reminders/%d", reminderID), body, nil)
}

func (c *Client) DeleteReminder(ctx context.Context, reminderID int64) error {
	return c.Call(ctx, http.MethodDelete, fmt.Sprintf("/api/reminders/%d", reminderID), nil, nil)
}

func (c *Client) UploadReminderMedia(ctx context.Context, filename string, r io.Reader) (string, error) {
	var out struct {
		Path string `json:"path"`
	}
	if err := c.Upload(ctx, "/api/uploads/reminder_media", filename, r, &out); err != nil {
		return "", err
	}
	return out.Path, nil
}

func (c *Client) Admins(ctx context.Context) (*AdminList, error) {
	var out AdminList
	if err := c.Call(ctx, http.MethodGet, "/api/admins", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddAdmin(ctx context.Context, username string) error {
	body := map[string]any{"username": username}
	return c.Call(ctx, http.MethodPost, "/api/admins", body, nil)
}

func (c *Client) RemoveAdmin(ctx context.Context, userID int64) error {
	return c.Call(ctx, http.MethodDelete, fmt.Sprintf("/api/admins/%d", userID), nil, nil)
}

func (c *Client) Chats(ctx context.Context) (*ChatList, error) {
	var out ChatList
	if err := c.Call(ctx, http.MethodGet, "/api/approved_chats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddChat(ctx context.Context, chatID int64, title string) error {
	body := map[string]any{"chat_id": chatID, "title": title}
	return c.Call(ctx, http.MethodPost, "/api/approved_chats", body, nil)
}

func (c *Client) RemoveChat(ctx context.Context, chatID int64) error {
	return c.Call(ctx, http.MethodDelete, fmt.Sprintf("/api/approved_chats/%d", chatID), nil, nil)
}

func (c *Client) AnnouncementSchedule(ctx context.Context) (*AnnouncementSchedule, error) {
	var out struct {
		Schedule AnnouncementSchedule `json:"schedule"`
	}
	if err := c.Call(ctx, http.MethodGet, "/api/announcements/schedule", nil, &out); err != nil {
		return nil, err
	}
	return &out.Schedule, nil
}

func (c *Client) UpdateAnnouncementSchedule(ctx context.Context, days []int, timeOfDay string) (*AnnouncementSchedule, error) {
	body := map[string]any{"days": days, "time_of_day": timeOfDay}
	var out struct {
		Schedule AnnouncementSchedule `json:"schedule"`
	}
	if err := c.Call(ctx, http.MethodPost, "/api/announcements/schedule", body, &out); err != nil {
		return nil, err
	}
	return &out.Schedule, nil
}
