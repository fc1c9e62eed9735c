package models

import (
	"time"
)

// PTOLink ties a posted Slack message to the calendar event it created.
// Deleting the message looks up the link by (channel, ts) and deletes the
// event, so the pair carries a composite unique index. Links are hard-deleted
// on removal; a soft-delete column would collide with the unique index when a
// message ts is recorded again.
type PTOLink struct {
	ID              string `gorm:"primaryKey"`
	SlackChannel    string `gorm:"index:idx_slack_message,unique"`
	SlackTS         string `gorm:"index:idx_slack_message,unique"`
	RequesterID     string // Slack user who submitted the modal
	TargetUserID    string // Slack user the PTO is for
	TargetUserName  string // resolved display name at submission time
	CalendarEventID string
	CalendarID      string
	StartDate       string // YYYY-MM-DD
	EndDate         string // YYYY-MM-DD, inclusive
	Note            string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
