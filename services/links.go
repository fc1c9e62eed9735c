package services

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"slack-pto-bot/models"
)

// SaveLink records the message→event association. A second record for the
// same message wins over the first; one message maps to one submission, so
// last-write is the right answer.
func SaveLink(db *gorm.DB, link *models.PTOLink) error {
	link.UpdatedAt = time.Now()
	if link.CreatedAt.IsZero() {
		link.CreatedAt = link.UpdatedAt
	}

	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slack_channel"}, {Name: "slack_ts"}},
		UpdateAll: true,
	}).Create(link).Error
}

// FindLink returns the link for a message, or gorm.ErrRecordNotFound.
func FindLink(db *gorm.DB, channel, ts string) (*models.PTOLink, error) {
	var link models.PTOLink
	err := db.Where("slack_channel = ? AND slack_ts = ?", channel, ts).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// RemoveLink deletes the association. Removing a message that was never
// recorded is a no-op.
func RemoveLink(db *gorm.DB, channel, ts string) error {
	return db.Where("slack_channel = ? AND slack_ts = ?", channel, ts).
		Delete(&models.PTOLink{}).Error
}
