package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"slack-pto-bot/models"
)

func setupLinksTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("fail to open test db: %v", err)
	}

	if err := db.AutoMigrate(&models.PTOLink{}); err != nil {
		t.Fatalf("fail to migrate test db: %v", err)
	}

	return db
}

func TestSaveAndFindLink(t *testing.T) {
	db := setupLinksTestDB(t)

	link := models.PTOLink{
		ID:              "link-1",
		SlackChannel:    "C0PTO",
		SlackTS:         "1718000000.000100",
		CalendarEventID: "evt-abc",
	}
	assert.NoError(t, SaveLink(db, &link))

	found, err := FindLink(db, "C0PTO", "1718000000.000100")
	assert.NoError(t, err)
	assert.Equal(t, "evt-abc", found.CalendarEventID)
}

func TestSaveLink_LastWriteWins(t *testing.T) {
	db := setupLinksTestDB(t)

	first := models.PTOLink{
		ID:              "link-1",
		SlackChannel:    "C0PTO",
		SlackTS:         "1718000000.000100",
		CalendarEventID: "evt-old",
	}
	assert.NoError(t, SaveLink(db, &first))

	second := models.PTOLink{
		ID:              "link-2",
		SlackChannel:    "C0PTO",
		SlackTS:         "1718000000.000100",
		CalendarEventID: "evt-new",
	}
	assert.NoError(t, SaveLink(db, &second))

	found, err := FindLink(db, "C0PTO", "1718000000.000100")
	assert.NoError(t, err)
	assert.Equal(t, "evt-new", found.CalendarEventID)

	// Still exactly one record for the message.
	var count int64
	db.Model(&models.PTOLink{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestFindLink_NotFound(t *testing.T) {
	db := setupLinksTestDB(t)

	_, err := FindLink(db, "C0PTO", "9999.0000")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRemoveLink(t *testing.T) {
	db := setupLinksTestDB(t)

	link := models.PTOLink{
		ID:              "link-1",
		SlackChannel:    "C0PTO",
		SlackTS:         "1718000000.000100",
		CalendarEventID: "evt-abc",
	}
	assert.NoError(t, SaveLink(db, &link))

	assert.NoError(t, RemoveLink(db, "C0PTO", "1718000000.000100"))

	_, err := FindLink(db, "C0PTO", "1718000000.000100")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Removing again is a no-op.
	assert.NoError(t, RemoveLink(db, "C0PTO", "1718000000.000100"))
}
