package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"slack-pto-bot/services"
)

// HandleSlackEvents handles the Events API endpoint. The one event that
// matters is message_deleted in the PTO channel: deleting the summary message
// deletes the calendar event it was linked to.
func HandleSlackEvents(db *gorm.DB, cal services.Calendar) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validateRequest(c) {
			return
		}

		body, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		var payload struct {
			Type      string `json:"type"`
			Challenge string `json:"challenge"`
			Event     struct {
				Type            string `json:"type"`
				SubType         string `json:"subtype"`
				Channel         string `json:"channel"`
				DeletedTs       string `json:"deleted_ts"`
				PreviousMessage struct {
					Ts string `json:"ts"`
				} `json:"previous_message"`
			} `json:"event"`
		}

		if err := json.Unmarshal(body, &payload); err != nil {
			log.Printf("event payload parse error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		// Events API URL verification challenge.
		if payload.Type == "url_verification" {
			c.String(http.StatusOK, payload.Challenge)
			return
		}

		if payload.Event.Type == "message" && payload.Event.SubType == "message_deleted" {
			ts := payload.Event.DeletedTs
			if ts == "" {
				ts = payload.Event.PreviousMessage.Ts
			}
			handleMessageDeleted(db, cal, payload.Event.Channel, ts)
		}

		c.Status(http.StatusOK)
	}
}

// handleMessageDeleted deletes the calendar event linked to a deleted
// message. A message with no link (chatter in the channel, or a message from
// before a wipe of the database) is a no-op.
func handleMessageDeleted(db *gorm.DB, cal services.Calendar, channel, ts string) {
	link, err := services.FindLink(db, channel, ts)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Printf("link lookup error (ts: %s): %v", ts, err)
		}
		return
	}

	if err := cal.DeleteEvent(link.CalendarEventID); err != nil {
		// Keep the link so a later deletion attempt can retry.
		log.Printf("calendar delete failed (event: %s, ts: %s): %v", link.CalendarEventID, ts, err)
		return
	}

	if err := services.RemoveLink(db, channel, ts); err != nil {
		log.Printf("link remove error (ts: %s): %v", ts, err)
		return
	}

	log.Printf("pto removed: event=%s, ts=%s", link.CalendarEventID, ts)
}
