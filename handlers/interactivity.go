package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"gorm.io/gorm"

	"slack-pto-bot/models"
	"slack-pto-bot/services"
)

// HandleSlackInteractivity handles the interactivity endpoint: the log_pto
// shortcut opens the modal, the pto_submit view submission runs the
// create-event-and-post pipeline.
func HandleSlackInteractivity(db *gorm.DB, cal services.Calendar) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !validateRequest(c) {
			return
		}

		payloadStr := strings.TrimSpace(c.PostForm("payload"))

		var payload slack.InteractionCallback
		if err := json.Unmarshal([]byte(payloadStr), &payload); err != nil {
			log.Printf("interactivity payload parse error: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}

		switch payload.Type {
		case slack.InteractionTypeShortcut:
			if payload.CallbackID == services.ShortcutLogPTO {
				handleLogPTOShortcut(c, payload)
				return
			}
		case slack.InteractionTypeViewSubmission:
			if payload.View.CallbackID == services.CallbackPTOSubmit {
				handlePTOSubmission(c, db, cal, payload)
				return
			}
		}

		c.Status(http.StatusOK)
	}
}

func handleLogPTOShortcut(c *gin.Context, payload slack.InteractionCallback) {
	log.Printf("log_pto shortcut invoked: user=%s", payload.User.ID)

	if err := services.OpenModal(payload.TriggerID, services.BuildPTOModal(payload.User.ID)); err != nil {
		log.Printf("views.open error: %v", err)
	}

	c.Status(http.StatusOK)
}

func handlePTOSubmission(c *gin.Context, db *gorm.DB, cal services.Calendar, payload slack.InteractionCallback) {
	sub, fieldErrors := services.ExtractPTOSubmission(payload)
	if len(fieldErrors) > 0 {
		c.JSON(http.StatusOK, slack.NewErrorsViewSubmissionResponse(fieldErrors))
		return
	}

	channel := os.Getenv("PTO_CHANNEL_ID")

	log.Printf("pto submission: requester=%s, target=%s, range=%s..%s",
		sub.RequesterID, sub.TargetUserID, sub.StartDate, sub.EndDate)

	identity, err := services.ResolveUser(sub.TargetUserID)
	if err != nil {
		log.Printf("identity resolution failed: %v", err)
		notifySubmitter(channel, sub.RequesterID,
			"⚠️ Couldn't look up that user, so no PTO was logged. ("+err.Error()+")")
		c.Status(http.StatusOK)
		return
	}

	eventID, err := cal.CreateEvent(services.PTOEvent{
		Summary:       services.EventSummary(identity.DisplayName, sub),
		Description:   services.EventDescription(sub),
		StartDate:     sub.StartDate,
		EndDate:       sub.EndDate,
		AttendeeEmail: identity.Email,
	})
	if err != nil {
		log.Printf("calendar create failed: %v", err)
		notifySubmitter(channel, sub.RequesterID,
			"⚠️ Couldn't create the calendar event, so no PTO was logged. ("+err.Error()+")")
		c.Status(http.StatusOK)
		return
	}

	ts, err := services.PostPTOMessage(channel, services.ChannelMessage(sub))
	if err != nil {
		// The event exists but the message it hangs off of does not. There is
		// no compensating delete; the orphan has to be cleaned up by hand.
		log.Printf("ORPHANED calendar event %s: message post failed after create: %v", eventID, err)
		notifySubmitter(channel, sub.RequesterID,
			"⚠️ The calendar event was created but the channel message failed, so it can't be removed by deleting a message. Please tell an admin. (event "+eventID+")")
		c.Status(http.StatusOK)
		return
	}

	link := models.PTOLink{
		ID:              uuid.NewString(),
		SlackChannel:    channel,
		SlackTS:         ts,
		RequesterID:     sub.RequesterID,
		TargetUserID:    sub.TargetUserID,
		TargetUserName:  identity.DisplayName,
		CalendarEventID: eventID,
		CalendarID:      os.Getenv("PTO_CAL_ID"),
		StartDate:       sub.StartDate,
		EndDate:         sub.EndDate,
		Note:            sub.Note,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := services.SaveLink(db, &link); err != nil {
		// Event and message both exist but the mapping is gone, so deleting
		// the message will not clean up the event.
		log.Printf("link save failed (event %s, ts %s): %v", eventID, ts, err)
		c.Status(http.StatusOK)
		return
	}

	log.Printf("pto logged: event=%s, ts=%s, target=%s", eventID, ts, sub.TargetUserID)
	c.Status(http.StatusOK)
}

func notifySubmitter(channel, userID, text string) {
	if err := services.PostEphemeral(channel, userID, text); err != nil {
		log.Printf("ephemeral notify failed: %v", err)
	}
}
