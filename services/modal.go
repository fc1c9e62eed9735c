package services

import (
	"fmt"
	"time"

	"github.com/slack-go/slack"
)

// Shortcut and modal callback ids, matching the Slack app manifest.
const (
	ShortcutLogPTO    = "log_pto"
	CallbackPTOSubmit = "pto_submit"

	BlockTargetUser  = "user_block"
	ActionTargetUser = "user_select"
	BlockStartDate   = "start_block"
	ActionStartDate  = "start_date"
	BlockEndDate     = "end_block"
	ActionEndDate    = "end_date"
	BlockNote        = "note_block"
	ActionNote       = "note_input"
)

// PTOSubmission is the parsed result of the modal.
type PTOSubmission struct {
	RequesterID  string // who submitted the modal
	TargetUserID string // whose PTO it is
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD, inclusive
	Note         string
}

// BuildPTOModal builds the Log PTO modal. The employee select defaults to the
// user who invoked the shortcut, so logging your own PTO is two clicks.
func BuildPTOModal(invokerID string) slack.ModalViewRequest {
	userSelect := slack.NewOptionsSelectBlockElement(
		slack.OptTypeUser,
		slack.NewTextBlockObject(slack.PlainTextType, "Select employee", false, false),
		ActionTargetUser,
	)
	userSelect.InitialUser = invokerID

	startPicker := slack.NewDatePickerBlockElement(ActionStartDate)
	endPicker := slack.NewDatePickerBlockElement(ActionEndDate)

	noteInput := slack.NewPlainTextInputBlockElement(
		slack.NewTextBlockObject(slack.PlainTextType, "Reason, coverage, etc.", false, false),
		ActionNote,
	)
	noteInput.Multiline = true

	noteBlock := slack.NewInputBlock(BlockNote,
		slack.NewTextBlockObject(slack.PlainTextType, "Reason / Note", false, false),
		nil, noteInput)
	noteBlock.Optional = true

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: CallbackPTOSubmit,
		Title:      slack.NewTextBlockObject(slack.PlainTextType, "Log PTO", false, false),
		Submit:     slack.NewTextBlockObject(slack.PlainTextType, "Create", false, false),
		Close:      slack.NewTextBlockObject(slack.PlainTextType, "Cancel", false, false),
		Blocks: slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewInputBlock(BlockTargetUser,
					slack.NewTextBlockObject(slack.PlainTextType, "Employee", false, false),
					nil, userSelect),
				slack.NewInputBlock(BlockStartDate,
					slack.NewTextBlockObject(slack.PlainTextType, "First day", false, false),
					nil, startPicker),
				slack.NewInputBlock(BlockEndDate,
					slack.NewTextBlockObject(slack.PlainTextType, "Last day", false, false),
					nil, endPicker),
				noteBlock,
			},
		},
	}
}

// ExtractPTOSubmission pulls the submission out of a view_submission payload
// and validates it. The second return value maps block ids to validation
// messages for a response_action: errors reply; it is empty when the
// submission is usable.
func ExtractPTOSubmission(payload slack.InteractionCallback) (PTOSubmission, map[string]string) {
	if payload.View.State == nil {
		return PTOSubmission{}, map[string]string{BlockTargetUser: "Form state is missing"}
	}
	values := payload.View.State.Values

	sub := PTOSubmission{
		RequesterID:  payload.User.ID,
		TargetUserID: values[BlockTargetUser][ActionTargetUser].SelectedUser,
		StartDate:    values[BlockStartDate][ActionStartDate].SelectedDate,
		EndDate:      values[BlockEndDate][ActionEndDate].SelectedDate,
		Note:         values[BlockNote][ActionNote].Value,
	}

	fieldErrors := make(map[string]string)

	if sub.TargetUserID == "" {
		fieldErrors[BlockTargetUser] = "Select an employee"
	}

	start, err := time.Parse("2006-01-02", sub.StartDate)
	if err != nil {
		fieldErrors[BlockStartDate] = "Pick a first day"
	}
	end, err := time.Parse("2006-01-02", sub.EndDate)
	if err != nil {
		fieldErrors[BlockEndDate] = "Pick a last day"
	} else if fieldErrors[BlockStartDate] == "" && end.Before(start) {
		fieldErrors[BlockEndDate] = "Last day must not be before first day"
	}

	return sub, fieldErrors
}

// EventSummary is the calendar event title: the resolved name plus the range,
// e.g. "PTO: Jane Doe (2024-06-10 to 2024-06-12)".
func EventSummary(displayName string, sub PTOSubmission) string {
	return fmt.Sprintf("PTO: %s (%s to %s)", displayName, sub.StartDate, sub.EndDate)
}

// EventDescription records who asked for whom, plus the note.
func EventDescription(sub PTOSubmission) string {
	desc := fmt.Sprintf("Requested via Slack by <@%s> for <@%s>.", sub.RequesterID, sub.TargetUserID)
	if sub.Note != "" {
		desc += "\n" + sub.Note
	}
	return desc
}

// ChannelMessage is the summary posted in the PTO channel. The trailing line
// is the delete affordance: removing this message removes the event.
func ChannelMessage(sub PTOSubmission) string {
	text := fmt.Sprintf("PTO booked for <@%s> from %s to %s.", sub.TargetUserID, sub.StartDate, sub.EndDate)
	if sub.Note != "" {
		text += " — " + sub.Note
	}
	text += "\n_Delete this message to remove it from the calendar._"
	return text
}
