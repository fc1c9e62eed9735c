package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/slack-go/slack"
)

// IsTestMode skips request signature verification in tests.
var IsTestMode = false

type slackAPIResponse struct {
	OK    bool   `json:"ok"`
	Ts    string `json:"ts"`
	Error string `json:"error,omitempty"`
}

func callSlackAPI(method string, body interface{}) (*slackAPIResponse, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", "https://slack.com/api/"+method, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SLACK_BOT_TOKEN"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var slackResp slackAPIResponse
	if err := json.Unmarshal(bodyBytes, &slackResp); err != nil {
		return nil, err
	}
	if !slackResp.OK {
		return nil, fmt.Errorf("slack error: %s", slackResp.Error)
	}

	return &slackResp, nil
}

// PostPTOMessage posts the PTO summary to the channel and returns the message
// ts. The ts is the handle users delete to undo the calendar entry.
func PostPTOMessage(channel, text string) (string, error) {
	resp, err := callSlackAPI("chat.postMessage", map[string]interface{}{
		"channel": channel,
		"text":    text,
	})
	if err != nil {
		return "", &PostError{Channel: channel, Err: err}
	}
	return resp.Ts, nil
}

// PostEphemeral sends a message only the given user can see. Used to surface
// submission failures without noise in the channel.
func PostEphemeral(channel, userID, text string) error {
	_, err := callSlackAPI("chat.postEphemeral", map[string]interface{}{
		"channel": channel,
		"user":    userID,
		"text":    text,
	})
	if err != nil {
		return &PostError{Channel: channel, Err: err}
	}
	return nil
}

// OpenModal opens a modal view for the given trigger id.
func OpenModal(triggerID string, view slack.ModalViewRequest) error {
	_, err := callSlackAPI("views.open", map[string]interface{}{
		"trigger_id": triggerID,
		"view":       view,
	})
	return err
}

// ValidateSlackRequest checks the Slack request signature against the signing
// secret. The raw body must be passed in because gin consumes the reader.
func ValidateSlackRequest(r *http.Request, body []byte) bool {
	if IsTestMode {
		return true
	}

	verifier, err := slack.NewSecretsVerifier(r.Header, os.Getenv("SLACK_SIGNING_SECRET"))
	if err != nil {
		return false
	}
	if _, err := verifier.Write(body); err != nil {
		return false
	}
	return verifier.Ensure() == nil
}
