package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Identity is what the calendar side needs to know about a Slack user.
type Identity struct {
	DisplayName string
	Email       string
}

type userInfoResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
	User  struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		RealName string `json:"real_name"`
		Profile  struct {
			DisplayName string `json:"display_name"`
			RealName    string `json:"real_name"`
			Email       string `json:"email"`
		} `json:"profile"`
	} `json:"user"`
}

// ResolveUser looks up a Slack user via users.info. The email comes from the
// profile and requires the users:read.email scope; a user without one cannot
// be invited to the calendar event, so that is a LookupError too.
func ResolveUser(userID string) (Identity, error) {
	req, err := http.NewRequest("GET", "https://slack.com/api/users.info?user="+userID, nil)
	if err != nil {
		return Identity{}, &LookupError{UserID: userID, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+os.Getenv("SLACK_BOT_TOKEN"))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Identity{}, &LookupError{UserID: userID, Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	var userResp userInfoResponse
	if err := json.Unmarshal(bodyBytes, &userResp); err != nil {
		return Identity{}, &LookupError{UserID: userID, Err: err}
	}
	if !userResp.OK {
		return Identity{}, &LookupError{UserID: userID, Err: fmt.Errorf("slack error: %s", userResp.Error)}
	}
	if userResp.User.Profile.Email == "" {
		return Identity{}, &LookupError{UserID: userID, Err: errors.New("user has no email (users:read.email scope missing?)")}
	}

	return Identity{
		DisplayName: displayNameOf(&userResp),
		Email:       userResp.User.Profile.Email,
	}, nil
}

// displayNameOf picks the most human name available: the profile display
// name, then the real name, then the login name.
func displayNameOf(resp *userInfoResponse) string {
	if resp.User.Profile.DisplayName != "" {
		return resp.User.Profile.DisplayName
	}
	if resp.User.Profile.RealName != "" {
		return resp.User.Profile.RealName
	}
	if resp.User.RealName != "" {
		return resp.User.RealName
	}
	return resp.User.Name
}
