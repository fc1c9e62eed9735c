package services

import (
	"os"
	"testing"

	"github.com/h2non/gock"
	"github.com/stretchr/testify/assert"
)

func TestResolveUser(t *testing.T) {
	originalToken := os.Getenv("SLACK_BOT_TOKEN")
	defer os.Setenv("SLACK_BOT_TOKEN", originalToken)
	os.Setenv("SLACK_BOT_TOKEN", "test-token")

	defer gock.Off()

	gock.New("https://slack.com").
		Get("/api/users.info").
		MatchParam("user", "U123").
		MatchHeader("Authorization", "Bearer test-token").
		Reply(200).
		JSON(map[string]interface{}{
			"ok": true,
			"user": map[string]interface{}{
				"id":        "U123",
				"name":      "jdoe",
				"real_name": "Jane Doe",
				"profile": map[string]interface{}{
					"display_name": "Jane Doe",
					"real_name":    "Jane Doe",
					"email":        "a@b.com",
				},
			},
		})

	identity, err := ResolveUser("U123")

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", identity.DisplayName)
	assert.Equal(t, "a@b.com", identity.Email)
	assert.True(t, gock.IsDone())
}

func TestResolveUser_FallsBackToRealName(t *testing.T) {
	originalToken := os.Getenv("SLACK_BOT_TOKEN")
	defer os.Setenv("SLACK_BOT_TOKEN", originalToken)
	os.Setenv("SLACK_BOT_TOKEN", "test-token")

	defer gock.Off()

	gock.New("https://slack.com").
		Get("/api/users.info").
		MatchParam("user", "U123").
		Reply(200).
		JSON(map[string]interface{}{
			"ok": true,
			"user": map[string]interface{}{
				"id":   "U123",
				"name": "jdoe",
				"profile": map[string]interface{}{
					"display_name": "",
					"real_name":    "Jane Doe",
					"email":        "a@b.com",
				},
			},
		})

	identity, err := ResolveUser("U123")

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", identity.DisplayName)
}

func TestResolveUser_NotFound(t *testing.T) {
	originalToken := os.Getenv("SLACK_BOT_TOKEN")
	defer os.Setenv("SLACK_BOT_TOKEN", originalToken)
	os.Setenv("SLACK_BOT_TOKEN", "test-token")

	defer gock.Off()

	gock.New("https://slack.com").
		Get("/api/users.info").
		MatchParam("user", "UNOPE").
		Reply(200).
		JSON(map[string]interface{}{
			"ok":    false,
			"error": "user_not_found",
		})

	_, err := ResolveUser("UNOPE")

	var lookupErr *LookupError
	assert.ErrorAs(t, err, &lookupErr)
	assert.Equal(t, "UNOPE", lookupErr.UserID)
	assert.Contains(t, err.Error(), "user_not_found")
}

func TestResolveUser_NoEmail(t *testing.T) {
	originalToken := os.Getenv("SLACK_BOT_TOKEN")
	defer os.Setenv("SLACK_BOT_TOKEN", originalToken)
	os.Setenv("SLACK_BOT_TOKEN", "test-token")

	defer gock.Off()

	// Bot without the users:read.email scope gets a profile with no email.
	gock.New("https://slack.com").
		Get("/api/users.info").
		MatchParam("user", "U123").
		Reply(200).
		JSON(map[string]interface{}{
			"ok": true,
			"user": map[string]interface{}{
				"id":   "U123",
				"name": "jdoe",
				"profile": map[string]interface{}{
					"display_name": "Jane Doe",
				},
			},
		})

	_, err := ResolveUser("U123")

	var lookupErr *LookupError
	assert.ErrorAs(t, err, &lookupErr)
	assert.Contains(t, err.Error(), "no email")
}
