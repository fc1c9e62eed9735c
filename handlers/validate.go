package handlers

import (
	"bytes"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"slack-pto-bot/services"
)

// validateRequest verifies the Slack request signature. The body is read and
// restored so the handler can still parse it. Writes the error response
// itself and returns false when the request must be rejected.
func validateRequest(c *gin.Context) bool {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("failed to read request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return false
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	if !services.ValidateSlackRequest(c.Request, bodyBytes) {
		log.Println("invalid slack signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid slack signature"})
		return false
	}

	return true
}
