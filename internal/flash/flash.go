// Package flash carries a one-shot notice across a redirect in a cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

const cookieName = "flash"

// Categories used by the templates.
const (
	Error   = "error"
	Success = "success"
	Info    = "info"
)

// Message is a notice shown once on the next rendered page.
type Message struct {
	Category string `json:"c"`
	Text     string `json:"t"`
}

// Set stores a notice for the next request.
func Set(c *gin.Context, category, text string) {
	b, err := json.Marshal(Message{Category: category, Text: text})
	if err != nil {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, base64.RawURLEncoding.EncodeToString(b), 60, "/", "", false, true)
}

// Pop returns the pending notice, if any, and clears it.
func Pop(c *gin.Context) (Message, bool) {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return Message{}, false
	}
	c.SetCookie(cookieName, "", -1, "/", "", false, true)

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return Message{}, false
	}
	var m Message
	if err := json.Unmarshal(b, &m); err != nil || m.Text == "" {
		return Message{}, false
	}
	return m, true
}
