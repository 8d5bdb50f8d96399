package middleware

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// flashCookie carries transient user-visible messages across the redirect that
// follows every mutation or validation failure. The cookie is consumed (read
// and cleared) on the next rendered page.
const flashCookie = "fintrack_flash"

// Flash levels used by the handler layer.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessage is a single transient message with a severity level.
type FlashMessage struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// AddFlash appends a message to the pending flash cookie. Messages added
// within the same request accumulate.
func AddFlash(c *gin.Context, level, message string) {
	flashes := append(peekFlashes(c), FlashMessage{Level: level, Message: message})
	c.Set(flashCookie, flashes)
	payload, err := json.Marshal(flashes)
	if err != nil {
		GetLoggerFromCtx(c.Request.Context()).Error("Failed to encode flash messages", "error", err.Error())
		return
	}
	c.SetCookie(flashCookie, base64.RawURLEncoding.EncodeToString(payload), 300, "/", "", false, true)
}

// TakeFlashes returns all pending flash messages and clears the cookie.
func TakeFlashes(c *gin.Context) []FlashMessage {
	flashes := peekFlashes(c)
	if len(flashes) > 0 {
		c.Set(flashCookie, []FlashMessage(nil))
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	return flashes
}

// peekFlashes prefers messages added earlier in this request over the inbound
// cookie value.
func peekFlashes(c *gin.Context) []FlashMessage {
	if pending, ok := c.Get(flashCookie); ok {
		if flashes, ok := pending.([]FlashMessage); ok {
			return flashes
		}
	}
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var flashes []FlashMessage
	if err := json.Unmarshal(payload, &flashes); err != nil {
		return nil
	}
	return flashes
}
