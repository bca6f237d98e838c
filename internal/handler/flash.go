package handler

import (
	"fmt"

	"github.com/ad-tracker/videoshelf-go/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// flashes stores one-shot messages in a cookie session so they survive the
// redirect after a successful create. A nil store turns every call into a no-op.
type flashes struct {
	store sessions.Store
	name  string
}

func (f *flashes) add(c *gin.Context, msg string) {
	if f.store == nil {
		return
	}

	// Get returns a fresh session alongside a decode error, so carry on.
	sess, err := f.store.Get(c.Request, f.name)
	if err != nil {
		logger.L().Debug("Discarding unreadable session", zap.Error(err))
	}

	sess.AddFlash(msg)
	if err := sess.Save(c.Request, c.Writer); err != nil {
		logger.L().Warn("Failed to save flash message", zap.Error(err))
	}
}

// pop returns and clears pending messages. It must run before the response is written.
func (f *flashes) pop(c *gin.Context) []string {
	if f.store == nil {
		return nil
	}

	sess, err := f.store.Get(c.Request, f.name)
	if err != nil {
		return nil
	}

	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := sess.Save(c.Request, c.Writer); err != nil {
		logger.L().Warn("Failed to clear flash messages", zap.Error(err))
	}

	msgs := make([]string, 0, len(raw))
	for _, m := range raw {
		msgs = append(msgs, fmt.Sprint(m))
	}
	return msgs
}

// NewCookieStore builds the session store used for flash messages.
func NewCookieStore(secret string) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
	}
	return store
}
