package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/infrastructure/feed"
)

// FeedHandler upgrades authenticated browsers onto the real-time dashboard
// feed bridge.
type FeedHandler struct {
	bridge *feed.Bridge
}

func NewFeedHandler(bridge *feed.Bridge) *FeedHandler {
	return &FeedHandler{bridge: bridge}
}

// Connect bridges the browser to the backend feed using the session's own
// bearer token. Blocks until either side disconnects.
func (h *FeedHandler) Connect(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return h.bridge.Connect(c.Response(), c.Request(), sess.Token)
}
