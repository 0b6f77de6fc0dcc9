// Package feed bridges the backend's real-time dashboard feed to browser
// websocket clients. One upstream connection is opened per authenticated
// browser, carrying that browser's own bearer token, and torn down when the
// browser disconnects or the gateway shuts down.
package feed

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/Cassio-Ac/minerva-intelligence-sub006/internal/api/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The gateway serves the pages and the websocket from the same origin;
	// echo's CSRF story does not cover websockets, so everything rides on
	// the session cookie already checked by the guard middleware.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Bridge owns all live browser<->backend feed connections.
type Bridge struct {
	upstreamURL string
	dialer      *websocket.Dialer
	log         zerolog.Logger

	mu    sync.Mutex
	links map[*link]struct{}
}

type link struct {
	browser  *websocket.Conn
	upstream *websocket.Conn
	done     chan struct{}
	once     sync.Once
}

func NewBridge(upstreamURL string, log zerolog.Logger) *Bridge {
	return &Bridge{
		upstreamURL: upstreamURL,
		dialer:      websocket.DefaultDialer,
		log:         log,
		links:       make(map[*link]struct{}),
	}
}

// Connect upgrades the browser request, dials the upstream feed with the
// session's bearer token, and relays frames in both directions until either
// side closes. It blocks for the lifetime of the connection.
func (b *Bridge) Connect(w http.ResponseWriter, r *http.Request, token string) error {
	browser, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return fmt.Errorf("upgrade browser connection: %w", err)
	}

	header := http.Header{"Authorization": {"Bearer " + token}}
	up, resp, err := b.dialer.DialContext(r.Context(), b.upstreamURL, header)
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		b.log.Error().Err(err).Int("upstream_status", status).Msg("feed dial failed")
		_ = browser.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "feed unavailable"))
		_ = browser.Close()
		return fmt.Errorf("dial upstream feed: %w", err)
	}

	l := &link{browser: browser, upstream: up, done: make(chan struct{})}
	b.register(l)
	metrics.FeedBridgesActive.Inc()

	go l.pump(up, browser, "inbound")
	l.pump(browser, up, "outbound")

	<-l.done
	b.unregister(l)
	metrics.FeedBridgesActive.Dec()
	return nil
}

// pump copies frames from src to dst until either side fails, then closes
// the whole link so the sibling pump unblocks too.
func (l *link) pump(src, dst *websocket.Conn, direction string) {
	defer l.close()
	for {
		msgType, payload, err := src.ReadMessage()
		if err != nil {
			return
		}
		if err := dst.WriteMessage(msgType, payload); err != nil {
			return
		}
		metrics.FeedFramesTotal.WithLabelValues(direction).Inc()
	}
}

func (l *link) close() {
	l.once.Do(func() {
		_ = l.browser.Close()
		_ = l.upstream.Close()
		close(l.done)
	})
}

func (b *Bridge) register(l *link) {
	b.mu.Lock()
	b.links[l] = struct{}{}
	b.mu.Unlock()
}

func (b *Bridge) unregister(l *link) {
	b.mu.Lock()
	delete(b.links, l)
	b.mu.Unlock()
}

// Active reports the number of live bridges.
func (b *Bridge) Active() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.links)
}

// Shutdown force-closes every live bridge. Called once on gateway shutdown;
// browsers are expected to not reconnect to a terminating process.
func (b *Bridge) Shutdown() {
	b.mu.Lock()
	links := make([]*link, 0, len(b.links))
	for l := range b.links {
		links = append(links, l)
	}
	b.mu.Unlock()

	for _, l := range links {
		l.close()
	}
}
