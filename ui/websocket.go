package ui

import (
	"net"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"
)

// handleWebSocket upgrades the connection and runs the widget-sync loop:
// every incoming widget event goes through the panel's guarded handlers and
// the resulting state is pushed back, so the page's selectors converge
// without echo loops.
func (a *App) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     a.checkOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.log.Warn("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Initial state so the page starts in sync.
	if err := conn.WriteJSON(a.panel.State()); err != nil {
		return
	}

	for {
		var event widgetEvent
		if err := conn.ReadJSON(&event); err != nil {
			return
		}
		state, err := a.applyEvent(event)
		if err != nil {
			a.log.Warn("widget event rejected: %v", err)
		}
		if err := conn.WriteJSON(state); err != nil {
			return
		}
	}
}

// checkOrigin accepts same-host pages and, when a websocket origin port is
// configured, pages served from that port on any host.
func (a *App) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	originHost, originPort, err := net.SplitHostPort(u.Host)
	if err != nil {
		originHost, originPort = u.Host, ""
	}
	requestHost, _, err := net.SplitHostPort(r.Host)
	if err != nil {
		requestHost = r.Host
	}

	if originHost == requestHost {
		return true
	}
	if a.wsOrigin != 0 && originPort == strconv.Itoa(a.wsOrigin) {
		return true
	}
	return false
}
