package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"commentsweep/logger"
)

// ProgressEvent is one message on the scan progress feed.
type ProgressEvent struct {
	Type          string `json:"type"` // scan_started, file_done, scan_done, scan_cancelled, scan_failed
	ScanID        string `json:"scan_id"`
	Path          string `json:"path,omitempty"` // File just finished, for file_done events.
	FilesDone     int    `json:"files_done"`
	FilesTotal    int    `json:"files_total"`
	CommentCount  int    `json:"comment_count"`
	SelectedCount int    `json:"selected_count"`
	Message       string `json:"message,omitempty"`
}

const progressWriteWait = 10 * time.Second

var progressUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The API binds to localhost; browser origin checks add nothing here.
		return true
	},
}

// progressHub fans scan progress out to every connected websocket client.
type progressHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
}

var progressFeed = &progressHub{conns: make(map[*websocket.Conn]bool)}

func (h *progressHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *progressHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// Broadcast sends the event to every client, dropping connections that fail
// to accept the write in time.
func (h *progressHub) Broadcast(event ProgressEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(progressWriteWait))
		if err := conn.WriteJSON(event); err != nil {
			logger.Debug("progressHub: Dropping websocket client: %v", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ProgressWSHandler upgrades the connection and subscribes it to the scan
// progress feed. Clients are write-only; incoming messages are discarded.
func ProgressWSHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := progressUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("ProgressWSHandler: Error upgrading connection: %v", err)
		return
	}

	progressFeed.add(conn)
	logger.Debug("ProgressWSHandler: Client %s subscribed to progress feed", conn.RemoteAddr())

	defer func() {
		progressFeed.remove(conn)
		conn.Close()
		logger.Debug("ProgressWSHandler: Client %s unsubscribed", conn.RemoteAddr())
	}()

	// Read loop only exists to notice the peer going away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
