package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressClientCount() int {
	progressFeed.mu.Lock()
	defer progressFeed.mu.Unlock()
	return len(progressFeed.conns)
}

func progressSubscribed(want int) func() bool {
	return func() bool { return progressClientCount() == want }
}

func dialProgress(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	return conn
}

func TestProgressFeedBroadcast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(ProgressWSHandler))
	defer srv.Close()

	conn := dialProgress(t, srv)
	defer conn.Close()

	require.Eventually(t, progressSubscribed(1), time.Second, 5*time.Millisecond,
		"handler should register the client")

	sent := ProgressEvent{Type: "scan_started", ScanID: "ws-test", FilesTotal: 7}
	progressFeed.Broadcast(sent)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got ProgressEvent
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, sent, got)

	conn.Close()
	require.Eventually(t, progressSubscribed(0), time.Second, 5*time.Millisecond,
		"closed clients leave the feed")
}

func TestProgressFeedDropsDeadClients(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(ProgressWSHandler))
	defer srv.Close()

	conn := dialProgress(t, srv)
	require.Eventually(t, progressSubscribed(1), time.Second, 5*time.Millisecond)

	// Kill the transport without a close handshake, then broadcast until the
	// dead connection is noticed and evicted.
	conn.UnderlyingConn().Close()
	require.Eventually(t, func() bool {
		progressFeed.Broadcast(ProgressEvent{Type: "file_done", ScanID: "ws-test"})
		return progressClientCount() == 0
	}, 2*time.Second, 10*time.Millisecond, "dead clients are evicted")
}
