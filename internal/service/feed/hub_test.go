package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Traxor/internal/domain/models"
	applogger "Traxor/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPublishReachesSubscribers(t *testing.T) {
	h := NewHub(4, applogger.Nop())
	defer h.Close()

	a, ok := h.Subscribe()
	require.True(t, ok)
	b, ok := h.Subscribe()
	require.True(t, ok)

	h.Publish(&models.SignalResponse{ID: "1", Asset: "BTC"})

	for _, sub := range []*Subscription{a, b} {
		var got models.SignalResponse
		require.NoError(t, json.Unmarshal(<-sub.C, &got))
		assert.Equal(t, "BTC", got.Asset)
	}
}

func TestSlowSubscriberDropped(t *testing.T) {
	h := NewHub(1, applogger.Nop())
	defer h.Close()

	slow, _ := h.Subscribe()
	h.Publish(&models.SignalResponse{ID: "1"})
	h.Publish(&models.SignalResponse{ID: "2"})

	assert.Zero(t, h.Len())
	<-slow.C
	_, open := <-slow.C
	assert.False(t, open)
}

func TestCloseRefusesAndReleases(t *testing.T) {
	h := NewHub(1, applogger.Nop())
	sub, _ := h.Subscribe()

	h.Close()
	h.Close()
	_, open := <-sub.C
	assert.False(t, open)

	_, ok := h.Subscribe()
	assert.False(t, ok)
	h.Unsubscribe(sub)
	h.Publish(&models.SignalResponse{ID: "late"})
}

func TestServeConnStreamsAndShutsDown(t *testing.T) {
	h := NewHub(4, applogger.Nop())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := Upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.ServeConn(conn)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 5*time.Millisecond)
	h.Publish(&models.SignalResponse{ID: "abc", Asset: "ETH"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got models.SignalResponse
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "abc", got.ID)

	h.Close()
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
