package server

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

func TestNotifierNilSafe(t *testing.T) {
	var n *Notifier
	n.Publish(GameEventMessage{Kind: EV_SHOT_MISS})
	n.Close()
}

func TestNotifierUndialedDrops(t *testing.T) {
	n := NewNotifier("ws://nowhere")
	n.Publish(GameEventMessage{Kind: EV_SHOT_HIT})
	n.Close()
}

func TestNotifierDelivers(t *testing.T) {
	received := make(chan GameEventMessage, 1)
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		var ev GameEventMessage
		if err := conn.ReadJSON(&ev); err == nil {
			received <- ev
		}
	}))
	defer srv.Close()

	n := NewNotifier("ws" + strings.TrimPrefix(srv.URL, "http"))
	require.NoError(t, n.Dial())
	defer n.Close()

	n.Publish(GameEventMessage{
		Kind:     EV_SHIP_SUNK,
		Actor:    "alice",
		MatchId:  7,
		Opponent: "bob",
		Col:      5,
		Row:      6,
		Ship:     "destroyer",
	})

	select {
	case ev := <-received:
		assert.Equal(t, EV_SHIP_SUNK, ev.Kind)
		assert.Equal(t, "alice", ev.Actor)
		assert.Equal(t, int64(7), ev.MatchId)
		assert.Equal(t, "bob", ev.Opponent)
		assert.Equal(t, 5, ev.Col)
		assert.Equal(t, 6, ev.Row)
		assert.Equal(t, "destroyer", ev.Ship)
		assert.False(t, ev.Timestamp.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event never arrived")
	}
}
