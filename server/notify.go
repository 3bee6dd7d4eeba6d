package server

import (
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// Event kinds published to the notification service. Loss gets its own
// kind instead of reusing the win one.
const (
	EV_SHOT_HIT   = "shot-hit"
	EV_SHOT_MISS  = "shot-miss"
	EV_SHIP_SUNK  = "ship-sunk"
	EV_MATCH_WON  = "match-won"
	EV_MATCH_LOST = "match-lost"
)

// GameEventMessage is the fixed envelope for every outbound event.
type GameEventMessage struct {
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	MatchId   int64     `json:"match_id"`
	Opponent  string    `json:"opponent"`
	Col       int       `json:"col"`
	Row       int       `json:"row"`
	Ship      string    `json:"ship,omitempty"`
}

// Notifier keeps one outbound websocket connection to the notification
// service for the whole process. It is dialed and closed by main and
// handed to the GameServer. Delivery is fire and forget: a failed or
// dropped publish is logged and play continues. A nil Notifier is a
// valid no-op.
type Notifier struct {
	URL  string
	Conn *websocket.Conn

	messages chan GameEventMessage
	done     chan struct{}
}

func NewNotifier(url string) *Notifier {
	return &Notifier{
		URL:      url,
		messages: make(chan GameEventMessage, 64),
		done:     make(chan struct{}),
	}
}

func (n *Notifier) Dial() error {
	conn, _, err := websocket.DefaultDialer.Dial(n.URL, nil)
	if err != nil {
		return err
	}
	n.Conn = conn
	go n.loop()
	log.Printf("Notifier connected to %s", n.URL)
	return nil
}

func (n *Notifier) loop() {
	for {
		select {
		case ev := <-n.messages:
			if err := n.Conn.WriteJSON(ev); err != nil {
				log.Warnf("Notifier cant deliver %s: %v", ev.Kind, err)
			}
		case <-n.done:
			return
		}
	}
}

// Publish queues an event for delivery. Never blocks the game loop: a
// full queue drops the event with a warning.
func (n *Notifier) Publish(ev GameEventMessage) {
	if n == nil || n.Conn == nil {
		return
	}
	ev.Timestamp = time.Now()
	select {
	case n.messages <- ev:
	default:
		log.Warnf("Notifier queue full, dropping %s", ev.Kind)
	}
}

func (n *Notifier) Close() {
	if n == nil || n.Conn == nil {
		return
	}
	close(n.done)
	if err := n.Conn.Close(); err != nil {
		log.Warnf("Notifier close: %v", err)
	}
}
