package server

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/zucenko/seabattle/model"
)

// GameServer pairs incoming players into sessions. Its Loop goroutine
// owns all seat accounting, it never looks inside a running session.
type GameServer struct {
	GameSessions []*GameSession
	GameRequests chan GameRequest
	SessionOver  chan *GameSession
	Upgrader     *websocket.Upgrader
	BoardSize    int
	Notifier     *Notifier

	open        *GameSession
	openSeats   int
	nextMatchId int64
}

type GameSessionState int

const (
	GS_NEW GameSessionState = iota
	GS_WAIT
	GS_PLACE
	GS_PLAY
	GS_ERR
	GS_OVER
)

// GameSession owns one match end to end. Its Loop goroutine is the only
// writer of everything in here, which is what serializes placement,
// joins and shots for the match.
type GameSession struct {
	State     GameSessionState
	MatchId   int64
	BoardSize int
	Notifier  *Notifier
	Done      chan<- *GameSession

	Match   *model.Match
	Layouts map[string]model.Layout
	Fleets  map[string]*model.Fleet
	TurnOf  string

	PlayerSessions        []*PlayerSession
	Errors                chan string
	Events                chan PlayerEvent
	PlayerConnectRequests chan PlayerConnectRequest
}

type PlayerSessionState int

const (
	PS_NEW PlayerSessionState = iota + 1
	PS_PLACE
	PS_PLAY
	PS_OVER
	PS_ERR
	PS_ERR_SEC
)

type PlayerSession struct {
	State       PlayerSessionState
	Id          string
	GameSession *GameSession
	Conn        *websocket.Conn
	GameOver    chan struct{}

	MessagesToSend chan model.ServerMessage

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
	DebugLastPing    time.Time
	DebugPings       int
}
