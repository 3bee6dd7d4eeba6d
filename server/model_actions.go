package server

import (
	"encoding/gob"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/zucenko/seabattle/model"
)

func NewGameServer(cfg Config, notifier *Notifier) *GameServer {
	return &GameServer{
		GameSessions: make([]*GameSession, 0),
		GameRequests: make(chan GameRequest),
		SessionOver:  make(chan *GameSession),
		Upgrader:     &websocket.Upgrader{},
		BoardSize:    cfg.BoardSize,
		Notifier:     notifier,
	}
}

func (s *GameServer) HandleHttpCall() http.HandlerFunc {
	timeout := 200 * time.Millisecond
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleHttpCall - connection received")

		gcas := make(chan GameContextAwaiting)
		select {
		case s.GameRequests <- GameRequest{GameContextAwaiting: gcas}:
		case <-time.After(timeout):
			log.Warn("GameRequests TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		// find/create a GameSession
		var gca GameContextAwaiting
		select {
		case gca = <-gcas:
			switch gca.ResponseCode {
			case GAME_NOT_FOUND:
				fallthrough
			case GAME_INVALIDE:
				w.WriteHeader(gca.ResponseCode.ToHttp())
				return
			case GAME_READY: // only good option
				log.Printf("HandleHttpCall ok, have GameSession %d", gca.GameSession.MatchId)
			default:
				log.Errorf("gca.ResponseCode not expected:%v", gca.ResponseCode)
			}
		case <-time.After(timeout):
			log.Warnf("HandleHttpCall GameContextAwaiting <- TIMEOUTED")
			w.WriteHeader(HTTP_TIMEOUT)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("HandleHttpCall websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		// gameover callback channel
		gameOver := make(chan struct{})
		select {
		case gca.GameSession.PlayerConnectRequests <- PlayerConnectRequest{
			Con:      con,
			GameOver: gameOver}:
		case <-time.After(timeout):
			return
		}

		// hold the handler (and the connection) until the match ends
		<-gameOver
	}
}

func (s *GameServer) Loop() {
	log.Printf("GameServer.Loop starting")
	for {
		select {
		case gameReq := <-s.GameRequests:
			// seats are counted here, never read back from the session:
			// its Loop goroutine owns the match and mutates it freely
			if s.open == nil {
				s.nextMatchId++
				s.open = NewGameSession(s.BoardSize, s.nextMatchId, s.Notifier, s.SessionOver)
				s.openSeats = 2
				log.Printf("create GameSession %d", s.open.MatchId)
				go s.open.Loop()
				s.GameSessions = append(s.GameSessions, s.open)
			}
			gs := s.open
			s.openSeats--
			if s.openSeats == 0 {
				s.open = nil
			}

			gameReq.GameContextAwaiting <- GameContextAwaiting{
				ResponseCode: GAME_READY,
				GameSession:  gs,
			}

		case gs := <-s.SessionOver:
			log.Printf("GameSession %d finished", gs.MatchId)
			if s.open == gs {
				s.open = nil
				s.openSeats = 0
			}
			for i, candidate := range s.GameSessions {
				if candidate == gs {
					s.GameSessions = append(s.GameSessions[:i], s.GameSessions[i+1:]...)
					break
				}
			}
		}
	}
}

func NewGameSession(boardSize int, matchId int64, notifier *Notifier, done chan<- *GameSession) *GameSession {
	return &GameSession{
		State:     GS_NEW,
		MatchId:   matchId,
		BoardSize: boardSize,
		Notifier:  notifier,
		Done:      done,
		Match:     model.NewMatch(),
		Layouts:   make(map[string]model.Layout),
		Fleets:    make(map[string]*model.Fleet),
		// buffered so a player loop reporting after teardown never hangs
		Errors:                make(chan string, 2),
		Events:                make(chan PlayerEvent),
		PlayerSessions:        make([]*PlayerSession, 0, 2),
		PlayerConnectRequests: make(chan PlayerConnectRequest),
	}
}

func (gs *GameSession) Loop() {
	log.Printf("GameSession %d Loop start", gs.MatchId)
	for gs.State != GS_OVER && gs.State != GS_ERR {
		select {
		case pcr := <-gs.PlayerConnectRequests:
			if err := gs.addPlayer(pcr.Con, pcr.GameOver); err != nil {
				log.Errorf("GameSession %d addPlayer: %v", gs.MatchId, err)
				pcr.Con.Close()
				close(pcr.GameOver)
				continue
			}
			if !gs.Match.Ready() {
				gs.State = GS_WAIT
				continue
			}
			// both seats taken, first joiner shoots first
			gs.State = GS_PLACE
			gs.TurnOf = gs.Match.Participants()[0]
			for _, ps := range gs.PlayerSessions {
				ps.State = PS_PLACE
				ps.MessagesToSend <- ps.MakeGameSetupMessage()
			}

		case errPlayer := <-gs.Errors:
			log.Warnf("GameSession %d player %s errored, killing session", gs.MatchId, errPlayer)
			gs.State = GS_ERR
			for _, ps := range gs.PlayerSessions {
				if ps.Id == errPlayer {
					ps.State = PS_ERR
				} else {
					ps.State = PS_ERR_SEC
					// tell the survivor before the handler closes the socket
					select {
					case ps.MessagesToSend <- model.ServerMessage{
						Departures: []model.OpponentLeft{{PlayerKey: errPlayer}},
					}:
					default:
						log.Warnf("GameSession %d cant queue departure for %s", gs.MatchId, ps.Id)
					}
				}
				close(ps.GameOver)
			}

		case pe := <-gs.Events:
			var playerSession, opponentSession *PlayerSession
			for _, ps := range gs.PlayerSessions {
				if ps.Id == pe.Player {
					playerSession = ps
				} else {
					opponentSession = ps
				}
			}
			messageToPlayer, messageToOpponent := gs.HandleEvent(pe)
			if messageToPlayer != nil && playerSession != nil {
				playerSession.MessagesToSend <- *messageToPlayer
			}
			if messageToOpponent != nil && opponentSession != nil {
				opponentSession.MessagesToSend <- *messageToOpponent
			}
			// the event just ended or killed the match, release the handlers
			if gs.State == GS_OVER || gs.State == GS_ERR {
				for _, ps := range gs.PlayerSessions {
					close(ps.GameOver)
				}
			}
		}
	}
	if gs.Done != nil {
		gs.Done <- gs
	}
	log.Printf("GameSession %d Loop end", gs.MatchId)
}

// HandleEvent resolves one client message against the match. Only the
// session Loop goroutine calls it, so there is no locking anywhere
// below here.
func (gs *GameSession) HandleEvent(pe PlayerEvent) (
	messageToPlayer *model.ServerMessage,
	messageToOpponent *model.ServerMessage) {
	switch {
	case pe.Message.Place != nil:
		return gs.handlePlace(pe.Player, *pe.Message.Place)
	case pe.Message.Fire != nil:
		return gs.handleFire(pe.Player, *pe.Message.Fire)
	}
	log.Warnf("GameSession %d empty message from %s", gs.MatchId, pe.Player)
	return nil, nil
}

func (gs *GameSession) handlePlace(player string, req model.PlacementRequest) (
	*model.ServerMessage, *model.ServerMessage) {
	rejected := func(reason string, violations []model.FieldViolation) *model.ServerMessage {
		return &model.ServerMessage{Placements: []model.PlacementVerdict{{
			Reason:     reason,
			Violations: violations,
		}}}
	}

	if gs.State != GS_PLACE {
		return rejected("not accepting placements now", nil), nil
	}
	if _, placed := gs.Fleets[player]; placed {
		return rejected("fleet already placed", nil), nil
	}

	layout, err := model.ValidatePlacement(req, gs.BoardSize)
	if err != nil {
		// recoverable, the player just tries again
		log.Printf("GameSession %d placement by %s rejected: %v", gs.MatchId, player, err)
		var schemaErr *model.SchemaError
		if errors.As(err, &schemaErr) {
			return rejected(err.Error(), schemaErr.Violations), nil
		}
		return rejected(err.Error(), nil), nil
	}

	gs.Layouts[player] = layout
	gs.Fleets[player] = model.NewFleet(layout)

	messageToPlayer := &model.ServerMessage{
		Placements: []model.PlacementVerdict{{Accepted: true}},
	}
	var messageToOpponent *model.ServerMessage
	if len(gs.Fleets) == 2 {
		gs.State = GS_PLAY
		for _, ps := range gs.PlayerSessions {
			ps.State = PS_PLAY
		}
		messageToPlayer.Starts = []model.Start{{YourTurn: gs.TurnOf == player}}
		messageToOpponent = &model.ServerMessage{
			Starts: []model.Start{{YourTurn: gs.TurnOf != player}},
		}
	}
	return messageToPlayer, messageToOpponent
}

func (gs *GameSession) handleFire(player string, pos model.Position) (
	*model.ServerMessage, *model.ServerMessage) {
	opponent, err := gs.Match.Opponent(player)
	if err != nil {
		// a shot routed to a match the shooter never joined is a host
		// bug, not player input: kill the session, loudly
		log.Errorf("GameSession %d integrity: %v", gs.MatchId, err)
		gs.State = GS_ERR
		return nil, nil
	}

	rejected := &model.ServerMessage{Shots: []model.ShotResult{{
		PlayerKey: player,
		Col:       pos.Col, Row: pos.Row,
		Rejected: true,
		YourTurn: gs.TurnOf == player,
	}}}
	if gs.State != GS_PLAY {
		log.Printf("GameSession %d %s fired in state %s", gs.MatchId, player, gs.State.Name())
		return rejected, nil
	}
	if gs.TurnOf != player {
		log.Printf("GameSession %d %s fired out of turn", gs.MatchId, player)
		return rejected, nil
	}
	if pos.Col < 0 || pos.Col >= gs.BoardSize || pos.Row < 0 || pos.Row >= gs.BoardSize {
		log.Printf("GameSession %d %s fired off the board col:%d row:%d",
			gs.MatchId, player, pos.Col, pos.Row)
		return rejected, nil
	}

	fleet := gs.Fleets[opponent]
	hit, ship, sunk := fleet.RecordShot(pos)
	gs.TurnOf = opponent

	result := model.ShotResult{
		PlayerKey: player,
		Col:       pos.Col, Row: pos.Row,
		Hit:  hit,
		Sunk: sunk,
	}
	if sunk {
		result.Ship = ship
	}
	toPlayer := result
	toOpponent := result
	toOpponent.YourTurn = true
	messageToPlayer := &model.ServerMessage{Shots: []model.ShotResult{toPlayer}}
	messageToOpponent := &model.ServerMessage{Shots: []model.ShotResult{toOpponent}}

	if hit {
		gs.notify(EV_SHOT_HIT, player, opponent, pos, ship)
	} else {
		gs.notify(EV_SHOT_MISS, player, opponent, pos, 0)
	}
	if sunk {
		gs.notify(EV_SHIP_SUNK, player, opponent, pos, ship)
	}

	if model.HasLost(fleet) {
		gs.State = GS_OVER
		for _, ps := range gs.PlayerSessions {
			ps.State = PS_OVER
		}
		messageToPlayer.Endings = []model.GameOver{{Winner: player, Won: true}}
		messageToOpponent.Endings = []model.GameOver{{Winner: player, Won: false}}
		gs.notify(EV_MATCH_WON, player, opponent, pos, ship)
		gs.notify(EV_MATCH_LOST, opponent, player, pos, ship)
	}
	return messageToPlayer, messageToOpponent
}

func (gs *GameSession) notify(kind, actor, opponent string, pos model.Position, ship model.ShipType) {
	ev := GameEventMessage{
		Kind:     kind,
		Actor:    actor,
		MatchId:  gs.MatchId,
		Opponent: opponent,
		Col:      pos.Col,
		Row:      pos.Row,
	}
	if ship != 0 {
		ev.Ship = ship.Name()
	}
	gs.Notifier.Publish(ev)
}

func (gs *GameSession) addPlayer(
	conn *websocket.Conn,
	gameOver chan struct{},
) error {
	playerId := newPlayerKey()
	if err := gs.Match.AddParticipant(playerId); err != nil {
		return fmt.Errorf("add %s: %w", playerId, err)
	}
	log.Printf("GameSession %d addPlayer %s", gs.MatchId, playerId)
	ps := &PlayerSession{
		State:          PS_NEW,
		Id:             playerId,
		GameSession:    gs,
		Conn:           conn,
		GameOver:       gameOver,
		MessagesToSend: make(chan model.ServerMessage, 10),
	}
	conn.SetPingHandler(
		func(message string) error {
			err := conn.WriteControl(websocket.PongMessage, []byte(message), time.Now().Add(time.Second))
			ps.DebugLastPing = time.Now()
			ps.DebugPings++
			if err == websocket.ErrCloseSent {
				return nil
			} else if e, ok := err.(net.Error); ok && e.Temporary() {
				return nil
			}
			return err
		})
	go ps.LoopChannelRead()
	go ps.LoopChannelWrite()
	gs.PlayerSessions = append(gs.PlayerSessions, ps)
	return nil
}

func newPlayerKey() string {
	return fmt.Sprintf("p-%08x", rand.Uint32())
}

func (ps *PlayerSession) MakeGameSetupMessage() model.ServerMessage {
	opponent, _ := ps.GameSession.Match.Opponent(ps.Id)
	return model.ServerMessage{
		Setup: []model.Setup{{
			BoardSize: ps.GameSession.BoardSize,
			PlayerKey: ps.Id,
			Opponent:  opponent,
			YourTurn:  ps.GameSession.TurnOf == ps.Id,
		}},
	}
}

func (ps *PlayerSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED %s", ps.Id)
loop:
	for {
		messageType, r, err := ps.Conn.NextReader()
		if err != nil {
			if ps.State == PS_ERR_SEC || ps.State == PS_OVER {
				log.Printf("LoopChannelRead %s closed after game end", ps.Id)
			} else {
				log.Printf("LoopChannelRead %s err reading from Conn %v", ps.Id, err)
				ps.State = PS_ERR
				ps.GameSession.Errors <- ps.Id
			}
			break loop
		}
		log.Printf("LoopChannelRead %s received message type: %d", ps.Id, messageType)
		dec := gob.NewDecoder(r)
		cm := &model.ClientMessage{}
		err = dec.Decode(cm)
		if err != nil {
			log.Warnf("LoopChannelRead %s cant decode: %v", ps.Id, err)
			ps.State = PS_ERR
			ps.GameSession.Errors <- ps.Id
			break loop
		}
		ps.DebugLastMessage = time.Now()
		ps.DebugInMessages++

		select {
		case ps.GameSession.Events <- PlayerEvent{
			Player:  ps.Id,
			Message: *cm,
		}:
		default:
			log.Warnf("dropping message from %s, GameSession.Events FULL", ps.Id)
		}
	}
	log.Printf("LoopChannelRead ENDED %s", ps.Id)
}

// this function only consumes. no worries about full buffer stuck
func (ps *PlayerSession) LoopChannelWrite() {
	log.Printf("LoopChannelWrite STARTED %s", ps.Id)
loop:
	for mes := range ps.MessagesToSend {
		// PS_ERR_SEC still gets its departure message flushed, only the
		// player whose own socket died is skipped
		if ps.State == PS_ERR {
			log.Printf("LoopChannelWrite %s it was close event", ps.Id)
			break loop
		}
		w, err := ps.Conn.NextWriter(websocket.BinaryMessage)
		if err != nil {
			log.Warnf("LoopChannelWrite %s cant get writer %v", ps.Id, err)
			ps.State = PS_ERR
			ps.GameSession.Errors <- ps.Id
			break loop
		}
		enc := gob.NewEncoder(w)
		err = enc.Encode(mes)
		if err != nil {
			log.Warnf("LoopChannelWrite %s cant encode %v", ps.Id, err)
			ps.State = PS_ERR
			ps.GameSession.Errors <- ps.Id
			break loop
		}
		err = w.Close()
		if err != nil {
			log.Warnf("LoopChannelWrite %s cant close writer %v", ps.Id, err)
			ps.State = PS_ERR
			ps.GameSession.Errors <- ps.Id
			break loop
		}
		ps.DebugOutMessages++
	}
	log.Printf("LoopChannelWrite ENDED %s", ps.Id)
}
