package model

// ClientMessage is one request from a player. Exactly one field is set.
type ClientMessage struct {
	Place *PlacementRequest
	Fire  *Position
}

// ServerMessage is everything the server can push to a player in one
// websocket frame.
type ServerMessage struct {
	Setup      []Setup
	Placements []PlacementVerdict
	Starts     []Start
	Shots      []ShotResult
	Endings    []GameOver
	Departures []OpponentLeft
}

// Setup is sent once when both participants are paired.
type Setup struct {
	BoardSize int
	PlayerKey string
	Opponent  string
	YourTurn  bool
}

// PlacementVerdict answers a placement submission. Violations carries
// the full schema violation list when there is one; Reason covers the
// geometry rejections.
type PlacementVerdict struct {
	Accepted   bool
	Violations []FieldViolation
	Reason     string
}

// Start tells a player both fleets are placed and shooting begins.
type Start struct {
	YourTurn bool
}

// ShotResult reports one resolved (or refused) shot to both players.
type ShotResult struct {
	PlayerKey string
	Col, Row  int
	Rejected  bool
	Hit       bool
	Sunk      bool
	Ship      ShipType
	YourTurn  bool
}

// GameOver ends the match for one player.
type GameOver struct {
	Winner string
	Won    bool
}

// OpponentLeft tells the surviving player the other side is gone.
type OpponentLeft struct {
	PlayerKey string
}
