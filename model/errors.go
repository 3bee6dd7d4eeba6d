package model

import (
	"fmt"
	"strings"
)

// FieldViolation is one structural problem in a placement request.
type FieldViolation struct {
	Field  string
	Reason string
}

func (v FieldViolation) String() string {
	return v.Field + ": " + v.Reason
}

// SchemaError carries every structural violation found in a placement
// request, not only the first, so the client can fix them all at once.
type SchemaError struct {
	Violations []FieldViolation
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return "invalid placement: " + strings.Join(parts, "; ")
}

// OutOfBoundsError names a ship whose cells run past the board edge.
// The origin alone passing the schema check is not enough, the far end
// of the ship has to land on the board too.
type OutOfBoundsError struct {
	Ship ShipType
	Pos  Position
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s out of bounds at col:%d row:%d", e.Ship.Name(), e.Pos.Col, e.Pos.Row)
}

// OverlapError names a cell claimed by more than one ship.
type OverlapError struct {
	Pos Position
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("ships overlap at col:%d row:%d", e.Pos.Col, e.Pos.Row)
}

// OccupancyMismatchError reports an occupied cell count that differs
// from the fleet total. The earlier passes should make this unreachable.
type OccupancyMismatchError struct {
	Got, Want int
}

func (e *OccupancyMismatchError) Error() string {
	return fmt.Sprintf("occupied %d cells, want %d", e.Got, e.Want)
}

// NotAParticipantError reports an id acting on a match it never joined.
// This is a routing or session bug in the host, not bad player input,
// and callers are expected to fail the request and log it as such.
type NotAParticipantError struct {
	ID string
}

func (e *NotAParticipantError) Error() string {
	return fmt.Sprintf("%q is not a participant of this match", e.ID)
}
