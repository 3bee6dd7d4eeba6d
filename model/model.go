package model

import "fmt"

// DefaultBoardSize is the board dimension used unless configured
// otherwise. Validator, fleet and session layer must all share one size.
const DefaultBoardSize = 10

// ShipType identifies one of the fixed ship classes. Every participant
// fields exactly one ship of each type per match.
type ShipType int

const (
	Battleship ShipType = iota + 1
	Cruiser
	Destroyer
)

// ShipTypes lists every class a complete placement must contain.
var ShipTypes = []ShipType{Battleship, Cruiser, Destroyer}

// Length is the number of cells the ship occupies.
func (t ShipType) Length() int {
	switch t {
	case Battleship:
		return 4
	case Cruiser:
		return 3
	case Destroyer:
		return 2
	default:
		return 0
	}
}

func (t ShipType) Name() string {
	switch t {
	case Battleship:
		return "battleship"
	case Cruiser:
		return "cruiser"
	case Destroyer:
		return "destroyer"
	default:
		return fmt.Sprintf("n/a:%d", int(t))
	}
}

// ShipTypeByName maps a wire payload key back to its ship type.
func ShipTypeByName(name string) (ShipType, bool) {
	for _, t := range ShipTypes {
		if t.Name() == name {
			return t, true
		}
	}
	return 0, false
}

// TotalShipCells is the occupied cell count of a complete fleet.
func TotalShipCells() int {
	n := 0
	for _, t := range ShipTypes {
		n += t.Length()
	}
	return n
}

type Orientation int

const (
	Horizontal Orientation = iota + 1
	Vertical
)

func (o Orientation) Name() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return fmt.Sprintf("n/a:%d", int(o))
	}
}

func OrientationByName(name string) (Orientation, bool) {
	switch name {
	case "horizontal":
		return Horizontal, true
	case "vertical":
		return Vertical, true
	}
	return 0, false
}

// Position is one board cell, zero based on both axes.
type Position struct {
	Col, Row int
}

// Placement is a single ship's origin and orientation.
type Placement struct {
	Origin      Position
	Orientation Orientation
}

// Cells expands a ship of type t at this placement into the positions it
// occupies. Cells extend from the origin in the positive column
// direction for horizontal ships and the positive row direction for
// vertical ones. No bounds check here, callers validate.
func (p Placement) Cells(t ShipType) []Position {
	cells := make([]Position, 0, t.Length())
	for i := 0; i < t.Length(); i++ {
		c := p.Origin
		if p.Orientation == Horizontal {
			c.Col += i
		} else {
			c.Row += i
		}
		cells = append(cells, c)
	}
	return cells
}

// Layout maps every ship type to its placement. A Layout is only ever
// produced by ValidatePlacement, so holding one is proof the placement
// passed every check.
type Layout map[ShipType]Placement
