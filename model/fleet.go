package model

// ShipCell is one occupied cell and its hit flag.
type ShipCell struct {
	Pos Position
	Hit bool
}

// Ship is one placed ship in the live hit record.
type Ship struct {
	Type  ShipType
	Cells []ShipCell
}

// Sunk reports whether every cell of this ship has been hit.
func (s *Ship) Sunk() bool {
	if len(s.Cells) == 0 {
		return false
	}
	for _, c := range s.Cells {
		if !c.Hit {
			return false
		}
	}
	return true
}

// Fleet is one participant's hit record. Geometry is frozen at
// construction from a validated layout, only the hit flags mutate, and
// only through RecordShot. The owning session goroutine is the single
// writer.
type Fleet struct {
	Ships []Ship
}

func NewFleet(layout Layout) *Fleet {
	ships := make([]Ship, 0, len(ShipTypes))
	for _, t := range ShipTypes {
		placement, ok := layout[t]
		if !ok {
			continue
		}
		cells := make([]ShipCell, 0, t.Length())
		for _, pos := range placement.Cells(t) {
			cells = append(cells, ShipCell{Pos: pos})
		}
		ships = append(ships, Ship{Type: t, Cells: cells})
	}
	return &Fleet{Ships: ships}
}

// RecordShot marks the cell at pos as hit if any ship occupies it.
// Hitting an already hit cell reports a hit again, the flag just stays
// set. Returns the ship type and whether the shot finished it off.
func (f *Fleet) RecordShot(pos Position) (hit bool, ship ShipType, sunk bool) {
	for i := range f.Ships {
		s := &f.Ships[i]
		for j := range s.Cells {
			if s.Cells[j].Pos == pos {
				s.Cells[j].Hit = true
				return true, s.Type, s.Sunk()
			}
		}
	}
	return false, 0, false
}

// HasLost reports whether the fleet is fully destroyed. A nil fleet
// means no placement was submitted yet, so no loss. A fleet without any
// cells must not count as all-hit either; the validator makes that
// shape impossible, but an empty record vacuously passing an all-of
// check would end a match nobody played.
func HasLost(f *Fleet) bool {
	if f == nil {
		return false
	}
	cells := 0
	for _, s := range f.Ships {
		for _, c := range s.Cells {
			if !c.Hit {
				return false
			}
			cells++
		}
	}
	return cells > 0
}
