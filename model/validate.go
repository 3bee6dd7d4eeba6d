package model

import "fmt"

// ShipPlacementRequest is one untrusted ship entry as sent by a client.
type ShipPlacementRequest struct {
	Col         int
	Row         int
	Orientation string
}

// PlacementRequest is the untrusted placement payload, keyed by ship
// type name. Anything can arrive here, including unknown keys and
// nonsense coordinates.
type PlacementRequest struct {
	Ships map[string]ShipPlacementRequest
}

// Grid counts ship occupancy per cell during validation. Scratch space
// only: built fresh for every call, never retained.
type Grid [][]int

func NewGrid(size int) Grid {
	g := make(Grid, size)
	for i := range g {
		g[i] = make([]int, size)
	}
	return g
}

// ValidatePlacement checks an untrusted placement request against the
// board and fleet rules, in three passes.
//
// The schema pass checks shape: every ship type present exactly once,
// no unknown keys, origin inside the board, orientation one of the two
// allowed values. All violations are collected before reporting, the
// client gets the full list in one *SchemaError.
//
// The geometry pass expands each ship into its cells and counts them on
// a fresh occupancy grid. A cell off the board fails with
// *OutOfBoundsError naming the ship and coordinate, which is what
// catches a ship whose origin is fine but whose far end is not.
//
// The consistency pass scans the grid: a count above one fails with
// *OverlapError naming the shared cell, and the occupied total has to
// equal the fleet total or the call fails with *OccupancyMismatchError.
//
// On success the returned Layout holds the same values the request
// carried, now typed and safe to build a Fleet from. The function is
// pure, it keeps no state between calls.
func ValidatePlacement(req PlacementRequest, size int) (Layout, error) {
	layout, violations := checkSchema(req, size)
	if len(violations) > 0 {
		return nil, &SchemaError{Violations: violations}
	}

	grid := NewGrid(size)
	for _, t := range ShipTypes {
		for _, c := range layout[t].Cells(t) {
			if c.Col >= size || c.Row >= size {
				return nil, &OutOfBoundsError{Ship: t, Pos: c}
			}
			grid[c.Col][c.Row]++
		}
	}

	occupied := 0
	for col := range grid {
		for row, n := range grid[col] {
			if n > 1 {
				return nil, &OverlapError{Pos: Position{Col: col, Row: row}}
			}
			occupied += n
		}
	}
	if occupied != TotalShipCells() {
		return nil, &OccupancyMismatchError{Got: occupied, Want: TotalShipCells()}
	}

	return layout, nil
}

func checkSchema(req PlacementRequest, size int) (Layout, []FieldViolation) {
	var violations []FieldViolation

	for name := range req.Ships {
		if _, ok := ShipTypeByName(name); !ok {
			violations = append(violations, FieldViolation{Field: name, Reason: "unknown ship type"})
		}
	}

	layout := make(Layout, len(ShipTypes))
	for _, t := range ShipTypes {
		ship, ok := req.Ships[t.Name()]
		if !ok {
			violations = append(violations, FieldViolation{Field: t.Name(), Reason: "missing"})
			continue
		}
		if ship.Col < 0 || ship.Col >= size {
			violations = append(violations, FieldViolation{
				Field:  t.Name() + ".col",
				Reason: fmt.Sprintf("%d outside 0..%d", ship.Col, size-1),
			})
		}
		if ship.Row < 0 || ship.Row >= size {
			violations = append(violations, FieldViolation{
				Field:  t.Name() + ".row",
				Reason: fmt.Sprintf("%d outside 0..%d", ship.Row, size-1),
			})
		}
		orientation, ok := OrientationByName(ship.Orientation)
		if !ok {
			violations = append(violations, FieldViolation{
				Field:  t.Name() + ".orientation",
				Reason: fmt.Sprintf("%q is not horizontal or vertical", ship.Orientation),
			})
			continue
		}
		layout[t] = Placement{
			Origin:      Position{Col: ship.Col, Row: ship.Row},
			Orientation: orientation,
		}
	}

	return layout, violations
}
