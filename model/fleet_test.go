package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFleet(t *testing.T) *Fleet {
	t.Helper()
	layout, err := ValidatePlacement(validRequest(), DefaultBoardSize)
	require.NoError(t, err)
	return NewFleet(layout)
}

func TestNewFleetCells(t *testing.T) {
	fleet := testFleet(t)
	require.Len(t, fleet.Ships, len(ShipTypes))
	cells := 0
	for _, s := range fleet.Ships {
		assert.Len(t, s.Cells, s.Type.Length())
		cells += len(s.Cells)
	}
	assert.Equal(t, TotalShipCells(), cells)
}

func TestRecordShot(t *testing.T) {
	fleet := testFleet(t)

	hit, _, _ := fleet.RecordShot(Position{Col: 9, Row: 9})
	assert.False(t, hit, "empty water")

	hit, ship, sunk := fleet.RecordShot(Position{Col: 5, Row: 5})
	assert.True(t, hit)
	assert.Equal(t, Destroyer, ship)
	assert.False(t, sunk, "one destroyer cell left")

	hit, ship, sunk = fleet.RecordShot(Position{Col: 5, Row: 6})
	assert.True(t, hit)
	assert.Equal(t, Destroyer, ship)
	assert.True(t, sunk)

	// shooting a dead cell again changes nothing
	hit, _, sunk = fleet.RecordShot(Position{Col: 5, Row: 5})
	assert.True(t, hit)
	assert.True(t, sunk)
}

func TestHasLostNilFleet(t *testing.T) {
	assert.False(t, HasLost(nil), "no placement submitted yet")
}

func TestHasLostEmptyFleet(t *testing.T) {
	assert.False(t, HasLost(&Fleet{}), "zero cells must not count as all hit")
	assert.False(t, HasLost(&Fleet{Ships: []Ship{{Type: Destroyer}}}))
}

func TestHasLostProgression(t *testing.T) {
	fleet := testFleet(t)
	var all []Position
	for _, s := range fleet.Ships {
		for _, c := range s.Cells {
			all = append(all, c.Pos)
		}
	}
	for _, pos := range all {
		assert.False(t, HasLost(fleet))
		hit, _, _ := fleet.RecordShot(pos)
		require.True(t, hit)
	}
	assert.True(t, HasLost(fleet))
}
