package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchJoining(t *testing.T) {
	m := NewMatch()
	assert.True(t, m.IsJoinable())
	assert.False(t, m.Ready())
	assert.Empty(t, m.Participants())

	require.NoError(t, m.AddParticipant("alice"))
	assert.True(t, m.IsJoinable(), "second slot still open")
	assert.False(t, m.Ready())

	require.NoError(t, m.AddParticipant("bob"))
	assert.False(t, m.IsJoinable())
	assert.True(t, m.Ready())
	assert.Equal(t, []string{"alice", "bob"}, m.Participants())

	assert.ErrorIs(t, m.AddParticipant("mallory"), ErrMatchFull)
	assert.Equal(t, []string{"alice", "bob"}, m.Participants(), "refused join changes nothing")
}

func TestMatchOpponent(t *testing.T) {
	m := NewMatch()
	require.NoError(t, m.AddParticipant("alice"))

	opponent, err := m.Opponent("alice")
	require.NoError(t, err)
	assert.Empty(t, opponent, "nobody joined yet")

	require.NoError(t, m.AddParticipant("bob"))

	opponent, err = m.Opponent("alice")
	require.NoError(t, err)
	assert.Equal(t, "bob", opponent)

	opponent, err = m.Opponent("bob")
	require.NoError(t, err)
	assert.Equal(t, "alice", opponent)
}

func TestMatchOpponentStranger(t *testing.T) {
	m := NewMatch()
	require.NoError(t, m.AddParticipant("alice"))
	require.NoError(t, m.AddParticipant("bob"))

	_, err := m.Opponent("mallory")
	var notP *NotAParticipantError
	require.True(t, errors.As(err, &notP))
	assert.Equal(t, "mallory", notP.ID)
}
