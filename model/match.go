package model

import "errors"

// ErrMatchFull is returned when a third participant tries to join.
var ErrMatchFull = errors.New("match already has two participants")

// Match pairs two participants for one game. Slots fill one way only:
// empty, then joinable with one participant, then ready with two.
// Nothing here ever removes a participant, leaving is the session
// layer's problem.
type Match struct {
	participants []string
	ready        bool
}

func NewMatch() *Match {
	return &Match{participants: make([]string, 0, 2)}
}

// AddParticipant puts id into the open slot. Callers check IsJoinable
// first; a full match is refused with ErrMatchFull.
func (m *Match) AddParticipant(id string) error {
	if !m.IsJoinable() {
		return ErrMatchFull
	}
	m.participants = append(m.participants, id)
	m.ready = len(m.participants) == 2
	return nil
}

// IsJoinable reports whether the second slot is still open.
func (m *Match) IsJoinable() bool {
	return len(m.participants) < 2
}

// Ready reports whether both slots are filled.
func (m *Match) Ready() bool {
	return m.ready
}

// Opponent resolves the other participant's id. Empty until the second
// participant joins. An id that matches neither slot fails with
// *NotAParticipantError, which the host treats as an integrity bug, not
// player input.
func (m *Match) Opponent(id string) (string, error) {
	for i, p := range m.participants {
		if p == id {
			other := 1 - i
			if other < len(m.participants) {
				return m.participants[other], nil
			}
			return "", nil
		}
	}
	return "", &NotAParticipantError{ID: id}
}

// Participants returns the joined ids in join order.
func (m *Match) Participants() []string {
	out := make([]string, len(m.participants))
	copy(out, m.participants)
	return out
}
