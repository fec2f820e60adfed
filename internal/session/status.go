package session

import "git.lost.host/meutraa/runbeat/internal/game"

// StatusMachine moves a session from Running to exactly one terminal status.
type StatusMachine struct {
	status game.SessionStatus
}

func (m *StatusMachine) Status() game.SessionStatus {
	return m.status
}

// Complete reports whether the call changed the status.
func (m *StatusMachine) Complete() bool {
	return m.transition(game.Completed)
}

// Fail reports whether the call changed the status.
func (m *StatusMachine) Fail() bool {
	return m.transition(game.Failed)
}

func (m *StatusMachine) transition(to game.SessionStatus) bool {
	if m.status.Terminal() {
		return false
	}
	m.status = to
	return true
}
