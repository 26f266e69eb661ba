package models

import "time"

// MatchRecord is the stored state of one PvP contest. Bot rounds are
// stateless and never produce a record.
//
// The record's ID is the only session handle that ever leaves the process:
// it rides in the matchId query parameter of PvP callback targets. The
// initiator is fixed at creation; the opponent slot is bound once, to the
// first distinct identity that acts on the match. Each role's move is
// written at most once; a later tap with a different button never
// overwrites a recorded move.
type MatchRecord struct {
	ID            string
	InitiatorFID  int64
	OpponentFID   *int64
	InitiatorMove Move
	OpponentMove  Move
	CreatedAt     time.Time
}

// HasOpponent reports whether a second identity has been bound.
func (m *MatchRecord) HasOpponent() bool {
	return m.OpponentFID != nil
}

// IsComplete reports whether both parties have committed a move. A match
// without an opponent is never complete, whatever the initiator played.
func (m *MatchRecord) IsComplete() bool {
	return m.HasOpponent() && m.InitiatorMove != MoveNone && m.OpponentMove != MoveNone
}

// RoleOf classifies an identity against the record: the initiator, the
// bound opponent, or neither (a third party peeking at a full lobby).
func (m *MatchRecord) RoleOf(fid int64) MatchRole {
	if fid == m.InitiatorFID {
		return RoleInitiator
	}
	if m.OpponentFID != nil && fid == *m.OpponentFID {
		return RoleOpponent
	}
	return RoleNone
}

// MatchRole identifies which seat an identity holds in a match.
type MatchRole int

const (
	RoleNone MatchRole = iota
	RoleInitiator
	RoleOpponent
)

// Clone returns a deep copy safe to read after the store's lock is
// released.
func (m *MatchRecord) Clone() MatchRecord {
	out := *m
	if m.OpponentFID != nil {
		fid := *m.OpponentFID
		out.OpponentFID = &fid
	}
	return out
}
