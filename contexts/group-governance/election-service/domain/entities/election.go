package entities

import "time"

// User is a read-only projection of the shared users table.
type User struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

// GroupRef identifies the owning group of an election.
type GroupRef struct {
	ID   uint
	Name string
}

// Election is a voting window for a group. No ordering between DateFrom and
// DateTo is enforced; the rows are stored exactly as submitted.
type Election struct {
	ID        uint
	GroupID   uint
	CreatorID uint
	DateFrom  time.Time
	DateTo    time.Time
	CreatedAt time.Time
}

// Position is a seat contested within an election.
type Position struct {
	ID         uint
	ElectionID uint
	CreatorID  uint
	Label      string
	CreatedAt  time.Time
}

// Candidate nominates a user for a position. ElectionID is always derived
// from the position row, never from caller input.
type Candidate struct {
	ID          uint
	NomineeID   uint
	PositionID  uint
	ElectionID  uint
	NominatorID uint
	CreatedAt   time.Time
}

// VotingRight is the ledger row that gates one vote per
// (user, election, position). Its existence, not the vote's, is the
// authoritative used-slot signal.
type VotingRight struct {
	ID         uint
	UserID     uint
	ElectionID uint
	PositionID uint
	HasVoted   bool
	CreatedAt  time.Time
}

// Vote records a committed ballot. VoterID is kept for auditing and is not
// part of any uniqueness rule.
type Vote struct {
	ID          uint
	ElectionID  uint
	CandidateID uint
	PositionID  uint
	VoterID     uint
	CreatedAt   time.Time
}

// CandidateTally is a read model: committed vote count per candidate with
// the nominee and position attached.
type CandidateTally struct {
	Candidate Candidate
	Nominee   User
	Position  Position
	Votes     int
}

// PositionTally is a read model: committed vote count per position.
type PositionTally struct {
	Position Position
	Votes    int
}
