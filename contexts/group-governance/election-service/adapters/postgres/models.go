package postgresadapter

import (
	"time"

	"concord/contexts/group-governance/election-service/domain/entities"
)

// userRow and groupRow are read-only projections of tables owned elsewhere.
type userRow struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

func (userRow) TableName() string { return "users" }

type groupRow struct {
	ID   uint
	Name string
}

func (groupRow) TableName() string { return "groups" }

type electionModel struct {
	ID        uint      `gorm:"primaryKey"`
	GroupID   uint      `gorm:"not null;index"`
	CreatorID uint      `gorm:"not null"`
	DateFrom  time.Time `gorm:"not null"`
	DateTo    time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (electionModel) TableName() string { return "elections" }

type positionModel struct {
	ID         uint   `gorm:"primaryKey"`
	ElectionID uint   `gorm:"not null;index"`
	CreatorID  uint   `gorm:"not null"`
	Label      string `gorm:"size:120;not null"`
	CreatedAt  time.Time
}

func (positionModel) TableName() string { return "positions" }

type candidateModel struct {
	ID          uint `gorm:"primaryKey"`
	NomineeID   uint `gorm:"not null;uniqueIndex:idx_candidates_nominee_position"`
	PositionID  uint `gorm:"not null;uniqueIndex:idx_candidates_nominee_position"`
	ElectionID  uint `gorm:"not null;index"`
	NominatorID uint `gorm:"not null"`
	CreatedAt   time.Time
}

func (candidateModel) TableName() string { return "candidates" }

// votingRightModel carries the composite unique index that turns the
// concurrent cast-vote race into a constraint violation.
type votingRightModel struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_voting_rights_user_election_position"`
	ElectionID uint `gorm:"not null;uniqueIndex:idx_voting_rights_user_election_position"`
	PositionID uint `gorm:"not null;uniqueIndex:idx_voting_rights_user_election_position"`
	HasVoted   bool `gorm:"not null;default:false"`
	CreatedAt  time.Time
}

func (votingRightModel) TableName() string { return "voting_rights" }

type voteModel struct {
	ID          uint `gorm:"primaryKey"`
	ElectionID  uint `gorm:"not null;index"`
	CandidateID uint `gorm:"not null;index"`
	PositionID  uint `gorm:"not null;index"`
	VoterID     uint
	CreatedAt   time.Time
}

func (voteModel) TableName() string { return "votes" }

// Models lists what this adapter migrates.
func Models() []any {
	return []any{&electionModel{}, &positionModel{}, &candidateModel{}, &votingRightModel{}, &voteModel{}}
}

// Constraints adds the FK cascades AutoMigrate cannot derive from
// cross-package models. Ending an election must remove its positions,
// candidates, votes and voting rights in the same statement.
func Constraints() []string {
	return []string{
		`ALTER TABLE elections DROP CONSTRAINT IF EXISTS fk_elections_group,
			ADD CONSTRAINT fk_elections_group FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE`,
		`ALTER TABLE positions DROP CONSTRAINT IF EXISTS fk_positions_election,
			ADD CONSTRAINT fk_positions_election FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE`,
		`ALTER TABLE candidates DROP CONSTRAINT IF EXISTS fk_candidates_election,
			ADD CONSTRAINT fk_candidates_election FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE`,
		`ALTER TABLE candidates DROP CONSTRAINT IF EXISTS fk_candidates_position,
			ADD CONSTRAINT fk_candidates_position FOREIGN KEY (position_id) REFERENCES positions(id) ON DELETE CASCADE`,
		`ALTER TABLE voting_rights DROP CONSTRAINT IF EXISTS fk_voting_rights_election,
			ADD CONSTRAINT fk_voting_rights_election FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE`,
		`ALTER TABLE voting_rights DROP CONSTRAINT IF EXISTS fk_voting_rights_position,
			ADD CONSTRAINT fk_voting_rights_position FOREIGN KEY (position_id) REFERENCES positions(id) ON DELETE CASCADE`,
		`ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_election,
			ADD CONSTRAINT fk_votes_election FOREIGN KEY (election_id) REFERENCES elections(id) ON DELETE CASCADE`,
		`ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_position,
			ADD CONSTRAINT fk_votes_position FOREIGN KEY (position_id) REFERENCES positions(id) ON DELETE CASCADE`,
		`ALTER TABLE votes DROP CONSTRAINT IF EXISTS fk_votes_candidate,
			ADD CONSTRAINT fk_votes_candidate FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE`,
	}
}

func (m userRow) toEntity() entities.User {
	return entities.User{ID: m.ID, Name: m.Name, Email: m.Email, Role: m.Role}
}

func (m electionModel) toEntity() entities.Election {
	return entities.Election{
		ID:        m.ID,
		GroupID:   m.GroupID,
		CreatorID: m.CreatorID,
		DateFrom:  m.DateFrom,
		DateTo:    m.DateTo,
		CreatedAt: m.CreatedAt,
	}
}

func (m positionModel) toEntity() entities.Position {
	return entities.Position{
		ID:         m.ID,
		ElectionID: m.ElectionID,
		CreatorID:  m.CreatorID,
		Label:      m.Label,
		CreatedAt:  m.CreatedAt,
	}
}

func (m candidateModel) toEntity() entities.Candidate {
	return entities.Candidate{
		ID:          m.ID,
		NomineeID:   m.NomineeID,
		PositionID:  m.PositionID,
		ElectionID:  m.ElectionID,
		NominatorID: m.NominatorID,
		CreatedAt:   m.CreatedAt,
	}
}

func (m votingRightModel) toEntity() entities.VotingRight {
	return entities.VotingRight{
		ID:         m.ID,
		UserID:     m.UserID,
		ElectionID: m.ElectionID,
		PositionID: m.PositionID,
		HasVoted:   m.HasVoted,
		CreatedAt:  m.CreatedAt,
	}
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		ID:          m.ID,
		ElectionID:  m.ElectionID,
		CandidateID: m.CandidateID,
		PositionID:  m.PositionID,
		VoterID:     m.VoterID,
		CreatedAt:   m.CreatedAt,
	}
}
