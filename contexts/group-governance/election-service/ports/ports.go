package ports

import (
	"context"
	"time"

	"concord/contexts/group-governance/election-service/domain/entities"
	"concord/internal/shared/fanout"
)

// Identity is the authenticated caller as resolved by the transport layer.
type Identity struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

// NominateResult carries everything the post-commit fan-out needs, loaded
// inside the nomination transaction.
type NominateResult struct {
	Candidate entities.Candidate
	Position  entities.Position
	Nominee   entities.User
}

// CastVoteResult is the committed ledger entry and ballot pair.
type CastVoteResult struct {
	Right entities.VotingRight
	Vote  entities.Vote
}

// Repository is the persistence port. Mutating methods are workflow-shaped:
// each runs its reads and writes inside one transaction so the domain rules
// hold under concurrent requests.
type Repository interface {
	GetGroup(ctx context.Context, groupID uint) (entities.GroupRef, bool, error)
	GetUser(ctx context.Context, userID uint) (entities.User, bool, error)
	GetElection(ctx context.Context, electionID uint) (entities.Election, bool, error)
	GetPosition(ctx context.Context, positionID uint) (entities.Position, bool, error)

	// CreateElection persists the election as submitted. Dates are not
	// validated against each other.
	CreateElection(ctx context.Context, election entities.Election, now time.Time) (entities.Election, error)

	// EndElection captures the election row, then deletes it with its
	// positions, candidates, votes and voting rights cascading. Returns
	// ErrNotFound when the election is absent.
	EndElection(ctx context.Context, electionID uint) (entities.Election, error)

	// CreatePosition fails with ErrInvalidPayload when the election is absent.
	CreatePosition(ctx context.Context, position entities.Position, now time.Time) (entities.Position, error)

	// DeletePosition captures then deletes the position, cascading its
	// candidates, votes and voting rights. Returns ErrNotFound when absent.
	DeletePosition(ctx context.Context, positionID uint) (entities.Position, error)

	// NominateCandidate loads the position, derives the election id from it,
	// verifies the nominee exists and inserts the candidate row. Fails with
	// ErrInvalidPayload on a missing position or nominee and with
	// ErrAlreadyNominated on a duplicate (nominee, position) pair.
	NominateCandidate(ctx context.Context, nomineeID uint, positionID uint, nominatorID uint, now time.Time) (NominateResult, error)

	// CastVote claims the (voter, election, position) ledger slot and writes
	// the vote in one transaction. Fails with ErrAlreadyVoted when the slot
	// is taken, including when a concurrent claim wins the race, and with
	// ErrInvalidPayload when the candidate does not belong to the given
	// election and position.
	CastVote(ctx context.Context, voterID uint, electionID uint, candidateID uint, positionID uint, now time.Time) (CastVoteResult, error)

	ListElectionsForGroup(ctx context.Context, groupID uint) ([]entities.Election, error)
	ListPositions(ctx context.Context, electionID uint) ([]entities.Position, error)
	ListCandidates(ctx context.Context, positionID uint) ([]entities.Candidate, error)

	// ListExpiredElections returns elections whose date_to is at or before
	// the given instant.
	ListExpiredElections(ctx context.Context, now time.Time) ([]entities.Election, error)

	// TallyByCandidate and TallyByPosition count committed votes. An absent
	// election yields an empty result, not an error.
	TallyByCandidate(ctx context.Context, electionID uint) ([]entities.CandidateTally, error)
	TallyByPosition(ctx context.Context, electionID uint) ([]entities.PositionTally, error)
}

// FanoutPublisher hands a post-commit delivery to the dispatch queue.
type FanoutPublisher interface {
	Publish(ctx context.Context, delivery fanout.Delivery)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}
