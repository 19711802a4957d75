package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"concord/contexts/group-governance/election-service/domain/entities"
	domainerrors "concord/contexts/group-governance/election-service/domain/errors"
	"concord/contexts/group-governance/election-service/ports"
)

type rightKey struct {
	userID     uint
	electionID uint
	positionID uint
}

// Store is the in-memory repository for tests and local wiring. All mutating
// methods hold one mutex for their full read-check-write sequence, giving the
// same all-or-nothing behavior the relational transactions provide.
type Store struct {
	mu sync.Mutex

	usersByID      map[uint]entities.User
	groupsByID     map[uint]entities.GroupRef
	electionsByID  map[uint]entities.Election
	positionsByID  map[uint]entities.Position
	candidatesByID map[uint]entities.Candidate
	rightsByKey    map[rightKey]entities.VotingRight
	votesByID      map[uint]entities.Vote

	sequence uint
	now      time.Time
}

func NewStore() *Store {
	store := &Store{
		usersByID:      make(map[uint]entities.User),
		groupsByID:     make(map[uint]entities.GroupRef),
		electionsByID:  make(map[uint]entities.Election),
		positionsByID:  make(map[uint]entities.Position),
		candidatesByID: make(map[uint]entities.Candidate),
		rightsByKey:    make(map[rightKey]entities.VotingRight),
		votesByID:      make(map[uint]entities.Vote),
		now:            time.Now().UTC(),
	}
	for _, user := range []entities.User{
		{ID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: "admin"},
		{ID: 2, Name: "Ben Member", Email: "ben@example.com", Role: "member"},
		{ID: 3, Name: "Cleo Member", Email: "cleo@example.com", Role: "member"},
		{ID: 4, Name: "Dan Member", Email: "dan@example.com", Role: "member"},
	} {
		store.usersByID[user.ID] = user
	}
	store.groupsByID[10] = entities.GroupRef{ID: 10, Name: "Board"}
	return store
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

func (s *Store) nextIDLocked() uint {
	s.sequence++
	return s.sequence + 3000
}

func (s *Store) GetGroup(_ context.Context, groupID uint) (entities.GroupRef, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groupsByID[groupID]
	return group, ok, nil
}

func (s *Store) GetUser(_ context.Context, userID uint) (entities.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.usersByID[userID]
	return user, ok, nil
}

func (s *Store) GetElection(_ context.Context, electionID uint) (entities.Election, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	election, ok := s.electionsByID[electionID]
	return election, ok, nil
}

func (s *Store) GetPosition(_ context.Context, positionID uint) (entities.Position, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	position, ok := s.positionsByID[positionID]
	return position, ok, nil
}

func (s *Store) CreateElection(_ context.Context, election entities.Election, now time.Time) (entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groupsByID[election.GroupID]; !ok {
		return entities.Election{}, domainerrors.ErrInvalidPayload
	}
	election.ID = s.nextIDLocked()
	election.CreatedAt = now
	s.electionsByID[election.ID] = election
	return election, nil
}

func (s *Store) EndElection(_ context.Context, electionID uint) (entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	election, ok := s.electionsByID[electionID]
	if !ok {
		return entities.Election{}, domainerrors.ErrNotFound
	}
	delete(s.electionsByID, electionID)
	for id, position := range s.positionsByID {
		if position.ElectionID == electionID {
			delete(s.positionsByID, id)
		}
	}
	for id, candidate := range s.candidatesByID {
		if candidate.ElectionID == electionID {
			delete(s.candidatesByID, id)
		}
	}
	for id, vote := range s.votesByID {
		if vote.ElectionID == electionID {
			delete(s.votesByID, id)
		}
	}
	for key := range s.rightsByKey {
		if key.electionID == electionID {
			delete(s.rightsByKey, key)
		}
	}
	return election, nil
}

func (s *Store) CreatePosition(_ context.Context, position entities.Position, now time.Time) (entities.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.electionsByID[position.ElectionID]; !ok {
		return entities.Position{}, domainerrors.ErrInvalidPayload
	}
	position.ID = s.nextIDLocked()
	position.CreatedAt = now
	s.positionsByID[position.ID] = position
	return position, nil
}

func (s *Store) DeletePosition(_ context.Context, positionID uint) (entities.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, ok := s.positionsByID[positionID]
	if !ok {
		return entities.Position{}, domainerrors.ErrNotFound
	}
	delete(s.positionsByID, positionID)
	for id, candidate := range s.candidatesByID {
		if candidate.PositionID == positionID {
			delete(s.candidatesByID, id)
		}
	}
	for id, vote := range s.votesByID {
		if vote.PositionID == positionID {
			delete(s.votesByID, id)
		}
	}
	for key := range s.rightsByKey {
		if key.positionID == positionID {
			delete(s.rightsByKey, key)
		}
	}
	return position, nil
}

func (s *Store) NominateCandidate(
	_ context.Context,
	nomineeID uint,
	positionID uint,
	nominatorID uint,
	now time.Time,
) (ports.NominateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	position, ok := s.positionsByID[positionID]
	if !ok {
		return ports.NominateResult{}, domainerrors.ErrInvalidPayload
	}
	nominee, ok := s.usersByID[nomineeID]
	if !ok {
		return ports.NominateResult{}, domainerrors.ErrInvalidPayload
	}
	for _, candidate := range s.candidatesByID {
		if candidate.NomineeID == nomineeID && candidate.PositionID == positionID {
			return ports.NominateResult{}, domainerrors.ErrAlreadyNominated
		}
	}

	candidate := entities.Candidate{
		ID:          s.nextIDLocked(),
		NomineeID:   nomineeID,
		PositionID:  positionID,
		ElectionID:  position.ElectionID,
		NominatorID: nominatorID,
		CreatedAt:   now,
	}
	s.candidatesByID[candidate.ID] = candidate
	return ports.NominateResult{Candidate: candidate, Position: position, Nominee: nominee}, nil
}

func (s *Store) CastVote(
	_ context.Context,
	voterID uint,
	electionID uint,
	candidateID uint,
	positionID uint,
	now time.Time,
) (ports.CastVoteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate, ok := s.candidatesByID[candidateID]
	if !ok || candidate.PositionID != positionID || candidate.ElectionID != electionID {
		return ports.CastVoteResult{}, domainerrors.ErrInvalidPayload
	}

	key := rightKey{userID: voterID, electionID: electionID, positionID: positionID}
	if _, claimed := s.rightsByKey[key]; claimed {
		return ports.CastVoteResult{}, domainerrors.ErrAlreadyVoted
	}

	right := entities.VotingRight{
		ID:         s.nextIDLocked(),
		UserID:     voterID,
		ElectionID: electionID,
		PositionID: positionID,
		HasVoted:   true,
		CreatedAt:  now,
	}
	s.rightsByKey[key] = right

	vote := entities.Vote{
		ID:          s.nextIDLocked(),
		ElectionID:  electionID,
		CandidateID: candidateID,
		PositionID:  positionID,
		VoterID:     voterID,
		CreatedAt:   now,
	}
	s.votesByID[vote.ID] = vote
	return ports.CastVoteResult{Right: right, Vote: vote}, nil
}

func (s *Store) ListElectionsForGroup(_ context.Context, groupID uint) ([]entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Election
	for _, election := range s.electionsByID {
		if election.GroupID == groupID {
			out = append(out, election)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListPositions(_ context.Context, electionID uint) ([]entities.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Position
	for _, position := range s.positionsByID {
		if position.ElectionID == electionID {
			out = append(out, position)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListCandidates(_ context.Context, positionID uint) ([]entities.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Candidate
	for _, candidate := range s.candidatesByID {
		if candidate.PositionID == positionID {
			out = append(out, candidate)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListExpiredElections(_ context.Context, now time.Time) ([]entities.Election, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Election
	for _, election := range s.electionsByID {
		if !election.DateTo.After(now) {
			out = append(out, election)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) TallyByCandidate(_ context.Context, electionID uint) ([]entities.CandidateTally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[uint]int)
	for _, vote := range s.votesByID {
		if vote.ElectionID == electionID {
			counts[vote.CandidateID]++
		}
	}

	var out []entities.CandidateTally
	for _, candidate := range s.candidatesByID {
		if candidate.ElectionID != electionID {
			continue
		}
		out = append(out, entities.CandidateTally{
			Candidate: candidate,
			Nominee:   s.usersByID[candidate.NomineeID],
			Position:  s.positionsByID[candidate.PositionID],
			Votes:     counts[candidate.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Candidate.ID < out[j].Candidate.ID })
	return out, nil
}

func (s *Store) TallyByPosition(_ context.Context, electionID uint) ([]entities.PositionTally, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[uint]int)
	for _, vote := range s.votesByID {
		if vote.ElectionID == electionID {
			counts[vote.PositionID]++
		}
	}

	var out []entities.PositionTally
	for _, position := range s.positionsByID {
		if position.ElectionID != electionID {
			continue
		}
		out = append(out, entities.PositionTally{
			Position: position,
			Votes:    counts[position.ID],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position.ID < out[j].Position.ID })
	return out, nil
}
