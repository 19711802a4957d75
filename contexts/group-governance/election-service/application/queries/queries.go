package queries

import (
	"context"
	"fmt"

	"concord/contexts/group-governance/election-service/domain/entities"
	domainerrors "concord/contexts/group-governance/election-service/domain/errors"
	"concord/contexts/group-governance/election-service/ports"
)

type Service struct {
	Repo ports.Repository
}

func (s Service) GetElection(ctx context.Context, electionID uint) (entities.Election, error) {
	election, found, err := s.Repo.GetElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}
	if !found {
		return entities.Election{}, fmt.Errorf("%w: election", domainerrors.ErrNotFound)
	}
	return election, nil
}

func (s Service) ListElectionsForGroup(ctx context.Context, groupID uint) ([]entities.Election, error) {
	return s.Repo.ListElectionsForGroup(ctx, groupID)
}

func (s Service) ListPositions(ctx context.Context, electionID uint) ([]entities.Position, error) {
	return s.Repo.ListPositions(ctx, electionID)
}

func (s Service) ListCandidates(ctx context.Context, positionID uint) ([]entities.Candidate, error) {
	return s.Repo.ListCandidates(ctx, positionID)
}

// TallyByCandidate counts committed votes per candidate. An ended or unknown
// election yields an empty tally, not an error.
func (s Service) TallyByCandidate(ctx context.Context, electionID uint) ([]entities.CandidateTally, error) {
	return s.Repo.TallyByCandidate(ctx, electionID)
}

// TallyByPosition counts committed votes per position.
func (s Service) TallyByPosition(ctx context.Context, electionID uint) ([]entities.PositionTally, error) {
	return s.Repo.TallyByPosition(ctx, electionID)
}
