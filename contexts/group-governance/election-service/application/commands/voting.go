package commands

import (
	"context"
	"fmt"
	"strings"

	application "concord/contexts/group-governance/election-service/application"
	"concord/contexts/group-governance/election-service/domain/entities"
	domainerrors "concord/contexts/group-governance/election-service/domain/errors"
	"concord/contexts/group-governance/election-service/ports"
	"concord/internal/shared/fanout"
)

type NominateCandidateInput struct {
	NomineeID  uint
	PositionID uint
}

// NominateCandidate creates a candidate row for the position. The election
// id is derived from the position inside the repository transaction, never
// taken from the caller. The caller gets its answer at commit; notification
// fan-out happens afterwards through the dispatch queue.
func (s Service) NominateCandidate(ctx context.Context, caller ports.Identity, input NominateCandidateInput) (entities.Candidate, error) {
	logger := application.ResolveLogger(s.Logger)

	var missing []string
	if input.NomineeID == 0 {
		missing = append(missing, "nominee")
	}
	if input.PositionID == 0 {
		missing = append(missing, "position")
	}
	if len(missing) > 0 {
		return entities.Candidate{}, fmt.Errorf("%w: %s", domainerrors.ErrMissingFields, strings.Join(missing, ", "))
	}

	now := s.now()
	res, err := s.Repo.NominateCandidate(ctx, input.NomineeID, input.PositionID, caller.ID, now)
	if err != nil {
		return entities.Candidate{}, err
	}

	logger.Info("candidate nominated",
		"event", "candidate_nominated",
		"module", "group-governance/election-service",
		"layer", "application",
		"candidate_id", res.Candidate.ID,
		"position_id", res.Candidate.PositionID,
		"election_id", res.Candidate.ElectionID,
		"nominee_id", res.Candidate.NomineeID,
		"nominator_id", caller.ID,
	)

	refs := fanout.Refs{
		ElectionID: fanout.Ref(res.Candidate.ElectionID),
		PositionID: fanout.Ref(res.Candidate.PositionID),
	}
	delivery := fanout.NewDelivery("election-service", now)
	delivery.AddNotice(caller.ID, fanout.TypeCandidateNominated,
		fmt.Sprintf("You nominated %s for %s", res.Nominee.Name, res.Position.Label), refs)
	delivery.AddNotice(res.Nominee.ID, fanout.TypeCandidateNominated,
		fmt.Sprintf("%s nominated you for %s", caller.Name, res.Position.Label), refs)
	delivery.AddEmail(res.Nominee.Email,
		fmt.Sprintf("You were nominated for %s", res.Position.Label),
		fmt.Sprintf("%s nominated you as a candidate for %s.", caller.Name, res.Position.Label),
		fmt.Sprintf("<p>%s nominated you as a candidate for <strong>%s</strong>.</p>", caller.Name, res.Position.Label),
	)
	s.publish(ctx, delivery)

	return res.Candidate, nil
}

type CastVoteInput struct {
	ElectionID  uint
	CandidateID uint
	PositionID  uint
}

// CastVote claims the caller's (election, position) ledger slot and records
// the ballot in a single transaction. Two concurrent casts for the same slot
// cannot both succeed; the loser sees ErrAlreadyVoted.
func (s Service) CastVote(ctx context.Context, caller ports.Identity, input CastVoteInput) (entities.Vote, error) {
	logger := application.ResolveLogger(s.Logger)

	var missing []string
	if input.ElectionID == 0 {
		missing = append(missing, "election")
	}
	if input.CandidateID == 0 {
		missing = append(missing, "candidate")
	}
	if input.PositionID == 0 {
		missing = append(missing, "position")
	}
	if len(missing) > 0 {
		return entities.Vote{}, fmt.Errorf("%w: %s", domainerrors.ErrMissingFields, strings.Join(missing, ", "))
	}

	res, err := s.Repo.CastVote(ctx, caller.ID, input.ElectionID, input.CandidateID, input.PositionID, s.now())
	if err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote cast",
		"event", "vote_cast",
		"module", "group-governance/election-service",
		"layer", "application",
		"vote_id", res.Vote.ID,
		"election_id", res.Vote.ElectionID,
		"position_id", res.Vote.PositionID,
		"voter_id", caller.ID,
	)
	return res.Vote, nil
}
