package httpadapter

import (
	"context"
	"log/slog"

	"concord/contexts/group-governance/election-service/application/commands"
	"concord/contexts/group-governance/election-service/application/queries"
	"concord/contexts/group-governance/election-service/domain/entities"
	"concord/contexts/group-governance/election-service/ports"
	transporthttp "concord/contexts/group-governance/election-service/transport/http"
)

type Handler struct {
	Commands commands.Service
	Queries  queries.Service
	Logger   *slog.Logger
}

func (h Handler) CreateElection(ctx context.Context, caller ports.Identity, req transporthttp.CreateElectionRequest) (transporthttp.ElectionResponse, error) {
	election, err := h.Commands.CreateElection(ctx, caller, commands.CreateElectionInput{
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		GroupID:  req.GroupID,
	})
	if err != nil {
		return transporthttp.ElectionResponse{}, err
	}
	return toElectionResponse(election), nil
}

func (h Handler) EndElection(ctx context.Context, caller ports.Identity, electionID uint) (transporthttp.ElectionResponse, error) {
	election, err := h.Commands.EndElection(ctx, caller, electionID)
	if err != nil {
		return transporthttp.ElectionResponse{}, err
	}
	return toElectionResponse(election), nil
}

func (h Handler) CreatePosition(ctx context.Context, caller ports.Identity, req transporthttp.CreatePositionRequest) (transporthttp.PositionResponse, error) {
	position, err := h.Commands.CreatePosition(ctx, caller, commands.CreatePositionInput{
		ElectionID: req.ElectionID,
		Label:      req.Label,
	})
	if err != nil {
		return transporthttp.PositionResponse{}, err
	}
	return toPositionResponse(position), nil
}

func (h Handler) DeletePosition(ctx context.Context, caller ports.Identity, positionID uint) (transporthttp.PositionResponse, error) {
	position, err := h.Commands.DeletePosition(ctx, caller, positionID)
	if err != nil {
		return transporthttp.PositionResponse{}, err
	}
	return toPositionResponse(position), nil
}

func (h Handler) NominateCandidate(ctx context.Context, caller ports.Identity, req transporthttp.NominateCandidateRequest) (transporthttp.CandidateResponse, error) {
	candidate, err := h.Commands.NominateCandidate(ctx, caller, commands.NominateCandidateInput{
		NomineeID:  req.NomineeID,
		PositionID: req.PositionID,
	})
	if err != nil {
		return transporthttp.CandidateResponse{}, err
	}
	return toCandidateResponse(candidate), nil
}

func (h Handler) CastVote(ctx context.Context, caller ports.Identity, req transporthttp.CastVoteRequest) (transporthttp.VoteResponse, error) {
	vote, err := h.Commands.CastVote(ctx, caller, commands.CastVoteInput{
		ElectionID:  req.ElectionID,
		CandidateID: req.CandidateID,
		PositionID:  req.PositionID,
	})
	if err != nil {
		return transporthttp.VoteResponse{}, err
	}
	return transporthttp.VoteResponse{
		ID:          vote.ID,
		ElectionID:  vote.ElectionID,
		CandidateID: vote.CandidateID,
		PositionID:  vote.PositionID,
		CreatedAt:   vote.CreatedAt,
	}, nil
}

func (h Handler) GetElection(ctx context.Context, electionID uint) (transporthttp.ElectionResponse, error) {
	election, err := h.Queries.GetElection(ctx, electionID)
	if err != nil {
		return transporthttp.ElectionResponse{}, err
	}
	return toElectionResponse(election), nil
}

func (h Handler) ListElections(ctx context.Context, groupID uint) ([]transporthttp.ElectionResponse, error) {
	elections, err := h.Queries.ListElectionsForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.ElectionResponse, 0, len(elections))
	for _, election := range elections {
		out = append(out, toElectionResponse(election))
	}
	return out, nil
}

func (h Handler) ListPositions(ctx context.Context, electionID uint) ([]transporthttp.PositionResponse, error) {
	positions, err := h.Queries.ListPositions(ctx, electionID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.PositionResponse, 0, len(positions))
	for _, position := range positions {
		out = append(out, toPositionResponse(position))
	}
	return out, nil
}

func (h Handler) ListCandidates(ctx context.Context, positionID uint) ([]transporthttp.CandidateResponse, error) {
	candidates, err := h.Queries.ListCandidates(ctx, positionID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.CandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		out = append(out, toCandidateResponse(candidate))
	}
	return out, nil
}

func (h Handler) TallyByCandidate(ctx context.Context, electionID uint) ([]transporthttp.CandidateTallyResponse, error) {
	tallies, err := h.Queries.TallyByCandidate(ctx, electionID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.CandidateTallyResponse, 0, len(tallies))
	for _, tally := range tallies {
		out = append(out, transporthttp.CandidateTallyResponse{
			CandidateID: tally.Candidate.ID,
			NomineeID:   tally.Nominee.ID,
			NomineeName: tally.Nominee.Name,
			PositionID:  tally.Position.ID,
			Label:       tally.Position.Label,
			Votes:       tally.Votes,
		})
	}
	return out, nil
}

func (h Handler) TallyByPosition(ctx context.Context, electionID uint) ([]transporthttp.PositionTallyResponse, error) {
	tallies, err := h.Queries.TallyByPosition(ctx, electionID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.PositionTallyResponse, 0, len(tallies))
	for _, tally := range tallies {
		out = append(out, transporthttp.PositionTallyResponse{
			PositionID: tally.Position.ID,
			Label:      tally.Position.Label,
			Votes:      tally.Votes,
		})
	}
	return out, nil
}

func toElectionResponse(election entities.Election) transporthttp.ElectionResponse {
	return transporthttp.ElectionResponse{
		ID:        election.ID,
		GroupID:   election.GroupID,
		CreatorID: election.CreatorID,
		DateFrom:  election.DateFrom,
		DateTo:    election.DateTo,
		CreatedAt: election.CreatedAt,
	}
}

func toPositionResponse(position entities.Position) transporthttp.PositionResponse {
	return transporthttp.PositionResponse{
		ID:         position.ID,
		ElectionID: position.ElectionID,
		CreatorID:  position.CreatorID,
		Label:      position.Label,
		CreatedAt:  position.CreatedAt,
	}
}

func toCandidateResponse(candidate entities.Candidate) transporthttp.CandidateResponse {
	return transporthttp.CandidateResponse{
		ID:          candidate.ID,
		NomineeID:   candidate.NomineeID,
		PositionID:  candidate.PositionID,
		ElectionID:  candidate.ElectionID,
		NominatorID: candidate.NominatorID,
		CreatedAt:   candidate.CreatedAt,
	}
}
