package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	electionerrors "concord/contexts/group-governance/election-service/domain/errors"
	electionports "concord/contexts/group-governance/election-service/ports"
	electionhttp "concord/contexts/group-governance/election-service/transport/http"
)

func electionCaller(c caller) electionports.Identity {
	return electionports.Identity{ID: c.ID, Name: c.Name, Email: c.Email, Role: c.Role}
}

func writeElectionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, electionhttp.ErrorResponse{Code: code, Message: message})
}

func writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrMissingFields):
		writeElectionError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, electionerrors.ErrInvalidPayload):
		writeElectionError(w, http.StatusUnprocessableEntity, "invalid_payload", err.Error())
	case errors.Is(err, electionerrors.ErrNotFound):
		writeElectionError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, electionerrors.ErrAlreadyVoted):
		writeElectionError(w, http.StatusConflict, "already_voted", err.Error())
	case errors.Is(err, electionerrors.ErrAlreadyNominated):
		writeElectionError(w, http.StatusConflict, "already_nominated", err.Error())
	default:
		writeElectionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req electionhttp.CreateElectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.CreateElection(r.Context(), electionCaller(c), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.GetElection(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEndElection(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.EndElection(r.Context(), electionCaller(c), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "group_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "group_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.ListElections(r.Context(), groupID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreatePosition(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req electionhttp.CreatePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.CreatePosition(r.Context(), electionCaller(c), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleDeletePosition(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	positionID, ok := pathID(r, "position_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "position_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.DeletePosition(r.Context(), electionCaller(c), positionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListPositions(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.ListPositions(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleNominateCandidate(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req electionhttp.NominateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.NominateCandidate(r.Context(), electionCaller(c), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	positionID, ok := pathID(r, "position_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "position_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.ListCandidates(r.Context(), positionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeElectionError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req electionhttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeElectionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.elections.Handler.CastVote(r.Context(), electionCaller(c), req)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleTallyByCandidate(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.TallyByCandidate(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleTallyByPosition(w http.ResponseWriter, r *http.Request) {
	electionID, ok := pathID(r, "election_id")
	if !ok {
		writeElectionError(w, http.StatusBadRequest, "invalid_id", "election_id must be a positive integer")
		return
	}
	resp, err := s.elections.Handler.TallyByPosition(r.Context(), electionID)
	if err != nil {
		writeElectionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
