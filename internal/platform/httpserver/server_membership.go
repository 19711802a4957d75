package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	membershiperrors "concord/contexts/group-governance/membership-service/domain/errors"
	membershipports "concord/contexts/group-governance/membership-service/ports"
	membershiphttp "concord/contexts/group-governance/membership-service/transport/http"
)

func membershipCaller(c caller) membershipports.Identity {
	return membershipports.Identity{ID: c.ID, Name: c.Name, Email: c.Email, Role: c.Role}
}

func writeMembershipError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, membershiphttp.ErrorResponse{Code: code, Message: message})
}

func writeMembershipDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, membershiperrors.ErrMissingFields):
		writeMembershipError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, membershiperrors.ErrInvalidPayload):
		writeMembershipError(w, http.StatusUnprocessableEntity, "invalid_payload", err.Error())
	case errors.Is(err, membershiperrors.ErrNotFound):
		writeMembershipError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, membershiperrors.ErrAlreadyMember):
		writeMembershipError(w, http.StatusConflict, "already_member", err.Error())
	case errors.Is(err, membershiperrors.ErrInviteResolved):
		writeMembershipError(w, http.StatusConflict, "invite_resolved", err.Error())
	default:
		writeMembershipError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req membershiphttp.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.CreateGroup(r.Context(), membershipCaller(c), req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListGroups(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.membership.Handler.ListGroups(r.Context(), membershipCaller(c))
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "group_id")
	if !ok {
		writeMembershipError(w, http.StatusBadRequest, "invalid_id", "group_id must be a positive integer")
		return
	}
	resp, err := s.membership.Handler.GetGroup(r.Context(), groupID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	groupID, ok := pathID(r, "group_id")
	if !ok {
		writeMembershipError(w, http.StatusBadRequest, "invalid_id", "group_id must be a positive integer")
		return
	}
	if err := s.membership.Handler.DeleteGroup(r.Context(), membershipCaller(c), groupID); err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListMembers(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "group_id")
	if !ok {
		writeMembershipError(w, http.StatusBadRequest, "invalid_id", "group_id must be a positive integer")
		return
	}
	resp, err := s.membership.Handler.ListMembers(r.Context(), groupID)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	groupID, ok := pathID(r, "group_id")
	if !ok {
		writeMembershipError(w, http.StatusBadRequest, "invalid_id", "group_id must be a positive integer")
		return
	}
	userID, ok := pathID(r, "user_id")
	if !ok {
		writeMembershipError(w, http.StatusBadRequest, "invalid_id", "user_id must be a positive integer")
		return
	}
	if err := s.membership.Handler.RemoveMember(r.Context(), membershipCaller(c), groupID, userID); err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleLeaveGroup(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	groupID, ok := pathID(r, "group_id")
	if !ok {
		writeMembershipError(w, http.StatusBadRequest, "invalid_id", "group_id must be a positive integer")
		return
	}
	if err := s.membership.Handler.LeaveGroup(r.Context(), membershipCaller(c), groupID); err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req membershiphttp.CreateInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.CreateInvite(r.Context(), membershipCaller(c), req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListInvites(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.membership.Handler.ListInvites(r.Context(), membershipCaller(c))
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRespondInvite(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMembershipError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	inviteID, ok := pathID(r, "invite_id")
	if !ok {
		writeMembershipError(w, http.StatusBadRequest, "invalid_id", "invite_id must be a positive integer")
		return
	}
	var req membershiphttp.RespondInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMembershipError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.membership.Handler.RespondInvite(r.Context(), membershipCaller(c), inviteID, req)
	if err != nil {
		writeMembershipDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
