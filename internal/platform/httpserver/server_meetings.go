package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	meetingerrors "concord/contexts/group-governance/meeting-service/domain/errors"
	meetingports "concord/contexts/group-governance/meeting-service/ports"
	meetinghttp "concord/contexts/group-governance/meeting-service/transport/http"
)

func meetingCaller(c caller) meetingports.Identity {
	return meetingports.Identity{ID: c.ID, Name: c.Name, Email: c.Email, Role: c.Role}
}

func writeMeetingError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, meetinghttp.ErrorResponse{Code: code, Message: message})
}

func writeMeetingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, meetingerrors.ErrMissingFields):
		writeMeetingError(w, http.StatusBadRequest, "missing_fields", err.Error())
	case errors.Is(err, meetingerrors.ErrInvalidPayload):
		writeMeetingError(w, http.StatusUnprocessableEntity, "invalid_payload", err.Error())
	case errors.Is(err, meetingerrors.ErrNotFound):
		writeMeetingError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, meetingerrors.ErrInviteResolved):
		writeMeetingError(w, http.StatusConflict, "invite_resolved", err.Error())
	default:
		writeMeetingError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreateMeeting(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMeetingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	var req meetinghttp.CreateMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeetingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.meetings.Handler.CreateMeeting(r.Context(), meetingCaller(c), req)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetMeeting(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := pathID(r, "meeting_id")
	if !ok {
		writeMeetingError(w, http.StatusBadRequest, "invalid_id", "meeting_id must be a positive integer")
		return
	}
	resp, err := s.meetings.Handler.GetMeeting(r.Context(), meetingID)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRespondMeetingInvite(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMeetingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	meetingID, ok := pathID(r, "meeting_id")
	if !ok {
		writeMeetingError(w, http.StatusBadRequest, "invalid_id", "meeting_id must be a positive integer")
		return
	}
	var req meetinghttp.RespondInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMeetingError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.meetings.Handler.RespondInvite(r.Context(), meetingCaller(c), meetingID, req)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMeetingInvites(w http.ResponseWriter, r *http.Request) {
	meetingID, ok := pathID(r, "meeting_id")
	if !ok {
		writeMeetingError(w, http.StatusBadRequest, "invalid_id", "meeting_id must be a positive integer")
		return
	}
	resp, err := s.meetings.Handler.ListMeetingInvites(r.Context(), meetingID)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListMeetings(w http.ResponseWriter, r *http.Request) {
	groupID, ok := pathID(r, "group_id")
	if !ok {
		writeMeetingError(w, http.StatusBadRequest, "invalid_id", "group_id must be a positive integer")
		return
	}
	resp, err := s.meetings.Handler.ListMeetings(r.Context(), groupID)
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListUserMeetingInvites(w http.ResponseWriter, r *http.Request) {
	c, ok := resolveCaller(r)
	if !ok {
		writeMeetingError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}
	resp, err := s.meetings.Handler.ListInvites(r.Context(), meetingCaller(c))
	if err != nil {
		writeMeetingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
