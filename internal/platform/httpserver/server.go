package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	electionservice "concord/contexts/group-governance/election-service"
	meetingservice "concord/contexts/group-governance/meeting-service"
	membershipservice "concord/contexts/group-governance/membership-service"
	notificationservice "concord/contexts/group-governance/notification-service"

	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	mux           *http.ServeMux
	logger        *slog.Logger
	addr          string
	membership    membershipservice.Module
	meetings      meetingservice.Module
	elections     electionservice.Module
	notifications notificationservice.Module
}

func New(
	membership membershipservice.Module,
	meetings meetingservice.Module,
	elections electionservice.Module,
	notifications notificationservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:           http.NewServeMux(),
		logger:        logger,
		addr:          addr,
		membership:    membership,
		meetings:      meetings,
		elections:     elections,
		notifications: notifications,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/v1/groups", s.handleCreateGroup)
	s.mux.HandleFunc("GET /api/v1/groups", s.handleListGroups)
	s.mux.HandleFunc("GET /api/v1/groups/{group_id}", s.handleGetGroup)
	s.mux.HandleFunc("DELETE /api/v1/groups/{group_id}", s.handleDeleteGroup)
	s.mux.HandleFunc("GET /api/v1/groups/{group_id}/members", s.handleListMembers)
	s.mux.HandleFunc("DELETE /api/v1/groups/{group_id}/members/{user_id}", s.handleRemoveMember)
	s.mux.HandleFunc("POST /api/v1/groups/{group_id}/leave", s.handleLeaveGroup)
	s.mux.HandleFunc("POST /api/v1/invites", s.handleCreateInvite)
	s.mux.HandleFunc("GET /api/v1/invites", s.handleListInvites)
	s.mux.HandleFunc("POST /api/v1/invites/{invite_id}/respond", s.handleRespondInvite)

	s.mux.HandleFunc("POST /api/v1/meetings", s.handleCreateMeeting)
	s.mux.HandleFunc("GET /api/v1/meetings/{meeting_id}", s.handleGetMeeting)
	s.mux.HandleFunc("POST /api/v1/meetings/{meeting_id}/respond", s.handleRespondMeetingInvite)
	s.mux.HandleFunc("GET /api/v1/meetings/{meeting_id}/invites", s.handleListMeetingInvites)
	s.mux.HandleFunc("GET /api/v1/groups/{group_id}/meetings", s.handleListMeetings)
	s.mux.HandleFunc("GET /api/v1/meeting-invites", s.handleListUserMeetingInvites)

	s.mux.HandleFunc("POST /api/v1/elections", s.handleCreateElection)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("DELETE /api/v1/elections/{election_id}", s.handleEndElection)
	s.mux.HandleFunc("GET /api/v1/groups/{group_id}/elections", s.handleListElections)
	s.mux.HandleFunc("POST /api/v1/positions", s.handleCreatePosition)
	s.mux.HandleFunc("DELETE /api/v1/positions/{position_id}", s.handleDeletePosition)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}/positions", s.handleListPositions)
	s.mux.HandleFunc("POST /api/v1/candidates", s.handleNominateCandidate)
	s.mux.HandleFunc("GET /api/v1/positions/{position_id}/candidates", s.handleListCandidates)
	s.mux.HandleFunc("POST /api/v1/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}/tally/candidates", s.handleTallyByCandidate)
	s.mux.HandleFunc("GET /api/v1/elections/{election_id}/tally/positions", s.handleTallyByPosition)

	s.mux.HandleFunc("GET /api/v1/notifications", s.handleListNotifications)
	s.mux.HandleFunc("POST /api/v1/notifications/{notification_id}/read", s.handleMarkNotificationRead)
}

// caller is the identity resolved from the gateway headers. Authentication
// itself happens upstream; these headers are trusted.
type caller struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

func resolveCaller(r *http.Request) (caller, bool) {
	raw := strings.TrimSpace(r.Header.Get("X-User-Id"))
	if raw == "" {
		return caller{}, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return caller{}, false
	}
	return caller{
		ID:    uint(id),
		Name:  strings.TrimSpace(r.Header.Get("X-User-Name")),
		Email: strings.TrimSpace(r.Header.Get("X-User-Email")),
		Role:  strings.TrimSpace(r.Header.Get("X-User-Role")),
	}, true
}

func pathID(r *http.Request, name string) (uint, bool) {
	raw := r.PathValue(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
