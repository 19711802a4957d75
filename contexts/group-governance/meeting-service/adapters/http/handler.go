package httpadapter

import (
	"context"
	"log/slog"

	"concord/contexts/group-governance/meeting-service/application/commands"
	"concord/contexts/group-governance/meeting-service/application/queries"
	"concord/contexts/group-governance/meeting-service/domain/entities"
	"concord/contexts/group-governance/meeting-service/ports"
	transporthttp "concord/contexts/group-governance/meeting-service/transport/http"
)

type Handler struct {
	Commands commands.Service
	Queries  queries.Service
	Logger   *slog.Logger
}

func (h Handler) CreateMeeting(ctx context.Context, caller ports.Identity, req transporthttp.CreateMeetingRequest) (transporthttp.MeetingResponse, error) {
	meeting, err := h.Commands.CreateMeeting(ctx, caller, commands.CreateMeetingInput{
		Location:   req.Location,
		TimeFrom:   req.TimeFrom,
		TimeTo:     req.TimeTo,
		GroupID:    req.GroupID,
		InviteeIDs: req.InviteeIDs,
	})
	if err != nil {
		return transporthttp.MeetingResponse{}, err
	}
	return toMeetingResponse(meeting), nil
}

func (h Handler) RespondInvite(ctx context.Context, caller ports.Identity, meetingID uint, req transporthttp.RespondInviteRequest) (transporthttp.MeetingInviteResponse, error) {
	invite, err := h.Commands.RespondInvite(ctx, caller, meetingID, entities.InviteStatus(req.Status))
	if err != nil {
		return transporthttp.MeetingInviteResponse{}, err
	}
	return toInviteResponse(invite), nil
}

func (h Handler) GetMeeting(ctx context.Context, meetingID uint) (transporthttp.MeetingResponse, error) {
	meeting, err := h.Queries.GetMeeting(ctx, meetingID)
	if err != nil {
		return transporthttp.MeetingResponse{}, err
	}
	return toMeetingResponse(meeting), nil
}

func (h Handler) ListMeetings(ctx context.Context, groupID uint) ([]transporthttp.MeetingResponse, error) {
	meetings, err := h.Queries.ListMeetingsForGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		out = append(out, toMeetingResponse(meeting))
	}
	return out, nil
}

func (h Handler) ListInvites(ctx context.Context, caller ports.Identity) ([]transporthttp.MeetingInviteResponse, error) {
	invites, err := h.Queries.ListInvitesForUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.MeetingInviteResponse, 0, len(invites))
	for _, invite := range invites {
		out = append(out, toInviteResponse(invite))
	}
	return out, nil
}

func (h Handler) ListMeetingInvites(ctx context.Context, meetingID uint) ([]transporthttp.MeetingInviteResponse, error) {
	invites, err := h.Queries.ListInvitesForMeeting(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.MeetingInviteResponse, 0, len(invites))
	for _, invite := range invites {
		out = append(out, toInviteResponse(invite))
	}
	return out, nil
}

func toMeetingResponse(meeting entities.GroupMeeting) transporthttp.MeetingResponse {
	return transporthttp.MeetingResponse{
		ID:        meeting.ID,
		GroupID:   meeting.GroupID,
		CreatorID: meeting.CreatorID,
		Location:  meeting.Location,
		TimeFrom:  meeting.TimeFrom,
		TimeTo:    meeting.TimeTo,
		CreatedAt: meeting.CreatedAt,
	}
}

func toInviteResponse(invite entities.GroupMeetingInvite) transporthttp.MeetingInviteResponse {
	return transporthttp.MeetingInviteResponse{
		ID:        invite.ID,
		MeetingID: invite.MeetingID,
		UserID:    invite.UserID,
		Status:    string(invite.Status),
		CreatedAt: invite.CreatedAt,
		UpdatedAt: invite.UpdatedAt,
	}
}
