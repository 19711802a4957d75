package httpadapter

import (
	"context"
	"log/slog"

	"concord/contexts/group-governance/membership-service/application/commands"
	"concord/contexts/group-governance/membership-service/application/queries"
	"concord/contexts/group-governance/membership-service/domain/entities"
	"concord/contexts/group-governance/membership-service/ports"
	transporthttp "concord/contexts/group-governance/membership-service/transport/http"
)

// Handler maps transport DTOs onto use cases. HTTP parsing stays in the
// platform server; domain errors pass through untouched for status mapping.
type Handler struct {
	Commands commands.Service
	Queries  queries.Service
	Logger   *slog.Logger
}

func (h Handler) CreateGroup(ctx context.Context, caller ports.Identity, req transporthttp.CreateGroupRequest) (transporthttp.GroupResponse, error) {
	group, err := h.Commands.CreateGroup(ctx, caller, commands.CreateGroupInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return transporthttp.GroupResponse{}, err
	}
	return toGroupResponse(group), nil
}

func (h Handler) DeleteGroup(ctx context.Context, caller ports.Identity, groupID uint) error {
	return h.Commands.DeleteGroup(ctx, caller, groupID)
}

func (h Handler) LeaveGroup(ctx context.Context, caller ports.Identity, groupID uint) error {
	return h.Commands.LeaveGroup(ctx, caller, groupID)
}

func (h Handler) RemoveMember(ctx context.Context, caller ports.Identity, groupID uint, userID uint) error {
	return h.Commands.RemoveMember(ctx, caller, groupID, userID)
}

func (h Handler) GetGroup(ctx context.Context, groupID uint) (transporthttp.GroupResponse, error) {
	group, err := h.Queries.GetGroup(ctx, groupID)
	if err != nil {
		return transporthttp.GroupResponse{}, err
	}
	return toGroupResponse(group), nil
}

func (h Handler) ListGroups(ctx context.Context, caller ports.Identity) ([]transporthttp.GroupResponse, error) {
	groups, err := h.Queries.ListGroupsForUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.GroupResponse, 0, len(groups))
	for _, group := range groups {
		out = append(out, toGroupResponse(group))
	}
	return out, nil
}

func (h Handler) ListMembers(ctx context.Context, groupID uint) ([]transporthttp.MemberResponse, error) {
	members, err := h.Queries.ListMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.MemberResponse, 0, len(members))
	for _, member := range members {
		out = append(out, transporthttp.MemberResponse{
			ID:       member.ID,
			GroupID:  member.GroupID,
			UserID:   member.UserID,
			JoinedAt: member.JoinedAt,
		})
	}
	return out, nil
}

func (h Handler) CreateInvite(ctx context.Context, caller ports.Identity, req transporthttp.CreateInviteRequest) (transporthttp.InviteResponse, error) {
	invite, err := h.Commands.CreateInvite(ctx, caller, commands.CreateInviteInput{
		ReceiverID: req.ReceiverID,
		GroupID:    req.GroupID,
	})
	if err != nil {
		return transporthttp.InviteResponse{}, err
	}
	return toInviteResponse(invite), nil
}

func (h Handler) RespondInvite(ctx context.Context, caller ports.Identity, inviteID uint, req transporthttp.RespondInviteRequest) (transporthttp.InviteResponse, error) {
	invite, err := h.Commands.RespondInvite(ctx, caller, inviteID, entities.InviteStatus(req.Status))
	if err != nil {
		return transporthttp.InviteResponse{}, err
	}
	return toInviteResponse(invite), nil
}

func (h Handler) ListInvites(ctx context.Context, caller ports.Identity) ([]transporthttp.InviteResponse, error) {
	invites, err := h.Queries.ListInvitesForUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	out := make([]transporthttp.InviteResponse, 0, len(invites))
	for _, invite := range invites {
		out = append(out, toInviteResponse(invite))
	}
	return out, nil
}

func toGroupResponse(group entities.Group) transporthttp.GroupResponse {
	return transporthttp.GroupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatorID:   group.CreatorID,
		CreatedAt:   group.CreatedAt,
	}
}

func toInviteResponse(invite entities.GroupInvite) transporthttp.InviteResponse {
	return transporthttp.InviteResponse{
		ID:         invite.ID,
		GroupID:    invite.GroupID,
		SenderID:   invite.SenderID,
		ReceiverID: invite.ReceiverID,
		Status:     string(invite.Status),
		CreatedAt:  invite.CreatedAt,
		UpdatedAt:  invite.UpdatedAt,
	}
}
