package commands

import (
	"context"
	"fmt"

	application "concord/contexts/group-governance/membership-service/application"
	"concord/contexts/group-governance/membership-service/domain/entities"
	domainerrors "concord/contexts/group-governance/membership-service/domain/errors"
	"concord/contexts/group-governance/membership-service/ports"
	"concord/internal/shared/fanout"
)

type CreateInviteInput struct {
	ReceiverID uint
	GroupID    uint
}

// CreateInvite records a pending invite for the receiver. There is no guard
// against an existing pending invite for the same (receiver, group): a fresh
// invite after a decline is a legitimate re-invite.
func (s Service) CreateInvite(ctx context.Context, caller ports.Identity, input CreateInviteInput) (entities.GroupInvite, error) {
	logger := application.ResolveLogger(s.Logger)
	if input.ReceiverID == 0 || input.GroupID == 0 {
		return entities.GroupInvite{}, fmt.Errorf("%w: receiver, group", domainerrors.ErrMissingFields)
	}

	receiver, found, err := s.Repo.GetUser(ctx, input.ReceiverID)
	if err != nil {
		return entities.GroupInvite{}, err
	}
	if !found {
		return entities.GroupInvite{}, fmt.Errorf("%w: receiver", domainerrors.ErrInvalidPayload)
	}
	group, found, err := s.Repo.GetGroup(ctx, input.GroupID)
	if err != nil {
		return entities.GroupInvite{}, err
	}
	if !found {
		return entities.GroupInvite{}, fmt.Errorf("%w: group", domainerrors.ErrInvalidPayload)
	}

	now := s.now()
	invite, err := s.Repo.CreateInvite(ctx, entities.GroupInvite{
		GroupID:    group.ID,
		SenderID:   caller.ID,
		ReceiverID: receiver.ID,
		Status:     entities.InviteStatusPending,
	}, now)
	if err != nil {
		return entities.GroupInvite{}, err
	}

	logger.Info("group invite created",
		"event", "membership_invite_created",
		"module", "group-governance/membership-service",
		"layer", "application",
		"invite_id", invite.ID,
		"group_id", group.ID,
		"sender_id", caller.ID,
		"receiver_id", receiver.ID,
	)

	delivery := fanout.NewDelivery("membership-service", now)
	delivery.AddNotice(receiver.ID, fanout.TypeGroupInvite,
		fmt.Sprintf("%s invited you to join %s", caller.Name, group.Name),
		fanout.Refs{GroupID: fanout.Ref(group.ID), InviteID: fanout.Ref(invite.ID)},
	)
	delivery.AddEmail(receiver.Email,
		fmt.Sprintf("Invitation to join %s", group.Name),
		fmt.Sprintf("%s invited you to join the group %s.", caller.Name, group.Name),
		fmt.Sprintf("<p>%s invited you to join the group <strong>%s</strong>.</p>", caller.Name, group.Name),
	)
	s.publish(ctx, delivery)

	return invite, nil
}

// RespondInvite applies exactly one terminal transition. The accepted branch
// creates the membership row in the same transaction; an existing membership
// rolls the whole transaction back, leaving the invite pending.
func (s Service) RespondInvite(ctx context.Context, caller ports.Identity, inviteID uint, status entities.InviteStatus) (entities.GroupInvite, error) {
	logger := application.ResolveLogger(s.Logger)
	if inviteID == 0 {
		return entities.GroupInvite{}, fmt.Errorf("%w: invite", domainerrors.ErrMissingFields)
	}
	if !status.Terminal() {
		return entities.GroupInvite{}, fmt.Errorf("%w: status", domainerrors.ErrInvalidPayload)
	}

	now := s.now()
	res, err := s.Repo.RespondInvite(ctx, inviteID, caller.ID, status, now)
	if err != nil {
		return entities.GroupInvite{}, err
	}

	logger.Info("group invite resolved",
		"event", "membership_invite_resolved",
		"module", "group-governance/membership-service",
		"layer", "application",
		"invite_id", res.Invite.ID,
		"group_id", res.Group.ID,
		"receiver_id", res.Receiver.ID,
		"status", string(res.Invite.Status),
	)

	refs := fanout.Refs{GroupID: fanout.Ref(res.Group.ID), InviteID: fanout.Ref(res.Invite.ID)}
	delivery := fanout.NewDelivery("membership-service", now)
	if status == entities.InviteStatusAccepted {
		delivery.AddNotice(res.Sender.ID, fanout.TypeGroupInviteAccepted,
			fmt.Sprintf("%s accepted your invitation to %s", res.Receiver.Name, res.Group.Name), refs)
		delivery.AddNotice(res.Receiver.ID, fanout.TypeGroupInviteAccepted,
			fmt.Sprintf("You joined %s", res.Group.Name), refs)
		delivery.AddEmail(res.Sender.Email,
			fmt.Sprintf("Invitation to %s accepted", res.Group.Name),
			fmt.Sprintf("%s accepted your invitation to join %s.", res.Receiver.Name, res.Group.Name),
			fmt.Sprintf("<p>%s accepted your invitation to join <strong>%s</strong>.</p>", res.Receiver.Name, res.Group.Name),
		)
		delivery.AddEmail(res.Receiver.Email,
			fmt.Sprintf("Welcome to %s", res.Group.Name),
			fmt.Sprintf("You are now a member of %s.", res.Group.Name),
			fmt.Sprintf("<p>You are now a member of <strong>%s</strong>.</p>", res.Group.Name),
		)
	} else {
		delivery.AddNotice(res.Sender.ID, fanout.TypeGroupInviteDeclined,
			fmt.Sprintf("%s declined your invitation to %s", res.Receiver.Name, res.Group.Name), refs)
		delivery.AddNotice(res.Receiver.ID, fanout.TypeGroupInviteDeclined,
			fmt.Sprintf("You declined the invitation to %s", res.Group.Name), refs)
		delivery.AddEmail(res.Sender.Email,
			fmt.Sprintf("Invitation to %s declined", res.Group.Name),
			fmt.Sprintf("%s declined your invitation to join %s.", res.Receiver.Name, res.Group.Name),
			fmt.Sprintf("<p>%s declined your invitation to join <strong>%s</strong>.</p>", res.Receiver.Name, res.Group.Name),
		)
		delivery.AddEmail(res.Receiver.Email,
			fmt.Sprintf("Invitation to %s declined", res.Group.Name),
			fmt.Sprintf("You declined the invitation to join %s.", res.Group.Name),
			fmt.Sprintf("<p>You declined the invitation to join <strong>%s</strong>.</p>", res.Group.Name),
		)
	}
	s.publish(ctx, delivery)

	return res.Invite, nil
}

// publish hands the delivery to the dispatch queue. The queue never blocks
// and never reports back; a committed workflow outcome is already final.
func (s Service) publish(ctx context.Context, delivery fanout.Delivery) {
	if s.Fanout == nil {
		return
	}
	s.Fanout.Publish(ctx, delivery)
}
