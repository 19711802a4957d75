package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	"concord/contexts/group-governance/membership-service/adapters/memory"
	"concord/contexts/group-governance/membership-service/domain/entities"
	domainerrors "concord/contexts/group-governance/membership-service/domain/errors"
	"concord/contexts/group-governance/membership-service/ports"
	"concord/internal/shared/fanout"
)

type fanoutRecorder struct {
	mu         sync.Mutex
	deliveries []fanout.Delivery
}

func (r *fanoutRecorder) Publish(_ context.Context, delivery fanout.Delivery) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries = append(r.deliveries, delivery)
}

func (r *fanoutRecorder) all() []fanout.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]fanout.Delivery(nil), r.deliveries...)
}

func newService(t *testing.T) (Service, *memory.Store, *fanoutRecorder) {
	t.Helper()
	store := memory.NewStore()
	recorder := &fanoutRecorder{}
	return Service{Repo: store, Fanout: recorder, Clock: store}, store, recorder
}

func admin() ports.Identity {
	return ports.Identity{ID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: "admin"}
}

func member(id uint, name string, email string) ports.Identity {
	return ports.Identity{ID: id, Name: name, Email: email, Role: "member"}
}

func TestCreateGroupAutoJoinsCreator(t *testing.T) {
	service, store, _ := newService(t)

	group, err := service.CreateGroup(context.Background(), admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	members, err := store.ListMembers(context.Background(), group.ID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	if len(members) != 1 || members[0].UserID != 1 {
		t.Fatalf("expected creator membership, got %+v", members)
	}
}

func TestCreateGroupMissingName(t *testing.T) {
	service, _, _ := newService(t)

	_, err := service.CreateGroup(context.Background(), admin(), CreateGroupInput{Name: "  "})
	if !errors.Is(err, domainerrors.ErrMissingFields) {
		t.Fatalf("expected missing fields, got %v", err)
	}
}

func TestCreateInviteUnknownReceiver(t *testing.T) {
	service, _, _ := newService(t)

	group, err := service.CreateGroup(context.Background(), admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	_, err = service.CreateInvite(context.Background(), admin(), CreateInviteInput{ReceiverID: 999, GroupID: group.ID})
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload, got %v", err)
	}
}

func TestCreateInviteNotifiesReceiver(t *testing.T) {
	service, _, recorder := newService(t)

	group, err := service.CreateGroup(context.Background(), admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	invite, err := service.CreateInvite(context.Background(), admin(), CreateInviteInput{ReceiverID: 2, GroupID: group.ID})
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}
	if invite.Status != entities.InviteStatusPending {
		t.Fatalf("expected pending invite, got %s", invite.Status)
	}

	deliveries := recorder.all()
	if len(deliveries) != 1 {
		t.Fatalf("expected one delivery, got %d", len(deliveries))
	}
	if len(deliveries[0].Notices) != 1 || deliveries[0].Notices[0].UserID != 2 {
		t.Fatalf("expected one notice to receiver, got %+v", deliveries[0].Notices)
	}
	if len(deliveries[0].Emails) != 1 || deliveries[0].Emails[0].To != "ben@example.com" {
		t.Fatalf("expected one email to receiver, got %+v", deliveries[0].Emails)
	}
}

func TestRespondInviteAcceptCreatesMembership(t *testing.T) {
	service, store, recorder := newService(t)
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	invite, err := service.CreateInvite(ctx, admin(), CreateInviteInput{ReceiverID: 2, GroupID: group.ID})
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}

	resolved, err := service.RespondInvite(ctx, member(2, "Ben Member", "ben@example.com"), invite.ID, entities.InviteStatusAccepted)
	if err != nil {
		t.Fatalf("respond invite failed: %v", err)
	}
	if resolved.Status != entities.InviteStatusAccepted {
		t.Fatalf("expected accepted, got %s", resolved.Status)
	}
	members, err := store.ListMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected creator plus receiver, got %d members", len(members))
	}

	// Both sender and receiver are notified and emailed.
	deliveries := recorder.all()
	last := deliveries[len(deliveries)-1]
	if len(last.Notices) != 2 {
		t.Fatalf("expected two notices, got %+v", last.Notices)
	}
	if len(last.Emails) != 2 {
		t.Fatalf("expected two emails, got %+v", last.Emails)
	}
}

func TestRespondInviteTwiceFails(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	invite, err := service.CreateInvite(ctx, admin(), CreateInviteInput{ReceiverID: 2, GroupID: group.ID})
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}

	ben := member(2, "Ben Member", "ben@example.com")
	first, err := service.RespondInvite(ctx, ben, invite.ID, entities.InviteStatusDeclined)
	if err != nil {
		t.Fatalf("first response failed: %v", err)
	}
	_, err = service.RespondInvite(ctx, ben, invite.ID, entities.InviteStatusAccepted)
	if !errors.Is(err, domainerrors.ErrInviteResolved) {
		t.Fatalf("expected resolved sentinel, got %v", err)
	}
	// Terminal status from the first response is never overwritten.
	if first.Status != entities.InviteStatusDeclined {
		t.Fatalf("expected declined to stick, got %s", first.Status)
	}
}

func TestRespondInviteAlreadyMemberRollsBack(t *testing.T) {
	service, store, _ := newService(t)
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	invite, err := service.CreateInvite(ctx, admin(), CreateInviteInput{ReceiverID: 1, GroupID: group.ID})
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}

	// The creator is already a member; accepting must fail and leave the
	// invite pending with no duplicate membership row.
	_, err = service.RespondInvite(ctx, admin(), invite.ID, entities.InviteStatusAccepted)
	if !errors.Is(err, domainerrors.ErrAlreadyMember) {
		t.Fatalf("expected already-member conflict, got %v", err)
	}
	invites, err := store.ListInvitesForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list invites failed: %v", err)
	}
	var found bool
	for _, row := range invites {
		if row.ID == invite.ID {
			found = true
			if row.Status != entities.InviteStatusPending {
				t.Fatalf("expected invite to stay pending, got %s", row.Status)
			}
		}
	}
	if !found {
		t.Fatal("invite disappeared")
	}
	members, err := store.ListMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected no duplicate membership, got %d rows", len(members))
	}
}

func TestRespondInviteWrongCaller(t *testing.T) {
	service, _, _ := newService(t)
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	invite, err := service.CreateInvite(ctx, admin(), CreateInviteInput{ReceiverID: 2, GroupID: group.ID})
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}
	_, err = service.RespondInvite(ctx, member(3, "Cleo Member", "cleo@example.com"), invite.ID, entities.InviteStatusAccepted)
	if !errors.Is(err, domainerrors.ErrInviteResolved) {
		t.Fatalf("expected resolved sentinel for wrong caller, got %v", err)
	}
}

func TestLeaveGroupRemovesMembership(t *testing.T) {
	service, store, _ := newService(t)
	ctx := context.Background()

	group, err := service.CreateGroup(ctx, admin(), CreateGroupInput{Name: "Chess Club"})
	if err != nil {
		t.Fatalf("create group failed: %v", err)
	}
	invite, err := service.CreateInvite(ctx, admin(), CreateInviteInput{ReceiverID: 2, GroupID: group.ID})
	if err != nil {
		t.Fatalf("create invite failed: %v", err)
	}
	ben := member(2, "Ben Member", "ben@example.com")
	if _, err := service.RespondInvite(ctx, ben, invite.ID, entities.InviteStatusAccepted); err != nil {
		t.Fatalf("respond invite failed: %v", err)
	}

	if err := service.LeaveGroup(ctx, ben, group.ID); err != nil {
		t.Fatalf("leave group failed: %v", err)
	}
	if err := service.LeaveGroup(ctx, ben, group.ID); !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found on second leave, got %v", err)
	}
	members, err := store.ListMembers(ctx, group.ID)
	if err != nil {
		t.Fatalf("list members failed: %v", err)
	}
	if len(members) != 1 {
		t.Fatalf("expected only creator left, got %d", len(members))
	}
}
