package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"concord/contexts/group-governance/meeting-service/adapters/memory"
	"concord/contexts/group-governance/meeting-service/domain/entities"
	domainerrors "concord/contexts/group-governance/meeting-service/domain/errors"
	"concord/contexts/group-governance/meeting-service/ports"
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

func meetingInput() CreateMeetingInput {
	return CreateMeetingInput{
		Location: "Room 4B",
		TimeFrom: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
		TimeTo:   time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		GroupID:  10,
	}
}

func TestCreateMeetingMissingFields(t *testing.T) {
	service, _, _ := newService(t)

	_, err := service.CreateMeeting(context.Background(), admin(), CreateMeetingInput{GroupID: 10})
	if !errors.Is(err, domainerrors.ErrMissingFields) {
		t.Fatalf("expected missing fields error, got %v", err)
	}
}

func TestCreateMeetingUnknownGroup(t *testing.T) {
	service, _, _ := newService(t)

	input := meetingInput()
	input.GroupID = 999
	_, err := service.CreateMeeting(context.Background(), admin(), input)
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestCreateMeetingDerivesInvitesFromMembers(t *testing.T) {
	service, store, recorder := newService(t)

	meeting, err := service.CreateMeeting(context.Background(), admin(), meetingInput())
	if err != nil {
		t.Fatalf("create meeting failed: %v", err)
	}

	invites, err := store.ListInvitesForMeeting(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("list invites failed: %v", err)
	}
	if len(invites) != 3 {
		t.Fatalf("expected one invite per member, got %d", len(invites))
	}
	seen := map[uint]bool{}
	for _, invite := range invites {
		if invite.Status != entities.InviteStatusPending {
			t.Fatalf("expected pending invite, got %s", invite.Status)
		}
		seen[invite.UserID] = true
	}
	for _, userID := range []uint{1, 2, 3} {
		if !seen[userID] {
			t.Fatalf("missing invite for user %d", userID)
		}
	}

	deliveries := recorder.all()
	if len(deliveries) != 1 {
		t.Fatalf("expected one fan-out delivery, got %d", len(deliveries))
	}
	// Creator plus two other members.
	if len(deliveries[0].Notices) != 3 {
		t.Fatalf("expected 3 notices, got %d", len(deliveries[0].Notices))
	}
	if len(deliveries[0].Emails) != 3 {
		t.Fatalf("expected 3 emails, got %d", len(deliveries[0].Emails))
	}
}

func TestCreateMeetingExplicitInvitees(t *testing.T) {
	service, store, _ := newService(t)

	input := meetingInput()
	input.InviteeIDs = []uint{2, 4}
	meeting, err := service.CreateMeeting(context.Background(), admin(), input)
	if err != nil {
		t.Fatalf("create meeting failed: %v", err)
	}

	invites, err := store.ListInvitesForMeeting(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("list invites failed: %v", err)
	}
	if len(invites) != 2 {
		t.Fatalf("expected 2 invites, got %d", len(invites))
	}
	if invites[0].UserID != 2 || invites[1].UserID != 4 {
		t.Fatalf("unexpected invitees: %+v", invites)
	}
}

func TestRespondInviteAccept(t *testing.T) {
	service, store, recorder := newService(t)

	meeting, err := service.CreateMeeting(context.Background(), admin(), meetingInput())
	if err != nil {
		t.Fatalf("create meeting failed: %v", err)
	}

	invite, err := service.RespondInvite(context.Background(), member(2, "Ben Member", "ben@example.com"), meeting.ID, entities.InviteStatusAccepted)
	if err != nil {
		t.Fatalf("respond invite failed: %v", err)
	}
	if invite.Status != entities.InviteStatusAccepted {
		t.Fatalf("expected accepted invite, got %s", invite.Status)
	}

	invites, err := store.ListInvitesForMeeting(context.Background(), meeting.ID)
	if err != nil {
		t.Fatalf("list invites failed: %v", err)
	}
	pending := 0
	for _, row := range invites {
		if row.Status == entities.InviteStatusPending {
			pending++
		}
	}
	if pending != 2 {
		t.Fatalf("expected other invites to stay pending, got %d pending", pending)
	}

	deliveries := recorder.all()
	last := deliveries[len(deliveries)-1]
	if len(last.Notices) != 2 {
		t.Fatalf("expected creator and responder notices, got %d", len(last.Notices))
	}
}

func TestRespondInviteTwiceFails(t *testing.T) {
	service, _, _ := newService(t)

	meeting, err := service.CreateMeeting(context.Background(), admin(), meetingInput())
	if err != nil {
		t.Fatalf("create meeting failed: %v", err)
	}

	caller := member(2, "Ben Member", "ben@example.com")
	if _, err := service.RespondInvite(context.Background(), caller, meeting.ID, entities.InviteStatusAccepted); err != nil {
		t.Fatalf("first response failed: %v", err)
	}
	_, err = service.RespondInvite(context.Background(), caller, meeting.ID, entities.InviteStatusAccepted)
	if !errors.Is(err, domainerrors.ErrInviteResolved) {
		t.Fatalf("expected resolved error on second response, got %v", err)
	}
}

func TestRespondInviteWithoutInviteFails(t *testing.T) {
	service, _, _ := newService(t)

	input := meetingInput()
	input.InviteeIDs = []uint{2, 3}
	meeting, err := service.CreateMeeting(context.Background(), admin(), input)
	if err != nil {
		t.Fatalf("create meeting failed: %v", err)
	}

	_, err = service.RespondInvite(context.Background(), member(4, "Dan Member", "dan@example.com"), meeting.ID, entities.InviteStatusDeclined)
	if !errors.Is(err, domainerrors.ErrInviteResolved) {
		t.Fatalf("expected resolved error for uninvited user, got %v", err)
	}
}

func TestRespondInviteRejectsNonTerminalStatus(t *testing.T) {
	service, _, _ := newService(t)

	meeting, err := service.CreateMeeting(context.Background(), admin(), meetingInput())
	if err != nil {
		t.Fatalf("create meeting failed: %v", err)
	}

	_, err = service.RespondInvite(context.Background(), member(2, "Ben Member", "ben@example.com"), meeting.ID, entities.InviteStatusPending)
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}
