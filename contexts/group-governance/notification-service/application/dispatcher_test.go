package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"concord/contexts/group-governance/notification-service/adapters/memory"
	"concord/internal/shared/fanout"
)

type mailRecorder struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (m *mailRecorder) Send(to string, _ string, _ string, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, to)
	return nil
}

func sampleDelivery() fanout.Delivery {
	delivery := fanout.NewDelivery("membership-service", time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))
	refs := fanout.Refs{GroupID: fanout.Ref(10), InviteID: fanout.Ref(55)}
	delivery.AddNotice(2, fanout.TypeGroupInvite, "Ada invited you to Board", refs)
	delivery.AddNotice(1, fanout.TypeGroupInviteAccepted, "Ben accepted your invitation to Board", refs)
	delivery.AddEmail("ben@example.com", "Group invitation", "Ada invited you to Board.", "<p>Ada invited you to Board.</p>")
	return delivery
}

func TestHandleWritesRowPerNotice(t *testing.T) {
	store := memory.NewStore()
	mailer := &mailRecorder{}
	dispatcher := Dispatcher{Repo: store, Mailer: mailer, Clock: store}
	ctx := context.Background()

	if err := dispatcher.Handle(ctx, sampleDelivery()); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	forBen, err := store.ListForUser(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(forBen) != 1 {
		t.Fatalf("expected one notification for user 2, got %d", len(forBen))
	}
	if forBen[0].Type != fanout.TypeGroupInvite || forBen[0].IsRead {
		t.Fatalf("unexpected notification: %+v", forBen[0])
	}
	if forBen[0].GroupID == nil || *forBen[0].GroupID != 10 {
		t.Fatalf("expected group ref carried over, got %+v", forBen[0])
	}

	forAda, err := store.ListForUser(ctx, 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(forAda) != 1 {
		t.Fatalf("expected one notification for user 1, got %d", len(forAda))
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "ben@example.com" {
		t.Fatalf("expected one email to ben, got %v", mailer.sent)
	}
}

func TestHandleSwallowsMailerFailure(t *testing.T) {
	store := memory.NewStore()
	mailer := &mailRecorder{fail: true}
	dispatcher := Dispatcher{Repo: store, Mailer: mailer, Clock: store}
	ctx := context.Background()

	if err := dispatcher.Handle(ctx, sampleDelivery()); err != nil {
		t.Fatalf("expected mailer failure swallowed, got %v", err)
	}

	// Notification rows land even when every email fails.
	forBen, err := store.ListForUser(ctx, 2)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(forBen) != 1 {
		t.Fatalf("expected notification despite mail failure, got %d", len(forBen))
	}
}

func TestHandleWithoutMailer(t *testing.T) {
	store := memory.NewStore()
	dispatcher := Dispatcher{Repo: store, Clock: store}

	if err := dispatcher.Handle(context.Background(), sampleDelivery()); err != nil {
		t.Fatalf("handle without mailer failed: %v", err)
	}
}
