package dispatch

import (
	"context"
	"testing"
	"time"

	"concord/internal/shared/fanout"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	queue := NewQueue(4, nil)
	defer queue.Close()

	received := make(chan fanout.Delivery, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	queue.Subscribe(ctx, func(_ context.Context, delivery fanout.Delivery) error {
		received <- delivery
		return nil
	})

	delivery := fanout.NewDelivery("membership-service", time.Now())
	delivery.AddNotice(2, fanout.TypeGroupInvite, "Ada invited you to Board", fanout.Refs{})
	queue.Publish(ctx, delivery)

	select {
	case got := <-received:
		if got.DeliveryID != delivery.DeliveryID {
			t.Fatalf("expected delivery %s, got %s", delivery.DeliveryID, got.DeliveryID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("delivery never reached subscriber")
	}
}

func TestPublishNeverBlocksWhenFull(t *testing.T) {
	queue := NewQueue(1, nil)
	defer queue.Close()
	ctx := context.Background()

	// No subscriber: the second publish hits a full channel and must drop
	// instead of blocking.
	done := make(chan struct{})
	go func() {
		queue.Publish(ctx, fanout.NewDelivery("membership-service", time.Now()))
		queue.Publish(ctx, fanout.NewDelivery("membership-service", time.Now()))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on full queue")
	}
}

func TestPublishAfterCloseDrops(t *testing.T) {
	queue := NewQueue(1, nil)
	queue.Close()

	// Must not panic on the closed channel.
	queue.Publish(context.Background(), fanout.NewDelivery("election-service", time.Now()))
}
