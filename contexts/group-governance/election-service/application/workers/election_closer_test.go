package workers

import (
	"context"
	"testing"
	"time"

	"concord/contexts/group-governance/election-service/adapters/memory"
	"concord/contexts/group-governance/election-service/application/commands"
	"concord/contexts/group-governance/election-service/ports"
)

func TestRunOnceEndsExpiredElections(t *testing.T) {
	store := memory.NewStore()
	store.SetNow(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	service := commands.Service{Repo: store, Clock: store}
	closer := ElectionCloser{Repo: store, Commands: service, Clock: store}
	ctx := context.Background()
	caller := ports.Identity{ID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: "admin"}

	expired, err := service.CreateElection(ctx, caller, commands.CreateElectionInput{
		DateFrom: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		GroupID:  10,
	})
	if err != nil {
		t.Fatalf("create expired election failed: %v", err)
	}
	open, err := service.CreateElection(ctx, caller, commands.CreateElectionInput{
		DateFrom: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		GroupID:  10,
	})
	if err != nil {
		t.Fatalf("create open election failed: %v", err)
	}

	if err := closer.RunOnce(ctx); err != nil {
		t.Fatalf("run once failed: %v", err)
	}

	if _, found, _ := store.GetElection(ctx, expired.ID); found {
		t.Fatalf("expected expired election %d to be ended", expired.ID)
	}
	if _, found, _ := store.GetElection(ctx, open.ID); !found {
		t.Fatalf("expected open election %d to survive", open.ID)
	}
}
