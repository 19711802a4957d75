package commands

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"concord/contexts/group-governance/election-service/adapters/memory"
	domainerrors "concord/contexts/group-governance/election-service/domain/errors"
	"concord/contexts/group-governance/election-service/ports"
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

func voter(id uint, name string, email string) ports.Identity {
	return ports.Identity{ID: id, Name: name, Email: email, Role: "member"}
}

func electionInput() CreateElectionInput {
	return CreateElectionInput{
		DateFrom: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
		GroupID:  10,
	}
}

// setupBallot creates an election with one position and one candidate and
// returns their ids.
func setupBallot(t *testing.T, service Service) (electionID uint, positionID uint, candidateID uint) {
	t.Helper()
	ctx := context.Background()

	election, err := service.CreateElection(ctx, admin(), electionInput())
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	position, err := service.CreatePosition(ctx, admin(), CreatePositionInput{ElectionID: election.ID, Label: "Treasurer"})
	if err != nil {
		t.Fatalf("create position failed: %v", err)
	}
	candidate, err := service.NominateCandidate(ctx, admin(), NominateCandidateInput{NomineeID: 2, PositionID: position.ID})
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}
	return election.ID, position.ID, candidate.ID
}

func TestCreateElectionAcceptsReversedDates(t *testing.T) {
	service, _, recorder := newService(t)

	input := electionInput()
	input.DateFrom, input.DateTo = input.DateTo, input.DateFrom
	election, err := service.CreateElection(context.Background(), admin(), input)
	if err != nil {
		t.Fatalf("create election failed: %v", err)
	}
	if !election.DateTo.Before(election.DateFrom) {
		t.Fatalf("expected dates stored as submitted, got from=%v to=%v", election.DateFrom, election.DateTo)
	}
	if deliveries := recorder.all(); len(deliveries) != 1 {
		t.Fatalf("expected creator fan-out, got %d deliveries", len(deliveries))
	}
}

func TestCreateElectionUnknownGroup(t *testing.T) {
	service, _, _ := newService(t)

	input := electionInput()
	input.GroupID = 999
	_, err := service.CreateElection(context.Background(), admin(), input)
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestCreatePositionUnknownElection(t *testing.T) {
	service, _, _ := newService(t)

	_, err := service.CreatePosition(context.Background(), admin(), CreatePositionInput{ElectionID: 999, Label: "Chair"})
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestNominateDerivesElectionFromPosition(t *testing.T) {
	service, store, recorder := newService(t)
	electionID, positionID, candidateID := setupBallot(t, service)

	candidates, err := store.ListCandidates(context.Background(), positionID)
	if err != nil {
		t.Fatalf("list candidates failed: %v", err)
	}
	if len(candidates) != 1 || candidates[0].ID != candidateID {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}
	if candidates[0].ElectionID != electionID {
		t.Fatalf("expected election id %d derived from position, got %d", electionID, candidates[0].ElectionID)
	}

	deliveries := recorder.all()
	last := deliveries[len(deliveries)-1]
	if len(last.Notices) != 2 {
		t.Fatalf("expected nominator and nominee notices, got %d", len(last.Notices))
	}
}

func TestNominateTwiceFails(t *testing.T) {
	service, _, _ := newService(t)
	_, positionID, _ := setupBallot(t, service)

	_, err := service.NominateCandidate(context.Background(), admin(), NominateCandidateInput{NomineeID: 2, PositionID: positionID})
	if !errors.Is(err, domainerrors.ErrAlreadyNominated) {
		t.Fatalf("expected already nominated error, got %v", err)
	}
}

func TestNominateUnknownNominee(t *testing.T) {
	service, _, _ := newService(t)
	_, positionID, _ := setupBallot(t, service)

	_, err := service.NominateCandidate(context.Background(), admin(), NominateCandidateInput{NomineeID: 999, PositionID: positionID})
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestCastVoteOncePerPosition(t *testing.T) {
	service, store, _ := newService(t)
	electionID, positionID, candidateID := setupBallot(t, service)
	ctx := context.Background()

	caller := voter(3, "Cleo Member", "cleo@example.com")
	input := CastVoteInput{ElectionID: electionID, CandidateID: candidateID, PositionID: positionID}
	if _, err := service.CastVote(ctx, caller, input); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}

	_, err := service.CastVote(ctx, caller, input)
	if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected already voted error, got %v", err)
	}

	tallies, err := store.TallyByPosition(ctx, electionID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if len(tallies) != 1 || tallies[0].Votes != 1 {
		t.Fatalf("expected exactly one committed vote, got %+v", tallies)
	}
}

func TestCastVoteCandidateMismatch(t *testing.T) {
	service, _, _ := newService(t)
	electionID, _, candidateID := setupBallot(t, service)
	ctx := context.Background()

	// A second position in the same election; the candidate belongs to the
	// first one.
	other, err := service.CreatePosition(ctx, admin(), CreatePositionInput{ElectionID: electionID, Label: "Secretary"})
	if err != nil {
		t.Fatalf("create position failed: %v", err)
	}

	_, err = service.CastVote(ctx, voter(3, "Cleo Member", "cleo@example.com"), CastVoteInput{
		ElectionID:  electionID,
		CandidateID: candidateID,
		PositionID:  other.ID,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestCastVoteConcurrentSameSlot(t *testing.T) {
	service, store, _ := newService(t)
	electionID, positionID, candidateID := setupBallot(t, service)
	ctx := context.Background()

	caller := voter(3, "Cleo Member", "cleo@example.com")
	input := CastVoteInput{ElectionID: electionID, CandidateID: candidateID, PositionID: positionID}

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.CastVote(ctx, caller, input)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domainerrors.ErrAlreadyVoted) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("expected exactly one winning cast, got %d", succeeded)
	}

	tallies, err := store.TallyByPosition(ctx, electionID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if len(tallies) != 1 || tallies[0].Votes != 1 {
		t.Fatalf("expected one committed vote after the race, got %+v", tallies)
	}
}

func TestEndElectionCascades(t *testing.T) {
	service, store, _ := newService(t)
	electionID, positionID, candidateID := setupBallot(t, service)
	ctx := context.Background()

	if _, err := service.CastVote(ctx, voter(3, "Cleo Member", "cleo@example.com"), CastVoteInput{
		ElectionID:  electionID,
		CandidateID: candidateID,
		PositionID:  positionID,
	}); err != nil {
		t.Fatalf("cast vote failed: %v", err)
	}

	ended, err := service.EndElection(ctx, admin(), electionID)
	if err != nil {
		t.Fatalf("end election failed: %v", err)
	}
	if ended.ID != electionID {
		t.Fatalf("expected captured election %d, got %d", electionID, ended.ID)
	}

	if _, found, err := store.GetElection(ctx, electionID); err != nil || found {
		t.Fatalf("expected election gone, found=%v err=%v", found, err)
	}
	positions, err := store.ListPositions(ctx, electionID)
	if err != nil {
		t.Fatalf("list positions failed: %v", err)
	}
	if len(positions) != 0 {
		t.Fatalf("expected positions cascaded away, got %+v", positions)
	}

	// Tallies for the deleted election are empty, not an error.
	tallies, err := store.TallyByCandidate(ctx, electionID)
	if err != nil {
		t.Fatalf("tally failed: %v", err)
	}
	if len(tallies) != 0 {
		t.Fatalf("expected empty tally after end, got %+v", tallies)
	}
}

func TestEndElectionMissing(t *testing.T) {
	service, _, _ := newService(t)

	_, err := service.EndElection(context.Background(), admin(), 999)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestDeletePositionMissing(t *testing.T) {
	service, _, _ := newService(t)

	_, err := service.DeletePosition(context.Background(), admin(), 999)
	if !errors.Is(err, domainerrors.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
