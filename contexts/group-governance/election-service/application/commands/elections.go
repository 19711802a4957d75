package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "concord/contexts/group-governance/election-service/application"
	"concord/contexts/group-governance/election-service/domain/entities"
	domainerrors "concord/contexts/group-governance/election-service/domain/errors"
	"concord/contexts/group-governance/election-service/ports"
	"concord/internal/shared/fanout"
)

const dateLayout = "Jan 2, 2006"

type Service struct {
	Repo   ports.Repository
	Fanout ports.FanoutPublisher
	Clock  ports.Clock
	Logger *slog.Logger
}

type CreateElectionInput struct {
	DateFrom time.Time
	DateTo   time.Time
	GroupID  uint
}

// CreateElection records a voting window for a group. The two dates are
// stored as submitted; date_to preceding date_from is accepted.
func (s Service) CreateElection(ctx context.Context, caller ports.Identity, input CreateElectionInput) (entities.Election, error) {
	logger := application.ResolveLogger(s.Logger)

	var missing []string
	if input.DateFrom.IsZero() {
		missing = append(missing, "date_from")
	}
	if input.DateTo.IsZero() {
		missing = append(missing, "date_to")
	}
	if input.GroupID == 0 {
		missing = append(missing, "group")
	}
	if len(missing) > 0 {
		return entities.Election{}, fmt.Errorf("%w: %s", domainerrors.ErrMissingFields, strings.Join(missing, ", "))
	}

	group, found, err := s.Repo.GetGroup(ctx, input.GroupID)
	if err != nil {
		return entities.Election{}, err
	}
	if !found {
		return entities.Election{}, fmt.Errorf("%w: group", domainerrors.ErrInvalidPayload)
	}

	now := s.now()
	election, err := s.Repo.CreateElection(ctx, entities.Election{
		GroupID:   input.GroupID,
		CreatorID: caller.ID,
		DateFrom:  input.DateFrom.UTC(),
		DateTo:    input.DateTo.UTC(),
	}, now)
	if err != nil {
		return entities.Election{}, err
	}

	logger.Info("election created",
		"event", "election_created",
		"module", "group-governance/election-service",
		"layer", "application",
		"election_id", election.ID,
		"group_id", election.GroupID,
		"creator_id", caller.ID,
	)

	refs := fanout.Refs{GroupID: fanout.Ref(election.GroupID), ElectionID: fanout.Ref(election.ID)}
	window := fmt.Sprintf("%s to %s", election.DateFrom.Format(dateLayout), election.DateTo.Format(dateLayout))
	delivery := fanout.NewDelivery("election-service", now)
	delivery.AddNotice(caller.ID, fanout.TypeElectionCreated,
		fmt.Sprintf("You created an election for %s running %s", group.Name, window), refs)
	delivery.AddEmail(caller.Email,
		fmt.Sprintf("Election created for %s", group.Name),
		fmt.Sprintf("Your election for %s runs %s.", group.Name, window),
		fmt.Sprintf("<p>Your election for <strong>%s</strong> runs %s.</p>", group.Name, window),
	)
	s.publish(ctx, delivery)

	return election, nil
}

// EndElection deletes the election and everything it owns. The row is
// captured before deletion so the notification can still describe the
// removed window.
func (s Service) EndElection(ctx context.Context, caller ports.Identity, electionID uint) (entities.Election, error) {
	logger := application.ResolveLogger(s.Logger)
	if electionID == 0 {
		return entities.Election{}, fmt.Errorf("%w: election", domainerrors.ErrMissingFields)
	}

	election, err := s.Repo.EndElection(ctx, electionID)
	if err != nil {
		return entities.Election{}, err
	}

	logger.Info("election ended",
		"event", "election_ended",
		"module", "group-governance/election-service",
		"layer", "application",
		"election_id", election.ID,
		"group_id", election.GroupID,
	)

	refs := fanout.Refs{GroupID: fanout.Ref(election.GroupID), ElectionID: fanout.Ref(election.ID)}
	window := fmt.Sprintf("%s to %s", election.DateFrom.Format(dateLayout), election.DateTo.Format(dateLayout))
	delivery := fanout.NewDelivery("election-service", s.now())
	delivery.AddNotice(election.CreatorID, fanout.TypeElectionEnded,
		fmt.Sprintf("The election running %s has ended", window), refs)
	if caller.ID != 0 && caller.ID != election.CreatorID {
		delivery.AddNotice(caller.ID, fanout.TypeElectionEnded,
			fmt.Sprintf("You ended the election running %s", window), refs)
	}
	s.publish(ctx, delivery)

	return election, nil
}

type CreatePositionInput struct {
	ElectionID uint
	Label      string
}

func (s Service) CreatePosition(ctx context.Context, caller ports.Identity, input CreatePositionInput) (entities.Position, error) {
	logger := application.ResolveLogger(s.Logger)

	var missing []string
	if strings.TrimSpace(input.Label) == "" {
		missing = append(missing, "label")
	}
	if input.ElectionID == 0 {
		missing = append(missing, "election")
	}
	if len(missing) > 0 {
		return entities.Position{}, fmt.Errorf("%w: %s", domainerrors.ErrMissingFields, strings.Join(missing, ", "))
	}

	now := s.now()
	position, err := s.Repo.CreatePosition(ctx, entities.Position{
		ElectionID: input.ElectionID,
		CreatorID:  caller.ID,
		Label:      strings.TrimSpace(input.Label),
	}, now)
	if err != nil {
		return entities.Position{}, err
	}

	logger.Info("position created",
		"event", "position_created",
		"module", "group-governance/election-service",
		"layer", "application",
		"position_id", position.ID,
		"election_id", position.ElectionID,
	)

	refs := fanout.Refs{ElectionID: fanout.Ref(position.ElectionID), PositionID: fanout.Ref(position.ID)}
	delivery := fanout.NewDelivery("election-service", now)
	delivery.AddNotice(caller.ID, fanout.TypePositionCreated,
		fmt.Sprintf("You opened the position %q for voting", position.Label), refs)
	s.publish(ctx, delivery)

	return position, nil
}

func (s Service) DeletePosition(ctx context.Context, caller ports.Identity, positionID uint) (entities.Position, error) {
	logger := application.ResolveLogger(s.Logger)
	if positionID == 0 {
		return entities.Position{}, fmt.Errorf("%w: position", domainerrors.ErrMissingFields)
	}

	position, err := s.Repo.DeletePosition(ctx, positionID)
	if err != nil {
		return entities.Position{}, err
	}

	logger.Info("position deleted",
		"event", "position_deleted",
		"module", "group-governance/election-service",
		"layer", "application",
		"position_id", position.ID,
		"election_id", position.ElectionID,
		"caller_id", caller.ID,
	)
	return position, nil
}

func (s Service) publish(ctx context.Context, delivery fanout.Delivery) {
	if s.Fanout == nil {
		return
	}
	s.Fanout.Publish(ctx, delivery)
}

func (s Service) now() time.Time {
	if s.Clock != nil {
		return s.Clock.Now().UTC()
	}
	return time.Now().UTC()
}
