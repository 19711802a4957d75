package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"concord/contexts/group-governance/election-service/domain/entities"
	domainerrors "concord/contexts/group-governance/election-service/domain/errors"
	"concord/contexts/group-governance/election-service/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

func (r *Repository) GetGroup(ctx context.Context, groupID uint) (entities.GroupRef, bool, error) {
	var row groupRow
	err := r.db.WithContext(ctx).First(&row, groupID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.GroupRef{}, false, nil
		}
		return entities.GroupRef{}, false, r.logError("election_repo_get_group_failed", err, "group_id", groupID)
	}
	return entities.GroupRef{ID: row.ID, Name: row.Name}, true, nil
}

func (r *Repository) GetUser(ctx context.Context, userID uint) (entities.User, bool, error) {
	var row userRow
	err := r.db.WithContext(ctx).First(&row, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.User{}, false, nil
		}
		return entities.User{}, false, r.logError("election_repo_get_user_failed", err, "user_id", userID)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetElection(ctx context.Context, electionID uint) (entities.Election, bool, error) {
	var row electionModel
	err := r.db.WithContext(ctx).First(&row, electionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Election{}, false, nil
		}
		return entities.Election{}, false, r.logError("election_repo_get_election_failed", err, "election_id", electionID)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) GetPosition(ctx context.Context, positionID uint) (entities.Position, bool, error) {
	var row positionModel
	err := r.db.WithContext(ctx).First(&row, positionID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Position{}, false, nil
		}
		return entities.Position{}, false, r.logError("election_repo_get_position_failed", err, "position_id", positionID)
	}
	return row.toEntity(), true, nil
}

func (r *Repository) CreateElection(ctx context.Context, election entities.Election, now time.Time) (entities.Election, error) {
	row := electionModel{
		GroupID:   election.GroupID,
		CreatorID: election.CreatorID,
		DateFrom:  election.DateFrom,
		DateTo:    election.DateTo,
		CreatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return entities.Election{}, r.logError("election_repo_create_election_failed", err,
			"group_id", election.GroupID, "creator_id", election.CreatorID)
	}
	return row.toEntity(), nil
}

// EndElection captures the row before deleting it so the caller can still
// describe the removed window. Positions, candidates, votes and voting
// rights go with it through the FK cascades.
func (r *Repository) EndElection(ctx context.Context, electionID uint) (entities.Election, error) {
	var out entities.Election
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row electionModel
		if err := tx.First(&row, electionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&electionModel{}, electionID).Error; err != nil {
			return err
		}
		out = row.toEntity()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Election{}, err
		}
		return entities.Election{}, r.logError("election_repo_end_election_failed", err, "election_id", electionID)
	}
	return out, nil
}

func (r *Repository) CreatePosition(ctx context.Context, position entities.Position, now time.Time) (entities.Position, error) {
	var out entities.Position
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var election electionModel
		if err := tx.First(&election, position.ElectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidPayload
			}
			return err
		}
		row := positionModel{
			ElectionID: position.ElectionID,
			CreatorID:  position.CreatorID,
			Label:      position.Label,
			CreatedAt:  now,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		out = row.toEntity()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidPayload) {
			return entities.Position{}, err
		}
		return entities.Position{}, r.logError("election_repo_create_position_failed", err,
			"election_id", position.ElectionID)
	}
	return out, nil
}

func (r *Repository) DeletePosition(ctx context.Context, positionID uint) (entities.Position, error) {
	var out entities.Position
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row positionModel
		if err := tx.First(&row, positionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}
		if err := tx.Delete(&positionModel{}, positionID).Error; err != nil {
			return err
		}
		out = row.toEntity()
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.Position{}, err
		}
		return entities.Position{}, r.logError("election_repo_delete_position_failed", err, "position_id", positionID)
	}
	return out, nil
}

// NominateCandidate derives the election id from the position row inside the
// transaction; caller input never decides it.
func (r *Repository) NominateCandidate(
	ctx context.Context,
	nomineeID uint,
	positionID uint,
	nominatorID uint,
	now time.Time,
) (ports.NominateResult, error) {
	var out ports.NominateResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var position positionModel
		if err := tx.First(&position, positionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidPayload
			}
			return err
		}
		var nominee userRow
		if err := tx.First(&nominee, nomineeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidPayload
			}
			return err
		}

		row := candidateModel{
			NomineeID:   nomineeID,
			PositionID:  positionID,
			ElectionID:  position.ElectionID,
			NominatorID: nominatorID,
			CreatedAt:   now,
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyNominated
			}
			return err
		}

		out = ports.NominateResult{
			Candidate: row.toEntity(),
			Position:  position.toEntity(),
			Nominee:   nominee.toEntity(),
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidPayload) || errors.Is(err, domainerrors.ErrAlreadyNominated) {
			return ports.NominateResult{}, err
		}
		return ports.NominateResult{}, r.logError("election_repo_nominate_failed", err,
			"nominee_id", nomineeID, "position_id", positionID)
	}
	return out, nil
}

// CastVote runs the ledger check-then-insert and the vote insert in one
// transaction. The composite unique index on voting_rights turns the
// concurrent race into a 23505 that maps to ErrAlreadyVoted, so two
// simultaneous casts for the same (voter, election, position) can never
// both commit.
func (r *Repository) CastVote(
	ctx context.Context,
	voterID uint,
	electionID uint,
	candidateID uint,
	positionID uint,
	now time.Time,
) (ports.CastVoteResult, error) {
	var out ports.CastVoteResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var candidate candidateModel
		if err := tx.First(&candidate, candidateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrInvalidPayload
			}
			return err
		}
		if candidate.PositionID != positionID || candidate.ElectionID != electionID {
			return domainerrors.ErrInvalidPayload
		}

		var claimed int64
		err := tx.Model(&votingRightModel{}).
			Where("user_id = ? AND election_id = ? AND position_id = ?", voterID, electionID, positionID).
			Count(&claimed).Error
		if err != nil {
			return err
		}
		if claimed > 0 {
			return domainerrors.ErrAlreadyVoted
		}

		right := votingRightModel{
			UserID:     voterID,
			ElectionID: electionID,
			PositionID: positionID,
			HasVoted:   true,
			CreatedAt:  now,
		}
		if err := tx.Create(&right).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrAlreadyVoted
			}
			return err
		}

		vote := voteModel{
			ElectionID:  electionID,
			CandidateID: candidateID,
			PositionID:  positionID,
			VoterID:     voterID,
			CreatedAt:   now,
		}
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}

		out = ports.CastVoteResult{Right: right.toEntity(), Vote: vote.toEntity()}
		return nil
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidPayload) || errors.Is(err, domainerrors.ErrAlreadyVoted) {
			return ports.CastVoteResult{}, err
		}
		return ports.CastVoteResult{}, r.logError("election_repo_cast_vote_failed", err,
			"voter_id", voterID, "election_id", electionID, "position_id", positionID)
	}
	return out, nil
}

func (r *Repository) ListElectionsForGroup(ctx context.Context, groupID uint) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_elections_failed", err, "group_id", groupID)
	}
	out := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) ListPositions(ctx context.Context, electionID uint) ([]entities.Position, error) {
	var rows []positionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_positions_failed", err, "election_id", electionID)
	}
	out := make([]entities.Position, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) ListCandidates(ctx context.Context, positionID uint) ([]entities.Candidate, error) {
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Where("position_id = ?", positionID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_candidates_failed", err, "position_id", positionID)
	}
	out := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) ListExpiredElections(ctx context.Context, now time.Time) ([]entities.Election, error) {
	var rows []electionModel
	err := r.db.WithContext(ctx).
		Where("date_to <= ?", now).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_list_expired_failed", err)
	}
	out := make([]entities.Election, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *Repository) TallyByCandidate(ctx context.Context, electionID uint) ([]entities.CandidateTally, error) {
	var candidates []candidateModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, r.logError("election_repo_tally_candidates_failed", err, "election_id", electionID)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	counts, err := r.voteCounts(ctx, electionID, "candidate_id")
	if err != nil {
		return nil, err
	}

	out := make([]entities.CandidateTally, 0, len(candidates))
	for _, candidate := range candidates {
		var nominee userRow
		if err := r.db.WithContext(ctx).First(&nominee, candidate.NomineeID).Error; err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.logError("election_repo_tally_nominee_failed", err, "candidate_id", candidate.ID)
		}
		var position positionModel
		if err := r.db.WithContext(ctx).First(&position, candidate.PositionID).Error; err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, r.logError("election_repo_tally_position_failed", err, "candidate_id", candidate.ID)
		}
		out = append(out, entities.CandidateTally{
			Candidate: candidate.toEntity(),
			Nominee:   nominee.toEntity(),
			Position:  position.toEntity(),
			Votes:     counts[candidate.ID],
		})
	}
	return out, nil
}

func (r *Repository) TallyByPosition(ctx context.Context, electionID uint) ([]entities.PositionTally, error) {
	var positions []positionModel
	err := r.db.WithContext(ctx).
		Where("election_id = ?", electionID).
		Order("id ASC").
		Find(&positions).Error
	if err != nil {
		return nil, r.logError("election_repo_tally_positions_failed", err, "election_id", electionID)
	}
	if len(positions) == 0 {
		return nil, nil
	}

	counts, err := r.voteCounts(ctx, electionID, "position_id")
	if err != nil {
		return nil, err
	}

	out := make([]entities.PositionTally, 0, len(positions))
	for _, position := range positions {
		out = append(out, entities.PositionTally{
			Position: position.toEntity(),
			Votes:    counts[position.ID],
		})
	}
	return out, nil
}

func (r *Repository) voteCounts(ctx context.Context, electionID uint, column string) (map[uint]int, error) {
	type countRow struct {
		Key   uint
		Total int
	}
	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Select(column+" AS key, COUNT(*) AS total").
		Where("election_id = ?", electionID).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, r.logError("election_repo_vote_counts_failed", err, "election_id", electionID)
	}
	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.Key] = row.Total
	}
	return counts, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "group-governance/election-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("election repository operation failed", fields...)
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
