package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateElectionRequest struct {
	DateFrom time.Time `json:"date_from"`
	DateTo   time.Time `json:"date_to"`
	GroupID  uint      `json:"group_id"`
}

type ElectionResponse struct {
	ID        uint      `json:"id"`
	GroupID   uint      `json:"group_id"`
	CreatorID uint      `json:"creator_id"`
	DateFrom  time.Time `json:"date_from"`
	DateTo    time.Time `json:"date_to"`
	CreatedAt time.Time `json:"created_at"`
}

type CreatePositionRequest struct {
	ElectionID uint   `json:"election_id"`
	Label      string `json:"label"`
}

type PositionResponse struct {
	ID         uint      `json:"id"`
	ElectionID uint      `json:"election_id"`
	CreatorID  uint      `json:"creator_id"`
	Label      string    `json:"label"`
	CreatedAt  time.Time `json:"created_at"`
}

type NominateCandidateRequest struct {
	NomineeID  uint `json:"nominee_id"`
	PositionID uint `json:"position_id"`
}

type CandidateResponse struct {
	ID          uint      `json:"id"`
	NomineeID   uint      `json:"nominee_id"`
	PositionID  uint      `json:"position_id"`
	ElectionID  uint      `json:"election_id"`
	NominatorID uint      `json:"nominator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CastVoteRequest struct {
	ElectionID  uint `json:"election_id"`
	CandidateID uint `json:"candidate_id"`
	PositionID  uint `json:"position_id"`
}

type VoteResponse struct {
	ID          uint      `json:"id"`
	ElectionID  uint      `json:"election_id"`
	CandidateID uint      `json:"candidate_id"`
	PositionID  uint      `json:"position_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type CandidateTallyResponse struct {
	CandidateID uint   `json:"candidate_id"`
	NomineeID   uint   `json:"nominee_id"`
	NomineeName string `json:"nominee_name"`
	PositionID  uint   `json:"position_id"`
	Label       string `json:"label"`
	Votes       int    `json:"votes"`
}

type PositionTallyResponse struct {
	PositionID uint   `json:"position_id"`
	Label      string `json:"label"`
	Votes      int    `json:"votes"`
}
