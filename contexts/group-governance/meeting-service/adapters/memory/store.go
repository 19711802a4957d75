package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"concord/contexts/group-governance/meeting-service/domain/entities"
	domainerrors "concord/contexts/group-governance/meeting-service/domain/errors"
	"concord/contexts/group-governance/meeting-service/ports"
)

// Store is the in-memory repository for tests and local wiring. Groups,
// members and users are read-only projections seeded the way the relational
// store would expose them.
type Store struct {
	mu sync.Mutex

	usersByID      map[uint]entities.User
	groupsByID     map[uint]entities.GroupRef
	membersByGroup map[uint][]uint
	meetingsByID   map[uint]entities.GroupMeeting
	invitesByID    map[uint]entities.GroupMeetingInvite

	sequence uint
	now      time.Time
}

func NewStore() *Store {
	store := &Store{
		usersByID:      make(map[uint]entities.User),
		groupsByID:     make(map[uint]entities.GroupRef),
		membersByGroup: make(map[uint][]uint),
		meetingsByID:   make(map[uint]entities.GroupMeeting),
		invitesByID:    make(map[uint]entities.GroupMeetingInvite),
		now:            time.Now().UTC(),
	}
	for _, user := range []entities.User{
		{ID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: "admin"},
		{ID: 2, Name: "Ben Member", Email: "ben@example.com", Role: "member"},
		{ID: 3, Name: "Cleo Member", Email: "cleo@example.com", Role: "member"},
		{ID: 4, Name: "Dan Member", Email: "dan@example.com", Role: "member"},
	} {
		store.usersByID[user.ID] = user
	}
	store.groupsByID[10] = entities.GroupRef{ID: 10, Name: "Board"}
	store.membersByGroup[10] = []uint{1, 2, 3}
	return store
}

func (s *Store) SetNow(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now.UTC()
}

func (s *Store) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// SetMembers replaces a group's member projection for test setups.
func (s *Store) SetMembers(groupID uint, userIDs []uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.membersByGroup[groupID] = append([]uint(nil), userIDs...)
}

func (s *Store) nextIDLocked() uint {
	s.sequence++
	return s.sequence + 2000
}

func (s *Store) GetGroup(_ context.Context, groupID uint) (entities.GroupRef, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groupsByID[groupID]
	return group, ok, nil
}

func (s *Store) GetMeeting(_ context.Context, meetingID uint) (entities.GroupMeeting, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meeting, ok := s.meetingsByID[meetingID]
	return meeting, ok, nil
}

func (s *Store) CreateMeeting(
	_ context.Context,
	meeting entities.GroupMeeting,
	inviteeIDs []uint,
	now time.Time,
) (ports.CreateMeetingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groupsByID[meeting.GroupID]
	if !ok {
		return ports.CreateMeetingResult{}, domainerrors.ErrInvalidPayload
	}

	meeting.ID = s.nextIDLocked()
	meeting.CreatedAt = now
	s.meetingsByID[meeting.ID] = meeting

	snapshot := inviteeIDs
	if len(snapshot) == 0 {
		snapshot = append([]uint(nil), s.membersByGroup[meeting.GroupID]...)
	}

	result := ports.CreateMeetingResult{Meeting: meeting, Group: group}
	for _, userID := range snapshot {
		invite := entities.GroupMeetingInvite{
			ID:        s.nextIDLocked(),
			MeetingID: meeting.ID,
			UserID:    userID,
			Status:    entities.InviteStatusPending,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.invitesByID[invite.ID] = invite
		result.Invites = append(result.Invites, invite)
		if user, ok := s.usersByID[userID]; ok {
			result.Invitees = append(result.Invitees, user)
		}
	}
	return result, nil
}

func (s *Store) RespondInvite(
	_ context.Context,
	meetingID uint,
	userID uint,
	status entities.InviteStatus,
	now time.Time,
) (ports.RespondInviteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var target *entities.GroupMeetingInvite
	for id := range s.invitesByID {
		invite := s.invitesByID[id]
		if invite.MeetingID == meetingID && invite.UserID == userID && invite.Status == entities.InviteStatusPending {
			target = &invite
			break
		}
	}
	if target == nil {
		return ports.RespondInviteResult{}, domainerrors.ErrInviteResolved
	}

	target.Status = status
	target.UpdatedAt = now
	s.invitesByID[target.ID] = *target

	meeting := s.meetingsByID[meetingID]
	return ports.RespondInviteResult{
		Invite:    *target,
		Meeting:   meeting,
		Creator:   s.usersByID[meeting.CreatorID],
		Responder: s.usersByID[userID],
	}, nil
}

func (s *Store) ListMeetingsForGroup(_ context.Context, groupID uint) ([]entities.GroupMeeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.GroupMeeting
	for _, meeting := range s.meetingsByID {
		if meeting.GroupID == groupID {
			out = append(out, meeting)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListInvitesForUser(_ context.Context, userID uint) ([]entities.GroupMeetingInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.GroupMeetingInvite
	for _, invite := range s.invitesByID {
		if invite.UserID == userID {
			out = append(out, invite)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListInvitesForMeeting(_ context.Context, meetingID uint) ([]entities.GroupMeetingInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.GroupMeetingInvite
	for _, invite := range s.invitesByID {
		if invite.MeetingID == meetingID {
			out = append(out, invite)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
