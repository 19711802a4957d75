package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"concord/contexts/group-governance/membership-service/domain/entities"
	domainerrors "concord/contexts/group-governance/membership-service/domain/errors"
	"concord/contexts/group-governance/membership-service/ports"
)

// Store is the in-memory repository used by tests and local wiring. A single
// mutex serializes every workflow, which gives the same all-or-nothing
// behavior the postgres adapter gets from transactions.
type Store struct {
	mu sync.Mutex

	usersByID    map[uint]entities.User
	groupsByID   map[uint]entities.Group
	membersByID  map[uint]entities.GroupMember
	memberByPair map[[2]uint]uint // (groupID, userID) -> memberID
	invitesByID  map[uint]entities.GroupInvite

	sequence uint
	now      time.Time
}

func NewStore() *Store {
	store := &Store{
		usersByID:    make(map[uint]entities.User),
		groupsByID:   make(map[uint]entities.Group),
		membersByID:  make(map[uint]entities.GroupMember),
		memberByPair: make(map[[2]uint]uint),
		invitesByID:  make(map[uint]entities.GroupInvite),
		sequence:     0,
		now:          time.Now().UTC(),
	}
	for _, user := range []entities.User{
		{ID: 1, Name: "Ada Admin", Email: "ada@example.com", Role: "admin"},
		{ID: 2, Name: "Ben Member", Email: "ben@example.com", Role: "member"},
		{ID: 3, Name: "Cleo Member", Email: "cleo@example.com", Role: "member"},
		{ID: 4, Name: "Dan Member", Email: "dan@example.com", Role: "member"},
	} {
		store.usersByID[user.ID] = user
	}
	return store
}

// SetNow pins the clock for deterministic tests.
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

// AddUser extends the directory projection for test setups.
func (s *Store) AddUser(user entities.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usersByID[user.ID] = user
}

func (s *Store) nextIDLocked() uint {
	s.sequence++
	return s.sequence + 1000
}

func (s *Store) GetUser(_ context.Context, userID uint) (entities.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.usersByID[userID]
	return user, ok, nil
}

func (s *Store) GetGroup(_ context.Context, groupID uint) (entities.Group, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.groupsByID[groupID]
	return group, ok, nil
}

func (s *Store) CreateGroup(_ context.Context, group entities.Group, now time.Time) (entities.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group.ID = s.nextIDLocked()
	group.CreatedAt = now
	group.UpdatedAt = now
	s.groupsByID[group.ID] = group

	member := entities.GroupMember{
		ID:       s.nextIDLocked(),
		GroupID:  group.ID,
		UserID:   group.CreatorID,
		JoinedAt: now,
	}
	s.membersByID[member.ID] = member
	s.memberByPair[[2]uint{group.ID, group.CreatorID}] = member.ID
	return group, nil
}

func (s *Store) DeleteGroup(_ context.Context, groupID uint) (entities.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groupsByID[groupID]
	if !ok {
		return entities.Group{}, domainerrors.ErrNotFound
	}
	delete(s.groupsByID, groupID)
	for id, member := range s.membersByID {
		if member.GroupID == groupID {
			delete(s.membersByID, id)
			delete(s.memberByPair, [2]uint{member.GroupID, member.UserID})
		}
	}
	for id, invite := range s.invitesByID {
		if invite.GroupID == groupID {
			delete(s.invitesByID, id)
		}
	}
	return group, nil
}

func (s *Store) ListGroupsForUser(_ context.Context, userID uint) ([]entities.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Group
	for _, member := range s.membersByID {
		if member.UserID == userID {
			if group, ok := s.groupsByID[member.GroupID]; ok {
				out = append(out, group)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) ListMembers(_ context.Context, groupID uint) ([]entities.GroupMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.GroupMember
	for _, member := range s.membersByID {
		if member.GroupID == groupID {
			out = append(out, member)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) RemoveMember(_ context.Context, groupID uint, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	memberID, ok := s.memberByPair[[2]uint{groupID, userID}]
	if !ok {
		return domainerrors.ErrNotFound
	}
	delete(s.membersByID, memberID)
	delete(s.memberByPair, [2]uint{groupID, userID})
	return nil
}

func (s *Store) CreateInvite(_ context.Context, invite entities.GroupInvite, now time.Time) (entities.GroupInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite.ID = s.nextIDLocked()
	invite.CreatedAt = now
	invite.UpdatedAt = now
	s.invitesByID[invite.ID] = invite
	return invite, nil
}

func (s *Store) RespondInvite(
	_ context.Context,
	inviteID uint,
	receiverID uint,
	status entities.InviteStatus,
	now time.Time,
) (ports.RespondInviteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	invite, ok := s.invitesByID[inviteID]
	if !ok || invite.Status != entities.InviteStatusPending || invite.ReceiverID != receiverID {
		return ports.RespondInviteResult{}, domainerrors.ErrInviteResolved
	}

	if status == entities.InviteStatusAccepted {
		if _, exists := s.memberByPair[[2]uint{invite.GroupID, receiverID}]; exists {
			// Nothing was mutated yet: the invite stays pending, matching the
			// postgres rollback behavior.
			return ports.RespondInviteResult{}, domainerrors.ErrAlreadyMember
		}
		member := entities.GroupMember{
			ID:       s.nextIDLocked(),
			GroupID:  invite.GroupID,
			UserID:   receiverID,
			JoinedAt: now,
		}
		s.membersByID[member.ID] = member
		s.memberByPair[[2]uint{invite.GroupID, receiverID}] = member.ID
	}

	invite.Status = status
	invite.UpdatedAt = now
	s.invitesByID[inviteID] = invite

	return ports.RespondInviteResult{
		Invite:   invite,
		Group:    s.groupsByID[invite.GroupID],
		Sender:   s.usersByID[invite.SenderID],
		Receiver: s.usersByID[invite.ReceiverID],
	}, nil
}

func (s *Store) ListInvitesForUser(_ context.Context, userID uint) ([]entities.GroupInvite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.GroupInvite
	for _, invite := range s.invitesByID {
		if invite.ReceiverID == userID || invite.SenderID == userID {
			out = append(out, invite)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
