package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"concord/contexts/group-governance/notification-service/domain/entities"
	domainerrors "concord/contexts/group-governance/notification-service/domain/errors"
)

// Store is the in-memory notification repository for tests and local wiring.
type Store struct {
	mu sync.Mutex

	notificationsByID map[uint]entities.Notification

	sequence uint
	now      time.Time
}

func NewStore() *Store {
	return &Store{
		notificationsByID: make(map[uint]entities.Notification),
		now:               time.Now().UTC(),
	}
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

func (s *Store) Create(_ context.Context, notification entities.Notification, now time.Time) (entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sequence++
	notification.ID = s.sequence + 4000
	notification.IsRead = false
	notification.CreatedAt = now
	s.notificationsByID[notification.ID] = notification
	return notification, nil
}

func (s *Store) ListForUser(_ context.Context, userID uint) ([]entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []entities.Notification
	for _, notification := range s.notificationsByID {
		if notification.UserID == userID {
			out = append(out, notification)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) MarkRead(_ context.Context, notificationID uint, userID uint, _ time.Time) (entities.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	notification, ok := s.notificationsByID[notificationID]
	if !ok || notification.UserID != userID {
		return entities.Notification{}, domainerrors.ErrNotFound
	}
	notification.IsRead = true
	s.notificationsByID[notificationID] = notification
	return notification, nil
}
