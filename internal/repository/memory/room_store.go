// Package memory implements repository.RoomStore as a map guarded by a
// mutex, grounded on New-Voyager-gameserver's MemoryHandStateTracker
// (server/game/persist_memory.go). It backs the test suite and the
// USE_MEMORY_STORE dev mode so neither needs a live database.
package memory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"euchre-server/internal/domain"
)

// RoomStore is a map+mutex fake satisfying repository.RoomStore.
// Snapshots are round-tripped through JSON on Save/Load, matching the
// copy semantics a real database-backed store would give the caller
// (mutating a Room obtained from Load never affects the stored copy
// until Save is called again).
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string][]byte
}

// New returns an empty RoomStore.
func New() *RoomStore {
	return &RoomStore{rooms: make(map[string][]byte)}
}

func (s *RoomStore) Save(ctx context.Context, room *domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[room.Name] = data
	return nil
}

func (s *RoomStore) Load(ctx context.Context, name string) (*domain.Room, error) {
	s.mu.Lock()
	data, ok := s.rooms[name]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var room domain.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *RoomStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, name)
	return nil
}

func (s *RoomStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.rooms))
	for name := range s.rooms {
		names = append(names, name)
	}
	return names, nil
}

func (s *RoomStore) ReapExpired(ctx context.Context, ttl time.Duration) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var expired []string
	for name, data := range s.rooms {
		var room domain.Room
		if err := json.Unmarshal(data, &room); err != nil {
			continue
		}
		if room.Expired(ttl) {
			expired = append(expired, name)
		}
	}
	for _, name := range expired {
		delete(s.rooms, name)
	}
	return expired, nil
}
