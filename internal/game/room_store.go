// internal/game/room_store.go
package game

import (
	"sync"
)

// RoomStore maps room ids to live rooms for the server's lifetime. Rooms are
// created on first join to an unseen id and must be removed as soon as their
// last player leaves; nothing else cleans them up.
type RoomStore struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRoomStore returns an empty in-memory store.
func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room for id, creating it with the given player
// limit when it does not exist yet. The second result reports whether the
// room was created by this call.
func (s *RoomStore) GetOrCreate(id string, playerLimit int) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.rooms[id]; ok {
		return r, false
	}
	r := NewRoom(id, playerLimit, nil)
	s.rooms[id] = r
	return r, true
}

// Get returns the room for id if it exists.
func (s *RoomStore) Get(id string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Delete removes the room from the store.
func (s *RoomStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

// Len returns the number of live rooms.
func (s *RoomStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}
