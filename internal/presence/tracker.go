// Package presence tracks which users are currently connected to each
// board's real-time channel. State lives only in process memory and is
// reset on restart.
package presence

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Tracker is a process-scoped registry of online users per board. A user
// may hold several connections to the same board (multiple tabs or
// devices); connections are reference-counted so the user stays present
// until the last one drops.
type Tracker struct {
	mu     sync.RWMutex
	boards map[uuid.UUID]map[uuid.UUID]int // boardID -> userID -> connection count
}

// NewTracker creates an empty presence registry
func NewTracker() *Tracker {
	return &Tracker{
		boards: make(map[uuid.UUID]map[uuid.UUID]int),
	}
}

// Join records a connection of user to board. It returns true when the
// user was not previously present on the board, i.e. the online set
// changed and should be rebroadcast.
func (t *Tracker) Join(boardID, userID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	users := t.boards[boardID]
	if users == nil {
		users = make(map[uuid.UUID]int)
		t.boards[boardID] = users
	}
	users[userID]++
	return users[userID] == 1
}

// Leave drops one connection of user from board. It returns true when
// this was the user's last connection and they left the online set.
func (t *Tracker) Leave(boardID, userID uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	users := t.boards[boardID]
	if users == nil {
		return false
	}
	count, ok := users[userID]
	if !ok {
		return false
	}
	if count > 1 {
		users[userID] = count - 1
		return false
	}
	delete(users, userID)
	if len(users) == 0 {
		delete(t.boards, boardID)
	}
	return true
}

// MembersOf returns the user ids currently online on a board. The result
// is sorted so broadcasts are stable across calls.
func (t *Tracker) MembersOf(boardID uuid.UUID) []uuid.UUID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	users := t.boards[boardID]
	ids := make([]uuid.UUID, 0, len(users))
	for id := range users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})
	return ids
}

// IsOnline reports whether the user holds at least one connection to the
// board.
func (t *Tracker) IsOnline(boardID, userID uuid.UUID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.boards[boardID][userID] > 0
}
