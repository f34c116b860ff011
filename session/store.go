package session

import "sync"

// Store maps user ids to Conversations, creating one on first contact.
// Access goes through Do, which holds that user's lock for the whole
// callback: two events from the same user run one after the other, while
// different users proceed concurrently on disjoint entries.
type Store struct {
	mu    sync.Mutex
	users map[int64]*entry
}

type entry struct {
	mu   sync.Mutex
	conv Conversation
}

func NewStore() *Store {
	return &Store{users: make(map[int64]*entry)}
}

// Do runs fn with exclusive access to userID's Conversation. Mutations made
// by fn are retained.
func (s *Store) Do(userID int64, fn func(*Conversation)) {
	s.mu.Lock()
	e, ok := s.users[userID]
	if !ok {
		e = &entry{conv: Conversation{UserID: userID, State: ChoosingAction}}
		s.users[userID] = e
	}
	s.mu.Unlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.conv)
}
