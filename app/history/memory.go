package history

import "sync"

// InMemoryStorage keeps histories in process memory
type InMemoryStorage struct {
	histories map[string][]string
	mx        sync.RWMutex
}

// Append adds word to session history
func (s *InMemoryStorage) Append(session string, word string) error {
	s.mx.Lock()
	defer s.mx.Unlock()
	s.histories[session] = append(s.histories[session], word)
	return nil
}

// List returns copy of session history
func (s *InMemoryStorage) List(session string) ([]string, error) {
	s.mx.RLock()
	defer s.mx.RUnlock()
	words := s.histories[session]
	result := make([]string, len(words))
	copy(result, words)
	return result, nil
}

// Forget drops history of a finished session
func (s *InMemoryStorage) Forget(session string) {
	s.mx.Lock()
	defer s.mx.Unlock()
	delete(s.histories, session)
}

// NewInMemoryStorage creates empty InMemoryStorage
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{histories: make(map[string][]string)}
}
