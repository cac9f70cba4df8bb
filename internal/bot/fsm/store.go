package fsm

import "sync"

// У пользователя может быть только один активный визард. Каждый Store
// регистрируется здесь, и Discard чистит их все разом — старт нового визарда
// молча выбрасывает незавершённый.
var registry struct {
	mu     sync.Mutex
	stores []interface{ Clear(chatID int64) }
}

func register(s interface{ Clear(chatID int64) }) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.stores = append(registry.stores, s)
}

// Discard сбрасывает состояние всех визардов для данного чата.
func Discard(chatID int64) {
	registry.mu.Lock()
	stores := registry.stores
	registry.mu.Unlock()
	for _, s := range stores {
		s.Clear(chatID)
	}
}

// Store — состояние одного визарда, ключ — chatID пользователя.
// Состояние живёт в памяти процесса и не переживает рестарт — это осознанно:
// незавершённый диалог проще начать заново.
type Store[T any] struct {
	mu sync.RWMutex
	m  map[int64]*T
}

func NewStore[T any]() *Store[T] {
	s := &Store[T]{m: make(map[int64]*T)}
	register(s)
	return s
}

func (s *Store[T]) Get(chatID int64) *T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m[chatID]
}

func (s *Store[T]) Set(chatID int64, state *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[chatID] = state
}

func (s *Store[T]) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, chatID)
}

func (s *Store[T]) Active(chatID int64) bool {
	return s.Get(chatID) != nil
}
