package memory

import (
	"context"
	"sync"
	"time"

	"github.com/niholbooks/shop-bot/internal/domain"
)

type entry struct {
	stage     domain.Stage
	expiresAt time.Time
}

// SessionStore — in-memory хранилище этапов диалога, по одной записи на пользователя.
// TTL ограничивает время жизни брошенных сессий (например, покупатель так и не
// прислал чек); ttl == 0 отключает вытеснение.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[int64]entry
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		ttl:      ttl,
		sessions: make(map[int64]entry),
		stop:     make(chan struct{}),
	}

	if ttl > 0 {
		go s.janitor()
	}

	return s
}

// Get возвращает текущий этап пользователя; nil означает Idle.
func (s *SessionStore) Get(ctx context.Context, userID int64) (domain.Stage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	en, ok := s.sessions[userID]
	if !ok {
		return nil, nil
	}
	if s.ttl > 0 && time.Now().After(en.expiresAt) {
		return nil, nil
	}

	return en.stage, nil
}

// Set устанавливает этап, перезаписывая любой предыдущий: у пользователя
// не бывает двух активных этапов одновременно.
func (s *SessionStore) Set(ctx context.Context, userID int64, stage domain.Stage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[userID] = entry{
		stage:     stage,
		expiresAt: time.Now().Add(s.ttl),
	}

	return nil
}

// Clear сбрасывает пользователя в Idle.
func (s *SessionStore) Clear(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, userID)
	return nil
}

// Close останавливает фоновую уборку.
func (s *SessionStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *SessionStore) janitor() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, en := range s.sessions {
				if now.After(en.expiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
