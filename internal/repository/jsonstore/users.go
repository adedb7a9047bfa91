package jsonstore

import (
	"context"
	"path/filepath"
	"slices"
	"sync"

	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// UserStore — реестр всех пользователей, когда-либо написавших боту.
// Используется рассылкой; записи никогда не удаляются.
type UserStore struct {
	mu   sync.Mutex
	path string
	log  logger.Logger
}

func NewUserStore(dir string, log logger.Logger) *UserStore {
	return &UserStore{
		path: filepath.Join(dir, "users.json"),
		log:  log,
	}
}

// Add регистрирует пользователя при первом контакте.
// Возвращает true, если пользователь новый.
func (s *UserStore) Add(ctx context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.loadAll()
	if slices.Contains(users, userID) {
		return false, nil
	}

	users = append(users, userID)
	if err := save(s.path, users); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return true, nil
}

// All возвращает всех зарегистрированных пользователей.
func (s *UserStore) All(ctx context.Context) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadAll(), nil
}

func (s *UserStore) loadAll() []int64 {
	users := make([]int64, 0)
	load(s.path, &users, s.log)
	return users
}
