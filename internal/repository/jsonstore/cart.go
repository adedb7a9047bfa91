package jsonstore

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// CartStore хранит корзины всех пользователей в одном JSON-файле.
// На диске ключи — строковые id пользователей, значения — упорядоченные
// списки id товаров; повтор id означает количество.
type CartStore struct {
	mu   sync.Mutex
	path string
	log  logger.Logger
}

func NewCartStore(dir string, log logger.Logger) *CartStore {
	return &CartStore{
		path: filepath.Join(dir, "carts.json"),
		log:  log,
	}
}

// Add дописывает товар в конец корзины пользователя.
func (s *CartStore) Add(ctx context.Context, userID, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := s.loadAll()
	key := cartKey(userID)
	carts[key] = append(carts[key], productID)

	if err := save(s.path, carts); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Remove удаляет первое вхождение товара и сообщает, было ли удаление.
// Корзина не меняется, если товара в ней нет.
func (s *CartStore) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := s.loadAll()
	key := cartKey(userID)
	items := carts[key]

	for i, id := range items {
		if id != productID {
			continue
		}

		carts[key] = append(items[:i:i], items[i+1:]...)
		if err := save(s.path, carts); err != nil {
			return false, e.Wrap(whereami.WhereAmI(), err)
		}
		return true, nil
	}

	return false, nil
}

// Replace целиком заменяет корзину пользователя ("Buyurtma berish" по одному товару).
func (s *CartStore) Replace(ctx context.Context, userID int64, productIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := s.loadAll()
	carts[cartKey(userID)] = append([]int64(nil), productIDs...)

	if err := save(s.path, carts); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Clear опустошает корзину пользователя, не трогая чужие корзины.
func (s *CartStore) Clear(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := s.loadAll()
	key := cartKey(userID)
	if _, ok := carts[key]; !ok {
		return nil
	}

	delete(carts, key)
	if err := save(s.path, carts); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Get возвращает упорядоченный список id товаров; для незнакомого
// пользователя — пустой срез.
func (s *CartStore) Get(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	carts := s.loadAll()
	return append([]int64(nil), carts[cartKey(userID)]...), nil
}

func (s *CartStore) loadAll() map[string][]int64 {
	carts := make(map[string][]int64)
	load(s.path, &carts, s.log)
	return carts
}

func cartKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
