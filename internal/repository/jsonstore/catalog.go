package jsonstore

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// CatalogStore реализует каталог товаров поверх одного JSON-файла.
// Каждая операция — полный цикл чтение-изменение-запись под мьютексом хранилища,
// так что конкурирующие записи не теряют изменений друг друга.
type CatalogStore struct {
	mu   sync.Mutex
	path string
	log  logger.Logger
}

func NewCatalogStore(dir string, log logger.Logger) *CatalogStore {
	return &CatalogStore{
		path: filepath.Join(dir, "products.json"),
		log:  log,
	}
}

// Get возвращает товар по id либо e.ErrProductNotFound.
func (s *CatalogStore) Get(ctx context.Context, id int64) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.loadAll()
	p, ok := products[id]
	if !ok {
		return nil, e.ErrProductNotFound
	}

	return &p, nil
}

// Save записывает товар под указанным id, перезаписывая существующий.
func (s *CatalogStore) Save(ctx context.Context, id int64, product *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.loadAll()
	products[id] = *product

	if err := save(s.path, products); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Delete удаляет товар и сообщает, был ли он в каталоге.
func (s *CatalogStore) Delete(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.loadAll()
	if _, ok := products[id]; !ok {
		return false, nil
	}

	delete(products, id)
	if err := save(s.path, products); err != nil {
		return false, e.Wrap(whereami.WhereAmI(), err)
	}

	return true, nil
}

// List возвращает весь каталог.
func (s *CatalogStore) List(ctx context.Context) (map[int64]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadAll(), nil
}

// NextID возвращает max(существующие id)+1 или 1 для пустого каталога.
// После удаления товара с максимальным id этот id переиспользуется —
// поведение исходной схемы нумерации, закреплено тестом.
func (s *CatalogStore) NextID(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	products := s.loadAll()
	if len(products) == 0 {
		return 1, nil
	}

	var max int64
	for id := range products {
		if id > max {
			max = id
		}
	}

	return max + 1, nil
}

func (s *CatalogStore) loadAll() map[int64]domain.Product {
	products := make(map[int64]domain.Product)
	load(s.path, &products, s.log)
	return products
}
