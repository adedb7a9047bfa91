package jsonstore

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// AnalyticsStore — журнал поисковых запросов и позиций заказов.
// Только дозапись; существующие события не изменяются и не удаляются.
type AnalyticsStore struct {
	mu   sync.Mutex
	path string
	log  logger.Logger
	now  func() time.Time
}

func NewAnalyticsStore(dir string, log logger.Logger) *AnalyticsStore {
	return &AnalyticsStore{
		path: filepath.Join(dir, "analytics.json"),
		log:  log,
		now:  time.Now,
	}
}

// LogSearch дописывает поисковый запрос с текущей меткой времени.
func (s *AnalyticsStore) LogSearch(ctx context.Context, query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.loadAll()
	data.Searches = append(data.Searches, domain.SearchEvent{
		Query:     query,
		Timestamp: s.now().Format(domain.TimeLayout),
	})

	if err := save(s.path, data); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// LogOrder дописывает по одной записи на каждую позицию заказа.
// Все позиции одного заказа получают общую метку времени.
func (s *AnalyticsStore) LogOrder(ctx context.Context, productIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.loadAll()
	ts := s.now().Format(domain.TimeLayout)
	for _, id := range productIDs {
		data.Orders = append(data.Orders, domain.OrderEvent{
			ProductID: id,
			Timestamp: ts,
		})
	}

	if err := save(s.path, data); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Load возвращает журнал целиком для построения отчётов.
func (s *AnalyticsStore) Load(ctx context.Context) (*domain.AnalyticsLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := s.loadAll()
	return &data, nil
}

func (s *AnalyticsStore) loadAll() domain.AnalyticsLog {
	data := domain.AnalyticsLog{
		Searches: []domain.SearchEvent{},
		Orders:   []domain.OrderEvent{},
	}
	load(s.path, &data, s.log)
	return data
}
