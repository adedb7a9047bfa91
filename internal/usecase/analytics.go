package usecase

import (
	"context"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// Analytics пишет события в журнал и, если настроено, дублирует их во внешнюю шину.
// Журнал — источник истины; ошибка публикации в шину только логируется.
type Analytics struct {
	repo   AnalyticsRepository
	events EventProducer // может быть nil
	logger logger.Logger
}

func NewAnalytics(repo AnalyticsRepository, events EventProducer, logger logger.Logger) *Analytics {
	return &Analytics{
		repo:   repo,
		events: events,
		logger: logger,
	}
}

// LogSearch фиксирует поисковый запрос.
func (a *Analytics) LogSearch(ctx context.Context, query string) error {
	const op = "Analytics.LogSearch"

	if err := a.repo.LogSearch(ctx, query); err != nil {
		return e.Wrap(op, err)
	}

	if a.events != nil {
		if err := a.events.PublishSearch(ctx, query); err != nil {
			a.logger.Warnf("failed to publish search event: %v", e.Wrap(op, err))
		}
	}

	return nil
}

// LogOrder фиксирует по одной записи на каждую позицию заказа.
func (a *Analytics) LogOrder(ctx context.Context, productIDs []int64) error {
	const op = "Analytics.LogOrder"

	if err := a.repo.LogOrder(ctx, productIDs); err != nil {
		return e.Wrap(op, err)
	}

	if a.events != nil {
		if err := a.events.PublishOrder(ctx, productIDs); err != nil {
			a.logger.Warnf("failed to publish order event: %v", e.Wrap(op, err))
		}
	}

	return nil
}

// Load возвращает журнал целиком.
func (a *Analytics) Load(ctx context.Context) (*domain.AnalyticsLog, error) {
	return a.repo.Load(ctx)
}
