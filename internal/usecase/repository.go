package usecase

import (
	"context"

	"github.com/niholbooks/shop-bot/internal/domain"
)

type CatalogRepository interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Save(ctx context.Context, id int64, product *domain.Product) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context) (map[int64]domain.Product, error)
	NextID(ctx context.Context) (int64, error)
}

type CartRepository interface {
	Add(ctx context.Context, userID, productID int64) error
	Remove(ctx context.Context, userID, productID int64) (bool, error)
	Replace(ctx context.Context, userID int64, productIDs []int64) error
	Clear(ctx context.Context, userID int64) error
	Get(ctx context.Context, userID int64) ([]int64, error)
}

type UserRepository interface {
	Add(ctx context.Context, userID int64) (bool, error)
	All(ctx context.Context) ([]int64, error)
}

type AnalyticsRepository interface {
	LogSearch(ctx context.Context, query string) error
	LogOrder(ctx context.Context, productIDs []int64) error
	Load(ctx context.Context) (*domain.AnalyticsLog, error)
}

// SessionRepository хранит этап диалога каждого пользователя.
// Get возвращает nil для Idle; Set перезаписывает любой прежний этап.
type SessionRepository interface {
	Get(ctx context.Context, userID int64) (domain.Stage, error)
	Set(ctx context.Context, userID int64, stage domain.Stage) error
	Clear(ctx context.Context, userID int64) error
}
