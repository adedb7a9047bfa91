package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/clients"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
	r "github.com/redis/go-redis/v9"
)

// stageEnvelope — сериализованный этап диалога: тег варианта + его поля.
type stageEnvelope struct {
	Kind    domain.StageKind `json:"kind"`
	Payload json.RawMessage  `json:"payload,omitempty"`
}

// SessionRepo хранит этапы диалога в Redis с TTL.
// Истечение ключа возвращает пользователя в Idle — так ограничивается
// время жизни брошенных сессий без фоновой уборки.
type SessionRepo struct {
	client *clients.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewSessionRepo(client *clients.RedisClient, ttl time.Duration, logger logger.Logger) *SessionRepo {
	return &SessionRepo{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get возвращает этап пользователя; nil — Idle.
func (s *SessionRepo) Get(ctx context.Context, userID int64) (domain.Stage, error) {
	data, err := s.client.Client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, r.Nil) {
			return nil, nil
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var env stageEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		// Битую сессию выбрасываем, чтобы пользователь не застрял.
		s.logger.Warnf("corrupt session for user %d, resetting: %v", userID, err)
		if delErr := s.client.Client.Del(ctx, sessionKey(userID)).Err(); delErr != nil {
			s.logger.Warnf("redis del failed: %v", delErr)
		}
		return nil, nil
	}

	return decodeStage(env)
}

// Set перезаписывает этап пользователя и продлевает TTL.
func (s *SessionRepo) Set(ctx context.Context, userID int64, stage domain.Stage) error {
	payload, err := json.Marshal(stage)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	data, err := json.Marshal(stageEnvelope{Kind: stage.Kind(), Payload: payload})
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := s.client.Client.Set(ctx, sessionKey(userID), data, s.ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

// Clear сбрасывает пользователя в Idle.
func (s *SessionRepo) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// decodeStage восстанавливает конкретный вариант этапа по тегу.
func decodeStage(env stageEnvelope) (domain.Stage, error) {
	switch env.Kind {
	case domain.KindSearchWait:
		return domain.SearchWait{}, nil
	case domain.KindFeedbackWait:
		return domain.FeedbackWait{}, nil
	case domain.KindCheckoutPhone:
		return domain.CheckoutPhone{}, nil
	case domain.KindCheckoutAddress:
		var st domain.CheckoutAddress
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindCheckoutShipping:
		var st domain.CheckoutShipping
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindCheckoutReceipt:
		var st domain.CheckoutReceipt
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindAddProductPhoto:
		return domain.AddProductPhoto{}, nil
	case domain.KindAddProductName:
		var st domain.AddProductName
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindAddProductCategory:
		var st domain.AddProductCategory
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindAddProductPrice:
		var st domain.AddProductPrice
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindAddProductDescription:
		var st domain.AddProductDescription
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindEditAwaitingValue:
		var st domain.EditAwaitingValue
		err := unmarshalPayload(env.Payload, &st)
		return st, err
	case domain.KindBroadcastWait:
		return domain.BroadcastWait{}, nil
	default:
		return nil, fmt.Errorf("unknown stage kind %q", env.Kind)
	}
}

func unmarshalPayload(payload json.RawMessage, v any) error {
	if len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	return nil
}
