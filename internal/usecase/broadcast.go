package usecase

import (
	"context"
	"fmt"

	"github.com/niholbooks/shop-bot/pkg/logger"
)

// Broadcaster рассылает сообщение оператора всем зарегистрированным
// пользователям. Сбой доставки одному получателю не останавливает
// рассылку: каждый исход попадает либо в Delivered, либо в Failed.
type Broadcaster struct {
	transport ChatTransport
	logger    logger.Logger
}

func NewBroadcaster(transport ChatTransport, logger logger.Logger) *Broadcaster {
	return &Broadcaster{
		transport: transport,
		logger:    logger,
	}
}

// Run копирует сообщение каждому получателю и возвращает итог.
// Delivered+Failed всегда равно числу получателей.
func (b *Broadcaster) Run(ctx context.Context, fromChatID, messageID int64, recipients []int64) BroadcastResult {
	var res BroadcastResult
	for _, userID := range recipients {
		if err := b.transport.CopyMessage(ctx, userID, fromChatID, messageID); err != nil {
			b.logger.Debugf("broadcast to %d failed: %v", userID, err)
			res.Failed++
			continue
		}
		res.Delivered++
	}

	return res
}

// processBroadcast запускает рассылку присланного оператором сообщения.
// Сама рассылка уходит в фоновую горутину: обработка входящих событий
// не блокируется на время доставки.
func (w *Workflow) processBroadcast(ctx context.Context, upd *Update) error {
	if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	recipients, err := w.users.All(ctx)
	if err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, fmt.Sprintf(textBroadcastStarted, len(recipients)), nil)

	initiatorID := upd.UserID
	messageID := upd.MessageID

	go func() {
		ctx := context.Background()
		res := w.broadcaster.Run(ctx, initiatorID, messageID, recipients)
		w.logger.Infof("broadcast finished: delivered=%d failed=%d", res.Delivered, res.Failed)
		w.reply(ctx, initiatorID, fmt.Sprintf(textBroadcastDone, res.Delivered, res.Failed), nil)
	}()

	return nil
}
