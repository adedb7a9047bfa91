package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/niholbooks/shop-bot/pkg/e"
)

// resolutionSet помнит заказы, по которым решение уже принято.
// Заказ решается ровно один раз, даже если уведомления получили
// несколько операторов и нажали кнопки одновременно.
type resolutionSet struct {
	mu       sync.Mutex
	resolved map[string]struct{}
}

func newResolutionSet() *resolutionSet {
	return &resolutionSet{resolved: make(map[string]struct{})}
}

// markResolved возвращает false, если заказ уже был решён.
func (r *resolutionSet) markResolved(orderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.resolved[orderID]; ok {
		return false
	}
	r.resolved[orderID] = struct{}{}

	return true
}

// resolveOrder обрабатывает решение оператора по заказу.
// Данные кнопки: "status_<accept|reject>_<покупатель>_<заказ>".
func (w *Workflow) resolveOrder(ctx context.Context, upd *Update) error {
	if !w.isAdmin(upd.UserID) {
		return nil
	}

	payload := strings.TrimPrefix(upd.Callback, cbStatus)
	parts := strings.SplitN(payload, "_", 3)
	if len(parts) != 3 {
		return e.ErrUnknownCallback
	}

	action, rawBuyer, orderID := parts[0], parts[1], parts[2]

	buyerID, err := strconv.ParseInt(rawBuyer, 10, 64)
	if err != nil {
		return e.ErrUnknownCallback
	}

	accepted := false
	switch action {
	case "accept":
		accepted = true
	case "reject":
	default:
		return e.ErrUnknownCallback
	}

	if !w.resolutions.markResolved(orderID) {
		w.reply(ctx, upd.UserID, textAlreadyResolved, nil)
		return nil
	}

	buyerText := fmt.Sprintf(textOrderRejected, orderID)
	mark := textMarkRejected
	if accepted {
		buyerText = fmt.Sprintf(textOrderApproved, orderID)
		mark = textMarkApproved
	}

	w.reply(ctx, buyerID, buyerText, nil)

	// В сообщении оператора кнопки заменяются итоговой отметкой.
	w.edit(ctx, upd.UserID, upd.MessageID, upd.Text+mark, nil)

	w.logger.Infof("order %s resolved: accepted=%t by admin %d", orderID, accepted, upd.UserID)
	return nil
}
