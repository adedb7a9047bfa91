package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
)

// startBuyNow оформляет покупку одного товара: корзина целиком
// заменяется этим товаром, дальше идёт обычный чекаут.
func (w *Workflow) startBuyNow(ctx context.Context, upd *Update, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return e.ErrUnknownCallback
	}

	if err := w.carts.Replace(ctx, upd.UserID, []int64{id}); err != nil {
		return err
	}

	return w.startCheckout(ctx, upd)
}

func (w *Workflow) startCheckout(ctx context.Context, upd *Update) error {
	cartIDs, err := w.carts.Get(ctx, upd.UserID)
	if err != nil {
		return err
	}

	if len(cartIDs) == 0 {
		w.reply(ctx, upd.UserID, textCartEmpty, nil)
		return nil
	}

	if err := w.sessions.Set(ctx, upd.UserID, domain.CheckoutPhone{}); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textAskPhone, nil)
	return nil
}

func (w *Workflow) processPhone(ctx context.Context, upd *Update) error {
	if upd.Text == "" {
		return nil
	}

	if err := w.sessions.Set(ctx, upd.UserID, domain.CheckoutAddress{Phone: upd.Text}); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textAskAddress, nil)
	return nil
}

func (w *Workflow) processAddress(ctx context.Context, upd *Update, st domain.CheckoutAddress) error {
	if upd.Text == "" {
		return nil
	}

	next := domain.CheckoutShipping{Phone: st.Phone, Address: upd.Text}
	if err := w.sessions.Set(ctx, upd.UserID, next); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textAskShipping, shippingKeyboard())
	return nil
}

// selectShipping завершает сбор данных и размещает заказ.
// Кнопка доставки валидна только на этапе выбора доставки: нажатие на
// устаревшую кнопку вне этапа просто игнорируется.
func (w *Workflow) selectShipping(ctx context.Context, upd *Update, data string) error {
	stage, err := w.sessions.Get(ctx, upd.UserID)
	if err != nil {
		return err
	}

	st, ok := stage.(domain.CheckoutShipping)
	if !ok {
		return nil
	}

	ship, err := parseShipping(data)
	if err != nil {
		return e.ErrUnknownCallback
	}

	cartIDs, err := w.carts.Get(ctx, upd.UserID)
	if err != nil {
		return err
	}

	if len(cartIDs) == 0 {
		// Корзину очистили между началом чекаута и выбором доставки.
		if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textCartGoneError, nil)
		return nil
	}

	if err := w.analytics.LogOrder(ctx, cartIDs); err != nil {
		w.logger.Warnf("order logging failed: %v", err)
	}

	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	order := domain.Order{
		ID:       domain.NewOrderID(),
		BuyerID:  upd.UserID,
		Phone:    st.Phone,
		Address:  st.Address,
		Shipping: ship,
	}

	// Цены берём из каталога на момент заказа, а не на момент
	// добавления в корзину.
	var itemsTotal int64
	for _, id := range cartIDs {
		p, known := products[id]
		line := domain.OrderLine{ProductID: id, Known: known}
		if known {
			line.Name = p.Name
			line.Price = p.Price
			itemsTotal += p.Price
		}
		order.Lines = append(order.Lines, line)
	}
	order.Total = itemsTotal + ship.Price

	w.notifyAdminsAboutOrder(ctx, upd, &order)

	w.reply(ctx, upd.UserID, fmt.Sprintf(textOrderAccepted, order.ID, ship.Name, order.Total), mainMenuKeyboard())

	if err := w.carts.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	if err := w.sessions.Set(ctx, upd.UserID, domain.CheckoutReceipt{OrderID: order.ID}); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textAskReceipt, nil)
	return nil
}

func (w *Workflow) notifyAdminsAboutOrder(ctx context.Context, upd *Update, order *domain.Order) {
	var lines strings.Builder
	for _, l := range order.Lines {
		if !l.Known {
			lines.WriteString(fmt.Sprintf(textOrderUnknownLine, l.ProductID))
			continue
		}
		lines.WriteString(fmt.Sprintf(textOrderLine, l.Name, l.Price))
	}

	text := fmt.Sprintf(textNewOrder,
		order.ID,
		upd.FullName, upd.Username,
		order.Phone,
		order.Address,
		order.Shipping.Name, order.Shipping.Price,
		lines.String(),
		order.Total,
	)

	kb := orderDecisionKeyboard(order.BuyerID, order.ID)
	for _, adminID := range w.sortedAdminIDs() {
		if err := w.transport.SendMessage(ctx, adminID, text, kb); err != nil {
			w.logger.Warnf("order notification to admin %d failed: %v", adminID, err)
		}
	}
}

// parseShipping сопоставляет данные кнопки вида "<название>_<цена>"
// со строкой фиксированной таблицы доставки. Название может содержать
// пробелы, поэтому цена отрезается с конца. Цена подставляется из
// таблицы: подделанная кнопка не меняет стоимость доставки.
func parseShipping(data string) (domain.ShippingOption, error) {
	i := strings.LastIndex(data, "_")
	if i <= 0 {
		return domain.ShippingOption{}, e.ErrUnknownCallback
	}

	name := data[:i]
	for _, opt := range domain.ShippingOptions() {
		if opt.Name == name {
			return opt, nil
		}
	}

	return domain.ShippingOption{}, e.ErrUnknownCallback
}

// processReceipt принимает чек об оплате и пересылает его операторам.
func (w *Workflow) processReceipt(ctx context.Context, upd *Update, st domain.CheckoutReceipt) error {
	if upd.Kind != UpdatePhoto && upd.Kind != UpdateDocument {
		return nil
	}

	notice := fmt.Sprintf(textReceiptNotice, st.OrderID, upd.FullName)
	for _, adminID := range w.sortedAdminIDs() {
		w.reply(ctx, adminID, notice, nil)
		if err := w.transport.CopyMessage(ctx, adminID, upd.UserID, upd.MessageID); err != nil {
			w.logger.Warnf("receipt forward to admin %d failed: %v", adminID, err)
		}
	}

	w.archiveReceipt(ctx, upd, st.OrderID)

	if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textReceiptAccepted, mainMenuKeyboard())
	return nil
}

// archiveReceipt сохраняет чек в объектное хранилище, если оно настроено.
// Сбой архивации не влияет на пользовательский поток.
func (w *Workflow) archiveReceipt(ctx context.Context, upd *Update, orderID string) {
	if w.media == nil || upd.FileID == "" {
		return
	}

	data, mime, err := w.transport.Download(ctx, upd.FileID)
	if err != nil {
		w.logger.Warnf("receipt download failed for order %s: %v", orderID, err)
		return
	}

	key, err := w.media.ArchiveReceipt(ctx, orderID, upd.UserID, data, mime)
	if err != nil {
		w.logger.Warnf("receipt archive failed for order %s: %v", orderID, err)
		return
	}

	w.logger.Debugf("receipt for order %s archived as %s", orderID, key)
}

// processFeedback пересылает отзыв операторам.
func (w *Workflow) processFeedback(ctx context.Context, upd *Update) error {
	notice := fmt.Sprintf(textFeedbackNotice, upd.FullName, upd.Username)
	for _, adminID := range w.sortedAdminIDs() {
		w.reply(ctx, adminID, notice, nil)
		if err := w.transport.CopyMessage(ctx, adminID, upd.UserID, upd.MessageID); err != nil {
			w.logger.Warnf("feedback forward to admin %d failed: %v", adminID, err)
		}
	}

	if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textFeedbackThanks, nil)
	return nil
}
