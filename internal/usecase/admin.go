package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
)

// handleAdminMenu обрабатывает операторские команды. Не-операторы получают
// отказ только на вход в панель, остальные команды молча игнорируются,
// чтобы не раскрывать их существование.
func (w *Workflow) handleAdminMenu(ctx context.Context, upd *Update) error {
	if !w.isAdmin(upd.UserID) {
		if upd.Menu == MenuAdmin {
			w.reply(ctx, upd.UserID, textNotAdmin, nil)
		}
		return nil
	}

	switch upd.Menu {
	case MenuAdmin:
		w.reply(ctx, upd.UserID, textAdminPanel, adminMenuKeyboard())
		return nil
	case MenuAddProduct:
		if err := w.sessions.Set(ctx, upd.UserID, domain.AddProductPhoto{}); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textAskProductPhoto, nil)
		return nil
	case MenuDeleteProduct:
		return w.showDeleteList(ctx, upd.UserID)
	case MenuEditProduct:
		return w.showEditList(ctx, upd.UserID)
	case MenuBroadcast:
		if err := w.sessions.Set(ctx, upd.UserID, domain.BroadcastWait{}); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textBroadcastPrompt, nil)
		return nil
	case MenuStats:
		return w.sendStats(ctx, upd.UserID)
	default:
		return nil
	}
}

// --- Добавление товара ---

// processAddProductInput ведёт пятишаговую анкету нового товара.
// Промежуточные данные живут в самом этапе, а не в хранилище:
// брошенная анкета не оставляет мусора в каталоге.
func (w *Workflow) processAddProductInput(ctx context.Context, upd *Update, stage domain.Stage) error {
	switch st := stage.(type) {
	case domain.AddProductPhoto:
		if upd.Kind != UpdatePhoto || upd.FileID == "" {
			return nil
		}
		if err := w.sessions.Set(ctx, upd.UserID, domain.AddProductName{Photo: upd.FileID}); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textAskProductName, nil)
		return nil

	case domain.AddProductName:
		if upd.Text == "" {
			return nil
		}
		next := domain.AddProductCategory{Photo: st.Photo, Name: upd.Text}
		if err := w.sessions.Set(ctx, upd.UserID, next); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textAskCategory, nil)
		return nil

	case domain.AddProductCategory:
		if upd.Text == "" {
			return nil
		}
		next := domain.AddProductPrice{Photo: st.Photo, Name: st.Name, Category: upd.Text}
		if err := w.sessions.Set(ctx, upd.UserID, next); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textAskPrice, nil)
		return nil

	case domain.AddProductPrice:
		price, err := domain.ParsePrice(upd.Text)
		if err != nil {
			w.reply(ctx, upd.UserID, textOnlyDigits, nil)
			return nil
		}
		next := domain.AddProductDescription{Photo: st.Photo, Name: st.Name, Category: st.Category, Price: price}
		if err := w.sessions.Set(ctx, upd.UserID, next); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textAskDescription, nil)
		return nil

	case domain.AddProductDescription:
		if upd.Text == "" {
			return nil
		}
		return w.finishAddProduct(ctx, upd, st)

	default:
		return nil
	}
}

func (w *Workflow) finishAddProduct(ctx context.Context, upd *Update, st domain.AddProductDescription) error {
	product := domain.NewProduct(st.Name, st.Category, st.Price, upd.Text, st.Photo)

	id, err := w.catalog.NextID(ctx)
	if err != nil {
		return err
	}

	if err := w.catalog.Save(ctx, id, product); err != nil {
		return err
	}

	if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, fmt.Sprintf(textProductAdded, product.Name, product.Price), adminMenuKeyboard())
	return nil
}

// --- Удаление товара ---

func (w *Workflow) showDeleteList(ctx context.Context, userID int64) error {
	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		w.reply(ctx, userID, textNothingToDelete, nil)
		return nil
	}

	w.reply(ctx, userID, textChooseToDelete, productListKeyboard(products, "❌", cbDelete))
	return nil
}

func (w *Workflow) deleteProduct(ctx context.Context, upd *Update, rawID string) error {
	if !w.isAdmin(upd.UserID) {
		return nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return e.ErrUnknownCallback
	}

	deleted, err := w.catalog.Delete(ctx, id)
	if err != nil {
		return err
	}

	if !deleted {
		w.edit(ctx, upd.UserID, upd.MessageID, textProductMissing, nil)
		return nil
	}

	w.edit(ctx, upd.UserID, upd.MessageID, textProductDeleted, nil)
	return nil
}

// --- Редактирование товара ---

func (w *Workflow) showEditList(ctx context.Context, userID int64) error {
	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		w.reply(ctx, userID, textNothingToEdit, nil)
		return nil
	}

	w.reply(ctx, userID, textChooseToEdit, productListKeyboard(products, "✏️", cbEdit))
	return nil
}

func (w *Workflow) chooseEditProduct(ctx context.Context, upd *Update, rawID string) error {
	if !w.isAdmin(upd.UserID) {
		return nil
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return e.ErrUnknownCallback
	}

	if _, err := w.catalog.Get(ctx, id); err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			w.edit(ctx, upd.UserID, upd.MessageID, textProductMissing, nil)
			return nil
		}
		return err
	}

	w.edit(ctx, upd.UserID, upd.MessageID, textChooseEditField, editFieldsKeyboard(id))
	return nil
}

// chooseEditField разбирает callback вида "edit_field_<id>_<поле>"
// и переводит оператора в ожидание нового значения.
func (w *Workflow) chooseEditField(ctx context.Context, upd *Update) error {
	if !w.isAdmin(upd.UserID) {
		return nil
	}

	payload := strings.TrimPrefix(upd.Callback, cbEditField)
	rawID, rawField, ok := strings.Cut(payload, "_")
	if !ok {
		return e.ErrUnknownCallback
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return e.ErrUnknownCallback
	}

	field, ok := domain.ParseEditField(rawField)
	if !ok {
		return e.ErrUnknownEditField
	}

	if err := w.sessions.Set(ctx, upd.UserID, domain.EditAwaitingValue{ProductID: id, Field: field}); err != nil {
		return err
	}

	if field == domain.FieldImage {
		w.reply(ctx, upd.UserID, textAskNewImage, nil)
		return nil
	}

	w.reply(ctx, upd.UserID, fmt.Sprintf(textAskNewValue, field.Label()), nil)
	return nil
}

// processEditValue применяет присланное значение к выбранному полю.
// Невалидный ввод не двигает этап: оператор получает подсказку и может
// прислать значение снова.
func (w *Workflow) processEditValue(ctx context.Context, upd *Update, st domain.EditAwaitingValue) error {
	in := domain.EditInput{Text: upd.Text}
	if upd.Kind == UpdatePhoto {
		in.PhotoID = upd.FileID
	}

	if st.Field != domain.FieldImage && in.Text == "" {
		return nil
	}

	product, err := w.catalog.Get(ctx, st.ProductID)
	if err != nil {
		if errors.Is(err, e.ErrProductNotFound) {
			// Товар удалили, пока оператор набирал значение.
			if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
				return err
			}
			w.reply(ctx, upd.UserID, textEditFailed, nil)
			return nil
		}
		return err
	}

	if err := st.Field.Apply(product, in); err != nil {
		switch {
		case errors.Is(err, e.ErrInvalidPrice):
			w.reply(ctx, upd.UserID, textDigitsPlease, nil)
			return nil
		case errors.Is(err, e.ErrMediaRequired):
			w.reply(ctx, upd.UserID, textSendPhotoPlease, nil)
			return nil
		default:
			return err
		}
	}

	if err := w.catalog.Save(ctx, st.ProductID, product); err != nil {
		return err
	}

	if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textEdited, adminMenuKeyboard())
	return nil
}

// --- Статистика ---

func (w *Workflow) sendStats(ctx context.Context, userID int64) error {
	w.reply(ctx, userID, textStatsLoading, nil)

	log, err := w.analytics.Load(ctx)
	if err != nil {
		w.reply(ctx, userID, textStatsFailed, nil)
		return err
	}

	products, err := w.catalog.List(ctx)
	if err != nil {
		w.reply(ctx, userID, textStatsFailed, nil)
		return err
	}

	data, err := buildStatsReport(log, products)
	if err != nil {
		w.reply(ctx, userID, textStatsFailed, nil)
		return err
	}

	doc := &Document{
		Name:     "statistika.xlsx",
		MimeType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:     data,
		Caption:  textStatsCaption,
	}
	if err := w.transport.SendDocument(ctx, userID, doc); err != nil {
		w.reply(ctx, userID, textStatsFailed, nil)
		return err
	}

	return nil
}
