package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

// Workflow — конечный автомат диалога: классифицирует входящее действие
// по текущему этапу пользователя, меняет хранилища и двигает этап.
// Состояние этапов строго per-user; общие хранилища защищены на своём уровне.
type Workflow struct {
	catalog     CatalogRepository
	carts       CartRepository
	users       UserRepository
	analytics   *Analytics
	sessions    SessionRepository
	transport   ChatTransport
	media       MediaArchive // может быть nil
	broadcaster *Broadcaster
	resolutions *resolutionSet
	admins      map[int64]struct{}
	logger      logger.Logger
}

func NewWorkflow(
	catalog CatalogRepository,
	carts CartRepository,
	users UserRepository,
	analytics *Analytics,
	sessions SessionRepository,
	transport ChatTransport,
	media MediaArchive,
	adminIDs []int64,
	logger logger.Logger,
) *Workflow {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}

	return &Workflow{
		catalog:     catalog,
		carts:       carts,
		users:       users,
		analytics:   analytics,
		sessions:    sessions,
		transport:   transport,
		media:       media,
		broadcaster: NewBroadcaster(transport, logger),
		resolutions: newResolutionSet(),
		admins:      admins,
		logger:      logger,
	}
}

// HandleUpdate — единая точка входа для событий шлюза.
func (w *Workflow) HandleUpdate(ctx context.Context, upd *Update) error {
	const op = "Workflow.HandleUpdate"

	var err error
	switch upd.Kind {
	case UpdateStart:
		err = w.handleStart(ctx, upd)
	case UpdateMenu:
		err = w.handleMenu(ctx, upd)
	case UpdateCallback:
		err = w.handleCallback(ctx, upd)
	case UpdateText, UpdatePhoto, UpdateDocument:
		err = w.handleStageInput(ctx, upd)
	default:
		w.logger.Warnf("unknown update kind %q from user %d", upd.Kind, upd.UserID)
		return nil
	}

	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// NotifyStartup сообщает операторам о запуске бота.
// Ошибки отдельных доставок изолированы.
func (w *Workflow) NotifyStartup(ctx context.Context) {
	for _, id := range w.sortedAdminIDs() {
		w.reply(ctx, id, textStartupNotice, nil)
	}
}

// NotifyShutdown сообщает операторам об остановке бота.
func (w *Workflow) NotifyShutdown(ctx context.Context) {
	for _, id := range w.sortedAdminIDs() {
		w.reply(ctx, id, textShutdownNotice, nil)
	}
}

func (w *Workflow) handleStart(ctx context.Context, upd *Update) error {
	if _, err := w.users.Add(ctx, upd.UserID); err != nil {
		return err
	}

	if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, fmt.Sprintf(textGreeting, upd.FullName), mainMenuKeyboard())
	w.reply(ctx, upd.UserID, textSharePrompt, shareKeyboard())

	if len(w.admins) == 0 {
		w.reply(ctx, upd.UserID, fmt.Sprintf(textAdminUnset, upd.UserID), nil)
	}

	return nil
}

// handleMenu обрабатывает пункты меню. Пункты не трогают текущий этап,
// кроме тех, что сами его устанавливают.
func (w *Workflow) handleMenu(ctx context.Context, upd *Update) error {
	switch upd.Menu {
	case MenuBooks:
		return w.showCategories(ctx, upd.UserID)
	case MenuSearch:
		if err := w.sessions.Set(ctx, upd.UserID, domain.SearchWait{}); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textSearchPrompt, nil)
		return nil
	case MenuCart:
		return w.showCart(ctx, upd.UserID)
	case MenuFeedback:
		if err := w.sessions.Set(ctx, upd.UserID, domain.FeedbackWait{}); err != nil {
			return err
		}
		w.reply(ctx, upd.UserID, textFeedbackPrompt, nil)
		return nil
	case MenuContact:
		w.reply(ctx, upd.UserID, textContact, nil)
		return nil
	case MenuChannel:
		w.reply(ctx, upd.UserID, textChannel, nil)
		return nil
	case MenuAdmin, MenuAddProduct, MenuEditProduct, MenuDeleteProduct, MenuBroadcast, MenuStats:
		return w.handleAdminMenu(ctx, upd)
	default:
		w.logger.Debugf("unknown menu item %q from user %d", upd.Menu, upd.UserID)
		return nil
	}
}

func (w *Workflow) handleCallback(ctx context.Context, upd *Update) error {
	cb := upd.Callback

	switch {
	case strings.HasPrefix(cb, cbCategory):
		return w.showCategoryProducts(ctx, upd, strings.TrimPrefix(cb, cbCategory))
	case cb == cbBackToCats:
		return w.backToCategories(ctx, upd)
	case strings.HasPrefix(cb, cbProduct):
		return w.showProductCard(ctx, upd, strings.TrimPrefix(cb, cbProduct))
	case cb == cbBackToList:
		return w.backToProductList(ctx, upd)
	case strings.HasPrefix(cb, cbAddToCart):
		return w.addToCart(ctx, upd, strings.TrimPrefix(cb, cbAddToCart))
	case cb == cbClearCart:
		return w.clearCart(ctx, upd)
	case strings.HasPrefix(cb, cbBuyNow):
		return w.startBuyNow(ctx, upd, strings.TrimPrefix(cb, cbBuyNow))
	case cb == cbCheckout:
		return w.startCheckout(ctx, upd)
	case strings.HasPrefix(cb, cbShipping):
		return w.selectShipping(ctx, upd, strings.TrimPrefix(cb, cbShipping))
	case strings.HasPrefix(cb, cbStatus):
		return w.resolveOrder(ctx, upd)
	case strings.HasPrefix(cb, cbEditField):
		return w.chooseEditField(ctx, upd)
	case strings.HasPrefix(cb, cbDelete):
		return w.deleteProduct(ctx, upd, strings.TrimPrefix(cb, cbDelete))
	case strings.HasPrefix(cb, cbEdit):
		return w.chooseEditProduct(ctx, upd, strings.TrimPrefix(cb, cbEdit))
	default:
		w.logger.Debugf("unknown callback %q from user %d", cb, upd.UserID)
		return e.ErrUnknownCallback
	}
}

// handleStageInput обрабатывает свободный текст и медиа согласно текущему этапу.
func (w *Workflow) handleStageInput(ctx context.Context, upd *Update) error {
	stage, err := w.sessions.Get(ctx, upd.UserID)
	if err != nil {
		// Потерянная сессия не должна ронять обработку: считаем Idle.
		w.logger.Warnf("session load failed for user %d: %v", upd.UserID, err)
		stage = nil
	}

	switch st := stage.(type) {
	case nil:
		return nil // Idle: свободный текст вне этапа игнорируется
	case domain.SearchWait:
		return w.processSearch(ctx, upd)
	case domain.FeedbackWait:
		return w.processFeedback(ctx, upd)
	case domain.CheckoutPhone:
		return w.processPhone(ctx, upd)
	case domain.CheckoutAddress:
		return w.processAddress(ctx, upd, st)
	case domain.CheckoutShipping:
		return nil // ждём callback с выбором доставки, текст не двигает этап
	case domain.CheckoutReceipt:
		return w.processReceipt(ctx, upd, st)
	case domain.AddProductPhoto, domain.AddProductName, domain.AddProductCategory,
		domain.AddProductPrice, domain.AddProductDescription:
		return w.processAddProductInput(ctx, upd, stage)
	case domain.EditAwaitingValue:
		return w.processEditValue(ctx, upd, st)
	case domain.BroadcastWait:
		return w.processBroadcast(ctx, upd)
	default:
		w.logger.Warnf("unhandled stage %q for user %d", stage.Kind(), upd.UserID)
		return nil
	}
}

// --- Поиск ---

func (w *Workflow) processSearch(ctx context.Context, upd *Update) error {
	if upd.Text == "" {
		return nil
	}

	query := strings.ToLower(upd.Text)
	if err := w.analytics.LogSearch(ctx, query); err != nil {
		w.logger.Warnf("search logging failed: %v", err)
	}

	// Любой текст в режиме поиска выводит из него, даже если сам
	// поиск дальше не удался.
	if err := w.sessions.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	results := make(map[int64]domain.Product)
	for id, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) {
			results[id] = p
		}
	}

	if len(results) == 0 {
		w.reply(ctx, upd.UserID, textSearchEmpty, mainMenuKeyboard())
		return nil
	}

	w.reply(ctx, upd.UserID, fmt.Sprintf(textSearchResults, len(results)), productsKeyboard(results, ""))
	return nil
}

// --- Каталог ---

func (w *Workflow) showCategories(ctx context.Context, userID int64) error {
	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	w.reply(ctx, userID, textChooseCategory, categoriesKeyboard(products))
	return nil
}

func (w *Workflow) showCategoryProducts(ctx context.Context, upd *Update, category string) error {
	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	w.edit(ctx, upd.UserID, upd.MessageID, fmt.Sprintf(textCategoryHeader, category), productsKeyboard(products, category))
	return nil
}

func (w *Workflow) backToCategories(ctx context.Context, upd *Update) error {
	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	w.edit(ctx, upd.UserID, upd.MessageID, textChooseCategory, categoriesKeyboard(products))
	return nil
}

func (w *Workflow) backToProductList(ctx context.Context, upd *Update) error {
	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, "Bizning kitoblar:", productsKeyboard(products, ""))
	return nil
}

// showProductCard показывает карточку товара с фото.
// Любая ошибка отправки фото превращается в текстовую карточку с тем же содержимым.
func (w *Workflow) showProductCard(ctx context.Context, upd *Update, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return e.ErrUnknownCallback
	}

	product, err := w.catalog.Get(ctx, id)
	if err != nil {
		// Товар успели удалить: кнопка осталась в старом сообщении.
		w.reply(ctx, upd.UserID, textProductMissing, nil)
		return nil
	}

	caption := fmt.Sprintf(textProductCard, product.Name, product.Description, product.Price)
	kb := buyKeyboard(id)

	if product.Image != "" {
		err := w.transport.SendPhoto(ctx, upd.UserID, product.Image, caption, kb)
		if err == nil {
			return nil
		}
		w.logger.Warnf("photo send failed for product %d, falling back to text: %v", id, err)
	}

	w.reply(ctx, upd.UserID, caption, kb)
	return nil
}

// --- Корзина ---

func (w *Workflow) addToCart(ctx context.Context, upd *Update, rawID string) error {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return e.ErrUnknownCallback
	}

	if err := w.carts.Add(ctx, upd.UserID, id); err != nil {
		return err
	}

	w.reply(ctx, upd.UserID, textAddedToCart, nil)
	return nil
}

func (w *Workflow) showCart(ctx context.Context, userID int64) error {
	cartIDs, err := w.carts.Get(ctx, userID)
	if err != nil {
		return err
	}

	if len(cartIDs) == 0 {
		w.reply(ctx, userID, textCartEmpty, nil)
		return nil
	}

	products, err := w.catalog.List(ctx)
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString(textCartHeader)

	var total int64
	for _, id := range cartIDs {
		p, ok := products[id]
		if !ok {
			// Висячая ссылка: товар удалили после добавления в корзину.
			sb.WriteString(fmt.Sprintf(textCartUnknownLine, id))
			continue
		}

		sb.WriteString(fmt.Sprintf(textCartLine, p.Name, p.Price))
		total += p.Price
	}
	sb.WriteString(fmt.Sprintf(textCartTotal, total))

	w.reply(ctx, userID, sb.String(), cartKeyboard(len(cartIDs)))
	return nil
}

func (w *Workflow) clearCart(ctx context.Context, upd *Update) error {
	if err := w.carts.Clear(ctx, upd.UserID); err != nil {
		return err
	}

	w.edit(ctx, upd.UserID, upd.MessageID, textCartCleared, nil)
	return nil
}

// --- Вспомогательное ---

func (w *Workflow) isAdmin(userID int64) bool {
	_, ok := w.admins[userID]
	return ok
}

// reply отправляет сообщение, изолируя ошибку доставки: сбой одной отправки
// логируется и не прерывает обработку.
func (w *Workflow) reply(ctx context.Context, chatID int64, text string, kb *Keyboard) {
	if err := w.transport.SendMessage(ctx, chatID, text, kb); err != nil {
		w.logger.Warnf("send to %d failed: %v", chatID, err)
	}
}

func (w *Workflow) edit(ctx context.Context, chatID, messageID int64, text string, kb *Keyboard) {
	if err := w.transport.EditMessageText(ctx, chatID, messageID, text, kb); err != nil {
		w.logger.Warnf("edit message %d in chat %d failed: %v", messageID, chatID, err)
	}
}

// sortedAdminIDs нужен для детерминированного порядка рассылки операторам.
func (w *Workflow) sortedAdminIDs() []int64 {
	ids := make([]int64, 0, len(w.admins))
	for id := range w.admins {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
