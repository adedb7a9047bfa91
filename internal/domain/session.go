package domain

// Stage — состояние диалога пользователя.
// Каждый этап — отдельный тип, несущий только валидные для него поля;
// отсутствие записи в хранилище сессий означает Idle.
type Stage interface {
	Kind() StageKind
}

// StageKind — тег варианта этапа, используется при сериализации сессий.
type StageKind string

const (
	KindSearchWait            StageKind = "search_wait"
	KindFeedbackWait          StageKind = "feedback_wait"
	KindCheckoutPhone         StageKind = "checkout_phone"
	KindCheckoutAddress       StageKind = "checkout_address"
	KindCheckoutShipping      StageKind = "checkout_shipping"
	KindCheckoutReceipt       StageKind = "checkout_receipt"
	KindAddProductPhoto       StageKind = "add_photo"
	KindAddProductName        StageKind = "add_name"
	KindAddProductCategory    StageKind = "add_category"
	KindAddProductPrice       StageKind = "add_price"
	KindAddProductDescription StageKind = "add_description"
	KindEditAwaitingValue     StageKind = "edit_value"
	KindBroadcastWait         StageKind = "broadcast_wait"
)

// SearchWait — ожидание поискового запроса.
type SearchWait struct{}

// FeedbackWait — ожидание текста или медиа с отзывом.
type FeedbackWait struct{}

// CheckoutPhone — ожидание телефона покупателя.
type CheckoutPhone struct{}

// CheckoutAddress — ожидание адреса; телефон уже собран.
type CheckoutAddress struct {
	Phone string `json:"phone"`
}

// CheckoutShipping — ожидание выбора доставки.
type CheckoutShipping struct {
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutReceipt — ожидание чека об оплате созданного заказа.
type CheckoutReceipt struct {
	OrderID string `json:"order_id"`
}

// AddProductPhoto — оператор начал добавление товара, ждём фото.
type AddProductPhoto struct{}

// AddProductName — фото получено, ждём название.
type AddProductName struct {
	Photo string `json:"photo"`
}

// AddProductCategory — ждём категорию.
type AddProductCategory struct {
	Photo string `json:"photo"`
	Name  string `json:"name"`
}

// AddProductPrice — ждём цену.
type AddProductPrice struct {
	Photo    string `json:"photo"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// AddProductDescription — ждём описание, после чего товар сохраняется.
type AddProductDescription struct {
	Photo    string `json:"photo"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    int64  `json:"price"`
}

// EditAwaitingValue — оператор выбрал товар и поле, ждём новое значение.
type EditAwaitingValue struct {
	ProductID int64     `json:"product_id"`
	Field     EditField `json:"field"`
}

// BroadcastWait — оператор готовит рассылку, ждём сообщение.
type BroadcastWait struct{}

func (SearchWait) Kind() StageKind            { return KindSearchWait }
func (FeedbackWait) Kind() StageKind          { return KindFeedbackWait }
func (CheckoutPhone) Kind() StageKind         { return KindCheckoutPhone }
func (CheckoutAddress) Kind() StageKind       { return KindCheckoutAddress }
func (CheckoutShipping) Kind() StageKind      { return KindCheckoutShipping }
func (CheckoutReceipt) Kind() StageKind       { return KindCheckoutReceipt }
func (AddProductPhoto) Kind() StageKind       { return KindAddProductPhoto }
func (AddProductName) Kind() StageKind        { return KindAddProductName }
func (AddProductCategory) Kind() StageKind    { return KindAddProductCategory }
func (AddProductPrice) Kind() StageKind       { return KindAddProductPrice }
func (AddProductDescription) Kind() StageKind { return KindAddProductDescription }
func (EditAwaitingValue) Kind() StageKind     { return KindEditAwaitingValue }
func (BroadcastWait) Kind() StageKind         { return KindBroadcastWait }
