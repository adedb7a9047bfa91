package usecase

// UpdateKind — вид входящего события от чат-шлюза.
type UpdateKind string

const (
	UpdateStart    UpdateKind = "start"    // команда /start
	UpdateMenu     UpdateKind = "menu"     // нажатие кнопки главного или админского меню
	UpdateText     UpdateKind = "text"     // свободный текст
	UpdateCallback UpdateKind = "callback" // нажатие inline-кнопки со структурированной нагрузкой
	UpdatePhoto    UpdateKind = "photo"    // фото
	UpdateDocument UpdateKind = "document" // документ
)

// MenuItem — пункт меню, уже распознанный шлюзом.
type MenuItem string

const (
	MenuBooks    MenuItem = "books"
	MenuSearch   MenuItem = "search"
	MenuCart     MenuItem = "cart"
	MenuFeedback MenuItem = "feedback"
	MenuContact  MenuItem = "contact"
	MenuChannel  MenuItem = "channel"

	// Операторские пункты
	MenuAdmin         MenuItem = "admin"
	MenuAddProduct    MenuItem = "add_product"
	MenuEditProduct   MenuItem = "edit_product"
	MenuDeleteProduct MenuItem = "delete_product"
	MenuBroadcast     MenuItem = "broadcast"
	MenuStats         MenuItem = "stats"
)

// Update — входящее действие пользователя, нормализованное шлюзом.
type Update struct {
	UserID    int64
	Username  string
	FullName  string
	MessageID int64 // id исходного сообщения; нужен для копирования и правки
	Kind      UpdateKind
	Menu      MenuItem // заполнен при Kind == UpdateMenu
	Text      string   // текст или подпись к медиа
	Callback  string   // нагрузка inline-кнопки при Kind == UpdateCallback
	FileID    string   // ссылка на медиа при Kind == UpdatePhoto/UpdateDocument
}

// Button — одна inline-кнопка. Callback несёт структурированную нагрузку,
// SwitchInline — текст для кнопки «поделиться».
type Button struct {
	Text         string
	Callback     string
	SwitchInline string
}

// Keyboard — семантическая раскладка кнопок.
// Reply == true означает постоянное меню вместо inline-кнопок;
// как именно его отрисовать — забота шлюза.
type Keyboard struct {
	Rows  [][]Button
	Reply bool
}

// Document — файл для отправки пользователю (отчёт со статистикой).
type Document struct {
	Name     string
	MimeType string
	Data     []byte
	Caption  string
}

// BroadcastResult — итог рассылки: сколько получили и сколько отвалилось.
// Delivered+Failed всегда равно размеру реестра на момент запуска.
type BroadcastResult struct {
	Delivered int
	Failed    int
}

func NewUpdate(userID int64, kind UpdateKind) *Update {
	return &Update{UserID: userID, Kind: kind}
}

func newRow(buttons ...Button) []Button {
	return buttons
}
