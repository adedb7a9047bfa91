package usecase

import "context"

// ChatTransport — исходящая сторона чат-шлюза. Все операции непрозрачны:
// ядро знает только успех или неуспех отправки.
type ChatTransport interface {
	SendMessage(ctx context.Context, chatID int64, text string, kb *Keyboard) error
	SendPhoto(ctx context.Context, chatID int64, image, caption string, kb *Keyboard) error
	SendDocument(ctx context.Context, chatID int64, doc *Document) error
	// CopyMessage пересылает исходное сообщение (текст, фото, документ) в другой чат как есть.
	CopyMessage(ctx context.Context, toChatID, fromChatID, messageID int64) error
	EditMessageText(ctx context.Context, chatID, messageID int64, text string, kb *Keyboard) error
	// Download забирает байты медиа по ссылке шлюза.
	Download(ctx context.Context, fileID string) (data []byte, mimeType string, err error)
}

// MediaArchive — долговременное хранилище присланных чеков об оплате.
type MediaArchive interface {
	ArchiveReceipt(ctx context.Context, orderID string, buyerID int64, data []byte, mimeType string) (string, error)
}

// EventProducer — необязательный поток аналитических событий во внешнюю шину.
type EventProducer interface {
	PublishSearch(ctx context.Context, query string) error
	PublishOrder(ctx context.Context, productIDs []int64) error
}
