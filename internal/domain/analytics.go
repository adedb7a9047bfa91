package domain

// TimeLayout — формат меток времени в журнале аналитики.
const TimeLayout = "2006-01-02 15:04:05"

// SearchEvent — один поисковый запрос.
type SearchEvent struct {
	Query     string `json:"query"`
	Timestamp string `json:"timestamp"`
}

// OrderEvent — одна позиция оформленного заказа.
type OrderEvent struct {
	ProductID int64  `json:"product_id"`
	Timestamp string `json:"timestamp"`
}

// AnalyticsLog — содержимое журнала аналитики целиком.
// Записи только добавляются и никогда не изменяются.
type AnalyticsLog struct {
	Searches []SearchEvent `json:"searches"`
	Orders   []OrderEvent  `json:"orders"`
}
