package domain

import "github.com/google/uuid"

// ShippingOption — строка фиксированной таблицы цен доставки.
type ShippingOption struct {
	Name  string
	Price int64
}

// ShippingOptions возвращает доступные способы доставки.
// Таблица фиксированная, цена — за килограмм.
func ShippingOptions() []ShippingOption {
	return []ShippingOption{
		{Name: "Uz Pochta", Price: 15000},
		{Name: "BTS", Price: 40000},
		{Name: "Fargo", Price: 25000},
		{Name: "EMU", Price: 27000},
		{Name: "Uchar", Price: 15000},
	}
}

// OrderLine — позиция заказа на момент оформления.
// Цена фиксируется при выборе доставки, а не при добавлении в корзину.
type OrderLine struct {
	ProductID int64
	Name      string
	Price     int64
	Known     bool // false, если товар удалён из каталога после добавления в корзину
}

// Order — эфемерный снимок заказа. Живёт только как содержимое
// сообщений операторам и покупателю, в хранилищах не сохраняется.
type Order struct {
	ID       string
	BuyerID  int64
	Lines    []OrderLine
	Phone    string
	Address  string
	Shipping ShippingOption
	Total    int64 // сумма позиций + доставка
}

// NewOrderID выдает короткий идентификатор заказа.
// Уникальность — best effort: первые 8 символов UUID, коллизии допустимы.
func NewOrderID() string {
	return uuid.NewString()[:8]
}
