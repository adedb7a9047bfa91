package domain

import (
	"strconv"

	"github.com/niholbooks/shop-bot/pkg/e"
)

// DefaultCategory — категория, в которую попадают товары без явной категории.
const DefaultCategory = "Boshqa"

// Product описывает товар каталога.
// Image хранит ссылку на обложку: URL, локальный путь или file id чат-шлюза.
type Product struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"` // Цена в сумах, без дробной части
	Description string `json:"description"`
	Image       string `json:"image"`
}

func NewProduct(name, category string, price int64, description, image string) *Product {
	if category == "" {
		category = DefaultCategory
	}

	return &Product{
		Name:        name,
		Category:    category,
		Price:       price,
		Description: description,
		Image:       image,
	}
}

// CategoryOrDefault возвращает категорию товара либо категорию по умолчанию.
func (p *Product) CategoryOrDefault() string {
	if p.Category == "" {
		return DefaultCategory
	}
	return p.Category
}

// ParsePrice разбирает цену из пользовательского ввода.
// Допускаются только целые положительные числа — как в потоке добавления товара.
func ParsePrice(s string) (int64, error) {
	price, err := strconv.ParseInt(s, 10, 64)
	if err != nil || price <= 0 {
		return 0, e.ErrInvalidPrice
	}
	return price, nil
}
