package usecase

import (
	"fmt"
	"sort"

	"github.com/niholbooks/shop-bot/internal/domain"
)

// Префиксы callback-нагрузок. Формат исторический, его понимает и шлюз.
const (
	cbCategory   = "cat_"
	cbBackToCats = "back_to_cats"
	cbProduct    = "prod_"
	cbBackToList = "back_to_list"
	cbAddToCart  = "add_cart_"
	cbClearCart  = "clear_cart"
	cbBuyNow     = "buy_"
	cbCheckout   = "checkout"
	cbShipping   = "ship_"
	cbStatus     = "status_"
	cbDelete     = "del_"
	cbEdit       = "edit_"
	cbEditField  = "edit_field_"
)

// mainMenuKeyboard — постоянное меню покупателя.
func mainMenuKeyboard() *Keyboard {
	return &Keyboard{
		Reply: true,
		Rows: [][]Button{
			newRow(Button{Text: "📚 Kitoblar"}, Button{Text: "🔍 Qidirish"}),
			newRow(Button{Text: "🛒 Savat"}, Button{Text: "✍️ Fikr qoldirish"}),
			newRow(Button{Text: "📞 Biz bilan aloqa"}, Button{Text: "📢 Bizning Kanal"}),
		},
	}
}

// adminMenuKeyboard — постоянное меню оператора.
func adminMenuKeyboard() *Keyboard {
	return &Keyboard{
		Reply: true,
		Rows: [][]Button{
			newRow(Button{Text: "➕ Yangi kitob qo'shish"}),
			newRow(Button{Text: "✏️ Tahrirlash"}, Button{Text: "❌ O'chirish"}),
			newRow(Button{Text: "📢 Reklama yuborish"}, Button{Text: "📊 Statistika"}),
		},
	}
}

func shareKeyboard() *Keyboard {
	return &Keyboard{Rows: [][]Button{
		newRow(Button{Text: "♻️ Do'stlarimga ulashish", SwitchInline: textShareInline}),
	}}
}

// categoriesKeyboard — список уникальных категорий каталога по алфавиту.
func categoriesKeyboard(products map[int64]domain.Product) *Keyboard {
	seen := make(map[string]struct{})
	for _, p := range products {
		seen[p.CategoryOrDefault()] = struct{}{}
	}

	categories := make([]string, 0, len(seen))
	for cat := range seen {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	kb := &Keyboard{}
	for _, cat := range categories {
		kb.Rows = append(kb.Rows, newRow(Button{
			Text:     "📂 " + cat,
			Callback: cbCategory + cat,
		}))
	}

	return kb
}

// productsKeyboard — кнопки товаров, по одной в строке, в порядке id.
// Непустая category оставляет только товары этой категории и добавляет кнопку возврата.
func productsKeyboard(products map[int64]domain.Product, category string) *Keyboard {
	kb := &Keyboard{}
	for _, id := range sortedIDs(products) {
		p := products[id]
		if category != "" && p.CategoryOrDefault() != category {
			continue
		}

		kb.Rows = append(kb.Rows, newRow(Button{
			Text:     fmt.Sprintf("%s - %d so'm", p.Name, p.Price),
			Callback: fmt.Sprintf("%s%d", cbProduct, id),
		}))
	}

	if category != "" {
		kb.Rows = append(kb.Rows, newRow(Button{Text: "🔙 Kategoriyalarga qaytish", Callback: cbBackToCats}))
	}

	return kb
}

func buyKeyboard(productID int64) *Keyboard {
	return &Keyboard{Rows: [][]Button{
		newRow(
			Button{Text: "🛒 Savatga qo'shish", Callback: fmt.Sprintf("%s%d", cbAddToCart, productID)},
			Button{Text: "🚀 Buyurtma berish", Callback: fmt.Sprintf("%s%d", cbBuyNow, productID)},
		),
		newRow(Button{Text: "🔙 Orqaga", Callback: cbBackToList}),
	}}
}

func cartKeyboard(itemCount int) *Keyboard {
	kb := &Keyboard{}
	if itemCount > 0 {
		kb.Rows = append(kb.Rows,
			newRow(Button{Text: "💸 Buyurtma berish", Callback: cbCheckout}),
			newRow(Button{Text: "🗑 Savatni tozalash", Callback: cbClearCart}),
		)
	}

	return kb
}

func shippingKeyboard() *Keyboard {
	kb := &Keyboard{}
	for _, opt := range domain.ShippingOptions() {
		kb.Rows = append(kb.Rows, newRow(Button{
			Text:     fmt.Sprintf("%s - %d so'm (1 kilogram uchun)", opt.Name, opt.Price),
			Callback: fmt.Sprintf("%s%s_%d", cbShipping, opt.Name, opt.Price),
		}))
	}

	return kb
}

// orderDecisionKeyboard — кнопки оператора, привязанные к покупателю и заказу.
func orderDecisionKeyboard(buyerID int64, orderID string) *Keyboard {
	return &Keyboard{Rows: [][]Button{
		newRow(
			Button{Text: "✅ Qabul qilish", Callback: fmt.Sprintf("%saccept_%d_%s", cbStatus, buyerID, orderID)},
			Button{Text: "❌ Bekor qilish", Callback: fmt.Sprintf("%sreject_%d_%s", cbStatus, buyerID, orderID)},
		),
	}}
}

// productListKeyboard — список товаров с произвольным префиксом действия (del_, edit_).
func productListKeyboard(products map[int64]domain.Product, mark, prefix string) *Keyboard {
	kb := &Keyboard{}
	for _, id := range sortedIDs(products) {
		kb.Rows = append(kb.Rows, newRow(Button{
			Text:     fmt.Sprintf("%s %s", mark, products[id].Name),
			Callback: fmt.Sprintf("%s%d", prefix, id),
		}))
	}

	return kb
}

func editFieldsKeyboard(productID int64) *Keyboard {
	kb := &Keyboard{}
	for _, field := range domain.EditFields() {
		kb.Rows = append(kb.Rows, newRow(Button{
			Text:     field.Label(),
			Callback: fmt.Sprintf("%s%d_%s", cbEditField, productID, field),
		}))
	}

	return kb
}

func sortedIDs(products map[int64]domain.Product) []int64 {
	ids := make([]int64, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
