package domain

import "github.com/niholbooks/shop-bot/pkg/e"

// EditField — закрытое перечисление редактируемых полей товара.
// Каждое значение связано с собственным валидатором и сеттером,
// поэтому невалидное имя поля непредставимо за пределами ParseEditField.
type EditField string

const (
	FieldName        EditField = "name"
	FieldCategory    EditField = "category"
	FieldPrice       EditField = "price"
	FieldDescription EditField = "description"
	FieldImage       EditField = "image"
)

// EditFields перечисляет поля в порядке показа оператору.
func EditFields() []EditField {
	return []EditField{FieldName, FieldCategory, FieldPrice, FieldDescription, FieldImage}
}

// ParseEditField возвращает поле по его строковому коду из callback-нагрузки.
func ParseEditField(s string) (EditField, bool) {
	switch EditField(s) {
	case FieldName, FieldCategory, FieldPrice, FieldDescription, FieldImage:
		return EditField(s), true
	default:
		return "", false
	}
}

// Label возвращает подпись поля для кнопки.
func (f EditField) Label() string {
	switch f {
	case FieldName:
		return "Nomi"
	case FieldCategory:
		return "Kategoriyasi"
	case FieldPrice:
		return "Narxi"
	case FieldDescription:
		return "Tavsifi"
	case FieldImage:
		return "Rasmi"
	}
	return string(f)
}

// EditInput — значение, присланное оператором для выбранного поля.
// Для FieldImage заполняется PhotoID, для остальных полей — Text.
type EditInput struct {
	Text    string
	PhotoID string
}

// Apply валидирует ввод и записывает новое значение в товар.
// Состояние товара не меняется, если ввод невалиден.
func (f EditField) Apply(p *Product, in EditInput) error {
	switch f {
	case FieldName:
		p.Name = in.Text
	case FieldCategory:
		p.Category = in.Text
	case FieldDescription:
		p.Description = in.Text
	case FieldPrice:
		price, err := ParsePrice(in.Text)
		if err != nil {
			return err
		}
		p.Price = price
	case FieldImage:
		if in.PhotoID == "" {
			return e.ErrMediaRequired
		}
		p.Image = in.PhotoID
	default:
		return e.ErrUnknownEditField
	}

	return nil
}
