package domain

import (
	"errors"
	"testing"

	"github.com/niholbooks/shop-bot/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEditFieldRejectsUnknown(t *testing.T) {
	_, ok := ParseEditField("owner")
	assert.False(t, ok)

	field, ok := ParseEditField("price")
	require.True(t, ok)
	assert.Equal(t, FieldPrice, field)
}

func TestApplyPriceValidates(t *testing.T) {
	p := Product{Name: "Kitob", Price: 1000}

	err := FieldPrice.Apply(&p, EditInput{Text: "abc"})
	assert.True(t, errors.Is(err, e.ErrInvalidPrice))
	assert.Equal(t, int64(1000), p.Price, "invalid input must not change the product")

	err = FieldPrice.Apply(&p, EditInput{Text: "-5"})
	assert.True(t, errors.Is(err, e.ErrInvalidPrice))

	require.NoError(t, FieldPrice.Apply(&p, EditInput{Text: "2500"}))
	assert.Equal(t, int64(2500), p.Price)
}

func TestApplyImageRequiresPhoto(t *testing.T) {
	p := Product{Image: "old"}

	err := FieldImage.Apply(&p, EditInput{Text: "not a photo"})
	assert.True(t, errors.Is(err, e.ErrMediaRequired))
	assert.Equal(t, "old", p.Image)

	require.NoError(t, FieldImage.Apply(&p, EditInput{PhotoID: "new"}))
	assert.Equal(t, "new", p.Image)
}

func TestApplyTextFields(t *testing.T) {
	p := Product{}

	require.NoError(t, FieldName.Apply(&p, EditInput{Text: "Sarmoyachi"}))
	require.NoError(t, FieldCategory.Apply(&p, EditInput{Text: "Biznes"}))
	require.NoError(t, FieldDescription.Apply(&p, EditInput{Text: "pul haqida"}))

	assert.Equal(t, "Sarmoyachi", p.Name)
	assert.Equal(t, "Biznes", p.Category)
	assert.Equal(t, "pul haqida", p.Description)
}

func TestNewProductDefaultsCategory(t *testing.T) {
	p := NewProduct("Kitob", "", 1000, "tavsif", "img")
	assert.Equal(t, DefaultCategory, p.Category)
}

func TestNewOrderIDLength(t *testing.T) {
	id := NewOrderID()
	assert.Len(t, id, 8)
}
