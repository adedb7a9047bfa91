package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestAdminPanelDeniedForRegularUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []int64{99})

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuAdmin)))

	last := env.transport.lastMessageTo(t, 10)
	assert.Equal(t, textNotAdmin, last.text)
}

func TestAdminCommandsSilentlyIgnoredForRegularUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []int64{99})

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuAddProduct)))
	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuBroadcast)))

	assert.Empty(t, env.transport.messagesTo(10))

	stage, err := env.sessions.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestAddProductFullFlow(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(admin, MenuAddProduct)))
	require.NoError(t, env.wf.HandleUpdate(ctx, &Update{UserID: admin, Kind: UpdatePhoto, FileID: "photo-1"}))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "Ikigai")))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "Psixologiya")))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "45000")))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "Uzoq umr sirlari")))

	product, err := env.catalog.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Ikigai", product.Name)
	assert.Equal(t, "Psixologiya", product.Category)
	assert.Equal(t, int64(45000), product.Price)
	assert.Equal(t, "Uzoq umr sirlari", product.Description)
	assert.Equal(t, "photo-1", product.Image)

	last := env.transport.lastMessageTo(t, admin)
	assert.Contains(t, last.text, "Ikigai")

	stage, err := env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestAddProductRejectsNonNumericPrice(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(admin, MenuAddProduct)))
	require.NoError(t, env.wf.HandleUpdate(ctx, &Update{UserID: admin, Kind: UpdatePhoto, FileID: "photo-1"}))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "Ikigai")))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "Psixologiya")))

	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "qimmat")))

	last := env.transport.lastMessageTo(t, admin)
	assert.Equal(t, textOnlyDigits, last.text)

	// Этап не сдвинулся: корректная цена принимается со второй попытки.
	stage, err := env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	_, ok := stage.(domain.AddProductPrice)
	assert.True(t, ok)

	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "45000")))

	stage, err = env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	_, ok = stage.(domain.AddProductDescription)
	assert.True(t, ok)
}

func TestAddProductPhotoStageIgnoresText(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(admin, MenuAddProduct)))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "bu rasm emas")))

	stage, err := env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	_, ok := stage.(domain.AddProductPhoto)
	assert.True(t, ok)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul")

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(admin, MenuDeleteProduct)))

	list := env.transport.lastMessageTo(t, admin)
	require.NotNil(t, list.kb)
	assert.Equal(t, "del_1", list.kb.Rows[0][0].Callback)

	require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(admin, "del_1")))

	_, err := env.catalog.Get(ctx, 1)
	require.Error(t, err)

	require.NotEmpty(t, env.transport.edits)
	assert.Equal(t, textProductDeleted, env.transport.edits[len(env.transport.edits)-1].text)
}

func TestDeleteAlreadyMissingProduct(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})

	require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(admin, "del_5")))

	require.NotEmpty(t, env.transport.edits)
	assert.Equal(t, textProductMissing, env.transport.edits[len(env.transport.edits)-1].text)
}

func TestEditProductPrice(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul")

	require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(admin, "edit_1")))
	require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(admin, "edit_field_1_price")))

	// Нечисловая цена не принимается, этап остаётся.
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "juda qimmat")))
	last := env.transport.lastMessageTo(t, admin)
	assert.Equal(t, textDigitsPlease, last.text)

	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "77000")))

	product, err := env.catalog.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(77000), product.Price)

	stage, err := env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestEditProductImageRequiresPhoto(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul")

	require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(admin, "edit_field_1_image")))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "rasm matn emas")))

	last := env.transport.lastMessageTo(t, admin)
	assert.Equal(t, textSendPhotoPlease, last.text)

	require.NoError(t, env.wf.HandleUpdate(ctx, &Update{UserID: admin, Kind: UpdatePhoto, FileID: "new-photo"}))

	product, err := env.catalog.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "new-photo", product.Image)
}

func TestEditDeletedProductFails(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul")

	require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(admin, "edit_field_1_name")))

	_, err := env.catalog.Delete(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(admin, "Yangi nom")))

	last := env.transport.lastMessageTo(t, admin)
	assert.Equal(t, textEditFailed, last.text)

	stage, err := env.sessions.Get(ctx, admin)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestStatsDocumentSent(t *testing.T) {
	ctx := context.Background()
	admin := int64(99)
	env := newTestEnv(t, []int64{admin})
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul")

	require.NoError(t, env.analytics.LogSearch(ctx, "sarmoyachi"))
	require.NoError(t, env.analytics.LogOrder(ctx, []int64{1}))

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(admin, MenuStats)))

	require.Len(t, env.transport.docs, 1)
	doc := env.transport.docs[0]
	assert.Equal(t, "statistika.xlsx", doc.Name)

	book, err := excelize.OpenReader(bytes.NewReader(doc.Data))
	require.NoError(t, err)
	defer book.Close()

	name, err := book.GetCellValue("Top Kitoblar", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Sarmoyachi", name)

	query, err := book.GetCellValue("Qidiruvlar", "A2")
	require.NoError(t, err)
	assert.Equal(t, "sarmoyachi", query)
}
