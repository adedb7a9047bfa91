package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/niholbooks/shop-bot/internal/domain"
	"github.com/niholbooks/shop-bot/internal/repository/jsonstore"
	"github.com/niholbooks/shop-bot/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)        {}
func (nopLogger) Infof(string, ...any)         {}
func (nopLogger) Warnf(string, ...any)         {}
func (nopLogger) Errorf(error, string, ...any) {}

type sentMessage struct {
	chatID int64
	text   string
	kb     *Keyboard
}

type copiedMessage struct {
	to, from, messageID int64
}

// fakeTransport записывает все исходящие отправки и умеет имитировать
// отказ доставки отдельным получателям.
type fakeTransport struct {
	mu       sync.Mutex
	messages []sentMessage
	photos   []sentMessage
	docs     []*Document
	copies   []copiedMessage
	edits    []sentMessage
	failFor  map[int64]bool
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{failFor: make(map[int64]bool)}
}

func (f *fakeTransport) SendMessage(_ context.Context, chatID int64, text string, kb *Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	f.messages = append(f.messages, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (f *fakeTransport) SendPhoto(_ context.Context, chatID int64, image, caption string, kb *Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	f.photos = append(f.photos, sentMessage{chatID: chatID, text: caption, kb: kb})
	return nil
}

func (f *fakeTransport) SendDocument(_ context.Context, chatID int64, doc *Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[chatID] {
		return fmt.Errorf("chat %d unreachable", chatID)
	}
	f.docs = append(f.docs, doc)
	return nil
}

func (f *fakeTransport) CopyMessage(_ context.Context, toChatID, fromChatID, messageID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[toChatID] {
		return fmt.Errorf("chat %d unreachable", toChatID)
	}
	f.copies = append(f.copies, copiedMessage{to: toChatID, from: fromChatID, messageID: messageID})
	return nil
}

func (f *fakeTransport) EditMessageText(_ context.Context, chatID, messageID int64, text string, kb *Keyboard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits = append(f.edits, sentMessage{chatID: chatID, text: text, kb: kb})
	return nil
}

func (f *fakeTransport) Download(context.Context, string) ([]byte, string, error) {
	return []byte("receipt-bytes"), "image/jpeg", nil
}

func (f *fakeTransport) messagesTo(chatID int64) []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []sentMessage
	for _, m := range f.messages {
		if m.chatID == chatID {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeTransport) lastMessageTo(t *testing.T, chatID int64) sentMessage {
	t.Helper()

	msgs := f.messagesTo(chatID)
	require.NotEmpty(t, msgs, "no messages sent to chat %d", chatID)
	return msgs[len(msgs)-1]
}

type testEnv struct {
	wf        *Workflow
	transport *fakeTransport
	catalog   CatalogRepository
	carts     CartRepository
	sessions  SessionRepository
	analytics *Analytics
}

func newTestEnv(t *testing.T, adminIDs []int64) *testEnv {
	t.Helper()

	dir := t.TempDir()
	log := nopLogger{}

	catalog := jsonstore.NewCatalogStore(dir, log)
	carts := jsonstore.NewCartStore(dir, log)
	users := jsonstore.NewUserStore(dir, log)
	analytics := NewAnalytics(jsonstore.NewAnalyticsStore(dir, log), nil, log)

	sessions := memory.NewSessionStore(0)
	t.Cleanup(sessions.Close)

	transport := newFakeTransport()
	wf := NewWorkflow(catalog, carts, users, analytics, sessions, transport, nil, adminIDs, log)

	return &testEnv{
		wf:        wf,
		transport: transport,
		catalog:   catalog,
		carts:     carts,
		sessions:  sessions,
		analytics: analytics,
	}
}

func (env *testEnv) seedProduct(t *testing.T, id int64, name, category string, price int64, description string) {
	t.Helper()

	p := domain.NewProduct(name, category, price, description, "photo_"+name)
	require.NoError(t, env.catalog.Save(context.Background(), id, p))
}

func menuUpdate(userID int64, item MenuItem) *Update {
	return &Update{UserID: userID, Kind: UpdateMenu, Menu: item}
}

func textUpdate(userID int64, text string) *Update {
	return &Update{UserID: userID, Kind: UpdateText, Text: text}
}

func callbackUpdate(userID int64, callback string) *Update {
	return &Update{UserID: userID, Kind: UpdateCallback, Callback: callback}
}

func TestStartRegistersAndGreets(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, []int64{99})

	upd := &Update{UserID: 10, Kind: UpdateStart, FullName: "Ali"}
	require.NoError(t, env.wf.HandleUpdate(ctx, upd))

	msgs := env.transport.messagesTo(10)
	require.NotEmpty(t, msgs)
	assert.Contains(t, msgs[0].text, "Ali")
	require.NotNil(t, msgs[0].kb)
	assert.True(t, msgs[0].kb.Reply)
}

func TestStartWarnsWhenNoAdminsConfigured(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	require.NoError(t, env.wf.HandleUpdate(ctx, &Update{UserID: 10, Kind: UpdateStart, FullName: "Ali"}))

	last := env.transport.lastMessageTo(t, 10)
	assert.Contains(t, last.text, "10")
	assert.Contains(t, last.text, "Admin ID")
}

func TestSearchFindsByNameSubstring(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul haqida")
	env.seedProduct(t, 2, "Atomic Habits", "Psixologiya", 40000, "odatlar haqida")

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuSearch)))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(10, "sarm")))

	last := env.transport.lastMessageTo(t, 10)
	assert.Contains(t, last.text, "1 ta")
	require.NotNil(t, last.kb)
	assert.Contains(t, last.kb.Rows[0][0].Text, "Sarmoyachi")

	// Поиск одноразовый: этап сброшен, следующий текст игнорируется.
	stage, err := env.sessions.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestSearchMatchesDescriptionCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "Pul va boylik haqida")

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuSearch)))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(10, "BOYLIK")))

	last := env.transport.lastMessageTo(t, 10)
	assert.Contains(t, last.text, "1 ta")
}

func TestSearchEmptyResult(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul")

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuSearch)))
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(10, "mavjud emas")))

	last := env.transport.lastMessageTo(t, 10)
	assert.Contains(t, last.text, "topilmadi")
}

type failingCatalog struct {
	CatalogRepository
}

func (failingCatalog) List(context.Context) (map[int64]domain.Product, error) {
	return nil, errors.New("catalog unavailable")
}

func TestSearchDropsStageWhenCatalogFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	log := nopLogger{}
	users := jsonstore.NewUserStore(t.TempDir(), log)

	wf := NewWorkflow(failingCatalog{env.catalog}, env.carts, users,
		env.analytics, env.sessions, env.transport, nil, nil, log)

	require.NoError(t, env.sessions.Set(ctx, 10, domain.SearchWait{}))
	require.Error(t, wf.HandleUpdate(ctx, textUpdate(10, "sarm")))

	// Текст выводит из режима поиска даже при недоступном каталоге.
	stage, err := env.sessions.Get(ctx, 10)
	require.NoError(t, err)
	assert.Nil(t, stage)
}

func TestIdleTextIsIgnored(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(10, "shunchaki matn")))

	assert.Empty(t, env.transport.messagesTo(10))
}

func TestCartTotalSumsItemPrices(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.seedProduct(t, 1, "Birinchi", "Badiiy", 50000, "a")
	env.seedProduct(t, 2, "Ikkinchi", "Badiiy", 30000, "b")
	env.seedProduct(t, 3, "Uchinchi", "Badiiy", 15000, "c")

	for id := int64(1); id <= 3; id++ {
		require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(10, fmt.Sprintf("add_cart_%d", id))))
	}

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuCart)))

	last := env.transport.lastMessageTo(t, 10)
	assert.Contains(t, last.text, "Jami: 95000 so'm")
}

func TestCartShowsDanglingProductLine(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.seedProduct(t, 1, "Birinchi", "Badiiy", 50000, "a")

	require.NoError(t, env.wf.HandleUpdate(ctx, callbackUpdate(10, "add_cart_1")))

	_, err := env.catalog.Delete(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuCart)))

	last := env.transport.lastMessageTo(t, 10)
	assert.Contains(t, last.text, "Noma'lum mahsulot (1)")
	assert.Contains(t, last.text, "Jami: 0 so'm")
}

func TestUnknownCallbackReturnsError(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)

	err := env.wf.HandleUpdate(ctx, callbackUpdate(10, "nonsense_payload"))
	require.Error(t, err)
}

func TestMenuDoesNotClearActiveStage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, nil)
	env.seedProduct(t, 1, "Sarmoyachi", "Biznes", 50000, "pul")

	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuSearch)))
	require.NoError(t, env.wf.HandleUpdate(ctx, menuUpdate(10, MenuContact)))

	// Пункт меню без собственного этапа не сбрасывает ожидание поиска.
	require.NoError(t, env.wf.HandleUpdate(ctx, textUpdate(10, "sarm")))

	last := env.transport.lastMessageTo(t, 10)
	assert.Contains(t, last.text, "1 ta")
}
