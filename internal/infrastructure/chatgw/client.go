package chatgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/jimlawless/whereami"
	"github.com/niholbooks/shop-bot/internal/cfg"
	"github.com/niholbooks/shop-bot/internal/usecase"
	"github.com/niholbooks/shop-bot/pkg/e"
)

// Client — HTTP-клиент исходящей стороны чат-шлюза.
// Шлюз сам знает, в какой мессенджер доставлять: клиент оперирует
// только chat id, текстами и семантическими раскладками кнопок.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(gwCfg *cfg.GatewayCfg, botCfg *cfg.BotCfg) *Client {
	return &Client{
		baseURL:    gwCfg.URL,
		token:      botCfg.Token,
		httpClient: &http.Client{Timeout: gwCfg.Timeout},
	}
}

type sendMessageReq struct {
	ChatID   int64             `json:"chat_id"`
	Text     string            `json:"text"`
	Keyboard *usecase.Keyboard `json:"keyboard,omitempty"`
}

type sendPhotoReq struct {
	ChatID   int64             `json:"chat_id"`
	Image    string            `json:"image"`
	Caption  string            `json:"caption"`
	Keyboard *usecase.Keyboard `json:"keyboard,omitempty"`
}

type copyMessageReq struct {
	ToChatID   int64 `json:"to_chat_id"`
	FromChatID int64 `json:"from_chat_id"`
	MessageID  int64 `json:"message_id"`
}

type editMessageReq struct {
	ChatID    int64             `json:"chat_id"`
	MessageID int64             `json:"message_id"`
	Text      string            `json:"text"`
	Keyboard  *usecase.Keyboard `json:"keyboard,omitempty"`
}

func (c *Client) SendMessage(ctx context.Context, chatID int64, text string, kb *usecase.Keyboard) error {
	return c.post(ctx, "/sendMessage", sendMessageReq{
		ChatID:   chatID,
		Text:     text,
		Keyboard: kb,
	})
}

func (c *Client) SendPhoto(ctx context.Context, chatID int64, image, caption string, kb *usecase.Keyboard) error {
	return c.post(ctx, "/sendPhoto", sendPhotoReq{
		ChatID:   chatID,
		Image:    image,
		Caption:  caption,
		Keyboard: kb,
	})
}

func (c *Client) CopyMessage(ctx context.Context, toChatID, fromChatID, messageID int64) error {
	return c.post(ctx, "/copyMessage", copyMessageReq{
		ToChatID:   toChatID,
		FromChatID: fromChatID,
		MessageID:  messageID,
	})
}

func (c *Client) EditMessageText(ctx context.Context, chatID, messageID int64, text string, kb *usecase.Keyboard) error {
	return c.post(ctx, "/editMessageText", editMessageReq{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		Keyboard:  kb,
	})
}

// SendDocument отправляет файл multipart-запросом: тело документа
// не влезает в JSON без base64-раздувания.
func (c *Client) SendDocument(ctx context.Context, chatID int64, doc *usecase.Document) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	if err := mw.WriteField("chat_id", fmt.Sprintf("%d", chatID)); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if err := mw.WriteField("caption", doc.Caption); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	fw, err := mw.CreateFormFile("document", doc.Name)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if _, err := fw.Write(doc.Data); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := mw.Close(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sendDocument", &body)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.do(req)
}

// Download забирает байты медиа по file id шлюза.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/files/"+fileID, nil)
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", e.Wrap(whereami.WhereAmI(), fmt.Errorf("gateway returned %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", e.Wrap(whereami.WhereAmI(), err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return e.Wrap(whereami.WhereAmI(), fmt.Errorf("gateway returned %s: %s", resp.Status, respBody))
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
