package http

import (
	"encoding/json"
	"net/http"

	"github.com/niholbooks/shop-bot/internal/usecase"
	"github.com/niholbooks/shop-bot/pkg/logger"
)

type UpdateHandler struct {
	workflow *usecase.Workflow
	logger   logger.Logger
}

func NewUpdateHandler(workflow *usecase.Workflow, logger logger.Logger) *UpdateHandler {
	return &UpdateHandler{workflow: workflow, logger: logger}
}

// updateRequest — входящее событие от чат-шлюза, уже классифицированное
// им по виду. Поля нагрузки заполняются в зависимости от kind.
type updateRequest struct {
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FullName  string `json:"full_name"`
	MessageID int64  `json:"message_id"`
	Kind      string `json:"kind"`
	Menu      string `json:"menu,omitempty"`
	Text      string `json:"text,omitempty"`
	Callback  string `json:"callback,omitempty"`
	FileID    string `json:"file_id,omitempty"`
}

// handleUpdate принимает событие и прогоняет его через конечный автомат.
// Ответ пользователю уходит через исходящую сторону шлюза, поэтому
// телу ответа webhooks достаточно кода приёма.
func (h *UpdateHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	const maxBodySize = 1 << 20

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d bad update payload: %s", http.StatusBadRequest, err.Error())
		WriteSuccess(w, http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "invalid payload"))
		return
	}

	if req.UserID == 0 || req.Kind == "" {
		h.logger.Warnf("%d update without user_id or kind", http.StatusBadRequest)
		WriteSuccess(w, http.StatusBadRequest, NewErrorResponse(http.StatusBadRequest, "user_id and kind are required"))
		return
	}

	upd := &usecase.Update{
		UserID:    req.UserID,
		Username:  req.Username,
		FullName:  req.FullName,
		MessageID: req.MessageID,
		Kind:      usecase.UpdateKind(req.Kind),
		Menu:      usecase.MenuItem(req.Menu),
		Text:      req.Text,
		Callback:  req.Callback,
		FileID:    req.FileID,
	}

	if err := h.workflow.HandleUpdate(r.Context(), upd); err != nil {
		h.logger.Warnf("update from user %d failed: %s", req.UserID, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusAccepted, map[string]interface{}{
		"Accepted": true,
	})
}
