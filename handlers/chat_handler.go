package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

// ChatHandler is store-and-poll messaging between portal users. Delivery is
// whatever the client's next poll picks up; there is no push channel.
type ChatHandler struct{}

func NewChatHandler() *ChatHandler { return &ChatHandler{} }

type chatSendPayload struct {
	RecipientID uint   `json:"recipient_id" validate:"required"`
	Body        string `json:"body" validate:"required,max=4000"`
}

// POST /chat/messages
func (h *ChatHandler) Send(c echo.Context) error {
	var p chatSendPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Body = strings.TrimSpace(p.Body)
	if err := c.Validate(&p); err != nil {
		return err
	}

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", p.RecipientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "RECIPIENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	msg := models.ChatMessage{
		PublicID:    uuid.NewString(),
		SenderID:    currentUserID(c),
		RecipientID: p.RecipientID,
		Body:        p.Body,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, msg)
}

// GET /chat/messages?with=<user_id> - both directions of one conversation,
// oldest first.
func (h *ChatHandler) Conversation(c echo.Context) error {
	other := atoiOr(c.QueryParam("with"), 0)
	if other <= 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_WITH_PARAM"})
	}
	me := currentUserID(c)

	var msgs []models.ChatMessage
	err := database.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			me, other, other, me).
		Order("id ASC").
		Limit(200).
		Find(&msgs).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": msgs})
}

// POST /chat/messages/:public_id/read - only the recipient may mark a
// message read.
func (h *ChatHandler) MarkRead(c echo.Context) error {
	publicID := strings.TrimSpace(c.Param("public_id"))
	if publicID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var msg models.ChatMessage
	if err := database.DB.First(&msg, "public_id = ?", publicID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if msg.RecipientID != currentUserID(c) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
	}
	if msg.ReadAt == nil {
		now := time.Now().UTC()
		if err := database.DB.Model(&msg).Update("read_at", &now).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
