package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler { return &NotificationHandler{} }

const unreadCountTTL = 5 * time.Minute

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notif:unread:%d", userID)
}

// bumpUnreadCount invalidates the cached counter after a new notification.
// No-op without redis.
func bumpUnreadCount(ctx context.Context, userID uint) {
	if database.Redis == nil {
		return
	}
	database.Redis.Del(ctx, unreadCountKey(userID))
}

// GET /notifications
func (h *NotificationHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	tx := database.DB.Model(&models.Notification{}).Where("user_id = ?", currentUserID(c))
	if c.QueryParam("unread") == "true" {
		tx = tx.Where("read_at IS NULL")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Notification
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "page": page, "size": size, "total": total})
}

// GET /notifications/unread-count - cache-aside on redis; the database stays
// the source of truth and the endpoint works without redis.
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	userID := currentUserID(c)
	ctx := c.Request().Context()

	if database.Redis != nil {
		if n, err := database.Redis.Get(ctx, unreadCountKey(userID)).Int64(); err == nil {
			return c.JSON(http.StatusOK, map[string]any{"count": n})
		}
	}

	var n int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if database.Redis != nil {
		database.Redis.Set(ctx, unreadCountKey(userID), n, unreadCountTTL)
	}
	return c.JSON(http.StatusOK, map[string]any{"count": n})
}

// POST /notifications/:id/read
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var n models.Notification
	if err := database.DB.First(&n, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if n.UserID != currentUserID(c) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
	}
	if n.ReadAt == nil {
		now := time.Now().UTC()
		if err := database.DB.Model(&n).Update("read_at", &now).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
		}
		bumpUnreadCount(c.Request().Context(), n.UserID)
	}
	return c.NoContent(http.StatusNoContent)
}
