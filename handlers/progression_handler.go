package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
	"github.com/AlexSaifo/school-management-system-sub002/progression"
)

type ProgressionHandler struct {
	svc *progression.Service
}

func NewProgressionHandler(svc *progression.Service) *ProgressionHandler {
	return &ProgressionHandler{svc: svc}
}

type progressionBatchPayload struct {
	Items []progression.Request `json:"items"`
}

// POST /admin/progressions - run a batch. A structurally invalid batch is
// rejected as a whole; otherwise every item gets its own result and a single
// bad student never blocks the rest.
func (h *ProgressionHandler) Run(c echo.Context) error {
	var p progressionBatchPayload
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	result, err := h.svc.Run(c.Request().Context(), p.Items, currentUserID(c))
	if err != nil {
		var verr *progression.ValidationError
		if errors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"error":  "VALIDATION_ERROR",
				"fields": verr.Fields,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "PROGRESSION_FAILED"})
	}

	h.notifyOperator(c, result)

	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"batch_id": result.BatchID,
		"results":  result.Results,
		"message":  result.Message,
	})
}

// notifyOperator leaves a portal notification summarizing the run. Best
// effort: a notification failure must not fail the batch response.
func (h *ProgressionHandler) notifyOperator(c echo.Context, result *progression.BatchResult) {
	operatorID := currentUserID(c)
	if operatorID == 0 {
		return
	}
	n := models.Notification{
		UserID: operatorID,
		Title:  "Progression batch finished",
		Body:   fmt.Sprintf("%s (batch %s)", result.Message, result.BatchID),
	}
	if err := database.DB.Create(&n).Error; err != nil {
		c.Logger().Warnf("progression: notify operator failed: %v", err)
		return
	}
	bumpUnreadCount(c.Request().Context(), operatorID)
}

// GET /admin/progressions - audit listing, filterable by student, batch and
// target year.
func (h *ProgressionHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	tx := database.DB.Model(&models.ProgressionRecord{})
	if v := atoiOr(c.QueryParam("student_id"), 0); v > 0 {
		tx = tx.Where("student_id = ?", v)
	}
	if b := strings.TrimSpace(c.QueryParam("batch_id")); b != "" {
		tx = tx.Where("batch_id = ?", b)
	}
	if v := atoiOr(c.QueryParam("to_academic_year_id"), 0); v > 0 {
		tx = tx.Where("to_academic_year_id = ?", v)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.ProgressionRecord
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "page": page, "size": size, "total": total})
}
