package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type SubjectHandler struct{}

func NewSubjectHandler() *SubjectHandler { return &SubjectHandler{} }

type subjectPayload struct {
	Code         string `json:"code" validate:"required,max=20"`
	Name         string `json:"name" validate:"required,max=80"`
	GradeLevelID uint   `json:"grade_level_id" validate:"required"`
}

// GET /admin/subjects
func (h *SubjectHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Subject{})
	if v := atoiOr(c.QueryParam("grade_level_id"), 0); v > 0 {
		tx = tx.Where("grade_level_id = ?", v)
	}
	var items []models.Subject
	if err := tx.Order("code ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/subjects
func (h *SubjectHandler) Create(c echo.Context) error {
	var p subjectPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	if err := c.Validate(&p); err != nil {
		return err
	}
	var g models.GradeLevel
	if err := database.DB.First(&g, "id = ?", p.GradeLevelID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"grade_level_id": "grade level does not exist"},
		})
	}
	s := models.Subject{Code: p.Code, Name: p.Name, GradeLevelID: p.GradeLevelID}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /admin/subjects/:id
func (h *SubjectHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.Subject
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p subjectPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	if err := c.Validate(&p); err != nil {
		return err
	}
	existing.Code = p.Code
	existing.Name = p.Name
	existing.GradeLevelID = p.GradeLevelID
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/subjects/:id
func (h *SubjectHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Subject{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
