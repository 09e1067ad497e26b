package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type GradeLevelHandler struct{}

func NewGradeLevelHandler() *GradeLevelHandler { return &GradeLevelHandler{} }

type gradeLevelPayload struct {
	Name  string `json:"name" validate:"required,max=40"`
	Level int    `json:"level" validate:"required,min=1"`
}

// GET /admin/grade-levels
func (h *GradeLevelHandler) List(c echo.Context) error {
	var items []models.GradeLevel
	if err := database.DB.Order("level ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/grade-levels
func (h *GradeLevelHandler) Create(c echo.Context) error {
	var p gradeLevelPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := c.Validate(&p); err != nil {
		return err
	}
	g := models.GradeLevel{Name: p.Name, Level: p.Level}
	if err := database.DB.Create(&g).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, g)
}

// PUT /admin/grade-levels/:id
func (h *GradeLevelHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.GradeLevel
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p gradeLevelPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := c.Validate(&p); err != nil {
		return err
	}
	existing.Name = p.Name
	existing.Level = p.Level
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/grade-levels/:id
func (h *GradeLevelHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var n int64
	if err := database.DB.Model(&models.ClassRoom{}).Where("grade_level_id = ?", id).Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "GRADE_LEVEL_IN_USE"})
	}
	tx := database.DB.Delete(&models.GradeLevel{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
