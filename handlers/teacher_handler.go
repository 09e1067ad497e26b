package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type TeacherHandler struct{}

func NewTeacherHandler() *TeacherHandler { return &TeacherHandler{} }

type teacherPayload struct {
	TeacherCode string `json:"teacher_code" validate:"required,max=20"`
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	Phone       string `json:"phone" validate:"omitempty,max=15"`
	UserID      *uint  `json:"user_id"`
}

func (p *teacherPayload) normalize() {
	p.TeacherCode = strings.TrimSpace(p.TeacherCode)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Phone = strings.TrimSpace(p.Phone)
}

// GET /admin/teachers
func (h *TeacherHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := database.DB.Model(&models.Teacher{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("teacher_code LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Teacher
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "page": page, "size": size, "total": total})
}

// POST /admin/teachers
func (h *TeacherHandler) Create(c echo.Context) error {
	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}
	t := models.Teacher{
		TeacherCode: p.TeacherCode,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Phone:       p.Phone,
		UserID:      p.UserID,
	}
	if err := database.DB.Create(&t).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, t)
}

// PUT /admin/teachers/:id
func (h *TeacherHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.Teacher
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}
	existing.TeacherCode = p.TeacherCode
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.Phone = p.Phone
	existing.UserID = p.UserID
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/teachers/:id
func (h *TeacherHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Teacher{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
