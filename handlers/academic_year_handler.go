package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type AcademicYearHandler struct{}

func NewAcademicYearHandler() *AcademicYearHandler { return &AcademicYearHandler{} }

type academicYearPayload struct {
	Name      string `json:"name" validate:"required,max=20"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	IsActive  *bool  `json:"is_active"`
}

func (p *academicYearPayload) dates() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return
	}
	end, err = time.Parse("2006-01-02", p.EndDate)
	return
}

// GET /admin/academic-years
func (h *AcademicYearHandler) List(c echo.Context) error {
	var items []models.AcademicYear
	if err := database.DB.Order("start_date ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// GET /admin/academic-years/:id/next - the year a progression run out of
// :id would target, if one is configured.
func (h *AcademicYearHandler) Next(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var year models.AcademicYear
	if err := database.DB.First(&year, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	next, err := models.NextAcademicYear(database.DB, &year)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NO_NEXT_YEAR"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, next)
}

// POST /admin/academic-years
func (h *AcademicYearHandler) Create(c echo.Context) error {
	var p academicYearPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := c.Validate(&p); err != nil {
		return err
	}
	start, end, err := p.dates()
	if err != nil || !end.After(start) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"end_date": "must be after start_date"},
		})
	}

	active := false
	if p.IsActive != nil {
		active = *p.IsActive
	}
	y := models.AcademicYear{Name: p.Name, StartDate: start, EndDate: end, IsActive: active}
	if err := database.DB.Create(&y).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, y)
}

// PUT /admin/academic-years/:id
func (h *AcademicYearHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.AcademicYear
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p academicYearPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if err := c.Validate(&p); err != nil {
		return err
	}
	start, end, err := p.dates()
	if err != nil || !end.After(start) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"end_date": "must be after start_date"},
		})
	}

	existing.Name = p.Name
	existing.StartDate = start
	existing.EndDate = end
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/academic-years/:id
func (h *AcademicYearHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var n int64
	if err := database.DB.Model(&models.ClassRoom{}).Where("academic_year_id = ?", id).Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "ACADEMIC_YEAR_IN_USE"})
	}
	tx := database.DB.Delete(&models.AcademicYear{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
