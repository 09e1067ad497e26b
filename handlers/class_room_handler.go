package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type ClassRoomHandler struct{}

func NewClassRoomHandler() *ClassRoomHandler { return &ClassRoomHandler{} }

type classRoomPayload struct {
	Name           string `json:"name" validate:"required,max=40"`
	Section        string `json:"section" validate:"required,max=10"`
	GradeLevelID   uint   `json:"grade_level_id" validate:"required"`
	AcademicYearID uint   `json:"academic_year_id" validate:"required"`
	// capacity must be given explicitly; a room without a seat limit cannot
	// take part in progression
	Capacity *int  `json:"capacity" validate:"required,min=0"`
	IsActive *bool `json:"is_active"`
}

func (p *classRoomPayload) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Section = strings.TrimSpace(p.Section)
}

func (p *classRoomPayload) referencesOK() error {
	var g models.GradeLevel
	if err := database.DB.First(&g, "id = ?", p.GradeLevelID).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"grade_level_id": "grade level does not exist"},
		})
	}
	var y models.AcademicYear
	if err := database.DB.First(&y, "id = ?", p.AcademicYearID).Error; err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"academic_year_id": "academic year does not exist"},
		})
	}
	return nil
}

// GET /admin/classrooms - optional filters grade_level_id, academic_year_id;
// each row is returned with its current occupancy.
func (h *ClassRoomHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.ClassRoom{})
	if v := atoiOr(c.QueryParam("grade_level_id"), 0); v > 0 {
		tx = tx.Where("grade_level_id = ?", v)
	}
	if v := atoiOr(c.QueryParam("academic_year_id"), 0); v > 0 {
		tx = tx.Where("academic_year_id = ?", v)
	}

	var rooms []models.ClassRoom
	if err := tx.Preload("GradeLevel").Preload("AcademicYear").
		Order("id ASC").Find(&rooms).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	out := make([]map[string]any, 0, len(rooms))
	for i := range rooms {
		occ, err := rooms[i].Occupancy(database.DB)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
		}
		out = append(out, map[string]any{
			"class_room": rooms[i],
			"occupancy":  occ,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": out})
}

// GET /admin/classrooms/:id
func (h *ClassRoomHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var room models.ClassRoom
	if err := database.DB.Preload("GradeLevel").Preload("AcademicYear").
		First(&room, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	occ, err := room.Occupancy(database.DB)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"class_room": room, "occupancy": occ})
}

// POST /admin/classrooms
func (h *ClassRoomHandler) Create(c echo.Context) error {
	var p classRoomPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}
	if err := p.referencesOK(); err != nil {
		return err
	}

	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	room := models.ClassRoom{
		Name:           p.Name,
		Section:        p.Section,
		GradeLevelID:   p.GradeLevelID,
		AcademicYearID: p.AcademicYearID,
		Capacity:       p.Capacity,
		IsActive:       active,
	}
	if err := database.DB.Create(&room).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, room)
}

// PUT /admin/classrooms/:id
func (h *ClassRoomHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.ClassRoom
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p classRoomPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}
	if err := p.referencesOK(); err != nil {
		return err
	}

	existing.Name = p.Name
	existing.Section = p.Section
	existing.GradeLevelID = p.GradeLevelID
	existing.AcademicYearID = p.AcademicYearID
	existing.Capacity = p.Capacity
	if p.IsActive != nil {
		existing.IsActive = *p.IsActive
	}
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/classrooms/:id - refused while students still reference it
func (h *ClassRoomHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var n int64
	if err := database.DB.Model(&models.Student{}).Where("class_room_id = ?", id).Count(&n).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "CLASSROOM_NOT_EMPTY"})
	}
	tx := database.DB.Delete(&models.ClassRoom{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
