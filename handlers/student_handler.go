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

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	StudentCode string `json:"student_code" validate:"required,max=20"`
	FirstName   string `json:"first_name" validate:"required,max=50"`
	LastName    string `json:"last_name" validate:"required,max=50"`
	BirthDate   string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address     string `json:"address" validate:"max=255"`
	Phone       string `json:"phone" validate:"omitempty,max=15"`
	Status      string `json:"status" validate:"required,oneof=active left suspended"`
	ClassRoomID *uint  `json:"class_room_id"`
}

func (p *studentPayload) normalize() {
	p.StudentCode = strings.TrimSpace(p.StudentCode)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	p.Address = strings.TrimSpace(p.Address)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Status = strings.TrimSpace(p.Status)
}

// classroom referenced by an administrative edit must at least exist;
// capacity enforcement belongs to progression
func classRoomExists(id uint) error {
	var room models.ClassRoom
	if err := database.DB.First(&room, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusBadRequest, map[string]any{
				"error":  "VALIDATION_ERROR",
				"fields": map[string]string{"class_room_id": "classroom does not exist"},
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "DB_QUERY_FAILED"})
	}
	return nil
}

// GET /admin/students
func (h *StudentHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := database.DB.Model(&models.Student{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("student_code LIKE ? OR first_name LIKE ? OR last_name LIKE ?", like, like, like)
	}
	if v := atoiOr(c.QueryParam("class_room_id"), 0); v > 0 {
		tx = tx.Where("class_room_id = ?", v)
	}
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		tx = tx.Where("status = ?", s)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Student
	if err := tx.Preload("ClassRoom").
		Order("id DESC").Limit(size).Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /admin/students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var s models.Student
	if err := database.DB.Preload("ClassRoom.GradeLevel").Preload("ClassRoom.AcademicYear").
		First(&s, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// POST /admin/students
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}
	if p.ClassRoomID != nil {
		if err := classRoomExists(*p.ClassRoomID); err != nil {
			return err
		}
	}

	var birth *time.Time
	if p.BirthDate != "" {
		if b, err := time.Parse("2006-01-02", p.BirthDate); err == nil {
			birth = &b
		}
	}
	s := models.Student{
		StudentCode: p.StudentCode,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		BirthDate:   birth,
		Address:     p.Address,
		Phone:       p.Phone,
		Status:      p.Status,
		ClassRoomID: p.ClassRoomID,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /admin/students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.Student
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := c.Validate(&p); err != nil {
		return err
	}
	if p.ClassRoomID != nil && *p.ClassRoomID != 0 {
		if err := classRoomExists(*p.ClassRoomID); err != nil {
			return err
		}
	}

	if p.BirthDate != "" {
		if b, err := time.Parse("2006-01-02", p.BirthDate); err == nil {
			existing.BirthDate = &b
		}
	}
	existing.StudentCode = p.StudentCode
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.Address = p.Address
	existing.Phone = p.Phone
	existing.Status = p.Status
	// an absent class_room_id leaves the seat alone; an explicit 0 clears it
	if p.ClassRoomID != nil {
		if *p.ClassRoomID == 0 {
			existing.ClassRoomID = nil
		} else {
			existing.ClassRoomID = p.ClassRoomID
		}
	}

	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/students/:id
func (h *StudentHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.Student{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
