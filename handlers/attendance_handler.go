package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type AttendanceHandler struct{}

func NewAttendanceHandler() *AttendanceHandler { return &AttendanceHandler{} }

type attendanceMarkPayload struct {
	StudentID uint   `json:"student_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Status    string `json:"status" validate:"required,oneof=present absent late leave"`
	Note      string `json:"note" validate:"max=255"`
}

// POST /teacher/attendance/mark - one row per student per day; marking the
// same day again overwrites the earlier status.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var p attendanceMarkPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Note = strings.TrimSpace(p.Note)
	if err := c.Validate(&p); err != nil {
		return err
	}
	var student models.Student
	if err := database.DB.First(&student, "id = ?", p.StudentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "STUDENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var existing models.Attendance
	err := database.DB.Where("student_id = ? AND date = ?", p.StudentID, p.Date).First(&existing).Error
	switch {
	case err == nil:
		existing.Status = p.Status
		existing.Note = p.Note
		existing.MarkedBy = currentUserID(c)
		if err := database.DB.Save(&existing).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
		}
		return c.JSON(http.StatusOK, existing)
	case err == gorm.ErrRecordNotFound:
		rec := models.Attendance{
			StudentID: p.StudentID,
			Date:      p.Date,
			Status:    p.Status,
			Note:      p.Note,
			MarkedBy:  currentUserID(c),
		}
		if err := database.DB.Create(&rec).Error; err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, rec)
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
}

// GET /teacher/attendance?date=&class_room_id=&student_id=
func (h *AttendanceHandler) List(c echo.Context) error {
	page, size := pageParams(c)

	tx := database.DB.Model(&models.Attendance{})
	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		tx = tx.Where("date = ?", d)
	}
	if v := atoiOr(c.QueryParam("student_id"), 0); v > 0 {
		tx = tx.Where("student_id = ?", v)
	}
	if v := atoiOr(c.QueryParam("class_room_id"), 0); v > 0 {
		tx = tx.Where("student_id IN (?)",
			database.DB.Model(&models.Student{}).Select("id").Where("class_room_id = ?", v))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Attendance
	if err := tx.Order("date DESC, student_id ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items, "page": page, "size": size, "total": total})
}
