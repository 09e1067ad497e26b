package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type TimetableHandler struct{}

func NewTimetableHandler() *TimetableHandler { return &TimetableHandler{} }

type timetableSlotPayload struct {
	ClassRoomID uint   `json:"class_room_id" validate:"required"`
	SubjectID   uint   `json:"subject_id" validate:"required"`
	TeacherID   uint   `json:"teacher_id" validate:"required"`
	Weekday     int    `json:"weekday" validate:"required,min=1,max=7"`
	StartTime   string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime     string `json:"end_time" validate:"required,datetime=15:04"`
}

// slotConflict reports whether another slot occupies the same classroom or
// the same teacher in an overlapping interval on the same weekday.
func slotConflict(p *timetableSlotPayload, excludeID uint) (bool, error) {
	var n int64
	tx := database.DB.Model(&models.TimetableSlot{}).
		Where("weekday = ?", p.Weekday).
		Where("(class_room_id = ? OR teacher_id = ?)", p.ClassRoomID, p.TeacherID).
		Where("start_time < ? AND end_time > ?", p.EndTime, p.StartTime)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// GET /teacher/timetable?class_room_id=&teacher_id=
func (h *TimetableHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.TimetableSlot{})
	if v := atoiOr(c.QueryParam("class_room_id"), 0); v > 0 {
		tx = tx.Where("class_room_id = ?", v)
	}
	if v := atoiOr(c.QueryParam("teacher_id"), 0); v > 0 {
		tx = tx.Where("teacher_id = ?", v)
	}
	var items []models.TimetableSlot
	if err := tx.Order("weekday ASC, start_time ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/timetable
func (h *TimetableHandler) Create(c echo.Context) error {
	var p timetableSlotPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	if p.StartTime >= p.EndTime {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"end_time": "must be after start_time"},
		})
	}
	conflict, err := slotConflict(&p, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if conflict {
		return c.JSON(http.StatusConflict, map[string]string{"error": "TIMETABLE_CONFLICT"})
	}

	slot := models.TimetableSlot{
		ClassRoomID: p.ClassRoomID,
		SubjectID:   p.SubjectID,
		TeacherID:   p.TeacherID,
		Weekday:     p.Weekday,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
	}
	if err := database.DB.Create(&slot).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, slot)
}

// PUT /admin/timetable/:id
func (h *TimetableHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	var existing models.TimetableSlot
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p timetableSlotPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if err := c.Validate(&p); err != nil {
		return err
	}
	if p.StartTime >= p.EndTime {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":  "VALIDATION_ERROR",
			"fields": map[string]string{"end_time": "must be after start_time"},
		})
	}
	conflict, err := slotConflict(&p, existing.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if conflict {
		return c.JSON(http.StatusConflict, map[string]string{"error": "TIMETABLE_CONFLICT"})
	}

	existing.ClassRoomID = p.ClassRoomID
	existing.SubjectID = p.SubjectID
	existing.TeacherID = p.TeacherID
	existing.Weekday = p.Weekday
	existing.StartTime = p.StartTime
	existing.EndTime = p.EndTime
	if err := database.DB.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /admin/timetable/:id
func (h *TimetableHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_ID"})
	}
	tx := database.DB.Delete(&models.TimetableSlot{}, "id = ?", id)
	if tx.Error != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_DELETE_FAILED"})
	}
	if tx.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.NoContent(http.StatusNoContent)
}
