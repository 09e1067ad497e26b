package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type timetableFixture struct {
	roomA   models.ClassRoom
	roomB   models.ClassRoom
	subject models.Subject
	smith   models.Teacher
	jones   models.Teacher
}

func setupTimetable(t *testing.T) timetableFixture {
	t.Helper()
	db := setupDB(t)

	grade := models.GradeLevel{Name: "Grade 3", Level: 3}
	require.NoError(t, db.Create(&grade).Error)
	year := models.AcademicYear{
		Name:      "2025/2026",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&year).Error)

	f := timetableFixture{
		roomA:   models.ClassRoom{Name: "A", Section: "1", GradeLevelID: grade.ID, AcademicYearID: year.ID, Capacity: intp(30), IsActive: true},
		roomB:   models.ClassRoom{Name: "B", Section: "1", GradeLevelID: grade.ID, AcademicYearID: year.ID, Capacity: intp(30), IsActive: true},
		subject: models.Subject{Code: "MATH3", Name: "Mathematics", GradeLevelID: grade.ID},
		smith:   models.Teacher{TeacherCode: "T-001", FirstName: "Sam", LastName: "Smith"},
		jones:   models.Teacher{TeacherCode: "T-002", FirstName: "Jo", LastName: "Jones"},
	}
	require.NoError(t, db.Create(&f.roomA).Error)
	require.NoError(t, db.Create(&f.roomB).Error)
	require.NoError(t, db.Create(&f.subject).Error)
	require.NoError(t, db.Create(&f.smith).Error)
	require.NoError(t, db.Create(&f.jones).Error)
	return f
}

func createSlot(t *testing.T, payload map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/admin/timetable", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	h := NewTimetableHandler()
	require.NoError(t, h.Create(ctx))
	return rec
}

func slotPayload(f timetableFixture, roomID, teacherID uint, start, end string) map[string]any {
	return map[string]any{
		"class_room_id": roomID,
		"subject_id":    f.subject.ID,
		"teacher_id":    teacherID,
		"weekday":       1,
		"start_time":    start,
		"end_time":      end,
	}
}

func TestTimetableCreateSlot(t *testing.T) {
	f := setupTimetable(t)

	rec := createSlot(t, slotPayload(f, f.roomA.ID, f.smith.ID, "08:00", "09:00"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var slot models.TimetableSlot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))
	assert.NotZero(t, slot.ID)
	assert.Equal(t, "08:00", slot.StartTime)
}

func TestTimetableClassRoomOverlapConflicts(t *testing.T) {
	f := setupTimetable(t)

	rec := createSlot(t, slotPayload(f, f.roomA.ID, f.smith.ID, "08:00", "09:00"))
	require.Equal(t, http.StatusCreated, rec.Code)

	// same room, different teacher, overlapping interval
	rec = createSlot(t, slotPayload(f, f.roomA.ID, f.jones.ID, "08:30", "09:30"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "TIMETABLE_CONFLICT")
}

func TestTimetableTeacherOverlapConflicts(t *testing.T) {
	f := setupTimetable(t)

	rec := createSlot(t, slotPayload(f, f.roomA.ID, f.smith.ID, "08:00", "09:00"))
	require.Equal(t, http.StatusCreated, rec.Code)

	// same teacher cannot be in two rooms at once
	rec = createSlot(t, slotPayload(f, f.roomB.ID, f.smith.ID, "08:30", "09:30"))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestTimetableAdjacentSlotsDoNotConflict(t *testing.T) {
	f := setupTimetable(t)

	rec := createSlot(t, slotPayload(f, f.roomA.ID, f.smith.ID, "08:00", "09:00"))
	require.Equal(t, http.StatusCreated, rec.Code)

	// back to back is fine: end of one equals start of the next
	rec = createSlot(t, slotPayload(f, f.roomA.ID, f.smith.ID, "09:00", "10:00"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestTimetableRejectsInvertedInterval(t *testing.T) {
	f := setupTimetable(t)

	rec := createSlot(t, slotPayload(f, f.roomA.ID, f.smith.ID, "10:00", "09:00"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestTimetableUpdateCanKeepOwnInterval(t *testing.T) {
	f := setupTimetable(t)

	rec := createSlot(t, slotPayload(f, f.roomA.ID, f.smith.ID, "08:00", "09:00"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var slot models.TimetableSlot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slot))

	// moving the slot to another room in the same interval must not
	// conflict with itself
	body, err := json.Marshal(slotPayload(f, f.roomB.ID, f.smith.ID, "08:00", "09:00"))
	require.NoError(t, err)

	e := newEcho()
	req := httptest.NewRequest(http.MethodPut, "/admin/timetable/1", strings.NewReader(string(body)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	recu := httptest.NewRecorder()
	ctx := e.NewContext(req, recu)
	ctx.SetParamNames("id")
	ctx.SetParamValues(strconv.FormatUint(uint64(slot.ID), 10))

	h := NewTimetableHandler()
	require.NoError(t, h.Update(ctx))
	assert.Equal(t, http.StatusOK, recu.Code)

	var updated models.TimetableSlot
	require.NoError(t, json.Unmarshal(recu.Body.Bytes(), &updated))
	assert.Equal(t, f.roomB.ID, updated.ClassRoomID)
}
