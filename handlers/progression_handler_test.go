package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlexSaifo/school-management-system-sub002/models"
	"github.com/AlexSaifo/school-management-system-sub002/progression"
)

func progressionFixture(t *testing.T) (grade models.GradeLevel, next models.AcademicYear, students []models.Student) {
	t.Helper()
	db := setupDB(t)

	grade = models.GradeLevel{Name: "Grade 5", Level: 5}
	require.NoError(t, db.Create(&grade).Error)

	current := models.AcademicYear{
		Name:      "2024/2025",
		StartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&current).Error)
	next = models.AcademicYear{
		Name:      "2025/2026",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&next).Error)

	oldRoom := models.ClassRoom{Name: "A", Section: "1", GradeLevelID: grade.ID, AcademicYearID: current.ID, Capacity: intp(30), IsActive: true}
	require.NoError(t, db.Create(&oldRoom).Error)
	newRoom := models.ClassRoom{Name: "A", Section: "1", GradeLevelID: grade.ID, AcademicYearID: next.ID, Capacity: intp(30), IsActive: true}
	require.NoError(t, db.Create(&newRoom).Error)

	for _, code := range []string{"S-001", "S-002"} {
		s := models.Student{StudentCode: code, FirstName: "Test", LastName: code, Status: "active", ClassRoomID: uintp(oldRoom.ID)}
		require.NoError(t, db.Create(&s).Error)
		students = append(students, s)
	}
	return grade, next, students
}

func runProgression(t *testing.T, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/admin/progressions", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", uint(7))

	h := NewProgressionHandler(progression.NewService(mustDB(t)))
	return rec, h.Run(ctx)
}

func TestProgressionEndpointRejectsEmptyBatch(t *testing.T) {
	setupDB(t)

	_, err := runProgression(t, `{"items":[]}`)

	var he *echo.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusBadRequest, he.Code)
	msg, ok := he.Message.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", msg["error"])
}

func TestProgressionEndpointRunsBatch(t *testing.T) {
	grade, next, students := progressionFixture(t)

	body, err := json.Marshal(map[string]any{
		"items": []map[string]any{
			{
				"student_id":          students[0].ID,
				"to_grade_level_id":   grade.ID,
				"to_academic_year_id": next.ID,
				"progression_type":    "RETAINED",
			},
			{
				"student_id":          students[1].ID,
				"to_grade_level_id":   grade.ID,
				"to_academic_year_id": next.ID,
				"progression_type":    "RETAINED",
				"reason":              "repeat year",
			},
		},
	})
	require.NoError(t, err)

	rec, err := runProgression(t, string(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool   `json:"success"`
		BatchID string `json:"batch_id"`
		Message string `json:"message"`
		Results []struct {
			StudentID uint   `json:"student_id"`
			Success   bool   `json:"success"`
			Error     string `json:"error"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.BatchID)
	assert.Equal(t, "Processed 2 out of 2 progressions", resp.Message)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Success)
	assert.True(t, resp.Results[1].Success)

	// the operator gets a summary notification
	var notif models.Notification
	require.NoError(t, mustDB(t).First(&notif, "user_id = ?", 7).Error)
	assert.Contains(t, notif.Body, resp.BatchID)
}
