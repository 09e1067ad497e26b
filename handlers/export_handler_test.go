package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/AlexSaifo/school-management-system-sub002/models"
)

func TestExportStudentsWorkbook(t *testing.T) {
	db := setupDB(t)

	grade := models.GradeLevel{Name: "Grade 2", Level: 2}
	require.NoError(t, db.Create(&grade).Error)
	year := models.AcademicYear{
		Name:      "2025/2026",
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&year).Error)
	room := models.ClassRoom{Name: "A", Section: "2", GradeLevelID: grade.ID, AcademicYearID: year.ID, Capacity: intp(25), IsActive: true}
	require.NoError(t, db.Create(&room).Error)
	stu := models.Student{StudentCode: "S-100", FirstName: "Mira", LastName: "Khan", Status: "active", ClassRoomID: uintp(room.ID)}
	require.NoError(t, db.Create(&stu).Error)

	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/admin/students/export", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	h := NewExportHandler()
	require.NoError(t, h.Students(ctx))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Students", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", got)
	got, err = f.GetCellValue("Students", "B2")
	require.NoError(t, err)
	assert.Equal(t, "S-100", got)
	got, err = f.GetCellValue("Students", "F2")
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}
