package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"github.com/AlexSaifo/school-management-system-sub002/database"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

type ExportHandler struct{}

func NewExportHandler() *ExportHandler { return &ExportHandler{} }

// GET /admin/students/export - current roster as an xlsx workbook, optionally
// limited to one classroom.
func (h *ExportHandler) Students(c echo.Context) error {
	tx := database.DB.Model(&models.Student{}).Preload("ClassRoom")
	if v := atoiOr(c.QueryParam("class_room_id"), 0); v > 0 {
		tx = tx.Where("class_room_id = ?", v)
	}
	var students []models.Student
	if err := tx.Order("id ASC").Find(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Students"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "EXPORT_FAILED"})
	}

	setCell := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}

	headers := []string{"ID", "Student Code", "First Name", "Last Name", "Status", "Classroom", "Section"}
	for i, hd := range headers {
		if err := setCell(i+1, 1, hd); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "EXPORT_FAILED"})
		}
	}

	for row, s := range students {
		roomName, section := "", ""
		if s.ClassRoom != nil {
			roomName = s.ClassRoom.Name
			section = s.ClassRoom.Section
		}
		values := []any{s.ID, s.StudentCode, s.FirstName, s.LastName, s.Status, roomName, section}
		for col, v := range values {
			if err := setCell(col+1, row+2, v); err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "EXPORT_FAILED"})
			}
		}
	}

	filename := fmt.Sprintf("students-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().WriteHeader(http.StatusOK)
	if err := f.Write(c.Response()); err != nil {
		return err
	}
	return nil
}
