package progression

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AlexSaifo/school-management-system-sub002/models"
)

// testDB opens a per-test in-memory database. The DSN is keyed by test name
// so parallel tests never share state.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.GradeLevel{},
		&models.AcademicYear{},
		&models.ClassRoom{},
		&models.Student{},
		&models.ProgressionRecord{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func intp(n int) *int    { return &n }
func uintp(n uint) *uint { return &n }

func mkGrade(t *testing.T, db *gorm.DB, level int) models.GradeLevel {
	t.Helper()
	g := models.GradeLevel{Name: fmt.Sprintf("Grade %d", level), Level: level}
	if err := db.Create(&g).Error; err != nil {
		t.Fatalf("create grade: %v", err)
	}
	return g
}

func mkYear(t *testing.T, db *gorm.DB, name string, start, end time.Time) models.AcademicYear {
	t.Helper()
	y := models.AcademicYear{Name: name, StartDate: start, EndDate: end}
	if err := db.Create(&y).Error; err != nil {
		t.Fatalf("create year: %v", err)
	}
	return y
}

func mkYears(t *testing.T, db *gorm.DB) (current, next models.AcademicYear) {
	t.Helper()
	current = mkYear(t, db, "2024/2025",
		time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC))
	next = mkYear(t, db, "2025/2026",
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC))
	return current, next
}

func mkRoom(t *testing.T, db *gorm.DB, name, section string, grade, year uint, capacity *int, active bool) models.ClassRoom {
	t.Helper()
	r := models.ClassRoom{
		Name:           name,
		Section:        section,
		GradeLevelID:   grade,
		AcademicYearID: year,
		Capacity:       capacity,
		IsActive:       active,
	}
	if err := db.Create(&r).Error; err != nil {
		t.Fatalf("create classroom: %v", err)
	}
	return r
}

func mkStudent(t *testing.T, db *gorm.DB, code string, room *uint) models.Student {
	t.Helper()
	s := models.Student{
		StudentCode: code,
		FirstName:   "Test",
		LastName:    code,
		Status:      "active",
		ClassRoomID: room,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}
	return s
}

// fillRoom creates n placeholder students already seated in the room.
func fillRoom(t *testing.T, db *gorm.DB, room models.ClassRoom, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		mkStudent(t, db, fmt.Sprintf("room%d-seat-%d", room.ID, i), uintp(room.ID))
	}
}

func reload(t *testing.T, db *gorm.DB, s *models.Student) models.Student {
	t.Helper()
	var got models.Student
	if err := db.First(&got, "id = ?", s.ID).Error; err != nil {
		t.Fatalf("reload student: %v", err)
	}
	return got
}

func recordCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.ProgressionRecord{}).Count(&n).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	return n
}
