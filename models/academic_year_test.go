package models

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func yearTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&AcademicYear{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNextAcademicYear(t *testing.T) {
	db := yearTestDB(t)

	current := AcademicYear{Name: "2024/2025", StartDate: date(2024, 9, 1), EndDate: date(2025, 6, 30)}
	require.NoError(t, db.Create(&current).Error)
	// starts before current ends: not a successor
	overlap := AcademicYear{Name: "overlap", StartDate: date(2025, 6, 1), EndDate: date(2026, 1, 31)}
	require.NoError(t, db.Create(&overlap).Error)
	later := AcademicYear{Name: "2026/2027", StartDate: date(2026, 9, 1), EndDate: date(2027, 6, 30)}
	require.NoError(t, db.Create(&later).Error)
	next := AcademicYear{Name: "2025/2026", StartDate: date(2025, 9, 1), EndDate: date(2026, 6, 30)}
	require.NoError(t, db.Create(&next).Error)

	got, err := NextAcademicYear(db, &current)
	require.NoError(t, err)
	// earliest start after current end wins
	assert.Equal(t, next.ID, got.ID)
}

func TestNextAcademicYearNone(t *testing.T) {
	db := yearTestDB(t)

	current := AcademicYear{Name: "2024/2025", StartDate: date(2024, 9, 1), EndDate: date(2025, 6, 30)}
	require.NoError(t, db.Create(&current).Error)

	_, err := NextAcademicYear(db, &current)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
