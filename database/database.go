package database

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AlexSaifo/school-management-system-sub002/config"
	"github.com/AlexSaifo/school-management-system-sub002/models"
)

var DB *gorm.DB

// Redis is nil when no REDIS_ADDR is configured or the server is unreachable;
// callers must treat it as a best-effort cache, never as the source of truth.
var Redis *redis.Client

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate is separate from Connect so tests can run it against their own DB.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Teacher{},
		&models.GradeLevel{},
		&models.AcademicYear{},
		&models.ClassRoom{},
		&models.Student{},
		&models.ProgressionRecord{},
		&models.Subject{},
		&models.TimetableSlot{},
		&models.Attendance{},
		&models.ChatMessage{},
		&models.Notification{},
	)
}

func ConnectRedis(cfg *config.Config) {
	if cfg.RedisAddr == "" {
		return
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("[redis] unreachable at %s, running without cache: %v", cfg.RedisAddr, err)
		return
	}
	Redis = client
}
