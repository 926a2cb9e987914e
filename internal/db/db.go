package db

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/config"
	"github.com/cortemaestro/barbershop-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Barber{},
		&models.Appointment{},
		&models.Comment{},
		&models.GalleryImage{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedAdmin(db, cfg)

	return db
}

// seedAdmin creates the back-office user from env on first boot. A
// blank ADMIN_PASSWORD skips seeding entirely.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminPassword == "" {
		return
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))
	if email == "" {
		return
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("admin seed check failed: %v", err)
		return
	}
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("admin seed hash failed: %v", err)
		return
	}

	user := models.User{
		Name:         "Administrador",
		Email:        email,
		PasswordHash: string(hash),
	}

	if err := db.Create(&user).Error; err != nil {
		log.Printf("admin seed failed: %v", err)
		return
	}

	log.Printf("admin user seeded: %s", email)
}
