package pkg

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hireloop/jobboard-service/internal/config"
	"github.com/hireloop/jobboard-service/internal/models"
)

// InitDatabase opens the Postgres connection, configures the pool and
// runs schema migration plus role seeding.
func InitDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := logger.Warn
	if cfg.Environment == "development" {
		gormLogLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Company{},
		&models.Position{},
		&models.Skill{},
		&models.SkillUser{},
		&models.PositionSkill{},
		&models.Application{},
		&models.Test{},
		&models.TestUser{},
		&models.SkillMark{},
	); err != nil {
		return err
	}

	return seedRoles(db)
}

// seedRoles inserts the two fixed roles if they are missing
func seedRoles(db *gorm.DB) error {
	for _, name := range []string{models.RoleApplicant, models.RoleRecruiter} {
		var count int64
		if err := db.Model(&models.Role{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			if err := db.Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
