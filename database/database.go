package database

import (
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"festival-app/config"
	"festival-app/internal/domain/festivals"
	"festival-app/internal/domain/performances"
	"festival-app/internal/domain/users"
	"festival-app/internal/logging"
)

var DB *gorm.DB

func InitDB() {
	db, err := gorm.Open(postgres.Open(config.DB_URL), &gorm.Config{})
	if err != nil {
		logging.L.Fatal("failed to connect to database", zap.Error(err))
	}

	DB = db

	if err := DB.AutoMigrate(
		&users.User{},
		&festivals.Festival{},
		&performances.Performance{},
	); err != nil {
		logging.L.Fatal("automigrate failed", zap.Error(err))
	}

	logging.L.Info("database connected and migrated")
}
