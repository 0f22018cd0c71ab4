package database

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func GormOpen(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   logger.Default.LogMode(logger.Warn),
	})
}

func RunMigrations(db *gorm.DB, entities ...interface{}) error {
	if err := db.AutoMigrate(entities...); err != nil {
		return err
	}
	return nil
}
