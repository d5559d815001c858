package database

import (
	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"gorm.io/gorm"
)

// Migrate applies the schema for every entity the application owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OAuthClient{},
		&models.OAuthCode{},
		&models.OAuthToken{},
	)
}
