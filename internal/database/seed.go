package database

import (
	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"gorm.io/gorm"
)

// Seed loads the demo menu and an admin user, but only when the products
// table is empty.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Database already seeded with initial data")
		return nil
	}

	log.Info("Database is empty, seeding initial data")

	admin := models.User{
		Username: "admin",
		Password: "123456",
		Name:     "Admin User",
		IsAdmin:  true,
	}
	if err := admin.HashPassword(); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	categories := []models.Category{
		{Name: "Sanduíches", Slug: "sanduiches"},
		{Name: "Acompanhamentos", Slug: "acompanhamentos"},
		{Name: "Bebidas", Slug: "bebidas"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	products := []models.Product{
		{
			Name:        "X-Burger",
			Description: "Hambúrguer com queijo, alface, tomate e molho especial",
			Price:       18.90,
			CategoryID:  categories[0].ID,
			ImageURL:    "https://via.placeholder.com/300",
			Available:   true,
			Ingredients: []string{"Pão", "Hambúrguer", "Queijo", "Alface", "Tomate", "Molho especial"},
		},
		{
			Name:        "Batata Frita",
			Description: "Porção de batatas fritas crocantes",
			Price:       12.90,
			CategoryID:  categories[1].ID,
			ImageURL:    "https://via.placeholder.com/300",
			Available:   true,
			Ingredients: []string{"Batata", "Sal"},
		},
		{
			Name:        "Refrigerante",
			Description: "Lata 350ml",
			Price:       6.00,
			CategoryID:  categories[2].ID,
			ImageURL:    "https://via.placeholder.com/300",
			Available:   true,
			Ingredients: []string{},
		},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	log.Info("Database seeded successfully")
	return nil
}
