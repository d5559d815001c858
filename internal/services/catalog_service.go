package services

import (
	"errors"
	"strings"

	"github.com/NoxusLabb/CardapioDigital/internal/models"
	"gorm.io/gorm"
)

// CatalogService provides read access to the menu for the storefront and
// order validation, plus the admin CRUD operations behind it.
type CatalogService interface {
	// GetCategories retrieves all categories
	GetCategories() ([]models.Category, error)
	// GetCategoryBySlug retrieves a category by its external slug
	GetCategoryBySlug(slug string) (models.Category, error)
	// CreateCategory creates a new category
	CreateCategory(category models.Category) (models.Category, error)
	// UpdateCategory updates an existing category
	UpdateCategory(category models.Category) (models.Category, error)
	// DeleteCategory deletes a category; fails while products still reference it
	DeleteCategory(id uint) error

	// GetProducts retrieves all products
	GetProducts() ([]models.Product, error)
	// GetProductByID retrieves a product by its ID
	GetProductByID(id uint) (models.Product, error)
	// GetProductsByCategory retrieves the products of one category
	GetProductsByCategory(categoryID uint) ([]models.Product, error)
	// SearchProducts matches term case-insensitively against name or description
	SearchProducts(term string) ([]models.Product, error)
	// CreateProduct creates a new product
	CreateProduct(product models.Product) (models.Product, error)
	// UpdateProduct updates an existing product
	UpdateProduct(product models.Product) (models.Product, error)
	// DeleteProduct deletes a product by its ID
	DeleteProduct(id uint) error
}

type catalogService struct {
	db *gorm.DB
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(db *gorm.DB) CatalogService {
	return &catalogService{db: db}
}

func (s *catalogService) GetCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *catalogService) GetCategoryBySlug(slug string) (models.Category, error) {
	var category models.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	return category, nil
}

func (s *catalogService) CreateCategory(category models.Category) (models.Category, error) {
	if err := s.db.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(category models.Category) (models.Category, error) {
	var existing models.Category
	if err := s.db.First(&existing, category.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, err
	}
	if err := s.db.Save(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	var count int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	result := s.db.Delete(&models.Category{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (s *catalogService) GetProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *catalogService) GetProductByID(id uint) (models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}

func (s *catalogService) GetProductsByCategory(categoryID uint) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *catalogService) SearchProducts(term string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + strings.ToLower(term) + "%"
	err := s.db.
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *catalogService) CreateProduct(product models.Product) (models.Product, error) {
	if err := s.db.Create(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *catalogService) UpdateProduct(product models.Product) (models.Product, error) {
	var existing models.Product
	if err := s.db.First(&existing, product.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	if err := s.db.Save(&product).Error; err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	result := s.db.Delete(&models.Product{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
