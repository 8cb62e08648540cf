package store

import (
	"errors"

	"lumea_back_end/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CatalogStore couvre les lectures filtrées/paginées du catalogue et le CRUD
// réservé aux admins.
type CatalogStore struct {
	db *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// ProductFilters : prédicat dynamique de la liste produits.
type ProductFilters struct {
	Query      string // sous-chaîne sur name OU description
	MinPrice   *float64
	MaxPrice   *float64
	CategoryID *uint
}

// ProductInput : champs acceptés à la création et à la mise à jour.
type ProductInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
	ImageURL    *string
	Stock       int
	CategoryID  uint
}

// ================== CATÉGORIES ==================

func (s *CatalogStore) ListCategories(page, size int) ([]models.Category, int64, error) {
	var categories []models.Category
	var total int64

	if err := s.db.Model(&models.Category{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := s.db.Order("id ASC").
		Offset(PageOffset(page, size)).
		Limit(size).
		Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (s *CatalogStore) GetCategory(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *CatalogStore) CreateCategory(name, slug string) (*models.Category, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{Msg: "ce slug est déjà utilisé"}
	}

	category := models.Category{Name: name, Slug: slug}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *CatalogStore) UpdateCategory(id uint, name, slug string) (*models.Category, error) {
	category, err := s.GetCategory(id)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("slug = ? AND id <> ?", slug, id).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, &ValidationError{Msg: "ce slug est déjà utilisé"}
	}

	updates := map[string]interface{}{"name": name, "slug": slug}
	if err := s.db.Model(category).Updates(updates).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory supprime la catégorie ; la contrainte FK emporte ses produits.
func (s *CatalogStore) DeleteCategory(id uint) error {
	res := s.db.Delete(&models.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ================== PRODUITS ==================

func (s *CatalogStore) ListProducts(page, size int, f ProductFilters) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := s.db.Model(&models.Product{})

	if f.Query != "" {
		like := "%" + f.Query + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.CategoryID != nil {
		query = query.Where("category_id = ?", *f.CategoryID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := query.Order("id ASC").
		Offset(PageOffset(page, size)).
		Limit(size).
		Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (s *CatalogStore) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *CatalogStore) CreateProduct(in ProductInput) (*models.Product, error) {
	if _, err := s.GetCategory(in.CategoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &ValidationError{Msg: "catégorie inexistante"}
		}
		return nil, err
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *CatalogStore) UpdateProduct(id uint, in ProductInput) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}
	if _, err := s.GetCategory(in.CategoryID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &ValidationError{Msg: "catégorie inexistante"}
		}
		return nil, err
	}

	updates := map[string]interface{}{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price,
		"image_url":   in.ImageURL,
		"stock":       in.Stock,
		"category_id": in.CategoryID,
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct supprime le produit ; les lignes de panier suivent (CASCADE),
// les lignes de commande gardent l'historique (SET NULL).
func (s *CatalogStore) DeleteProduct(id uint) error {
	res := s.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
