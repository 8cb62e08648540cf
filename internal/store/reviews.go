package store

import (
	"errors"

	"lumea_back_end/internal/models"

	"gorm.io/gorm"
)

// ReviewStore : un avis par couple (commande, produit), réservé au
// propriétaire d'une commande terminée.
type ReviewStore struct {
	db *gorm.DB
}

func NewReviewStore(db *gorm.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Create applique les quatre règles dans l'ordre : commande possédée,
// commande terminée, produit présent dans la commande, pas d'avis existant.
func (s *ReviewStore) Create(userID, orderID, productID uint, rating int, comment *string) (*models.Review, error) {
	var order models.Order
	err := s.db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ValidationError{Msg: "commande introuvable ou non possédée"}
		}
		return nil, err
	}

	if order.Status != models.OrderStatusCompleted {
		return nil, &ValidationError{Msg: "seuls les produits d'une commande terminée peuvent être évalués"}
	}

	var itemCount int64
	if err := s.db.Model(&models.OrderItem{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Count(&itemCount).Error; err != nil {
		return nil, err
	}
	if itemCount == 0 {
		return nil, &ValidationError{Msg: "ce produit ne figure pas dans cette commande"}
	}

	var existing int64
	if err := s.db.Model(&models.Review{}).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, &ValidationError{Msg: "vous avez déjà évalué ce produit pour cette commande"}
	}

	review := models.Review{
		UserID:    userID,
		OrderID:   orderID,
		ProductID: productID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.db.Create(&review).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&review, review.ID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// ListByProduct : tous les avis d'un produit, les plus récents d'abord, avec
// le nom de l'auteur.
func (s *ReviewStore) ListByProduct(productID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("User").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}
