package store

import (
	"errors"

	"lumea_back_end/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartStore gère le panier unique de chaque utilisateur. Pas de verrouillage
// au-delà de l'atomicité par requête : un panier n'a qu'un seul propriétaire,
// le dernier écrivain gagne.
type CartStore struct {
	db *gorm.DB
}

func NewCartStore(db *gorm.DB) *CartStore {
	return &CartStore{db: db}
}

// CartView : le panier joint aux données produit vivantes, avec le total dérivé.
type CartView struct {
	ID         uint
	UserID     uint
	Items      []CartItemView
	TotalPrice decimal.Decimal
}

type CartItemView struct {
	ID       uint
	Product  models.Product
	Quantity int
}

// GetOrCreate récupère le panier de l'utilisateur, en le créant vide au
// premier accès. Idempotent.
func (s *CartStore) GetOrCreate(userID uint) (*CartView, error) {
	cart, err := s.getOrCreateRow(s.db, userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(s.db, cart)
}

// AddItem ajoute delta à la ligne du produit. Une quantité résultante ≤ 0
// supprime la ligne ; pas de ligne et delta ≤ 0 est un no-op.
func (s *CartStore) AddItem(userID, productID uint, delta int) (*CartView, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cart, err := s.getOrCreateRow(s.db, userID)
	if err != nil {
		return nil, err
	}

	var item models.CartItem
	err = s.db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
	switch {
	case err == nil:
		newQuantity := item.Quantity + delta
		if newQuantity <= 0 {
			if err := s.db.Delete(&item).Error; err != nil {
				return nil, err
			}
		} else if err := s.db.Model(&item).Update("quantity", newQuantity).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if delta > 0 {
			item = models.CartItem{CartID: cart.ID, ProductID: productID, Quantity: delta}
			if err := s.db.Create(&item).Error; err != nil {
				return nil, err
			}
		}
	default:
		return nil, err
	}

	return s.buildView(s.db, cart)
}

// RemoveItem supprime la ligne uniquement si elle appartient au panier de
// l'utilisateur : le delete est borné par (cart_id, item_id), une ligne
// étrangère est un no-op.
func (s *CartStore) RemoveItem(userID, itemID uint) (*CartView, error) {
	cart, err := s.getOrCreateRow(s.db, userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Where("id = ? AND cart_id = ?", itemID, cart.ID).
		Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}

	return s.buildView(s.db, cart)
}

func (s *CartStore) getOrCreateRow(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) buildView(tx *gorm.DB, cart *models.Cart) (*CartView, error) {
	var items []models.CartItem
	if err := tx.Preload("Product").
		Where("cart_id = ?", cart.ID).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	view := &CartView{
		ID:         cart.ID,
		UserID:     cart.UserID,
		Items:      make([]CartItemView, 0, len(items)),
		TotalPrice: decimal.Zero,
	}
	for _, item := range items {
		line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.TotalPrice = view.TotalPrice.Add(line)
		view.Items = append(view.Items, CartItemView{
			ID:       item.ID,
			Product:  item.Product,
			Quantity: item.Quantity,
		})
	}
	return view, nil
}
