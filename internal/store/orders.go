package store

import (
	"errors"
	"strconv"

	"lumea_back_end/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStore pilote le cycle de vie des commandes : création par checkout,
// transitions role-gated, lectures. Le total d'une commande est figé à la
// création et n'est jamais recalculé.
type OrderStore struct {
	db *gorm.DB
}

func NewOrderStore(db *gorm.DB) *OrderStore {
	return &OrderStore{db: db}
}

// Checkout transforme le panier en commande `pending` : snapshot des lignes
// avec le prix courant copié dans price_at_purchase, total calculé sur le
// snapshot, puis vidage du panier. Le tout dans une seule transaction : un
// échec en cours de route ne laisse ni commande partielle ni panier à moitié
// vidé.
func (s *OrderStore) Checkout(userID uint, shippingAddress string) (*models.Order, error) {
	var orderID uint

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEmptyCart
			}
			return err
		}

		var items []models.CartItem
		if err := tx.Preload("Product").
			Where("cart_id = ?", cart.ID).
			Order("id ASC").
			Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			line := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(line)

			productID := item.ProductID
			orderItems = append(orderItems, models.OrderItem{
				ProductID:       &productID,
				Quantity:        item.Quantity,
				PriceAtPurchase: item.Product.Price,
			})
		}

		order := models.Order{
			UserID:          userID,
			TotalPrice:      total,
			Status:          models.OrderStatusPending,
			ShippingAddress: shippingAddress,
			Items:           orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		orderID = order.ID

		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(orderID)
}

func (s *OrderStore) Get(id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("Items.Product").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *OrderStore) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll : vue admin. Une recherche numérique matche l'ID ou le statut,
// sinon le statut seul (sous-chaîne).
func (s *OrderStore) ListAll(search string) ([]models.Order, error) {
	query := s.db.Preload("Items.Product").Order("created_at DESC")

	if search != "" {
		like := "%" + search + "%"
		if id, err := strconv.Atoi(search); err == nil {
			query = query.Where("id = ? OR status LIKE ?", id, like)
		} else {
			query = query.Where("status LIKE ?", like)
		}
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Pay : pending → processing, réservé au propriétaire. Confirmation de
// paiement simulée, aucun appel externe.
func (s *OrderStore) Pay(userID, orderID uint) (*models.Order, error) {
	return s.transition(userID, orderID, models.OrderStatusProcessing, func(o *models.Order) error {
		if o.UserID != userID {
			return ErrForbidden
		}
		if !CanPay(o.Status) {
			return &InvalidStateError{Current: o.Status}
		}
		return nil
	})
}

// Receive : shipped → completed, réservé au propriétaire.
func (s *OrderStore) Receive(userID, orderID uint) (*models.Order, error) {
	return s.transition(userID, orderID, models.OrderStatusCompleted, func(o *models.Order) error {
		if o.UserID != userID {
			return ErrForbidden
		}
		if !CanReceive(o.Status) {
			return &InvalidStateError{Current: o.Status}
		}
		return nil
	})
}

// Cancel : le propriétaire annule depuis pending, un admin depuis pending ou
// processing. Tout autre cas échoue en nommant le statut courant.
func (s *OrderStore) Cancel(userID, orderID uint, admin bool) (*models.Order, error) {
	return s.transition(userID, orderID, models.OrderStatusCancelled, func(o *models.Order) error {
		if !admin && o.UserID != userID {
			return ErrForbidden
		}
		if !CanCancel(o.Status, admin) {
			return &InvalidStateError{Current: o.Status}
		}
		return nil
	})
}

// SetStatus : écrasement brut du statut, réservé aux admins. C'est le seul
// chemin qui contourne la machine à états : expédition (`shipped`) et
// corrections opérationnelles passent par ici.
func (s *OrderStore) SetStatus(orderID uint, status string) (*models.Order, error) {
	res := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(orderID)
}

// Stats compte les commandes en cours (pending + processing).
func (s *OrderStore) Stats() (int64, error) {
	var count int64
	err := s.db.Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderStatusPending, models.OrderStatusProcessing}).
		Count(&count).Error
	return count, err
}

func (s *OrderStore) transition(userID, orderID uint, target string, check func(*models.Order) error) (*models.Order, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if err := check(order); err != nil {
		return nil, err
	}
	if err := s.db.Model(order).Update("status", target).Error; err != nil {
		return nil, err
	}
	return order, nil
}
