package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statuts du cycle de vie d'une commande.
// pending → processing → shipped → completed, avec pending|processing → cancelled.
// Aucune transition ne sort de completed ou cancelled.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order est un instantané immuable du panier au moment du checkout :
// le total n'est jamais recalculé après création.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	User            User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Status          string          `gorm:"size:50;not null;default:pending" json:"status"`
	ShippingAddress string          `gorm:"type:text;not null" json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem conserve le prix au moment de l'achat. ProductID passe à NULL
// si le produit est supprimé du catalogue, l'historique reste intact.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"index;not null" json:"order_id"`
	ProductID       *uint           `json:"product_id"`
	Product         *Product        `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price_at_purchase"`
}
