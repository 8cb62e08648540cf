package models

import "time"

// Review : un seul avis par couple (commande, produit), immuable après création.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	OrderID   uint      `gorm:"not null;uniqueIndex:uq_review_order_product" json:"order_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:uq_review_order_product" json:"product_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Comment   *string   `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
