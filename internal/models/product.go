package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description *string         `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    *string         `gorm:"size:500" json:"image_url"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
