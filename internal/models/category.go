package models

import "time"

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Slug      string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`

	// La suppression d'une catégorie entraîne celle de ses produits
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}
