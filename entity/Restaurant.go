package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string `json:"name"`
	Address     string `json:"address"`
	Description string `json:"description"`
	Picture     string `json:"picture"`

	// Rating aggregate. Mean of ratings over this restaurant's completed
	// rated orders, rounded to 1 decimal; 0 when no rated orders exist.
	// Written only by the rating service.
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"totalReviews"`

	OwnerID uint `json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	MenuItems []MenuItem `json:"-"`
	Orders    []Order    `json:"-"`
}
