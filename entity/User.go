package entity

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `json:"-"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `gorm:"not null;default:customer" json:"role"`

	WalletBalance int64      `json:"walletBalance"`
	Premium       bool       `json:"premium"`
	PremiumUntil  *time.Time `json:"premiumUntil,omitempty"`

	// preload only when needed
	RestaurantsOwned []Restaurant  `gorm:"foreignKey:OwnerID" json:"-"`
	Orders           []Order       `json:"-"`
	Transactions     []Transaction `gorm:"foreignKey:PayerID" json:"-"`
}
