package entity

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model

	// shared with the transaction written in the same checkout
	CorrelationID string `gorm:"size:36;index" json:"correlationId"`

	// amount components are fixed at creation; TotalAmount is always
	// BaseAmount + GSTAmount + PlatformFeeAmount
	BaseAmount        int64 `json:"baseAmount"`
	GSTAmount         int64 `json:"gstAmount"`
	PlatformFeeAmount int64 `json:"platformFeeAmount"`
	TotalAmount       int64 `json:"totalAmount"`

	Status OrderStatus `gorm:"size:20;index;default:pending" json:"status"`

	// 0 = unrated
	Rating       int            `json:"rating"`
	ReviewText   string         `json:"reviewText"`
	ReviewImages datatypes.JSON `json:"reviewImages"`

	// delivery address snapshot, captured at order time
	DeliveryName    string `json:"deliveryName"`
	DeliveryPhone   string `json:"deliveryPhone"`
	DeliveryAddress string `json:"deliveryAddress"`

	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items []OrderItem `json:"items"`

	Transactions []Transaction `json:"-"`
}
