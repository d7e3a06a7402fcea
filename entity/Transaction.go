package entity

import (
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

type TransactionType string

const (
	TxnOrder           TransactionType = "order"
	TxnWalletRecharge  TransactionType = "walletRecharge"
	TxnPremiumPurchase TransactionType = "premiumPurchase"
)

// Transaction is a payment record. Order transactions are created 1:1 with
// an order and share its correlation id; wallet/premium transactions stand
// alone. Transactions are never updated after creation.
type Transaction struct {
	gorm.Model

	CorrelationID string `gorm:"size:36;index" json:"correlationId"`

	Amount            int64 `json:"amount"`
	GSTAmount         int64 `json:"gstAmount"`
	PlatformFeeAmount int64 `json:"platformFeeAmount"`

	PaymentMethod PaymentMethod   `gorm:"size:20" json:"paymentMethod"`
	PaymentStatus PaymentStatus   `gorm:"size:20" json:"paymentStatus"`
	Type          TransactionType `gorm:"size:20;index" json:"type"`

	PayerID uint `gorm:"index" json:"payerId"`
	Payer   User `gorm:"foreignKey:PayerID" json:"-"`

	OrderID      *uint `gorm:"index" json:"orderId,omitempty"`
	RestaurantID *uint `gorm:"index" json:"restaurantId,omitempty"`
}
