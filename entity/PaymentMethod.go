package entity

type PaymentMethod string

const (
	PaymentUPI            PaymentMethod = "UPI"
	PaymentCard           PaymentMethod = "Card"
	PaymentCashOnDelivery PaymentMethod = "CashOnDelivery"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentUPI, PaymentCard, PaymentCashOnDelivery:
		return true
	}
	return false
}
