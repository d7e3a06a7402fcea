package services

import (
	"time"

	"tomato-backend/entity"
	"tomato-backend/pkg/apperr"
	"tomato-backend/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// premium plan, 30 days
const premiumPrice int64 = 299

// WalletService handles the two standalone transaction types: wallet top-up
// and premium purchase. Both share the transaction store with order payments.
type WalletService struct {
	DB       *gorm.DB
	UserRepo *repository.UserRepository
	TxnRepo  *repository.TransactionRepository
}

func NewWalletService(db *gorm.DB, userRepo *repository.UserRepository, txnRepo *repository.TransactionRepository) *WalletService {
	return &WalletService{DB: db, UserRepo: userRepo, TxnRepo: txnRepo}
}

func (s *WalletService) Recharge(userID uint, amount int64, method entity.PaymentMethod) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidRequest, "amount must be positive")
	}
	if !method.Valid() {
		return nil, apperr.Wrapf(apperr.ErrInvalidRequest, "unknown payment method %q", method)
	}

	txn := entity.Transaction{
		CorrelationID: uuid.NewString(),
		Amount:        amount,
		PaymentMethod: method,
		PaymentStatus: entity.PaymentSuccess,
		Type:          entity.TxnWalletRecharge,
		PayerID:       userID,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.UserRepo.CreditWallet(tx, userID, amount); err != nil {
			return err
		}
		return s.TxnRepo.Create(tx, &txn)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &txn, nil
}

func (s *WalletService) PurchasePremium(userID uint, method entity.PaymentMethod) (*entity.Transaction, error) {
	if !method.Valid() {
		return nil, apperr.Wrapf(apperr.ErrInvalidRequest, "unknown payment method %q", method)
	}

	txn := entity.Transaction{
		CorrelationID: uuid.NewString(),
		Amount:        premiumPrice,
		PaymentMethod: method,
		PaymentStatus: entity.PaymentSuccess,
		Type:          entity.TxnPremiumPurchase,
		PayerID:       userID,
	}
	until := time.Now().AddDate(0, 0, 30)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.UserRepo.SetPremium(tx, userID, until); err != nil {
			return err
		}
		return s.TxnRepo.Create(tx, &txn)
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &txn, nil
}
