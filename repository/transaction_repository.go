package repository

import (
	"tomato-backend/entity"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	DB *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) Create(tx *gorm.DB, t *entity.Transaction) error {
	return tx.Create(t).Error
}

func (r *TransactionRepository) ListForUser(userID uint, limit int) ([]entity.Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []entity.Transaction
	err := r.DB.Where("payer_id = ?", userID).
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}
