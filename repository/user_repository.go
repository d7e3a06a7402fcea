package repository

import (
	"time"

	"tomato-backend/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error
	return count, err
}

// CreditWallet adds amount to the wallet balance atomically.
func (r *UserRepository) CreditWallet(tx *gorm.DB, userID uint, amount int64) error {
	return tx.Model(&entity.User{}).
		Where("id = ?", userID).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", amount)).Error
}

func (r *UserRepository) SetPremium(tx *gorm.DB, userID uint, until time.Time) error {
	return tx.Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"premium": true, "premium_until": until}).Error
}
