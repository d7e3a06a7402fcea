package configs

import (
	"tomato-backend/entity"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdmin creates the platform operator account if it does not exist yet.
func SeedAdmin() error {
	email := getEnv("ADMIN_EMAIL", "admin@tomato.local")
	password := getEnv("ADMIN_PASSWORD", "admin1234")

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&entity.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Platform Admin",
		Role:     "admin",
	}).Error
}
