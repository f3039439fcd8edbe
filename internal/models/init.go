package models

import (
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultSuperuser creates a first superuser account when the user
// table is empty. The default credentials only exist so a fresh
// install is reachable; the password must be rotated immediately.
func InitDefaultSuperuser(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)
	if count > 0 {
		return nil
	}

	if strings.TrimSpace(email) == "" {
		email = "admin@example.com"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  "admin",
		IsSuperuser:  true,
	}
	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_superuser_created_with_default_password", "email", email)
	} else {
		logger.Warnw("default_superuser_created", "email", email, "password_hidden", true)
	}
	return nil
}
