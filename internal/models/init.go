package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// SeedAdminUser creates or updates an operator account. Used by cmd/seed only;
// the server never fabricates admin accounts on its own.
func SeedAdminUser(email, password, name, role string) (*AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, errors.New("seed admin: email is required")
	}
	if password == "" {
		return nil, errors.New("seed admin: password is required")
	}
	if role != "admin" && role != "super_admin" {
		return nil, errors.New("seed admin: role must be admin or super_admin")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	var existing AdminUser
	err = DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		existing.PasswordHash = string(hash)
		existing.Role = role
		existing.IsActive = true
		if name != "" {
			existing.Name = name
		}
		if err := DB.Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	}

	admin := AdminUser{
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
