package user

import (
	"time"

	"campushire/internal/common"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	Name         string      `json:"name"`
	Role         Role        `json:"role"`
	PasswordHash string      `json:"-"`
	IsDemo       bool        `json:"is_demo"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
