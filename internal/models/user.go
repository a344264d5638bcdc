package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Name      string `gorm:"not null"`
	StudentID string `gorm:"uniqueIndex;default:null"`
	Role      string `gorm:"default:'student'"`
	Status    string `gorm:"default:'active'"`
	Wallet    *Wallet
	LastLogin *time.Time
}
