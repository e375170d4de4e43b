package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Subject  string `gorm:"uniqueIndex"` // identity-provider subject
	Username string
	Email    string
	Avatar   string
}
