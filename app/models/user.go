package models

import "gorm.io/gorm"

// User backs login and the admin gate.
type User struct {
	gorm.Model
	Name     string `gorm:"size:255;not null"            json:"name"`
	Email    string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password string `gorm:"size:255;not null"            json:"-"` // bcrypt hash, never serialised
}

// UserRole holds one role string per user. Absent rows mean "user";
// the admin gate looks this table up on every admin request.
type UserRole struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex;not null"     json:"user_id"`
	Role   string `gorm:"size:50;default:user"     json:"role"`
}
