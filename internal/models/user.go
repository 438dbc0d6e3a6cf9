// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string     `json:"name" gorm:"size:100;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'user'"`
	Mobile       string     `json:"mobile" gorm:"size:20"`
	Company      string     `json:"company" gorm:"size:150"`
	Location     string     `json:"location" gorm:"size:150"`
	JoinedDate   time.Time  `json:"joined_date" gorm:"type:date"`
	ConfirmToken string     `json:"-" gorm:"size:64;index"`
	ResetToken   string     `json:"-" gorm:"size:64;index"`
	ResetExpires *time.Time `json:"-"`
	ConfirmedAt  *time.Time `json:"confirmed_at"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
