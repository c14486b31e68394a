package models

import (
	"time"
)

// User is a local or OAuth-created account.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255)" json:"-"` // bcrypt hash; empty for OAuth accounts
	Username  string    `gorm:"type:varchar(100);uniqueIndex" json:"username"`
	Role      string    `gorm:"type:varchar(50);default:user" json:"role"`
	Hobby     string    `gorm:"type:varchar(100)" json:"hobby"`
	CreatedAt time.Time `json:"createdAt"`

	Diaries []Diary `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) GetDisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
