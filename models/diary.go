package models

import "time"

// Diary is a single diary entry. Image holds an object-storage key (or a
// full URL for rows written before the storage migration). Emotion is nil
// until the classifier has tagged the content. UserID is nullable so rows
// can outlive their owner.
type Diary struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"type:varchar(255)" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Image     string    `gorm:"type:varchar(512)" json:"image"`
	IsPublic  bool      `gorm:"column:is_public;default:false" json:"isPublic"`
	Emotion   *string   `gorm:"type:varchar(50)" json:"emotion"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    *uint     `gorm:"index" json:"userId"`
}
