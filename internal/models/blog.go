// internal/models/blog.go
package models

import "time"

type BlogPost struct {
	BaseModel
	Slug     string    `json:"slug" gorm:"size:255;index"`
	Title    string    `json:"title" gorm:"size:255;not null"`
	Content  string    `json:"content" gorm:"type:text;not null"`
	Category string    `json:"category" gorm:"size:100"`
	Image    string    `json:"image" gorm:"size:500"`
	Author   string    `json:"author" gorm:"size:100"`
	Date     time.Time `json:"date" gorm:"type:date;index"`
}
