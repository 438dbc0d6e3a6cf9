// internal/models/vendor.go
package models

import "time"

// VendorAsset is a partner logo shown in the marketing marquee.
type VendorAsset struct {
	BaseModel
	Name    string `json:"name" gorm:"size:150;not null"`
	LogoURL string `json:"logo_url" gorm:"size:500"`
}

// VendorRegistration is an inbound application from a prospective vendor.
// It is read-only after creation; admins review but never edit it.
type VendorRegistration struct {
	BaseModel
	Name        string    `json:"name" gorm:"size:100;not null"`
	CompanyName string    `json:"company_name" gorm:"size:150;not null"`
	Mobile      string    `json:"mobile" gorm:"size:20;not null"`
	Email       string    `json:"email" gorm:"size:255;not null"`
	Location    string    `json:"location" gorm:"size:150"`
	ProductName string    `json:"product_name" gorm:"size:255"`
	Message     string    `json:"message" gorm:"type:text"`
	Date        time.Time `json:"date" gorm:"type:date"`
}
