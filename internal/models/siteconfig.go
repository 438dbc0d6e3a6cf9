// internal/models/siteconfig.go
package models

import "time"

// SiteConfigID pins the singleton row; UpsertSiteConfig always writes it.
const SiteConfigID uint = 1

type SiteConfig struct {
	ID                     uint      `json:"-" gorm:"primaryKey"`
	SiteName               string    `json:"site_name" gorm:"size:150"`
	BannerTitle            string    `json:"banner_title" gorm:"size:255"`
	BannerSubtitle         string    `json:"banner_subtitle" gorm:"size:255"`
	LogoURL                string    `json:"logo_url" gorm:"size:500"`
	FaviconURL             string    `json:"favicon_url" gorm:"size:500"`
	WhatsappNumber         string    `json:"whatsapp_number" gorm:"size:20"`
	AdminNotificationEmail string    `json:"admin_notification_email" gorm:"size:255"`
	SocialLinks            JSONB     `json:"social_links" gorm:"type:jsonb"`
	UpdatedAt              time.Time `json:"updated_at"`
}
