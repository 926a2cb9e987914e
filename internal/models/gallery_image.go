package models

import "time"

type GalleryImage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	URL       string `gorm:"size:500;not null" json:"url"`
	Alt       string `gorm:"size:200" json:"alt"`
	Visible   bool   `gorm:"default:true" json:"visible"`
	SortOrder int    `gorm:"default:0" json:"order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
