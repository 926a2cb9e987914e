package models

import "time"

type Comment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Message string `gorm:"size:500;not null" json:"message"`
	Visible bool   `gorm:"default:true" json:"visible"`

	CreatedAt time.Time `json:"created_at"`
}
