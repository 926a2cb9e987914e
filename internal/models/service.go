package models

import "time"

// Price is in CLP, which has no minor unit, so plain integers.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Price       int    `gorm:"not null" json:"price"`
	DurationMin int    `gorm:"not null" json:"duration"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
