package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerName string `gorm:"size:100;not null" json:"customer_name"`

	// Phone as typed by the customer; PhoneNormalized is digits only and
	// is the deduplication key for the one-booking-per-day rule.
	Phone           string `gorm:"size:30;not null" json:"phone"`
	PhoneNormalized string `gorm:"size:30;index" json:"-"`

	StartTime time.Time `gorm:"index" json:"start"`
	EndTime   time.Time `json:"end"`

	// Calendar day of StartTime, midnight in the shop timezone.
	BookingDate time.Time `gorm:"index" json:"booking_date"`

	Status        string `gorm:"size:20;default:'SCHEDULED'" json:"status"`
	PaymentStatus string `gorm:"size:20;default:'UNPAID'" json:"payment_status"`

	PaidAt        *time.Time `json:"paid_at"`
	PriceSnapshot *int       `json:"price_snapshot"`

	Notes string `gorm:"size:255" json:"notes"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
