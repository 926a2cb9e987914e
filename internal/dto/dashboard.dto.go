package dto

import (
	"time"

	"github.com/cortemaestro/barbershop-api/internal/models"
)

type TodayBlock struct {
	Total  int64 `json:"total"`
	Paid   int64 `json:"paid"`
	Unpaid int64 `json:"unpaid"`
}

type RevenueBlock struct {
	Day   int64 `json:"day"`
	Week  int64 `json:"week"`
	Month int64 `json:"month"`
}

type PaymentsBlock struct {
	UnpaidCount   int64 `json:"unpaidCount"`
	RefundedCount int64 `json:"refundedCount"`
	PaidCount     int64 `json:"paidCount"`
}

type CommentsBlock struct {
	VisibleCount int64            `json:"visibleCount"`
	Latest       []models.Comment `json:"latest,omitempty"`
}

type TotalBlock struct {
	Total int64 `json:"total"`
}

// DashboardResult is the single-call KPI payload for the admin home.
type DashboardResult struct {
	Today       TodayBlock           `json:"today"`
	Upcoming24h []models.Appointment `json:"upcoming24h"`
	Revenue     RevenueBlock         `json:"revenue"`
	Payments    PaymentsBlock        `json:"payments"`
	Comments    CommentsBlock        `json:"comments"`
	Services    TotalBlock           `json:"services"`
	Barbers     TotalBlock           `json:"barbers"`
	Now         time.Time            `json:"now"`
}

// MetricsResult is the lighter variant used by the metrics screen.
type MetricsResult struct {
	Today       TodayBlock           `json:"today"`
	Revenue     RevenueBlock         `json:"revenue"`
	Upcoming24h []models.Appointment `json:"upcoming24h"`
	Services    TotalBlock           `json:"services"`
	Barbers     TotalBlock           `json:"barbers"`
	Comments    CommentsBlock        `json:"comments"`
	Now         time.Time            `json:"now"`
}
