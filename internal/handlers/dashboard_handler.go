package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cortemaestro/barbershop-api/internal/cache"
	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/dto"
	"github.com/cortemaestro/barbershop-api/internal/httperr"
	"github.com/cortemaestro/barbershop-api/internal/httpresp"
	"github.com/cortemaestro/barbershop-api/internal/models"
	"github.com/cortemaestro/barbershop-api/internal/timezone"
)

// ======================================================
// HANDLER (admin KPIs)
// ======================================================

type DashboardHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	tz    string
}

func NewDashboardHandler(db *gorm.DB, c *cache.Cache, tz string) *DashboardHandler {
	return &DashboardHandler{db: db, cache: c, tz: tz}
}

// ======================================================
// DASHBOARD (one call, every KPI)
// ======================================================

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()

	var cached dto.DashboardResult
	if hit, err := h.cache.GetJSON(ctx, cache.DashboardKey, &cached); err == nil && hit {
		httpresp.OK(c, cached)
		return
	}

	result, err := h.buildDashboard(ctx)
	if err != nil {
		httperr.Internal(c, "dashboard_failed", "Error al calcular indicadores.")
		return
	}

	_ = h.cache.SetJSON(ctx, cache.DashboardKey, result)

	httpresp.OK(c, result)
}

func (h *DashboardHandler) buildDashboard(ctx context.Context) (dto.DashboardResult, error) {
	now := timezone.NowIn(h.tz)

	today, err := h.todayBlock(ctx, now)
	if err != nil {
		return dto.DashboardResult{}, err
	}

	revenue, err := h.revenueBlock(ctx, now)
	if err != nil {
		return dto.DashboardResult{}, err
	}

	upcoming, err := h.upcoming24h(ctx, now, 10)
	if err != nil {
		return dto.DashboardResult{}, err
	}

	var payments dto.PaymentsBlock
	counts := []struct {
		status string
		dest   *int64
	}{
		{string(domain.PaymentUnpaid), &payments.UnpaidCount},
		{string(domain.PaymentRefunded), &payments.RefundedCount},
		{string(domain.PaymentPaid), &payments.PaidCount},
	}
	for _, ct := range counts {
		if err := h.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("payment_status = ?", ct.status).
			Count(ct.dest).Error; err != nil {
			return dto.DashboardResult{}, err
		}
	}

	var comments dto.CommentsBlock
	if err := h.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("visible = ?", true).
		Count(&comments.VisibleCount).Error; err != nil {
		return dto.DashboardResult{}, err
	}
	if err := h.db.WithContext(ctx).
		Where("visible = ?", true).
		Order("created_at DESC").
		Limit(5).
		Find(&comments.Latest).Error; err != nil {
		return dto.DashboardResult{}, err
	}

	var services, barbers dto.TotalBlock
	if err := h.db.WithContext(ctx).Model(&models.Service{}).Count(&services.Total).Error; err != nil {
		return dto.DashboardResult{}, err
	}
	if err := h.db.WithContext(ctx).Model(&models.Barber{}).Count(&barbers.Total).Error; err != nil {
		return dto.DashboardResult{}, err
	}

	return dto.DashboardResult{
		Today:       today,
		Upcoming24h: upcoming,
		Revenue:     revenue,
		Payments:    payments,
		Comments:    comments,
		Services:    services,
		Barbers:     barbers,
		Now:         now,
	}, nil
}

// ======================================================
// METRICS (lighter payload, no payment counts)
// ======================================================

func (h *DashboardHandler) Metrics(c *gin.Context) {
	ctx := c.Request.Context()

	var cached dto.MetricsResult
	if hit, err := h.cache.GetJSON(ctx, cache.MetricsKey, &cached); err == nil && hit {
		httpresp.OK(c, cached)
		return
	}

	now := timezone.NowIn(h.tz)

	today, err := h.todayBlock(ctx, now)
	if err != nil {
		httperr.Internal(c, "metrics_failed", "Error al calcular métricas.")
		return
	}

	revenue, err := h.revenueBlock(ctx, now)
	if err != nil {
		httperr.Internal(c, "metrics_failed", "Error al calcular métricas.")
		return
	}

	upcoming, err := h.upcoming24h(ctx, now, 5)
	if err != nil {
		httperr.Internal(c, "metrics_failed", "Error al calcular métricas.")
		return
	}

	var comments dto.CommentsBlock
	if err := h.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("visible = ?", true).
		Count(&comments.VisibleCount).Error; err != nil {
		httperr.Internal(c, "metrics_failed", "Error al calcular métricas.")
		return
	}

	var services, barbers dto.TotalBlock
	if err := h.db.WithContext(ctx).Model(&models.Service{}).Count(&services.Total).Error; err != nil {
		httperr.Internal(c, "metrics_failed", "Error al calcular métricas.")
		return
	}
	if err := h.db.WithContext(ctx).Model(&models.Barber{}).Count(&barbers.Total).Error; err != nil {
		httperr.Internal(c, "metrics_failed", "Error al calcular métricas.")
		return
	}

	result := dto.MetricsResult{
		Today:       today,
		Revenue:     revenue,
		Upcoming24h: upcoming,
		Services:    services,
		Barbers:     barbers,
		Comments:    comments,
		Now:         now,
	}

	_ = h.cache.SetJSON(ctx, cache.MetricsKey, result)

	httpresp.OK(c, result)
}

// ======================================================
// SHARED BLOCKS
// ======================================================

func (h *DashboardHandler) todayBlock(ctx context.Context, now time.Time) (dto.TodayBlock, error) {
	dayStart := startOfDay(now)
	dayEnd := dayStart.Add(24 * time.Hour)

	var block dto.TodayBlock

	base := func() *gorm.DB {
		return h.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("start_time >= ? AND start_time < ?", dayStart, dayEnd)
	}

	if err := base().Count(&block.Total).Error; err != nil {
		return block, err
	}
	if err := base().
		Where("payment_status = ?", string(domain.PaymentPaid)).
		Count(&block.Paid).Error; err != nil {
		return block, err
	}
	if err := base().
		Where("payment_status = ?", string(domain.PaymentUnpaid)).
		Count(&block.Unpaid).Error; err != nil {
		return block, err
	}

	return block, nil
}

// revenueBlock sums price snapshots of paid appointments whose paidAt
// falls in the day, Monday week and calendar month around now.
func (h *DashboardHandler) revenueBlock(ctx context.Context, now time.Time) (dto.RevenueBlock, error) {
	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := startOfMonth(now)

	var block dto.RevenueBlock

	ranges := []struct {
		from, to time.Time
		dest     *int64
	}{
		{dayStart, dayStart.Add(24 * time.Hour), &block.Day},
		{weekStart, weekStart.AddDate(0, 0, 7), &block.Week},
		{monthStart, monthStart.AddDate(0, 1, 0), &block.Month},
	}

	for _, r := range ranges {
		if err := h.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Select("COALESCE(SUM(price_snapshot), 0)").
			Where("payment_status = ?", string(domain.PaymentPaid)).
			Where("paid_at >= ? AND paid_at < ?", r.from, r.to).
			Scan(r.dest).Error; err != nil {
			return block, err
		}
	}

	return block, nil
}

func (h *DashboardHandler) upcoming24h(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]models.Appointment, error) {

	items := make([]models.Appointment, 0, limit)
	err := h.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("start_time >= ? AND start_time <= ?", now, now.Add(24*time.Hour)).
		Where("status <> ?", string(domain.StatusCancelled)).
		Order("start_time ASC").
		Limit(limit).
		Find(&items).Error
	return items, err
}
