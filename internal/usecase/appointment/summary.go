package appointment

import (
	"context"
	"sort"
	"time"

	domain "github.com/cortemaestro/barbershop-api/internal/domain/appointment"
	"github.com/cortemaestro/barbershop-api/internal/dto"
	"github.com/cortemaestro/barbershop-api/internal/timezone"
)

// DailySummary aggregates completed appointments of a calendar day into
// per-service counts and revenue.
type DailySummary struct {
	repo domain.Repository
	tz   string
}

func NewDailySummary(repo domain.Repository, tz string) *DailySummary {
	return &DailySummary{repo: repo, tz: tz}
}

func (uc *DailySummary) Execute(
	ctx context.Context,
	date time.Time,
) (*dto.SummaryResult, error) {

	loc := timezone.Location(uc.tz)
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	completed, err := uc.repo.ListCompletedBetween(ctx, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	byService := map[uint]*dto.SummaryRow{}
	for _, ap := range completed {
		row, ok := byService[ap.ServiceID]
		if !ok {
			row = &dto.SummaryRow{
				ServiceID: ap.ServiceID,
				Name:      ap.Service.Name,
			}
			byService[ap.ServiceID] = row
		}

		// The snapshot frozen at booking/payment time insulates the
		// report from later price edits.
		price := ap.Service.Price
		if ap.PriceSnapshot != nil && *ap.PriceSnapshot > 0 {
			price = *ap.PriceSnapshot
		}

		row.Count++
		row.Total += price
	}

	result := &dto.SummaryResult{Rows: []dto.SummaryRow{}}
	for _, row := range byService {
		result.Rows = append(result.Rows, *row)
		result.GrandTotal += row.Total
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		return result.Rows[i].ServiceID < result.Rows[j].ServiceID
	})

	return result, nil
}
