package services

import (
	"fmt"
	"math"
	"time"

	"shelfwise/internal/domain"
	"shelfwise/internal/repos"
)

const (
	// fixedLowStockCutoff is the chart bucketing threshold. It is a literal on
	// purpose: the percentage chart ignores each product's own low_stock_at,
	// which only drives the per-row badge (see DisplayLevel).
	fixedLowStockCutoff = 5
	weeklyWindows       = 12
	recentCount         = 5
)

type DashboardService struct {
	Products *repos.ProductRepo
}

func NewDashboardService(products *repos.ProductRepo) *DashboardService {
	return &DashboardService{Products: products}
}

// Build assembles the dashboard for one owner. The caller supplies now so the
// weekly windows are pinnable in tests.
func (s *DashboardService) Build(ownerID string, now time.Time) (domain.Dashboard, error) {
	stats, err := s.Products.AllByOwner(ownerID)
	if err != nil {
		return domain.Dashboard{}, err
	}
	total, err := s.Products.CountByOwner(ownerID)
	if err != nil {
		return domain.Dashboard{}, err
	}
	lowCount, err := s.Products.CountLowStock(ownerID)
	if err != nil {
		return domain.Dashboard{}, err
	}
	recent, err := s.Products.Recent(ownerID, recentCount)
	if err != nil {
		return domain.Dashboard{}, err
	}

	d := domain.Dashboard{
		TotalProducts: total,
		LowStockCount: lowCount,
		TotalValue:    TotalValue(stats),
		Weekly:        WeeklyHistogram(stats, now),
	}
	d.InPercent, d.LowPercent, d.OutPercent = BucketPercentages(stats)

	for _, p := range recent {
		d.Recent = append(d.Recent, domain.RecentProduct{
			Product: p,
			Level:   DisplayLevel(p.Quantity, p.LowStockAt),
		})
	}

	max := 0
	for _, w := range d.Weekly {
		if w.Count > max {
			max = w.Count
		}
	}
	if max > 0 {
		for i := range d.Weekly {
			d.Weekly[i].HeightPct = d.Weekly[i].Count * 100 / max
		}
	}

	return d, nil
}

// StockBucket classifies a quantity against the fixed cutoff: out at zero,
// low through 5, in above.
func StockBucket(quantity int) domain.StockLevel {
	switch {
	case quantity == 0:
		return domain.StockOut
	case quantity <= fixedLowStockCutoff:
		return domain.StockLow
	default:
		return domain.StockIn
	}
}

// DisplayLevel is the threshold-aware per-row variant: a product with its own
// low_stock_at is low at or below that value, otherwise the default 5 applies.
func DisplayLevel(quantity int, lowStockAt *int) domain.StockLevel {
	if quantity == 0 {
		return domain.StockOut
	}
	cutoff := fixedLowStockCutoff
	if lowStockAt != nil {
		cutoff = *lowStockAt
	}
	if quantity <= cutoff {
		return domain.StockLow
	}
	return domain.StockIn
}

// BucketPercentages returns rounded in/low/out shares of the whole set. All
// zero when the set is empty.
func BucketPercentages(products []domain.ProductStat) (in, low, out int) {
	total := len(products)
	if total == 0 {
		return 0, 0, 0
	}
	var nIn, nLow, nOut int
	for _, p := range products {
		switch StockBucket(p.Quantity) {
		case domain.StockIn:
			nIn++
		case domain.StockLow:
			nLow++
		case domain.StockOut:
			nOut++
		}
	}
	return percent(nIn, total), percent(nLow, total), percent(nOut, total)
}

func percent(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

// TotalValue sums price*quantity over the set.
func TotalValue(products []domain.ProductStat) float64 {
	var sum float64
	for _, p := range products {
		sum += p.Price * float64(p.Quantity)
	}
	return sum
}

// WeeklyHistogram buckets creation timestamps into 12 consecutive 7-day
// windows ending at now, oldest first. Window i starts at midnight 7i days
// back and runs through the end of its sixth following day, bounds inclusive.
// Labels are the MM/DD of each window start.
func WeeklyHistogram(products []domain.ProductStat, now time.Time) []domain.WeekBucket {
	createdAt := make([]time.Time, 0, len(products))
	for _, p := range products {
		if t, err := time.Parse(time.RFC3339, p.CreatedAt); err == nil {
			createdAt = append(createdAt, t)
		}
	}

	buckets := make([]domain.WeekBucket, 0, weeklyWindows)
	for i := weeklyWindows - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i*7)
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 0, 7).Add(-time.Nanosecond)

		count := 0
		for _, t := range createdAt {
			if !t.Before(start) && !t.After(end) {
				count++
			}
		}

		buckets = append(buckets, domain.WeekBucket{
			Label: fmt.Sprintf("%02d/%02d", int(start.Month()), start.Day()),
			Count: count,
		})
	}
	return buckets
}
