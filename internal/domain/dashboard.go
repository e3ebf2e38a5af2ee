package domain

type StockLevel string

const (
	StockOut StockLevel = "OUT_OF_STOCK"
	StockLow StockLevel = "LOW_STOCK"
	StockIn  StockLevel = "IN_STOCK"
)

// WeekBucket is one 7-day window of the creation histogram. Label is the
// zero-padded MM/DD of the window start. HeightPct is the bar height relative
// to the busiest week, precomputed for the chart template.
type WeekBucket struct {
	Label     string
	Count     int
	HeightPct int
}

// RecentProduct pairs a product with its threshold-aware display level.
type RecentProduct struct {
	Product
	Level StockLevel
}

type Dashboard struct {
	TotalProducts int
	LowStockCount int
	TotalValue    float64

	InPercent  int
	LowPercent int
	OutPercent int

	Weekly []WeekBucket
	Recent []RecentProduct
}
