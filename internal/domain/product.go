package domain

// Product is an inventory row. Every product belongs to exactly one owner;
// every query and mutation must filter on OwnerID.
type Product struct {
	ID         string  `db:"id"`
	OwnerID    string  `db:"owner_id"`
	Name       string  `db:"name"`
	SKU        *string `db:"sku"`
	Price      float64 `db:"price"`
	Quantity   int     `db:"quantity"`
	LowStockAt *int    `db:"low_stock_at"`
	CreatedAt  string  `db:"created_at"` // RFC3339 UTC
}

// ProductInput is the validated payload for a create. OwnerID is deliberately
// absent: the service stamps the authenticated owner, never the form.
type ProductInput struct {
	Name       string
	SKU        *string
	Price      float64
	Quantity   int
	LowStockAt *int
}

// ProductStat is the narrow projection the dashboard aggregates over.
type ProductStat struct {
	Price      float64 `db:"price"`
	Quantity   int     `db:"quantity"`
	LowStockAt *int    `db:"low_stock_at"`
	CreatedAt  string  `db:"created_at"`
}
