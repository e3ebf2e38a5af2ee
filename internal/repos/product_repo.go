package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"shelfwise/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
		INSERT INTO products(id,owner_id,name,sku,price,quantity,low_stock_at,created_at)
		VALUES(?,?,?,?,?,?,?,?)
	`, p.ID, p.OwnerID, p.Name, p.SKU, p.Price, p.Quantity, p.LowStockAt, p.CreatedAt)
	return err
}

// DeleteOwned removes at most one row matching both id and owner. Zero rows
// affected is not an error; deleting someone else's product is a no-op.
func (r *ProductRepo) DeleteOwned(ownerID, id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ? AND owner_id = ?`, id, ownerID)
	return err
}

// Search lists an owner's products newest first with an optional
// case-insensitive substring match on name, plus the total match count.
func (r *ProductRepo) Search(ownerID, q string, limit, offset int) ([]domain.Product, int, error) {
	where := `owner_id = ?`
	args := []any{ownerID}
	if q != "" {
		where += ` AND LOWER(name) LIKE ?`
		args = append(args, "%"+strings.ToLower(q)+"%")
	}

	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products WHERE `+where, args...); err != nil {
		return nil, 0, err
	}

	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT id, owner_id, name, sku, price, quantity, low_stock_at, created_at
		FROM products
		WHERE `+where+`
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?
	`, append(args, limit, offset)...)
	return out, total, err
}

// AllByOwner returns the narrow projection the dashboard aggregates over.
func (r *ProductRepo) AllByOwner(ownerID string) ([]domain.ProductStat, error) {
	var out []domain.ProductStat
	err := r.db.Select(&out, `
		SELECT price, quantity, low_stock_at, created_at
		FROM products
		WHERE owner_id = ?
	`, ownerID)
	return out, err
}

func (r *ProductRepo) Recent(ownerID string, n int) ([]domain.Product, error) {
	var out []domain.Product
	err := r.db.Select(&out, `
		SELECT id, owner_id, name, sku, price, quantity, low_stock_at, created_at
		FROM products
		WHERE owner_id = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`, ownerID, n)
	return out, err
}

func (r *ProductRepo) CountByOwner(ownerID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE owner_id = ?`, ownerID)
	return n, err
}

// CountLowStock counts rows that declare a threshold and sit at 5 or fewer
// units. The literal 5 here mirrors the dashboard card, not the per-row badge.
func (r *ProductRepo) CountLowStock(ownerID string) (int, error) {
	var n int
	err := r.db.Get(&n, `
		SELECT COUNT(*) FROM products
		WHERE owner_id = ? AND low_stock_at IS NOT NULL AND quantity <= 5
	`, ownerID)
	return n, err
}
