package repos

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

// Seeded demo accounts. DemoUserID owns the demo inventory.
const (
	DemoUserID  = "u-demo"
	QuinnUserID = "u-quinn"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// Each pooled connection to :memory: gets its own database; pin to one.
		db.SetMaxOpenConns(1)
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure users exist (idempotent; safe to run every start)
	if err := seedUsers(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Products, one owner per row
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  owner_id TEXT NOT NULL,
  name TEXT NOT NULL,
  sku TEXT,
  price NUMERIC NOT NULL CHECK (price >= 0),
  quantity INTEGER NOT NULL CHECK (quantity >= 0),
  low_stock_at INTEGER CHECK (low_stock_at >= 0),
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_owner      ON products(owner_id);
CREATE INDEX IF NOT EXISTS idx_products_name       ON products(LOWER(name));
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(LOWER(email));

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

// seedUsers ensures the demo accounts exist (idempotent). Sign-up is not a
// feature of this app; accounts are provisioned out of band.
func seedUsers(db *sqlx.DB) error {
	type u struct {
		ID, Email, Name, Hash string
	}
	mk := func(id, email, name, raw string) u {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return u{ID: id, Email: email, Name: name, Hash: string(h)}
	}

	users := []u{
		mk(DemoUserID, "demo@shelfwise.test", "Demo", "Passw0rd!"),
		mk(QuinnUserID, "quinn@shelfwise.test", "Quinn", "Passw0rd!"),
	}

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for _, x := range users {
		if _, err := tx.Exec(`
			INSERT INTO users(id,email,name,password_hash)
			VALUES(?,?,?,?)
			ON CONFLICT(email) DO NOTHING
		`, x.ID, x.Email, x.Name, x.Hash); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SeedDemoProducts fills an empty products table with 25 rows for the demo
// user, creation dates spread 5 days apart so the dashboard has history.
func SeedDemoProducts(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products")

	threshold := 5
	now := time.Now().UTC()

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	for i := 0; i < 25; i++ {
		p := struct {
			Name      string
			Price     float64
			Quantity  int
			CreatedAt string
		}{
			Name:      fmt.Sprintf("Product %d", i+1),
			Price:     10 + float64((i*37)%90) + 0.99,
			Quantity:  (i * 7) % 20,
			CreatedAt: now.AddDate(0, 0, -i*5).Format(time.RFC3339),
		}
		if _, err := tx.Exec(`
			INSERT INTO products(id,owner_id,name,sku,price,quantity,low_stock_at,created_at)
			VALUES(?,?,?,?,?,?,?,?)
		`, uuid.NewString(), DemoUserID, p.Name, fmt.Sprintf("SKU-%03d", i+1), p.Price, p.Quantity, threshold, p.CreatedAt); err != nil {
			return err
		}
	}

	return tx.Commit()
}
