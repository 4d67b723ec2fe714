package data

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// The food catalog persists products already resolved from the nutrition
// provider, keyed by normalized name. It saves limiter capacity across
// process restarts; user ledgers are deliberately not stored here.

var (
	dbPath   string
	dbPathMu sync.RWMutex
)

// FormatDateTimeISO8601 formats a time.Time to ISO 8601 with UTC timezone.
// Example output: YYYY-MM-DDTHH:MM:SS.MMMZ
func FormatDateTimeISO8601(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// FoodItem is a catalog row.
type FoodItem struct {
	NameKey         string    `json:"name_key"`
	ProductName     string    `json:"product_name"`
	CaloriesPer100g float64   `json:"calories_per_100g"`
	CreatedAt       time.Time `json:"created_at"`
	LastUpdated     time.Time `json:"last_updated"`
}

// InitDatabase sets the database location and creates the schema.
func InitDatabase(path string) error {
	dbPathMu.Lock()
	dbPath = path
	dbPathMu.Unlock()

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	_, err = db.Exec(`
	CREATE TABLE IF NOT EXISTS foodCatalog (
		name_key TEXT PRIMARY KEY,
		product_name TEXT NOT NULL,
		calories_per_100g REAL NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_updated DATETIME DEFAULT CURRENT_TIMESTAMP
	)
	`)
	if err != nil {
		return fmt.Errorf("failed to create foodCatalog table: %v", err)
	}

	_, err = db.Exec(`
	CREATE INDEX IF NOT EXISTS idx_food_catalog_product_name ON foodCatalog(product_name)
	`)
	if err != nil {
		return fmt.Errorf("failed to create foodCatalog index: %v", err)
	}

	return nil
}

func openDatabase() (*sql.DB, error) {
	dbPathMu.RLock()
	path := dbPath
	dbPathMu.RUnlock()

	if path == "" {
		return nil, fmt.Errorf("database path is not set, call InitDatabase first")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}
	return db, nil
}

func closeDatabase(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}

// SaveFoodItem inserts or replaces a catalog entry.
func SaveFoodItem(item FoodItem) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	now := FormatDateTimeISO8601(time.Now())
	_, err = db.Exec(`
	INSERT INTO foodCatalog (name_key, product_name, calories_per_100g, created_at, last_updated)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(name_key) DO UPDATE SET
		product_name = excluded.product_name,
		calories_per_100g = excluded.calories_per_100g,
		last_updated = excluded.last_updated
	`, item.NameKey, item.ProductName, item.CaloriesPer100g, now, now)
	if err != nil {
		return fmt.Errorf("failed to save food item %q: %v", item.NameKey, err)
	}
	return nil
}

// GetFoodItem fetches one catalog entry by its normalized name key.
func GetFoodItem(nameKey string) (FoodItem, error) {
	db, err := openDatabase()
	if err != nil {
		return FoodItem{}, err
	}
	defer closeDatabase(db)

	var item FoodItem
	var createdAt, lastUpdated string
	err = db.QueryRow(`
	SELECT name_key, product_name, calories_per_100g, created_at, last_updated
	FROM foodCatalog WHERE name_key = ?
	`, nameKey).Scan(&item.NameKey, &item.ProductName, &item.CaloriesPer100g, &createdAt, &lastUpdated)
	if err == sql.ErrNoRows {
		return FoodItem{}, fmt.Errorf("food item %q not found", nameKey)
	}
	if err != nil {
		return FoodItem{}, fmt.Errorf("failed to query food item %q: %v", nameKey, err)
	}

	item.CreatedAt = parseStoredTime(createdAt)
	item.LastUpdated = parseStoredTime(lastUpdated)
	return item, nil
}

// GetAllFoodItems returns the whole catalog, most recently updated first.
func GetAllFoodItems() ([]FoodItem, error) {
	db, err := openDatabase()
	if err != nil {
		return nil, err
	}
	defer closeDatabase(db)

	rows, err := db.Query(`
	SELECT name_key, product_name, calories_per_100g, created_at, last_updated
	FROM foodCatalog ORDER BY last_updated DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query food items: %v", err)
	}
	defer rows.Close()

	return scanFoodItems(rows)
}

// SearchFoodItems finds catalog entries whose key or display name contains
// the query, case-insensitively.
func SearchFoodItems(query string) ([]FoodItem, error) {
	db, err := openDatabase()
	if err != nil {
		return nil, err
	}
	defer closeDatabase(db)

	pattern := "%" + query + "%"
	rows, err := db.Query(`
	SELECT name_key, product_name, calories_per_100g, created_at, last_updated
	FROM foodCatalog
	WHERE name_key LIKE ? OR product_name LIKE ? COLLATE NOCASE
	ORDER BY product_name
	`, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search food items: %v", err)
	}
	defer rows.Close()

	return scanFoodItems(rows)
}

// DeleteFoodItem removes a catalog entry. Deleting a missing key is an error
// so the API can report it.
func DeleteFoodItem(nameKey string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	result, err := db.Exec(`DELETE FROM foodCatalog WHERE name_key = ?`, nameKey)
	if err != nil {
		return fmt.Errorf("failed to delete food item %q: %v", nameKey, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %v", err)
	}
	if affected == 0 {
		return fmt.Errorf("food item %q not found", nameKey)
	}
	return nil
}

func scanFoodItems(rows *sql.Rows) ([]FoodItem, error) {
	items := []FoodItem{}
	for rows.Next() {
		var item FoodItem
		var createdAt, lastUpdated string
		if err := rows.Scan(&item.NameKey, &item.ProductName, &item.CaloriesPer100g, &createdAt, &lastUpdated); err != nil {
			return nil, fmt.Errorf("failed to scan food item: %v", err)
		}
		item.CreatedAt = parseStoredTime(createdAt)
		item.LastUpdated = parseStoredTime(lastUpdated)
		items = append(items, item)
	}
	return items, rows.Err()
}

// parseStoredTime accepts both the ISO 8601 format written by this code and
// SQLite's CURRENT_TIMESTAMP default.
func parseStoredTime(value string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05.000Z", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
