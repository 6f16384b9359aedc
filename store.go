package storefront

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store wraps a SQLite database holding the product catalog and uploaded
// image metadata.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL with a busy timeout lets admin writes proceed while the menu is read.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS products (
    slug TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    price INTEGER NOT NULL DEFAULT 0,
    image TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1,
    position INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const productColumns = `slug, name, category, price, image, description, published, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(r rowScanner) (Product, error) {
	var p Product
	var published int
	if err := r.Scan(&p.Slug, &p.Name, &p.Category, &p.Price, &p.Image, &p.Description, &published, &p.UpdatedAt); err != nil {
		return Product{}, err
	}
	p.Published = published == 1
	return p, nil
}

func (s *Store) queryProducts(query string, args ...any) ([]Product, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListProducts returns published products in menu order. A category of ""
// or "all" returns every category.
func (s *Store) ListProducts(category string) ([]Product, error) {
	category = normalizeCategory(category)
	if category == "" {
		return s.queryProducts(`SELECT ` + productColumns + ` FROM products WHERE published = 1 ORDER BY position, name`)
	}
	return s.queryProducts(`SELECT `+productColumns+` FROM products WHERE published = 1 AND category = ? ORDER BY position, name`, category)
}

// ListAllProducts returns every product, drafts included, for the admin.
func (s *Store) ListAllProducts() ([]Product, error) {
	return s.queryProducts(`SELECT ` + productColumns + ` FROM products ORDER BY position, name`)
}

// GetProduct returns a single published product by slug.
func (s *Store) GetProduct(slug string) (Product, error) {
	return scanProduct(s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = ? AND published = 1`, slug))
}

// GetProductAny returns a product by slug regardless of published status.
func (s *Store) GetProductAny(slug string) (Product, error) {
	return scanProduct(s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE slug = ?`, slug))
}

// SaveProduct upserts a product. Negative prices are stored as zero and the
// category is normalized to lowercase. New products go to the end of the menu.
func (s *Store) SaveProduct(p Product) error {
	if p.Price < 0 {
		p.Price = 0
	}
	published := 0
	if p.Published {
		published = 1
	}
	_, err := s.db.Exec(`
INSERT INTO products (slug, name, category, price, image, description, published, position, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM products), ?)
ON CONFLICT(slug) DO UPDATE SET
    name = excluded.name,
    category = excluded.category,
    price = excluded.price,
    image = excluded.image,
    description = excluded.description,
    published = excluded.published,
    updated_at = excluded.updated_at`,
		p.Slug, strings.TrimSpace(p.Name), normalizeCategory(p.Category), p.Price, p.Image, p.Description, published,
		time.Now().UTC().Format("2006-01-02"))
	return err
}

// DeleteProduct removes a product by slug.
func (s *Store) DeleteProduct(slug string) error {
	_, err := s.db.Exec(`DELETE FROM products WHERE slug = ?`, slug)
	return err
}

// CountProducts returns the number of products, drafts included.
func (s *Store) CountProducts() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

// SeedProducts inserts products only when the catalog is empty and reports
// whether it did.
func (s *Store) SeedProducts(products []Product) (bool, error) {
	n, err := s.CountProducts()
	if err != nil || n > 0 {
		return false, err
	}
	for _, p := range products {
		if err := s.SaveProduct(p); err != nil {
			return false, err
		}
	}
	return true, nil
}

// ListImages returns uploaded image metadata, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(filename string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// SaveImage records uploaded image metadata.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes image metadata by filename.
func (s *Store) DeleteImage(filename string) error {
	_, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	return err
}

func normalizeCategory(c string) string {
	c = strings.ToLower(strings.TrimSpace(c))
	if c == "all" {
		return ""
	}
	return c
}
