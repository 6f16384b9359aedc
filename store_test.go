package storefront

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func slugs(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Slug
	}
	return out
}

func TestSaveAndGetProduct(t *testing.T) {
	s := setupTestStore(t)

	p := Product{
		Slug:        "sofa-esty",
		Name:        "Sofa Esty",
		Category:    " Sofa ",
		Price:       2500000,
		Image:       "/public/uploads/sofa-esty.jpg",
		Description: "Sofa lounge",
		Published:   true,
	}
	if err := s.SaveProduct(p); err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}

	got, err := s.GetProduct("sofa-esty")
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Category != "sofa" {
		t.Errorf("Category = %q, want sofa", got.Category)
	}
	if got.Price != 2500000 || got.Name != "Sofa Esty" || !got.Published {
		t.Errorf("got %+v", got)
	}
	if got.UpdatedAt == "" {
		t.Error("UpdatedAt not set")
	}
}

func TestSaveProductUpdateKeepsPosition(t *testing.T) {
	s := setupTestStore(t)
	for _, p := range []Product{
		{Slug: "a", Name: "A", Category: "meja", Published: true},
		{Slug: "b", Name: "B", Category: "meja", Published: true},
	} {
		if err := s.SaveProduct(p); err != nil {
			t.Fatalf("SaveProduct: %v", err)
		}
	}
	if err := s.SaveProduct(Product{Slug: "a", Name: "Z", Category: "meja", Price: -5, Published: true}); err != nil {
		t.Fatalf("update: %v", err)
	}

	list, err := s.ListProducts("")
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b"}, slugs(list)); diff != "" {
		t.Errorf("order changed (-want +got):\n%s", diff)
	}
	if list[0].Name != "Z" || list[0].Price != 0 {
		t.Errorf("updated product = %+v", list[0])
	}
}

func TestGetProductUnpublished(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SaveProduct(Product{Slug: "draft", Name: "Draft", Category: "set"}); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	if _, err := s.GetProduct("draft"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetProduct(draft) err = %v, want ErrNoRows", err)
	}
	if _, err := s.GetProductAny("draft"); err != nil {
		t.Errorf("GetProductAny(draft): %v", err)
	}
	all, _ := s.ListAllProducts()
	if len(all) != 1 {
		t.Errorf("ListAllProducts = %d, want 1", len(all))
	}
}

func TestListProductsByCategory(t *testing.T) {
	s := setupTestStore(t)
	if _, err := s.SeedProducts(DefaultProducts()); err != nil {
		t.Fatalf("SeedProducts: %v", err)
	}

	tests := []struct {
		category string
		want     int
	}{
		{"", 9},
		{"all", 9},
		{"meja", 4},
		{"SOFA", 2},
		{"set", 3},
		{"kursi", 0},
	}
	for _, tt := range tests {
		got, err := s.ListProducts(tt.category)
		if err != nil {
			t.Fatalf("ListProducts(%q): %v", tt.category, err)
		}
		if len(got) != tt.want {
			t.Errorf("ListProducts(%q) = %d products, want %d", tt.category, len(got), tt.want)
		}
	}
}

func TestSeedProductsOnlyWhenEmpty(t *testing.T) {
	s := setupTestStore(t)
	seeded, err := s.SeedProducts(DefaultProducts())
	if err != nil || !seeded {
		t.Fatalf("first seed = %v, %v", seeded, err)
	}
	seeded, err = s.SeedProducts(DefaultProducts())
	if err != nil || seeded {
		t.Errorf("second seed = %v, %v", seeded, err)
	}
}

func TestDeleteProduct(t *testing.T) {
	s := setupTestStore(t)
	if err := s.SaveProduct(Product{Slug: "x", Name: "X", Category: "meja", Published: true}); err != nil {
		t.Fatalf("SaveProduct: %v", err)
	}
	if err := s.DeleteProduct("x"); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if err := s.DeleteProduct("missing"); err != nil {
		t.Errorf("DeleteProduct(missing): %v", err)
	}
	if n, _ := s.CountProducts(); n != 0 {
		t.Errorf("count = %d after delete", n)
	}
}

func TestImages(t *testing.T) {
	s := setupTestStore(t)
	imgs := []Image{
		{Filename: "old.jpg", OriginalName: "old.png", Width: 800, Height: 600, Size: 1000, UploadedAt: "2026-01-01T00:00:00Z"},
		{Filename: "new.jpg", OriginalName: "new.png", Width: 400, Height: 300, Size: 500, UploadedAt: "2026-02-01T00:00:00Z"},
	}
	for _, img := range imgs {
		if err := s.SaveImage(img); err != nil {
			t.Fatalf("SaveImage: %v", err)
		}
	}
	got, err := s.ListImages()
	if err != nil {
		t.Fatalf("ListImages: %v", err)
	}
	if diff := cmp.Diff([]Image{imgs[1], imgs[0]}, got); diff != "" {
		t.Errorf("images (-want +got):\n%s", diff)
	}
	if ok, _ := s.ImageExists("old.jpg"); !ok {
		t.Error("ImageExists(old.jpg) = false")
	}
	if err := s.DeleteImage("old.jpg"); err != nil {
		t.Fatalf("DeleteImage: %v", err)
	}
	if ok, _ := s.ImageExists("old.jpg"); ok {
		t.Error("image still present after delete")
	}
}
