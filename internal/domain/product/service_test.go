package product

import (
	"testing"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&Product{}, &Rating{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testConfig() *config.Config {
	return &config.Config{}
}

func seedProducts(t *testing.T, db *gorm.DB, products ...Product) {
	t.Helper()
	for i := range products {
		if err := db.Create(&products[i]).Error; err != nil {
			t.Fatalf("failed to seed product: %v", err)
		}
	}
}

func TestService_GetProducts(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	inStock := true
	outOfStock := false
	seedProducts(t, db,
		Product{Name: "Ceramic Mug", Category: "Kitchen", Description: "Glazed stoneware mug", Price: 24900, InStock: true},
		Product{Name: "Steel Bottle", Category: "Kitchen", Description: "Insulated water bottle", Price: 59900, InStock: true},
		Product{Name: "Desk Lamp", Category: "Decor", Description: "Warm LED lamp", Price: 129900, InStock: false},
	)

	t.Run("search matches name case-insensitively", func(t *testing.T) {
		resp, err := service.GetProducts(&ProductListRequest{Page: 1, Limit: 20, Search: "mug"})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if len(resp.Products) != 1 {
			t.Fatalf("expected 1 product, got %d", len(resp.Products))
		}
		if resp.Products[0].Name != "Ceramic Mug" {
			t.Errorf("expected Ceramic Mug, got %q", resp.Products[0].Name)
		}
	})

	t.Run("search matches description", func(t *testing.T) {
		resp, err := service.GetProducts(&ProductListRequest{Page: 1, Limit: 20, Search: "insulated"})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if len(resp.Products) != 1 {
			t.Fatalf("expected 1 product, got %d", len(resp.Products))
		}
	})

	t.Run("category filter", func(t *testing.T) {
		resp, err := service.GetProducts(&ProductListRequest{Page: 1, Limit: 20, Category: "Kitchen"})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if len(resp.Products) != 2 {
			t.Errorf("expected 2 products, got %d", len(resp.Products))
		}
	})

	t.Run("in-stock filter", func(t *testing.T) {
		resp, err := service.GetProducts(&ProductListRequest{Page: 1, Limit: 20, InStock: &inStock})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if len(resp.Products) != 2 {
			t.Errorf("expected 2 in-stock products, got %d", len(resp.Products))
		}

		resp, err = service.GetProducts(&ProductListRequest{Page: 1, Limit: 20, InStock: &outOfStock})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if len(resp.Products) != 1 {
			t.Errorf("expected 1 out-of-stock product, got %d", len(resp.Products))
		}
	})

	t.Run("pagination", func(t *testing.T) {
		resp, err := service.GetProducts(&ProductListRequest{Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if len(resp.Products) != 2 {
			t.Errorf("expected 2 products on page 1, got %d", len(resp.Products))
		}
		if resp.Pagination.Total != 3 {
			t.Errorf("expected total 3, got %d", resp.Pagination.Total)
		}
		if resp.Pagination.TotalPages != 2 {
			t.Errorf("expected 2 total pages, got %d", resp.Pagination.TotalPages)
		}
		if !resp.Pagination.HasNext {
			t.Error("expected HasNext on page 1")
		}

		resp, err = service.GetProducts(&ProductListRequest{Page: 2, Limit: 2})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if len(resp.Products) != 1 {
			t.Errorf("expected 1 product on page 2, got %d", len(resp.Products))
		}
		if !resp.Pagination.HasPrev {
			t.Error("expected HasPrev on page 2")
		}
	})

	t.Run("sort by price ascending", func(t *testing.T) {
		resp, err := service.GetProducts(&ProductListRequest{Page: 1, Limit: 20, SortBy: "price", SortOrder: "asc"})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
		if resp.Products[0].Name != "Ceramic Mug" {
			t.Errorf("expected cheapest product first, got %q", resp.Products[0].Name)
		}
	})

	t.Run("invalid sort field falls back to created_at", func(t *testing.T) {
		_, err := service.GetProducts(&ProductListRequest{Page: 1, Limit: 20, SortBy: "password; DROP TABLE products"})
		if err != nil {
			t.Fatalf("GetProducts() error = %v", err)
		}
	})
}

func TestService_GetProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	seedProducts(t, db, Product{Name: "Ceramic Mug", Category: "Kitchen", Price: 24900, InStock: true})

	prod, err := service.GetProduct(1)
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if prod.Name != "Ceramic Mug" {
		t.Errorf("expected Ceramic Mug, got %q", prod.Name)
	}

	if _, err := service.GetProduct(999); err == nil {
		t.Error("expected error for missing product")
	}
}

func TestService_LatestArrivals(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	for i := 0; i < 10; i++ {
		seedProducts(t, db, Product{Name: "Item", Category: "Misc", Price: 1000, InStock: true})
	}

	products, err := service.LatestArrivals(0)
	if err != nil {
		t.Fatalf("LatestArrivals() error = %v", err)
	}
	if len(products) != 8 {
		t.Errorf("expected default limit of 8, got %d", len(products))
	}
	if products[0].ID < products[1].ID {
		t.Error("expected newest products first")
	}
}

func TestService_ListCategories(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	seedProducts(t, db,
		Product{Name: "Mug", Category: "Kitchen", Price: 1000, InStock: true},
		Product{Name: "Bottle", Category: "Kitchen", Price: 1000, InStock: true},
		Product{Name: "Lamp", Category: "Decor", Price: 1000, InStock: true},
	)

	categories, err := service.ListCategories()
	if err != nil {
		t.Fatalf("ListCategories() error = %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0] != "Decor" || categories[1] != "Kitchen" {
		t.Errorf("expected sorted categories, got %v", categories)
	}
}

func TestService_CreateProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	prod, err := service.CreateProduct(&ProductCreateRequest{
		Name:     "Ceramic Mug",
		Category: "Kitchen",
		Price:    24900,
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if !prod.InStock {
		t.Error("expected new products to default to in stock")
	}

	outOfStock := false
	prod, err = service.CreateProduct(&ProductCreateRequest{
		Name:     "Back-ordered Lamp",
		Category: "Decor",
		Price:    129900,
		InStock:  &outOfStock,
	})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if prod.InStock {
		t.Error("expected explicit in_stock=false to be honored")
	}

	var stored Product
	if err := db.First(&stored, prod.ID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if stored.InStock {
		t.Error("expected in_stock=false to be persisted, not the column default")
	}
}

func TestService_UpdateProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	seedProducts(t, db, Product{Name: "Mug", Category: "Kitchen", Price: 24900, InStock: true})

	newPrice := int64(19900)
	prod, err := service.UpdateProduct(1, &ProductUpdateRequest{Price: &newPrice})
	if err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}
	if prod.Price != 19900 {
		t.Errorf("expected price 19900, got %d", prod.Price)
	}

	badPrice := int64(0)
	if _, err := service.UpdateProduct(1, &ProductUpdateRequest{Price: &badPrice}); err == nil {
		t.Error("expected error for non-positive price")
	}

	if _, err := service.UpdateProduct(999, &ProductUpdateRequest{}); err == nil {
		t.Error("expected error for missing product")
	}
}

func TestService_DeleteProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	seedProducts(t, db, Product{Name: "Mug", Category: "Kitchen", Price: 24900, InStock: true})

	if err := service.DeleteProduct(1); err != nil {
		t.Fatalf("DeleteProduct() error = %v", err)
	}

	// Soft deleted: gone from normal queries, still present unscoped.
	if _, err := service.GetProduct(1); err == nil {
		t.Error("expected deleted product to be hidden")
	}
	var count int64
	db.Unscoped().Model(&Product{}).Count(&count)
	if count != 1 {
		t.Errorf("expected soft-deleted row to remain, got count %d", count)
	}

	if err := service.DeleteProduct(999); err == nil {
		t.Error("expected error for missing product")
	}
}

func TestService_ToggleStock(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db, testConfig())

	seedProducts(t, db, Product{Name: "Mug", Category: "Kitchen", Price: 24900, InStock: true})

	prod, err := service.ToggleStock(1)
	if err != nil {
		t.Fatalf("ToggleStock() error = %v", err)
	}
	if prod.InStock {
		t.Error("expected stock toggled off")
	}

	// The returned product must agree with what is stored.
	var stored Product
	if err := db.First(&stored, 1).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	if stored.InStock != prod.InStock {
		t.Errorf("stored in_stock = %v, returned %v", stored.InStock, prod.InStock)
	}

	prod, err = service.ToggleStock(1)
	if err != nil {
		t.Fatalf("ToggleStock() error = %v", err)
	}
	if !prod.InStock {
		t.Error("expected stock toggled back on")
	}
}
