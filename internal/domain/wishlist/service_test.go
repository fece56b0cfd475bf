package wishlist

import (
	"testing"

	"github.com/your-org/storefront-backend/internal/domain/product"
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

	if err := db.AutoMigrate(&product.Product{}, &WishlistItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string) *product.Product {
	t.Helper()
	prod := &product.Product{Name: name, Category: "Misc", Price: 1000, InStock: true}
	if err := db.Create(prod).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return prod
}

func TestService_Toggle(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	prod := seedProduct(t, db, "Ceramic Mug")

	t.Run("first toggle adds", func(t *testing.T) {
		res, err := service.Toggle(1, prod.ID)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if !res.Added {
			t.Error("expected first toggle to add")
		}
	})

	t.Run("second toggle removes", func(t *testing.T) {
		res, err := service.Toggle(1, prod.ID)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if res.Added {
			t.Error("expected second toggle to remove")
		}

		var count int64
		db.Model(&WishlistItem{}).Where("user_id = ?", 1).Count(&count)
		if count != 0 {
			t.Errorf("expected empty wishlist, got %d items", count)
		}
	})

	t.Run("toggles are per user", func(t *testing.T) {
		if _, err := service.Toggle(1, prod.ID); err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		res, err := service.Toggle(2, prod.ID)
		if err != nil {
			t.Fatalf("Toggle() error = %v", err)
		}
		if !res.Added {
			t.Error("expected add for a different user")
		}
	})

	t.Run("missing product is rejected", func(t *testing.T) {
		if _, err := service.Toggle(1, 999); err == nil {
			t.Error("expected error for missing product")
		}
	})
}

func TestService_GetWishlist(t *testing.T) {
	db := setupTestDB(t)
	service := NewService(db)
	mug := seedProduct(t, db, "Ceramic Mug")
	bottle := seedProduct(t, db, "Steel Bottle")

	if _, err := service.Toggle(1, mug.ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := service.Toggle(1, bottle.ID); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	items, err := service.GetWishlist(1)
	if err != nil {
		t.Fatalf("GetWishlist() error = %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ProductID != bottle.ID {
		t.Errorf("expected newest item first, got product %d", items[0].ProductID)
	}
	if items[0].Product.Name != "Steel Bottle" {
		t.Errorf("expected preloaded product, got %q", items[0].Product.Name)
	}
}
