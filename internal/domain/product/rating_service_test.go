package product

import "testing"

func TestRatingService_RateProduct(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	seedProducts(t, db, Product{Name: "Mug", Category: "Kitchen", Price: 24900, InStock: true})

	t.Run("first rating sets the aggregate", func(t *testing.T) {
		summary, err := service.RateProduct(1, 1, 4)
		if err != nil {
			t.Fatalf("RateProduct() error = %v", err)
		}
		if summary.Average != 4.0 || summary.Count != 1 {
			t.Errorf("expected average 4.0 count 1, got %v count %d", summary.Average, summary.Count)
		}

		var prod Product
		if err := db.First(&prod, 1).Error; err != nil {
			t.Fatalf("failed to reload product: %v", err)
		}
		if prod.Rating != 4.0 || prod.RatingCount != 1 {
			t.Errorf("expected product aggregate 4.0/1, got %v/%d", prod.Rating, prod.RatingCount)
		}
	})

	t.Run("re-rating replaces instead of adding", func(t *testing.T) {
		summary, err := service.RateProduct(1, 1, 2)
		if err != nil {
			t.Fatalf("RateProduct() error = %v", err)
		}
		if summary.Average != 2.0 || summary.Count != 1 {
			t.Errorf("expected average 2.0 count 1, got %v count %d", summary.Average, summary.Count)
		}
	})

	t.Run("average rounds to one decimal", func(t *testing.T) {
		if _, err := service.RateProduct(2, 1, 5); err != nil {
			t.Fatalf("RateProduct() error = %v", err)
		}
		summary, err := service.RateProduct(3, 1, 3)
		if err != nil {
			t.Fatalf("RateProduct() error = %v", err)
		}
		// (2 + 5 + 3) / 3 = 3.333...
		if summary.Average != 3.3 {
			t.Errorf("expected average 3.3, got %v", summary.Average)
		}
		if summary.Count != 3 {
			t.Errorf("expected count 3, got %d", summary.Count)
		}
	})

	t.Run("rejects out-of-range stars", func(t *testing.T) {
		if _, err := service.RateProduct(1, 1, 0); err == nil {
			t.Error("expected error for 0 stars")
		}
		if _, err := service.RateProduct(1, 1, 6); err == nil {
			t.Error("expected error for 6 stars")
		}
	})

	t.Run("rejects missing product", func(t *testing.T) {
		if _, err := service.RateProduct(1, 999, 3); err == nil {
			t.Error("expected error for missing product")
		}
	})
}

func TestRatingService_GetUserRating(t *testing.T) {
	db := setupTestDB(t)
	service := NewRatingService(db)

	seedProducts(t, db, Product{Name: "Mug", Category: "Kitchen", Price: 24900, InStock: true})

	if _, err := service.GetUserRating(1, 1); err == nil {
		t.Error("expected error before rating exists")
	}

	if _, err := service.RateProduct(1, 1, 5); err != nil {
		t.Fatalf("RateProduct() error = %v", err)
	}

	rating, err := service.GetUserRating(1, 1)
	if err != nil {
		t.Fatalf("GetUserRating() error = %v", err)
	}
	if rating.Stars != 5 {
		t.Errorf("expected 5 stars, got %d", rating.Stars)
	}
}
