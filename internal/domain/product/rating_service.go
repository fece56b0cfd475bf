// internal/domain/product/rating_service.go
package product

import (
	"fmt"
	"math"

	"gorm.io/gorm"
)

// RatingService handles product star ratings
type RatingService struct {
	db *gorm.DB
}

// NewRatingService creates a new rating service
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{db: db}
}

// RateRequest represents a star rating submission
type RateRequest struct {
	Stars int `json:"stars" binding:"required,min=1,max=5"`
}

// RatingSummary is the aggregate written back onto the product
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// RateProduct records or replaces the user's rating for a product and
// recomputes the product's aggregate in the same transaction.
func (s *RatingService) RateProduct(userID, productID uint, stars int) (*RatingSummary, error) {
	if stars < 1 || stars > 5 {
		return nil, fmt.Errorf("stars must be between 1 and 5")
	}

	var product Product
	if err := s.db.Where("id = ?", productID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	var summary RatingSummary

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var rating Rating
		result := tx.Where("product_id = ? AND user_id = ?", productID, userID).First(&rating)
		switch {
		case result.Error == nil:
			if err := tx.Model(&rating).Update("stars", stars).Error; err != nil {
				return fmt.Errorf("failed to update rating: %w", err)
			}
		case result.Error == gorm.ErrRecordNotFound:
			rating = Rating{ProductID: productID, UserID: userID, Stars: stars}
			if err := tx.Create(&rating).Error; err != nil {
				return fmt.Errorf("failed to create rating: %w", err)
			}
		default:
			return fmt.Errorf("failed to look up rating: %w", result.Error)
		}

		var agg struct {
			Avg   float64
			Count int64
		}
		if err := tx.Model(&Rating{}).
			Select("COALESCE(AVG(stars), 0) as avg, COUNT(*) as count").
			Where("product_id = ?", productID).
			Scan(&agg).Error; err != nil {
			return fmt.Errorf("failed to aggregate ratings: %w", err)
		}

		summary.Average = math.Round(agg.Avg*10) / 10
		summary.Count = int(agg.Count)

		if err := tx.Model(&Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
			"rating":       summary.Average,
			"rating_count": summary.Count,
		}).Error; err != nil {
			return fmt.Errorf("failed to update product aggregate: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// GetUserRating returns the user's rating for a product, if any
func (s *RatingService) GetUserRating(userID, productID uint) (*Rating, error) {
	var rating Rating
	result := s.db.Where("product_id = ? AND user_id = ?", productID, userID).First(&rating)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("rating not found")
		}
		return nil, fmt.Errorf("failed to retrieve rating: %w", result.Error)
	}

	return &rating, nil
}
