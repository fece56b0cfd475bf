// internal/domain/checkout/draft.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Draft is the in-progress checkout state between the address step and
// order placement. It lives in Redis under the user's key and expires.
type Draft struct {
	UserID       uint      `json:"user_id"`
	CustomerName string    `json:"customer_name"`
	AddressLine1 string    `json:"address_line1"`
	AddressLine2 string    `json:"address_line2"`
	City         string    `json:"city"`
	State        string    `json:"state"`
	Pincode      string    `json:"pincode"`
	PhoneNumber  string    `json:"phone_number"`
	SavedAt      time.Time `json:"saved_at"`
}

// ErrDraftNotFound is returned when no live draft exists for the user
var ErrDraftNotFound = fmt.Errorf("checkout draft not found or expired")

// DraftStore persists checkout drafts
type DraftStore interface {
	Save(ctx context.Context, draft *Draft) error
	Get(ctx context.Context, userID uint) (*Draft, error)
	Delete(ctx context.Context, userID uint) error
}

// RedisDraftStore stores drafts as JSON in Redis with a TTL
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftStore creates a Redis-backed draft store
func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(userID uint) string {
	return fmt.Sprintf("checkout:draft:%d", userID)
}

// Save writes the draft, resetting its TTL
func (s *RedisDraftStore) Save(ctx context.Context, draft *Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to encode checkout draft: %w", err)
	}

	if err := s.client.Set(ctx, draftKey(draft.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save checkout draft: %w", err)
	}

	return nil
}

// Get returns the user's live draft, or ErrDraftNotFound
func (s *RedisDraftStore) Get(ctx context.Context, userID uint) (*Draft, error) {
	data, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout draft: %w", err)
	}

	var draft Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode checkout draft: %w", err)
	}

	return &draft, nil
}

// Delete removes the user's draft
func (s *RedisDraftStore) Delete(ctx context.Context, userID uint) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete checkout draft: %w", err)
	}
	return nil
}
