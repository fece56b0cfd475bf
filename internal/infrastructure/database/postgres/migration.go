// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&user.User{},

		&product.Product{},
		&product.Rating{},

		&cart.CartItem{},
		&wishlist.WishlistItem{},

		&order.Order{},
		&order.OrderItem{},

		&payment.Attempt{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// User indexes
		"CREATE INDEX IF NOT EXISTS idx_users_email_active ON users(email, is_active)",

		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_stock ON products(category, in_stock)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",

		// Cart indexes
		"CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items(user_id)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders(status, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_orders_phone_number ON orders(phone_number)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",

		// Order items indexes
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items(product_id)",

		// Payment attempt indexes
		"CREATE INDEX IF NOT EXISTS idx_payment_attempts_user ON payment_attempts(user_id)",
		"CREATE INDEX IF NOT EXISTS idx_payment_attempts_status ON payment_attempts(status)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			log.Printf("⚠️ Failed to create index: %v", err)
			failCount++
		} else {
			successCount++
		}
	}

	log.Printf("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// SeedInitialData inserts initial data into the database
func (m *Migration) SeedInitialData() error {
	log.Println("🌱 Seeding initial data...")

	if err := m.seedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := m.seedSampleProducts(); err != nil {
		return fmt.Errorf("failed to seed sample products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}

// seedAdminUser creates the default staff account. The staff flag is
// only ever set here or by operators directly in the database.
func (m *Migration) seedAdminUser() error {
	log.Println("👤 Seeding admin user...")

	var existing user.User
	result := m.db.Where("email = ?", "admin@example.com").First(&existing)
	if result.Error == nil {
		log.Printf("⏭️ Admin user already exists with ID: %d", existing.ID)
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("Admin1234"), 10)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	adminUser := user.User{
		Email:    "admin@example.com",
		Password: string(hashedPassword),
		Name:     "Store Admin",
		IsActive: true,
		IsAdmin:  true,
	}

	if err := m.db.Create(&adminUser).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Println("✅ Created admin user: admin@example.com")
	return nil
}

// seedSampleProducts creates a small starter catalog for development
func (m *Migration) seedSampleProducts() error {
	log.Println("🛍️ Seeding sample products...")

	var productCount int64
	m.db.Model(&product.Product{}).Count(&productCount)
	if productCount > 0 {
		log.Println("⏭️ Products already exist")
		return nil
	}

	sampleProducts := []product.Product{
		{
			Name:        "Classic Cotton T-Shirt",
			Category:    "Clothing",
			Description: "Soft combed-cotton tee with a regular fit.",
			Price:       49900, // ₹499
			InStock:     true,
		},
		{
			Name:        "Wireless Earbuds",
			Category:    "Electronics",
			Description: "Bluetooth 5.3 earbuds with 24-hour battery case.",
			Price:       199900, // ₹1999
			InStock:     true,
		},
		{
			Name:        "Stainless Steel Water Bottle",
			Category:    "Home",
			Description: "1L insulated bottle, keeps drinks cold for 12 hours.",
			Price:       79900, // ₹799
			InStock:     true,
		},
	}

	for _, prod := range sampleProducts {
		if err := m.db.Create(&prod).Error; err != nil {
			log.Printf("⚠️ Failed to create sample product %s: %v", prod.Name, err)
		} else {
			log.Printf("✅ Created sample product: %s", prod.Name)
		}
	}

	return nil
}
