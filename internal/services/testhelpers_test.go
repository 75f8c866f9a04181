// internal/services/testhelpers_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prodmarket/marketplace-backend/internal/config"
	"github.com/prodmarket/marketplace-backend/internal/models"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Each test gets its own named in-memory database so parallel tests
	// cannot see each other's rows.
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Product{},
		&models.ChatMessage{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func createTestBusiness(t *testing.T, db *gorm.DB, name string) *models.Business {
	t.Helper()

	business := &models.Business{
		Name:           name,
		CanCreateUsers: true,
		CanAssignRoles: true,
	}
	require.NoError(t, db.Create(business).Error)
	return business
}

func createTestUser(t *testing.T, db *gorm.DB, businessID uuid.UUID, email string, role models.Role) *models.User {
	t.Helper()

	user := &models.User{
		Email:      email,
		FirstName:  "Test",
		LastName:   "User",
		Role:       role,
		BusinessID: businessID,
		IsActive:   true,
	}
	require.NoError(t, user.SetPassword("Password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string, status models.ProductStatus) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:       name,
		Price:      decimal.NewFromFloat(9.99),
		Status:     status,
		BusinessID: businessID,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func actorFor(user *models.User) Actor {
	return Actor{
		ID:         user.ID,
		Email:      user.Email,
		Role:       user.Role,
		BusinessID: user.BusinessID,
	}
}

func testJWTManager() *utils.JWTManager {
	return utils.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
}

func testNotifier() *NotificationService {
	return NewNotificationService(config.EmailConfig{Enabled: false}, "http://localhost:3000")
}
