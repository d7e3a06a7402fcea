package services

import (
	"testing"
	"time"

	"tomato-backend/entity"
	"tomato-backend/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// a fresh connection would get its own empty :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Transaction{},
	))
	return db
}

func newTestOrderService(db *gorm.DB) *OrderService {
	rate := decimal.NewFromFloat(0.01)
	return NewOrderService(
		db,
		repository.NewOrderRepository(db),
		repository.NewTransactionRepository(db),
		repository.NewRestaurantRepository(db),
		rate, rate,
	)
}

func newTestRatingService(db *gorm.DB) *RatingService {
	return NewRatingService(db, repository.NewOrderRepository(db), repository.NewRestaurantRepository(db))
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	u := &entity.User{Email: email, Password: "x", Name: "Test User", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedRestaurant(t *testing.T, db *gorm.DB, name string, ownerID uint) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{Name: name, Address: "1 Main St", OwnerID: ownerID}
	require.NoError(t, db.Create(r).Error)
	return r
}

func seedMenuItem(t *testing.T, db *gorm.DB, restID uint, name string, price int64) *entity.MenuItem {
	t.Helper()
	m := &entity.MenuItem{Name: name, Price: price, Available: true, RestaurantID: restID}
	require.NoError(t, db.Create(m).Error)
	return m
}

func seedOrder(t *testing.T, db *gorm.DB, userID, restID uint, base int64, status entity.OrderStatus, createdAt time.Time) *entity.Order {
	t.Helper()
	fees := CalculateFees(base, decimal.NewFromFloat(0.01), decimal.NewFromFloat(0.01))
	o := &entity.Order{
		CorrelationID:     "test",
		BaseAmount:        fees.Base,
		GSTAmount:         fees.GST,
		PlatformFeeAmount: fees.PlatformFee,
		TotalAmount:       fees.Total,
		Status:            status,
		DeliveryName:      "Test User",
		DeliveryPhone:     "555-0100",
		DeliveryAddress:   "1 Main St",
		UserID:            userID,
		RestaurantID:      restID,
	}
	o.CreatedAt = createdAt
	require.NoError(t, db.Create(o).Error)
	return o
}

func validAddress() DeliveryAddressIn {
	return DeliveryAddressIn{Name: "Test User", Phone: "555-0100", Address: "1 Main St"}
}
