package services

import (
	"testing"

	"tomato-backend/entity"
	"tomato-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutSplitsCartByRestaurant(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	ownerA := seedUser(t, db, "a@test.local", "owner")
	ownerB := seedUser(t, db, "b@test.local", "owner")
	restA := seedRestaurant(t, db, "A", ownerA.ID)
	restB := seedRestaurant(t, db, "B", ownerB.ID)
	dishA := seedMenuItem(t, db, restA.ID, "Dish A", 100)
	dishB := seedMenuItem(t, db, restB.ID, "Dish B", 50)

	out, err := svc.Checkout(customer.ID, &CheckoutReq{
		Items: []CheckoutItemIn{
			{FoodID: dishA.ID, Quantity: 1},
			{FoodID: dishB.ID, Quantity: 1},
		},
		PaymentMethod:   entity.PaymentUPI,
		DeliveryAddress: validAddress(),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	var orders []entity.Order
	require.NoError(t, db.Order("id").Find(&orders).Error)
	require.Len(t, orders, 2)
	var txns []entity.Transaction
	require.NoError(t, db.Order("id").Find(&txns).Error)
	require.Len(t, txns, 2)

	// merchant A: base=100, gst=1, fee=1, total=102
	a := orders[0]
	assert.Equal(t, restA.ID, a.RestaurantID)
	assert.Equal(t, int64(100), a.BaseAmount)
	assert.Equal(t, int64(1), a.GSTAmount)
	assert.Equal(t, int64(1), a.PlatformFeeAmount)
	assert.Equal(t, int64(102), a.TotalAmount)
	assert.Equal(t, entity.OrderPending, a.Status)

	// merchant B: base=50, gst=round(0.5)=1, fee=1, total=52
	b := orders[1]
	assert.Equal(t, restB.ID, b.RestaurantID)
	assert.Equal(t, int64(50), b.BaseAmount)
	assert.Equal(t, int64(1), b.GSTAmount)
	assert.Equal(t, int64(52), b.TotalAmount)

	// each order shares its correlation id with exactly its own transaction
	assert.Equal(t, a.CorrelationID, txns[0].CorrelationID)
	assert.Equal(t, b.CorrelationID, txns[1].CorrelationID)
	assert.NotEqual(t, a.CorrelationID, b.CorrelationID)
	for _, txn := range txns {
		assert.Equal(t, entity.PaymentSuccess, txn.PaymentStatus)
		assert.Equal(t, entity.TxnOrder, txn.Type)
		assert.Equal(t, customer.ID, txn.PayerID)
	}
	require.NotNil(t, txns[0].OrderID)
	assert.Equal(t, a.ID, *txns[0].OrderID)
}

func TestCheckoutGroupsLinesOfSameRestaurant(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	d1 := seedMenuItem(t, db, rest.ID, "Dish 1", 100)
	d2 := seedMenuItem(t, db, rest.ID, "Dish 2", 30)

	out, err := svc.Checkout(customer.ID, &CheckoutReq{
		Items: []CheckoutItemIn{
			{FoodID: d1.ID, Quantity: 2},
			{FoodID: d2.ID, Quantity: 3},
		},
		PaymentMethod:   entity.PaymentCard,
		DeliveryAddress: validAddress(),
	})
	require.NoError(t, err)
	require.Len(t, out, 1)

	var o entity.Order
	require.NoError(t, db.Preload("Items").First(&o, out[0].OrderID).Error)
	assert.Equal(t, int64(2*100+3*30), o.BaseAmount)
	assert.Len(t, o.Items, 2)

	// price snapshot, not a live reference
	assert.Equal(t, int64(100), o.Items[0].UnitPrice)
	assert.Equal(t, "Test User", o.DeliveryName)
	assert.Equal(t, "1 Main St", o.DeliveryAddress)
}

func TestCheckoutValidationCreatesNothing(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	dish := seedMenuItem(t, db, rest.ID, "Dish", 100)

	cases := []struct {
		name string
		req  CheckoutReq
	}{
		{"no items", CheckoutReq{PaymentMethod: entity.PaymentUPI, DeliveryAddress: validAddress()}},
		{"bad payment method", CheckoutReq{
			Items:           []CheckoutItemIn{{FoodID: dish.ID, Quantity: 1}},
			PaymentMethod:   "Barter",
			DeliveryAddress: validAddress(),
		}},
		{"zero quantity", CheckoutReq{
			Items:           []CheckoutItemIn{{FoodID: dish.ID, Quantity: 0}},
			PaymentMethod:   entity.PaymentUPI,
			DeliveryAddress: validAddress(),
		}},
		{"unknown food", CheckoutReq{
			Items:           []CheckoutItemIn{{FoodID: 9999, Quantity: 1}},
			PaymentMethod:   entity.PaymentUPI,
			DeliveryAddress: validAddress(),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Checkout(customer.ID, &tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
		})
	}

	var orderCount, txnCount int64
	require.NoError(t, db.Model(&entity.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&entity.Transaction{}).Count(&txnCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, txnCount)
}

func TestCheckoutAggregatesAddressErrors(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	dish := seedMenuItem(t, db, rest.ID, "Dish", 100)

	_, err := svc.Checkout(customer.ID, &CheckoutReq{
		Items:           []CheckoutItemIn{{FoodID: dish.ID, Quantity: 1}},
		PaymentMethod:   entity.PaymentUPI,
		DeliveryAddress: DeliveryAddressIn{Name: "", Phone: " ", Address: ""},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
	assert.Contains(t, err.Error(), "deliveryAddress.name")
	assert.Contains(t, err.Error(), "deliveryAddress.phone")
	assert.Contains(t, err.Error(), "deliveryAddress.address")
}

func TestCheckoutRejectsUnavailableItem(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	dish := seedMenuItem(t, db, rest.ID, "Dish", 100)
	require.NoError(t, db.Model(&entity.MenuItem{}).Where("id = ?", dish.ID).Update("available", false).Error)

	_, err := svc.Checkout(customer.ID, &CheckoutReq{
		Items:           []CheckoutItemIn{{FoodID: dish.ID, Quantity: 1}},
		PaymentMethod:   entity.PaymentUPI,
		DeliveryAddress: validAddress(),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}
