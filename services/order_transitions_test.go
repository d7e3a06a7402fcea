package services

import (
	"testing"
	"time"

	"tomato-backend/entity"
	"tomato-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceStatusFollowsLifecycle(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	order := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPending, time.Now())

	for _, next := range []entity.OrderStatus{entity.OrderPreparing, entity.OrderReady, entity.OrderCompleted} {
		require.NoError(t, svc.AdvanceStatus(owner.ID, order.ID, next))
		var o entity.Order
		require.NoError(t, db.First(&o, order.ID).Error)
		assert.Equal(t, next, o.Status)
	}

	// terminal: no further moves
	err := svc.AdvanceStatus(owner.ID, order.ID, entity.OrderPreparing)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}

func TestAdvanceStatusRejectsSkipsAndBackwardMoves(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	order := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPending, time.Now())

	for _, illegal := range []entity.OrderStatus{entity.OrderReady, entity.OrderCompleted, entity.OrderPending, entity.OrderCancelled} {
		err := svc.AdvanceStatus(owner.ID, order.ID, illegal)
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, "move pending -> %s", illegal)
	}

	var o entity.Order
	require.NoError(t, db.First(&o, order.ID).Error)
	assert.Equal(t, entity.OrderPending, o.Status)
}

func TestAdvanceStatusUnknownValue(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	order := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPending, time.Now())

	err := svc.AdvanceStatus(owner.ID, order.ID, "shipped")
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}

func TestAdvanceStatusRequiresOwnership(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	stranger := seedUser(t, db, "s@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	order := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPending, time.Now())

	// other owners cannot even observe the order
	err := svc.AdvanceStatus(stranger.ID, order.ID, entity.OrderPreparing)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCancelOnlyWhilePending(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)

	pending := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPending, time.Now())
	require.NoError(t, svc.Cancel(customer.ID, pending.ID))
	var o entity.Order
	require.NoError(t, db.First(&o, pending.ID).Error)
	assert.Equal(t, entity.OrderCancelled, o.Status)

	preparing := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPreparing, time.Now())
	err := svc.Cancel(customer.ID, preparing.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
	require.NoError(t, db.First(&o, preparing.ID).Error)
	assert.Equal(t, entity.OrderPreparing, o.Status, "failed cancel must leave the order unchanged")
}

func TestCancelForeignOrderIsNotFound(t *testing.T) {
	db := openTestDB(t)
	svc := newTestOrderService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	other := seedUser(t, db, "x@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	order := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPending, time.Now())

	err := svc.Cancel(other.ID, order.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
