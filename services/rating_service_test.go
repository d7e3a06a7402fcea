package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"tomato-backend/entity"
	"tomato-backend/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitAndRemoveRatingUpdatesAggregate(t *testing.T) {
	db := openTestDB(t)
	svc := newTestRatingService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	first := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderCompleted, time.Now())
	second := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderCompleted, time.Now())

	require.NoError(t, svc.Submit(customer.ID, first.ID, 5, "great", nil))
	require.NoError(t, svc.Submit(customer.ID, second.ID, 3, "fine", nil))

	var r entity.Restaurant
	require.NoError(t, db.First(&r, rest.ID).Error)
	assert.Equal(t, 4.0, r.Rating)
	assert.Equal(t, 2, r.TotalReviews)

	// removing the 5 leaves only the 3
	require.NoError(t, svc.Remove(customer.ID, first.ID))
	require.NoError(t, db.First(&r, rest.ID).Error)
	assert.Equal(t, 3.0, r.Rating)
	assert.Equal(t, 1, r.TotalReviews)

	// last rating gone resets the pair
	require.NoError(t, svc.Remove(customer.ID, second.ID))
	require.NoError(t, db.First(&r, rest.ID).Error)
	assert.Equal(t, 0.0, r.Rating)
	assert.Equal(t, 0, r.TotalReviews)
}

func TestRatingAverageRoundsToOneDecimal(t *testing.T) {
	db := openTestDB(t)
	svc := newTestRatingService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)

	// 5, 4, 4 → 13/3 = 4.333… → 4.3
	for _, v := range []int{5, 4, 4} {
		o := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderCompleted, time.Now())
		require.NoError(t, svc.Submit(customer.ID, o.ID, v, "", nil))
	}

	var r entity.Restaurant
	require.NoError(t, db.First(&r, rest.ID).Error)
	assert.Equal(t, 4.3, r.Rating)
	assert.Equal(t, 3, r.TotalReviews)
}

func TestSubmitRatingGuards(t *testing.T) {
	db := openTestDB(t)
	svc := newTestRatingService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	other := seedUser(t, db, "x@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)
	completed := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderCompleted, time.Now())
	pending := seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderPending, time.Now())

	// value out of range
	assert.ErrorIs(t, svc.Submit(customer.ID, completed.ID, 0, "", nil), apperr.ErrInvalidRequest)
	assert.ErrorIs(t, svc.Submit(customer.ID, completed.ID, 6, "", nil), apperr.ErrInvalidRequest)

	// not the caller's order
	assert.ErrorIs(t, svc.Submit(other.ID, completed.ID, 5, "", nil), apperr.ErrNotFound)

	// not completed yet
	assert.ErrorIs(t, svc.Submit(customer.ID, pending.ID, 5, "", nil), apperr.ErrInvalidState)

	// second rating on the same order
	require.NoError(t, svc.Submit(customer.ID, completed.ID, 5, "", nil))
	assert.ErrorIs(t, svc.Submit(customer.ID, completed.ID, 4, "", nil), apperr.ErrAlreadyRated)

	// remove with nothing present
	assert.ErrorIs(t, svc.Remove(customer.ID, pending.ID), apperr.ErrNoRating)
}

func TestConcurrentSubmissionsKeepAggregateConsistent(t *testing.T) {
	db := openTestDB(t)
	svc := newTestRatingService(db)

	customer := seedUser(t, db, "c@test.local", "customer")
	owner := seedUser(t, db, "o@test.local", "owner")
	rest := seedRestaurant(t, db, "A", owner.ID)

	const n = 8
	orders := make([]*entity.Order, n)
	for i := range orders {
		orders[i] = seedOrder(t, db, customer.ID, rest.ID, 100, entity.OrderCompleted, time.Now())
	}

	var wg sync.WaitGroup
	for i, o := range orders {
		wg.Add(1)
		go func(i int, orderID uint) {
			defer wg.Done()
			rating := 1 + i%5
			assert.NoError(t, svc.Submit(customer.ID, orderID, rating, fmt.Sprintf("r%d", i), nil))
		}(i, o.ID)
	}
	wg.Wait()

	var sum int
	for i := 0; i < n; i++ {
		sum += 1 + i%5
	}
	want := float64(int(float64(sum)/float64(n)*10+0.5)) / 10

	var r entity.Restaurant
	require.NoError(t, db.First(&r, rest.ID).Error)
	assert.Equal(t, n, r.TotalReviews)
	assert.Equal(t, want, r.Rating)
}
