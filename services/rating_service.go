package services

import (
	"encoding/json"
	"math"
	"sync"

	"tomato-backend/entity"
	"tomato-backend/pkg/apperr"
	"tomato-backend/repository"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RatingService attaches and detaches ratings on completed orders and keeps
// each restaurant's rating aggregate consistent with them. The aggregate is
// recomputed by scanning the restaurant's rated orders; the scan and the
// aggregate write run under a per-restaurant mutex so two concurrent
// submissions for the same restaurant cannot interleave and publish a stale
// average.
type RatingService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	RestRepo *repository.RestaurantRepository

	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func NewRatingService(db *gorm.DB, repo *repository.OrderRepository, restRepo *repository.RestaurantRepository) *RatingService {
	return &RatingService{
		DB:       db,
		Repo:     repo,
		RestRepo: restRepo,
		locks:    map[uint]*sync.Mutex{},
	}
}

func (s *RatingService) restaurantLock(restID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[restID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[restID] = l
	}
	return l
}

// Submit rates a completed, not-yet-rated order owned by the caller and
// recomputes the restaurant aggregate.
func (s *RatingService) Submit(userID, orderID uint, rating int, review string, images []string) error {
	if rating < 1 || rating > 5 {
		return apperr.Wrapf(apperr.ErrInvalidRequest, "rating must be 1..5, got %d", rating)
	}

	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return lookupErr(err, "order not found")
	}

	lock := s.restaurantLock(o.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// re-read under the lock; the order may have been rated meanwhile
		o, err := s.Repo.GetOrderForUser(userID, orderID)
		if err != nil {
			return lookupErr(err, "order not found")
		}
		if o.Status != entity.OrderCompleted {
			return apperr.Wrapf(apperr.ErrInvalidState, "only completed orders can be rated, order is %s", o.Status)
		}
		if o.Rating != 0 {
			return apperr.Wrap(apperr.ErrAlreadyRated, "order already has a rating")
		}

		imgJSON, err := imagesJSON(images)
		if err != nil {
			return apperr.Internal(err)
		}
		if err := s.Repo.SetRating(tx, o.ID, rating, review, imgJSON); err != nil {
			return apperr.Internal(err)
		}
		return s.recompute(tx, o.RestaurantID)
	})
}

// Remove detaches the rating from the caller's order and recomputes the
// restaurant aggregate. With no rated orders left the aggregate resets to 0/0.
func (s *RatingService) Remove(userID, orderID uint) error {
	o, err := s.Repo.GetOrderForUser(userID, orderID)
	if err != nil {
		return lookupErr(err, "order not found")
	}

	lock := s.restaurantLock(o.RestaurantID)
	lock.Lock()
	defer lock.Unlock()

	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderForUser(userID, orderID)
		if err != nil {
			return lookupErr(err, "order not found")
		}
		if o.Rating == 0 {
			return apperr.Wrap(apperr.ErrNoRating, "order has no rating")
		}

		if err := s.Repo.ClearRating(tx, o.ID); err != nil {
			return apperr.Internal(err)
		}
		return s.recompute(tx, o.RestaurantID)
	})
}

func (s *RatingService) recompute(tx *gorm.DB, restID uint) error {
	sum, count, err := s.Repo.RatedStats(tx, restID)
	if err != nil {
		return apperr.Internal(err)
	}
	var avg float64
	if count > 0 {
		avg = roundTo1(float64(sum) / float64(count))
	}
	if err := s.RestRepo.UpdateRatingAggregate(tx, restID, avg, int(count)); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}

func imagesJSON(images []string) (datatypes.JSON, error) {
	if len(images) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(images)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}
