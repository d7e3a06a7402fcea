package services

import (
	"tomato-backend/entity"
	"tomato-backend/pkg/apperr"

	"gorm.io/gorm"
)

// nextStatus is the forward path a restaurant owner drives. Completed and
// cancelled have no successor; cancellation is reachable only from pending
// and only by the customer.
var nextStatus = map[entity.OrderStatus]entity.OrderStatus{
	entity.OrderPending:   entity.OrderPreparing,
	entity.OrderPreparing: entity.OrderReady,
	entity.OrderReady:     entity.OrderCompleted,
}

// AdvanceStatus applies one forward transition on behalf of the restaurant
// owner. Any move that is not the current status's single legal successor
// fails and leaves the order unchanged.
func (s *OrderService) AdvanceStatus(ownerID, orderID uint, to entity.OrderStatus) error {
	if !to.Valid() {
		return apperr.Wrapf(apperr.ErrInvalidRequest, "unknown status %q", to)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrder(orderID)
		if err != nil {
			return lookupErr(err, "order not found")
		}
		owned, err := s.RestRepo.IsOwnedBy(o.RestaurantID, ownerID)
		if err != nil {
			return apperr.Internal(err)
		}
		if !owned {
			return apperr.Wrap(apperr.ErrNotFound, "order not found")
		}

		if nextStatus[o.Status] != to {
			return apperr.Wrapf(apperr.ErrInvalidTransition, "cannot move %s order to %s", o.Status, to)
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, o.Status, to)
		if err != nil {
			return apperr.Internal(err)
		}
		if affected == 0 {
			// lost a race with a concurrent transition
			return apperr.Wrapf(apperr.ErrInvalidTransition, "order is no longer %s", o.Status)
		}
		return nil
	})
}

// Cancel lets the customer abort their own order while it is still pending.
func (s *OrderService) Cancel(userID, orderID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetOrderForUser(userID, orderID)
		if err != nil {
			return lookupErr(err, "order not found")
		}

		affected, err := s.Repo.UpdateStatusGuard(tx, o.ID, entity.OrderPending, entity.OrderCancelled)
		if err != nil {
			return apperr.Internal(err)
		}
		if affected == 0 {
			return apperr.Wrap(apperr.ErrInvalidTransition, "only pending orders can be cancelled")
		}
		return nil
	})
}
