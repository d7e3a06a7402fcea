package services

import (
	"errors"
	"strings"

	"tomato-backend/entity"
	"tomato-backend/pkg/apperr"
	"tomato-backend/repository"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	TxnRepo  *repository.TransactionRepository
	RestRepo *repository.RestaurantRepository

	GSTRate         decimal.Decimal
	PlatformFeeRate decimal.Decimal
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	txnRepo *repository.TransactionRepository,
	restRepo *repository.RestaurantRepository,
	gstRate, platformFeeRate decimal.Decimal,
) *OrderService {
	return &OrderService{
		DB:              db,
		Repo:            repo,
		TxnRepo:         txnRepo,
		RestRepo:        restRepo,
		GSTRate:         gstRate,
		PlatformFeeRate: platformFeeRate,
	}
}

// ----- DTOs from controller -----

type CheckoutItemIn struct {
	FoodID   uint  `json:"foodId" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
	Price    int64 `json:"price"` // client display value; the menu price is snapshotted server-side
}

type DeliveryAddressIn struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type CheckoutReq struct {
	RestaurantID    uint                 `json:"restaurantId"` // advisory; grouping follows each item's owning restaurant
	Items           []CheckoutItemIn     `json:"items"`
	TotalAmount     int64                `json:"totalAmount"` // client display value, recomputed server-side
	PaymentMethod   entity.PaymentMethod `json:"paymentMethod"`
	DeliveryAddress DeliveryAddressIn    `json:"deliveryAddress"`
}

// CheckoutOrderOut is one created order/transaction pair.
type CheckoutOrderOut struct {
	OrderID       uint   `json:"orderId"`
	TransactionID uint   `json:"transactionId"`
	CorrelationID string `json:"correlationId"`
	RestaurantID  uint   `json:"restaurantId"`
	TotalAmount   int64  `json:"totalAmount"`
}

// ----- Checkout -----

type checkoutLine struct {
	menuItemID uint
	qty        int
	unitPrice  int64
}

// Checkout splits the cart by restaurant and creates one order plus one
// successful transaction per restaurant group, all inside a single database
// transaction so a multi-restaurant checkout is all-or-nothing. Validation
// runs before any write; the first violation aborts the whole request,
// except address checks which are aggregated into one message.
func (s *OrderService) Checkout(userID uint, req *CheckoutReq) ([]CheckoutOrderOut, error) {
	if len(req.Items) == 0 {
		return nil, apperr.Wrap(apperr.ErrInvalidRequest, "items is required")
	}
	if !req.PaymentMethod.Valid() {
		return nil, apperr.Wrapf(apperr.ErrInvalidRequest, "unknown payment method %q", req.PaymentMethod)
	}
	if err := validateAddress(&req.DeliveryAddress); err != nil {
		return nil, err
	}

	// resolve every line against the menu and group by owning restaurant,
	// preserving first-seen group order
	groups := map[uint][]checkoutLine{}
	var groupOrder []uint
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, apperr.Wrapf(apperr.ErrInvalidRequest, "quantity must be positive for food item %d", it.FoodID)
		}
		m, err := s.Repo.GetMenuItemBasics(it.FoodID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Wrapf(apperr.ErrInvalidRequest, "food item %d does not exist", it.FoodID)
			}
			return nil, apperr.Internal(err)
		}
		if !m.Available {
			return nil, apperr.Wrapf(apperr.ErrInvalidRequest, "food item %q is not available", m.Name)
		}
		if _, seen := groups[m.RestaurantID]; !seen {
			groupOrder = append(groupOrder, m.RestaurantID)
		}
		groups[m.RestaurantID] = append(groups[m.RestaurantID], checkoutLine{
			menuItemID: m.ID,
			qty:        it.Quantity,
			unitPrice:  m.Price,
		})
	}

	var out []CheckoutOrderOut
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, restID := range groupOrder {
			lines := groups[restID]

			var base int64
			items := make([]entity.OrderItem, 0, len(lines))
			for _, l := range lines {
				base += l.unitPrice * int64(l.qty)
				items = append(items, entity.OrderItem{
					MenuItemID: l.menuItemID,
					Qty:        l.qty,
					UnitPrice:  l.unitPrice,
				})
			}
			fees := CalculateFees(base, s.GSTRate, s.PlatformFeeRate)
			corrID := uuid.NewString()

			order := entity.Order{
				CorrelationID:     corrID,
				BaseAmount:        fees.Base,
				GSTAmount:         fees.GST,
				PlatformFeeAmount: fees.PlatformFee,
				TotalAmount:       fees.Total,
				Status:            entity.OrderPending,
				DeliveryName:      strings.TrimSpace(req.DeliveryAddress.Name),
				DeliveryPhone:     strings.TrimSpace(req.DeliveryAddress.Phone),
				DeliveryAddress:   strings.TrimSpace(req.DeliveryAddress.Address),
				UserID:            userID,
				RestaurantID:      restID,
				Items:             items,
			}
			if err := s.Repo.CreateOrder(tx, &order); err != nil {
				return err
			}

			orderID := order.ID
			restaurantID := restID
			txn := entity.Transaction{
				CorrelationID:     corrID,
				Amount:            fees.Total,
				GSTAmount:         fees.GST,
				PlatformFeeAmount: fees.PlatformFee,
				PaymentMethod:     req.PaymentMethod,
				PaymentStatus:     entity.PaymentSuccess,
				Type:              entity.TxnOrder,
				PayerID:           userID,
				OrderID:           &orderID,
				RestaurantID:      &restaurantID,
			}
			if err := s.TxnRepo.Create(tx, &txn); err != nil {
				return err
			}

			out = append(out, CheckoutOrderOut{
				OrderID:       order.ID,
				TransactionID: txn.ID,
				CorrelationID: corrID,
				RestaurantID:  restID,
				TotalAmount:   fees.Total,
			})
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

// validateAddress aggregates missing sub-fields into a single message.
func validateAddress(a *DeliveryAddressIn) error {
	var merr *multierror.Error
	if strings.TrimSpace(a.Name) == "" {
		merr = multierror.Append(merr, apperr.Wrap(apperr.ErrInvalidRequest, "deliveryAddress.name is required"))
	}
	if strings.TrimSpace(a.Phone) == "" {
		merr = multierror.Append(merr, apperr.Wrap(apperr.ErrInvalidRequest, "deliveryAddress.phone is required"))
	}
	if strings.TrimSpace(a.Address) == "" {
		merr = multierror.Append(merr, apperr.Wrap(apperr.ErrInvalidRequest, "deliveryAddress.address is required"))
	}
	return merr.ErrorOrNil()
}

// ----- Listing -----

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.CustomerOrderSummary, error) {
	out, err := s.Repo.ListOrdersForUser(userID, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}

func (s *OrderService) ListForOwner(ownerID uint, limit int) ([]repository.OwnerOrderSummary, error) {
	rest, err := s.RestRepo.FindByOwner(ownerID)
	if err != nil {
		return nil, lookupErr(err, "restaurant not found")
	}
	out, err := s.Repo.ListOrdersForRestaurant(rest.ID, limit)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return out, nil
}
