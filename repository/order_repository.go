package repository

import (
	"context"
	"strings"
	"time"

	"tomato-backend/entity"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

// CreateOrder inserts the order together with its items.
func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetOrder(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderLine is one display row of an order's items.
type OrderLine struct {
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unitPrice"`
}

// CustomerOrderSummary is one order as shown to the customer, with
// restaurant and item names resolved.
type CustomerOrderSummary struct {
	ID             uint               `json:"id"`
	CorrelationID  string             `json:"correlationId"`
	RestaurantID   uint               `json:"restaurantId"`
	RestaurantName string             `json:"restaurantName"`
	TotalAmount    int64              `json:"totalAmount"`
	Status         entity.OrderStatus `json:"status"`
	Rating         int                `json:"rating"`
	CreatedAt      time.Time          `json:"createdAt"`
	Items          []OrderLine        `json:"items"`
}

func (r *OrderRepository) ListOrdersForUser(userID uint, limit int) ([]CustomerOrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var orders []entity.Order
	err := r.DB.
		Preload("Items.MenuItem").
		Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	out := make([]CustomerOrderSummary, 0, len(orders))
	for _, o := range orders {
		items := make([]OrderLine, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, OrderLine{Name: it.MenuItem.Name, Qty: it.Qty, UnitPrice: it.UnitPrice})
		}
		out = append(out, CustomerOrderSummary{
			ID:             o.ID,
			CorrelationID:  o.CorrelationID,
			RestaurantID:   o.RestaurantID,
			RestaurantName: o.Restaurant.Name,
			TotalAmount:    o.TotalAmount,
			Status:         o.Status,
			Rating:         o.Rating,
			CreatedAt:      o.CreatedAt,
			Items:          items,
		})
	}
	return out, nil
}

// OwnerOrderSummary is one order as shown to the restaurant owner, with the
// customer's name resolved.
type OwnerOrderSummary struct {
	ID           uint               `json:"id"`
	UserID       uint               `json:"userId"`
	CustomerName string             `json:"customerName"`
	TotalAmount  int64              `json:"totalAmount"`
	Status       entity.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"createdAt"`
}

func (r *OrderRepository) ListOrdersForRestaurant(restID uint, limit int) ([]OwnerOrderSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var rows []struct {
		ID          uint
		UserID      uint
		TotalAmount int64
		Status      entity.OrderStatus
		CreatedAt   time.Time
		Name        string
	}
	err := r.DB.Table("orders AS o").
		Select("o.id, o.user_id, o.total_amount, o.status, o.created_at, u.name").
		Joins("JOIN users u ON u.id = o.user_id").
		Where("o.restaurant_id = ? AND o.deleted_at IS NULL", restID).
		Order("o.id DESC").Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]OwnerOrderSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, OwnerOrderSummary{
			ID:           row.ID,
			UserID:       row.UserID,
			CustomerName: strings.TrimSpace(row.Name),
			TotalAmount:  row.TotalAmount,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
		})
	}
	return out, nil
}

// UpdateStatusGuard moves the order from one status to another only if it is
// still in the expected status. Returns rows affected; 0 means the order
// was not in that status.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to entity.OrderStatus) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// ---------------- Ratings ----------------

func (r *OrderRepository) SetRating(tx *gorm.DB, orderID uint, rating int, review string, images datatypes.JSON) error {
	return tx.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"rating":        rating,
			"review_text":   review,
			"review_images": images,
		}).Error
}

func (r *OrderRepository) ClearRating(tx *gorm.DB, orderID uint) error {
	return tx.Model(&entity.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"rating":        0,
			"review_text":   "",
			"review_images": nil,
		}).Error
}

// RatedStats sums ratings over a restaurant's completed rated orders.
func (r *OrderRepository) RatedStats(tx *gorm.DB, restID uint) (sum int64, count int64, err error) {
	var row struct {
		Sum   int64
		Count int64
	}
	err = tx.Model(&entity.Order{}).
		Select("COALESCE(SUM(rating),0) AS sum, COUNT(*) AS count").
		Where("restaurant_id = ? AND status = ? AND rating > 0", restID, entity.OrderCompleted).
		Scan(&row).Error
	return row.Sum, row.Count, err
}

// ---------------- Menu lookups for checkout ----------------

func (r *OrderRepository) GetMenuItemBasics(id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, name, price, available, restaurant_id").First(&m, id).Error
	return m, err
}

// ---------------- Revenue queries (read-only) ----------------

// RevenueRow is one non-cancelled order's contribution on the time axis.
type RevenueRow struct {
	CreatedAt time.Time
	Value     int64
}

func (r *OrderRepository) revenueBase(ctx context.Context, restID *uint, from *time.Time) *gorm.DB {
	q := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("status <> ?", entity.OrderCancelled)
	if restID != nil {
		q = q.Where("restaurant_id = ?", *restID)
	}
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	return q
}

// RevenueTotals returns SUM(valueExpr) and the order count for the scope and
// window. valueExpr is one of the fixed column expressions chosen by the
// revenue service, never caller input.
func (r *OrderRepository) RevenueTotals(ctx context.Context, valueExpr string, restID *uint, from *time.Time) (int64, int64, error) {
	var row struct {
		Revenue int64
		Orders  int64
	}
	err := r.revenueBase(ctx, restID, from).
		Select("COALESCE(SUM(" + valueExpr + "),0) AS revenue, COUNT(*) AS orders").
		Scan(&row).Error
	return row.Revenue, row.Orders, err
}

// RevenueRows returns per-order (createdAt, value) rows for bucketing.
func (r *OrderRepository) RevenueRows(ctx context.Context, valueExpr string, restID *uint, from time.Time) ([]RevenueRow, error) {
	var rows []RevenueRow
	err := r.revenueBase(ctx, restID, &from).
		Select("created_at, " + valueExpr + " AS value").
		Order("created_at").
		Scan(&rows).Error
	return rows, err
}
