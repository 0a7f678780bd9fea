package repository

import (
	"strings"
	"time"

	"github.com/appessoa/PetGo/internal/app/model"
	"github.com/appessoa/PetGo/pkg/logger"
	"gorm.io/gorm"
)

// AdminOrderFilter narrows the admin order listing. Zero values mean "no
// filter". Page and PerPage are normalized by the repository.
type AdminOrderFilter struct {
	Status   string
	DateFrom *time.Time
	DateTo   *time.Time
	Query    string
	Page     int
	PerPage  int
}

const (
	defaultPerPage = 20
	maxPerPage     = 200
)

type OrderRepository interface {
	FindByIDWithItems(id uint) (*model.Order, error)
	FindByUserID(userID uint) ([]model.Order, error)
	SearchAdmin(filter AdminOrderFilter) ([]model.Order, int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) FindByIDWithItems(id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Preload("User").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByUserID(userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to list orders for user", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, err
	}
	return orders, nil
}

// SearchAdmin lists orders across all users. The status filter is expanded to
// every known alias spelling so rows imported from the legacy system still
// match. DateTo is inclusive of the whole day. Query matches order id, the
// buyer's username or email.
func (r *orderRepository) SearchAdmin(filter AdminOrderFilter) ([]model.Order, int64, error) {
	query := r.db.Model(&model.Order{}).
		Joins("JOIN users ON users.id = orders.user_id")

	if filter.Status != "" {
		spellings := model.ExpandOrderStatusFilter(filter.Status)
		query = query.Where("lower(orders.status) IN ?", spellings)
	}
	if filter.DateFrom != nil {
		query = query.Where("orders.created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		endOfDay := filter.DateTo.AddDate(0, 0, 1)
		query = query.Where("orders.created_at < ?", endOfDay)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"CAST(orders.id AS TEXT) LIKE ? OR lower(users.username) LIKE ? OR lower(users.email) LIKE ?",
			like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		logger.Error("Failed to count admin order search", err, nil)
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	var orders []model.Order
	err := query.Preload("Items").Preload("User").
		Order("orders.created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&orders).Error
	if err != nil {
		logger.Error("Failed to search orders", err, map[string]interface{}{
			"status": filter.Status,
			"query":  filter.Query,
		})
		return nil, 0, err
	}
	return orders, total, nil
}
