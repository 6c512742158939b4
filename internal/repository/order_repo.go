package repository

import (
	"context"
	"errors"

	"bookcourier/internal/model"

	"gorm.io/gorm"
)

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByEmail(ctx context.Context, email string) ([]model.Order, error)
	ListPaidByEmail(ctx context.Context, email string) ([]model.Order, error)
	ListByBookIDs(ctx context.Context, bookIDs []string) ([]model.Order, error)
	CountByBookID(ctx context.Context, bookID string) (int64, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListPaidByEmail(ctx context.Context, email string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("email = ? AND payment_status = ?", email, model.PaymentStatusPaid).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ListByBookIDs(ctx context.Context, bookIDs []string) ([]model.Order, error) {
	if len(bookIDs) == 0 {
		return nil, nil
	}
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("book_id IN ?", bookIDs).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) CountByBookID(ctx context.Context, bookID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("book_id = ?", bookID).
		Count(&count).Error
	return count, err
}

func (r *orderRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}
