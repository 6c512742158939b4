package repository

import (
	"context"
	"errors"

	"bookcourier/internal/model"

	"gorm.io/gorm"
)

// ==================== WishlistRepository 心愿单仓库 ====================

// WishlistRepository 心愿单仓库接口
type WishlistRepository interface {
	Create(ctx context.Context, item *model.WishlistItem) error
	GetByID(ctx context.Context, id string) (*model.WishlistItem, error)
	GetByEmailAndBook(ctx context.Context, email, bookID string) (*model.WishlistItem, error)
	ListByEmail(ctx context.Context, email string) ([]model.WishlistItem, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// ==================== 实现 ====================

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

func (r *wishlistRepository) Create(ctx context.Context, item *model.WishlistItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *wishlistRepository) GetByID(ctx context.Context, id string) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) GetByEmailAndBook(ctx context.Context, email, bookID string) (*model.WishlistItem, error) {
	var item model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("email = ? AND book_id = ?", email, bookID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *wishlistRepository) ListByEmail(ctx context.Context, email string) ([]model.WishlistItem, error) {
	var items []model.WishlistItem
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at desc").
		Find(&items).Error
	return items, err
}

func (r *wishlistRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.WishlistItem{})
	return result.RowsAffected, result.Error
}
