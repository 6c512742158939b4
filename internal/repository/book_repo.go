package repository

import (
	"context"
	"errors"

	"bookcourier/internal/model"

	"gorm.io/gorm"
)

// ==================== 过滤条件 ====================

// BookFilter 图书过滤条件
type BookFilter struct {
	Status         string
	LibrarianEmail string
	LatestFirst    bool // 按创建时间倒序
	Limit          int
}

// ==================== BookRepository 图书仓库 ====================

// BookRepository 图书仓库接口
type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	GetByID(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context, filter BookFilter) ([]model.Book, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Book, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error)
	UpdateStatus(ctx context.Context, id string, status string) (int64, error)

	// DeleteCascade 同一事务内删除图书及其全部订单
	DeleteCascade(ctx context.Context, id string) (bool, error)
}

// ==================== 实现 ====================

type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓库
func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*model.Book, error) {
	var book model.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) List(ctx context.Context, filter BookFilter) ([]model.Book, error) {
	query := r.db.WithContext(ctx).Model(&model.Book{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.LibrarianEmail != "" {
		query = query.Where("librarian_email = ?", filter.LibrarianEmail)
	}
	if filter.LatestFirst {
		query = query.Order("created_at desc")
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var books []model.Book
	err := query.Find(&books).Error
	return books, err
}

func (r *bookRepository) ListByIDs(ctx context.Context, ids []string) ([]model.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var books []model.Book
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error
	return books, err
}

func (r *bookRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Book{}).
		Where("id = ?", id).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *bookRepository) UpdateStatus(ctx context.Context, id string, status string) (int64, error) {
	return r.UpdateFields(ctx, id, map[string]interface{}{"status": status})
}

func (r *bookRepository) DeleteCascade(ctx context.Context, id string) (bool, error) {
	var found bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 先删订单再删图书，整体在一个事务内，不会留下悬挂订单
		if err := tx.Where("book_id = ?", id).Delete(&model.Order{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Book{})
		if result.Error != nil {
			return result.Error
		}
		found = result.RowsAffected > 0
		return nil
	})
	return found, err
}
