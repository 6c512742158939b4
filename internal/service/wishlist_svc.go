package service

import (
	"context"
	"errors"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"gorm.io/gorm"
)

// ==================== WishlistService 心愿单服务 ====================

// WishlistService 心愿单服务
type WishlistService struct {
	wishlistRepo repository.WishlistRepository
	bookRepo     repository.BookRepository
}

// NewWishlistService 创建心愿单服务
func NewWishlistService(wishlistRepo repository.WishlistRepository, bookRepo repository.BookRepository) *WishlistService {
	return &WishlistService{wishlistRepo: wishlistRepo, bookRepo: bookRepo}
}

// Add 收藏图书，同一 (email, book_id) 重复收藏返回冲突
func (s *WishlistService) Add(ctx context.Context, email, bookID string) (dto.WishlistItemInfo, error) {
	existing, err := s.wishlistRepo.GetByEmailAndBook(ctx, email, bookID)
	if err != nil {
		return dto.WishlistItemInfo{}, err
	}
	if existing != nil {
		return dto.WishlistItemInfo{}, ErrWishlistDuplicate
	}

	item := &model.WishlistItem{
		Email:  email,
		BookID: bookID,
	}
	if err := s.wishlistRepo.Create(ctx, item); err != nil {
		// 并发重复收藏越过存在性检查时，由唯一索引兜底，同样按冲突处理
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return dto.WishlistItemInfo{}, ErrWishlistDuplicate
		}
		return dto.WishlistItemInfo{}, err
	}
	return dto.WishlistItemInfo{
		ID:        item.ID,
		BookID:    item.BookID,
		CreatedAt: item.CreatedAt,
	}, nil
}

// List 心愿单列表，附带图书信息；图书已删除时 Book 为空
func (s *WishlistService) List(ctx context.Context, email string) ([]dto.WishlistItemInfo, error) {
	items, err := s.wishlistRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	bookIDs := make([]string, len(items))
	for i := range items {
		bookIDs[i] = items[i].BookID
	}
	books, err := s.bookRepo.ListByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*model.Book, len(books))
	for i := range books {
		byID[books[i].ID] = &books[i]
	}

	list := make([]dto.WishlistItemInfo, len(items))
	for i := range items {
		info := dto.WishlistItemInfo{
			ID:        items[i].ID,
			BookID:    items[i].BookID,
			CreatedAt: items[i].CreatedAt,
		}
		if book, ok := byID[items[i].BookID]; ok {
			bookInfo := toBookInfo(book)
			info.Book = &bookInfo
		}
		list[i] = info
	}
	return list, nil
}

// Remove 删除条目，仅归属用户可删除
func (s *WishlistService) Remove(ctx context.Context, email, id string) error {
	item, err := s.wishlistRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrWishlistNotFound
	}
	if err := RequireOwner(email, item); err != nil {
		return err
	}

	_, err = s.wishlistRepo.Delete(ctx, id)
	return err
}

// ==================== 错误定义 ====================

var (
	ErrWishlistDuplicate = errors.New("该图书已在心愿单中")
	ErrWishlistNotFound  = errors.New("心愿单条目不存在")
)
