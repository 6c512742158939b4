package service

import (
	"context"
	"errors"
	"math"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"github.com/lib/pq"
)

// DefaultLatestLimit 最新上架列表的默认条数
const DefaultLatestLimit = 6

// ==================== BookService 图书服务 ====================

// BookService 图书目录服务
type BookService struct {
	bookRepo repository.BookRepository
}

// NewBookService 创建图书服务
func NewBookService(bookRepo repository.BookRepository) *BookService {
	return &BookService{bookRepo: bookRepo}
}

// ==================== 公开目录 ====================

// Create 创建图书
// 任何已验证身份均可创建，创建者邮箱即归属 librarian 邮箱。
func (s *BookService) Create(ctx context.Context, email string, req *dto.CreateBookRequest) (dto.BookInfo, error) {
	status := req.Status
	if status == "" {
		status = model.BookStatusDraft
	}
	if !model.ValidBookStatus(status) {
		return dto.BookInfo{}, ErrInvalidBookStatus
	}

	book := &model.Book{
		Title:          req.Title,
		Author:         req.Author,
		Description:    req.Description,
		Image:          req.Image,
		Tags:           pq.StringArray(req.Tags),
		PriceAmount:    toCents(req.Price),
		Status:         status,
		LibrarianEmail: email,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return dto.BookInfo{}, err
	}
	return toBookInfo(book), nil
}

// ListPublished 已上架图书列表
func (s *BookService) ListPublished(ctx context.Context) ([]dto.BookInfo, error) {
	books, err := s.bookRepo.List(ctx, repository.BookFilter{
		Status: model.BookStatusPublished,
	})
	if err != nil {
		return nil, err
	}
	return toBookInfoList(books), nil
}

// ListLatest 最新上架图书，按创建时间倒序，至多 limit 条
func (s *BookService) ListLatest(ctx context.Context, limit int) ([]dto.BookInfo, error) {
	if limit <= 0 {
		limit = DefaultLatestLimit
	}
	books, err := s.bookRepo.List(ctx, repository.BookFilter{
		Status:      model.BookStatusPublished,
		LatestFirst: true,
		Limit:       limit,
	})
	if err != nil {
		return nil, err
	}
	return toBookInfoList(books), nil
}

// GetByID 图书详情
func (s *BookService) GetByID(ctx context.Context, id string) (dto.BookInfo, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return dto.BookInfo{}, err
	}
	if book == nil {
		return dto.BookInfo{}, ErrBookNotFound
	}
	return toBookInfo(book), nil
}

// ==================== Librarian 操作 ====================

// ListOwnedBy 指定 librarian 名下的图书
func (s *BookService) ListOwnedBy(ctx context.Context, email string) ([]dto.BookInfo, error) {
	books, err := s.bookRepo.List(ctx, repository.BookFilter{
		LibrarianEmail: email,
		LatestFirst:    true,
	})
	if err != nil {
		return nil, err
	}
	return toBookInfoList(books), nil
}

// UpdateOwned 编辑名下图书
// 图书不存在返回 ErrBookNotFound，归属不符返回 ErrForbidden，
// 两种失败对调用方是可区分的。
func (s *BookService) UpdateOwned(ctx context.Context, email, id string, req *dto.UpdateBookRequest) error {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if book == nil {
		return ErrBookNotFound
	}
	if err := RequireOwner(email, book); err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.Price != nil {
		fields["price_amount"] = toCents(*req.Price)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Image != nil {
		fields["image"] = *req.Image
	}
	if req.Tags != nil {
		fields["tags"] = pq.StringArray(req.Tags)
	}
	if len(fields) == 0 {
		return nil
	}

	_, err = s.bookRepo.UpdateFields(ctx, id, fields)
	return err
}

// ==================== Admin 操作 ====================

// ListAll 全部图书（含未上架）
func (s *BookService) ListAll(ctx context.Context) ([]dto.BookInfo, error) {
	books, err := s.bookRepo.List(ctx, repository.BookFilter{LatestFirst: true})
	if err != nil {
		return nil, err
	}
	return toBookInfoList(books), nil
}

// SetStatus 上下架
func (s *BookService) SetStatus(ctx context.Context, id, status string) error {
	if !model.ValidBookStatus(status) {
		return ErrInvalidBookStatus
	}
	rows, err := s.bookRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrBookNotFound
	}
	return nil
}

// DeleteCascade 删除图书并级联删除其全部订单（单事务）
func (s *BookService) DeleteCascade(ctx context.Context, id string) error {
	found, err := s.bookRepo.DeleteCascade(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrBookNotFound
	}
	return nil
}

// toCents 元 → 分
func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// ==================== 错误定义 ====================

var (
	ErrBookNotFound      = errors.New("图书不存在")
	ErrInvalidBookStatus = errors.New("图书状态取值非法")
)
