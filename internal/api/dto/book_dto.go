package dto

import "time"

// CreateBookRequest 创建图书
type CreateBookRequest struct {
	Title       string   `json:"title" binding:"required"`
	Author      string   `json:"author"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status"`
}

// UpdateBookRequest 编辑图书，nil 字段不更新
type UpdateBookRequest struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Tags        []string `json:"tags"`
}

// UpdateBookStatusRequest 管理员上下架
type UpdateBookStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookInfo 图书信息
type BookInfo struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Price          float64   `json:"price"`
	Description    string    `json:"description"`
	Image          string    `json:"image"`
	Tags           []string  `json:"tags"`
	Status         string    `json:"status"`
	LibrarianEmail string    `json:"librarian_email"`
	CreatedAt      time.Time `json:"created_at"`
}
