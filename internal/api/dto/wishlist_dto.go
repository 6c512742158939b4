package dto

import "time"

// AddWishlistRequest 收藏图书
type AddWishlistRequest struct {
	BookID string `json:"book_id" binding:"required"`
}

// WishlistItemInfo 心愿单条目，Book 为空表示图书已被删除
type WishlistItemInfo struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Book      *BookInfo `json:"book"`
	CreatedAt time.Time `json:"created_at"`
}
