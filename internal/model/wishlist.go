package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== WishlistItem 心愿单表 ====================

// WishlistItem 心愿单条目
// 同一用户对同一本书只能收藏一次，仅归属用户可删除。
type WishlistItem struct {
	ID     string `gorm:"primaryKey;size:36"`
	Email  string `gorm:"size:255;not null;uniqueIndex:idx_wishlist_email_book"`
	BookID string `gorm:"size:36;not null;uniqueIndex:idx_wishlist_email_book"`

	CreatedAt time.Time
}

func (*WishlistItem) TableName() string {
	return "wishlist_items"
}

// BeforeCreate 生成主键
func (w *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// OwnerEmail 条目归属用户的邮箱
func (w *WishlistItem) OwnerEmail() string {
	return w.Email
}
