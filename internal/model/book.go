package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ==================== 图书状态常量 ====================

const (
	BookStatusDraft     = "draft"     // 未上架
	BookStatusPublished = "published" // 已上架
)

// ValidBookStatus 校验图书状态取值
func ValidBookStatus(status string) bool {
	return status == BookStatusDraft || status == BookStatusPublished
}

// ==================== Book 图书表 ====================

// Book 图书
// librarian_email 即归属关系：字段编辑仅限归属 librarian，
// 上下架与删除仅限 admin。
type Book struct {
	ID          string `gorm:"primaryKey;size:36"`
	Title       string `gorm:"size:255;not null"`
	Author      string `gorm:"size:255"`
	Description string `gorm:"type:text"`
	Image       string `gorm:"size:512"`

	// 分类标签
	Tags pq.StringArray `gorm:"type:text[]"`

	// 金额（分为单位存储）
	PriceAmount int64
	Currency    string `gorm:"size:10;default:USD"`

	// 状态与归属
	Status         string `gorm:"size:16;index;default:draft"`
	LibrarianEmail string `gorm:"size:255;index;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (*Book) TableName() string {
	return "books"
}

// BeforeCreate 生成主键
func (b *Book) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// GetPrice 获取价格（元）
func (b *Book) GetPrice() float64 {
	return float64(b.PriceAmount) / 100
}

// IsPublished 是否已上架
func (b *Book) IsPublished() bool {
	return b.Status == BookStatusPublished
}

// OwnerEmail 归属 librarian 的邮箱
func (b *Book) OwnerEmail() string {
	return b.LibrarianEmail
}
