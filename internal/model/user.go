package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ==================== 角色常量 ====================

// Role 用户角色
const (
	RoleUser      = "user"      // 普通用户
	RoleLibrarian = "librarian" // 图书管理员
	RoleAdmin     = "admin"     // 平台管理员
)

// ValidRole 校验角色取值
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleLibrarian, RoleAdmin:
		return true
	}
	return false
}

// ==================== User 用户表 ====================

// User 用户
// 首次登录时自动创建，角色在创建时按白名单确定，之后只能由管理员修改。
// 用户记录永不删除。
type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	SubjectID string `gorm:"size:128;index"` // 身份提供商下发的 uid
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Name      string `gorm:"size:255"`
	Image     string `gorm:"size:512"`
	Role      string `gorm:"size:16;index;default:user"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (*User) TableName() string {
	return "users"
}

// BeforeCreate 生成主键
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsLibrarian 是否为图书管理员
func (u *User) IsLibrarian() bool {
	return u.Role == RoleLibrarian
}
