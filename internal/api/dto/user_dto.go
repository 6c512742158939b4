package dto

import "time"

// UserInfo 用户信息
type UserInfo struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Image     string    `json:"image"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateRoleRequest 管理员修改用户角色
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}
