package service

import (
	"context"
	"errors"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"
)

// ==================== UserService 用户管理服务 ====================

// UserService 管理员侧的用户管理
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户管理服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 全部用户
func (s *UserService) List(ctx context.Context) ([]dto.UserInfo, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	list := make([]dto.UserInfo, len(users))
	for i := range users {
		list[i] = toUserInfo(&users[i])
	}
	return list, nil
}

// UpdateRole 修改用户角色
// 建档后角色只能经由该操作变化。
func (s *UserService) UpdateRole(ctx context.Context, id, role string) error {
	if !model.ValidRole(role) {
		return ErrInvalidRole
	}
	rows, err := s.userRepo.UpdateRole(ctx, id, role)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ==================== 错误定义 ====================

var (
	ErrUserNotFound = errors.New("用户不存在")
	ErrInvalidRole  = errors.New("角色取值非法")
)
