package service

import (
	"context"
	"errors"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/config"
	"bookcourier/internal/identity"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"gorm.io/gorm"
)

// ==================== AuthService 登录服务 ====================

// AuthService 身份落库服务
// 令牌校验由中间件完成，这里只负责首次登录建档。
type AuthService struct {
	userRepo repository.UserRepository
	roles    *config.RoleTable
}

// NewAuthService 创建登录服务
func NewAuthService(userRepo repository.UserRepository, roles *config.RoleTable) *AuthService {
	return &AuthService{userRepo: userRepo, roles: roles}
}

// LoginOrCreate 登录建档
// 首次登录：按白名单确定角色（admin > librarian > user）并插入一条用户记录；
// 重复登录：原样返回已有记录，身份提供商侧的资料变更不回写。
func (s *AuthService) LoginOrCreate(ctx context.Context, principal *identity.Principal) (dto.UserInfo, bool, error) {
	user, err := s.userRepo.GetByEmail(ctx, principal.Email)
	if err != nil {
		return dto.UserInfo{}, false, err
	}
	if user != nil {
		return toUserInfo(user), false, nil
	}

	name := principal.Name
	if name == "" {
		name = "Anonymous"
	}

	user = &model.User{
		SubjectID: principal.Subject,
		Email:     principal.Email,
		Name:      name,
		Image:     principal.Picture,
		Role:      s.roles.RoleFor(principal.Email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// 并发首登撞上邮箱唯一索引：读回已建档记录，对调用方保持幂等
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			existing, getErr := s.userRepo.GetByEmail(ctx, principal.Email)
			if getErr == nil && existing != nil {
				return toUserInfo(existing), false, nil
			}
		}
		return dto.UserInfo{}, false, err
	}

	return toUserInfo(user), true, nil
}
