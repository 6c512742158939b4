package service

import "errors"

// ==================== 归属校验 ====================

// OwnedResource 具有归属关系的资源
// Book 归属于创建它的 librarian，Order 归属于下单用户。
type OwnedResource interface {
	OwnerEmail() string
}

// ErrForbidden 身份合法但角色或归属不符
var ErrForbidden = errors.New("无权操作该资源")

// RequireOwner 统一的归属校验断言
func RequireOwner(email string, resource OwnedResource) error {
	if resource.OwnerEmail() != email {
		return ErrForbidden
	}
	return nil
}
