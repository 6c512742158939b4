package controller

import (
	"errors"
	"log"
	"net/http"

	"bookcourier/internal/middleware"
	"bookcourier/internal/service"

	"github.com/gin-gonic/gin"
)

// ==================== 公共辅助 ====================

// principalEmail 取出中间件注入的身份邮箱
func principalEmail(c *gin.Context) (string, bool) {
	principal := middleware.PrincipalFrom(c)
	if principal == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户身份"})
		return "", false
	}
	return principal.Email, true
}

// respondError 统一的业务错误 → HTTP 状态映射
// 归属/角色不符与记录缺失是可区分的两类失败，分别映射 403 与 404。
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrBookNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrWishlistNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrWishlistDuplicate),
		errors.Is(err, service.ErrInvalidBookStatus),
		errors.Is(err, service.ErrInvalidOrderStatus),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrOrderAlreadyPaid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		// 存储层意外失败：只回通用信息，详情落日志
		log.Printf("[API] 内部错误: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务器内部错误"})
	}
}
