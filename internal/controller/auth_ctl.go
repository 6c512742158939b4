package controller

import (
	"net/http"

	"bookcourier/internal/middleware"
	"bookcourier/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthController 登录控制器
type AuthController struct {
	svc *service.AuthService
}

// NewAuthController 创建登录控制器
func NewAuthController(svc *service.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

// Login 联邦登录建档
// POST /auth/firebase-login
// 令牌已由中间件验证，这里完成首次登录建档（重复登录为幂等空操作）。
func (c *AuthController) Login(ctx *gin.Context) {
	principal := middleware.PrincipalFrom(ctx)
	if principal == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户身份"})
		return
	}

	user, _, err := c.svc.LoginOrCreate(ctx.Request.Context(), principal)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}
