package middleware

import (
	"log"
	"net/http"
	"strings"

	"bookcourier/internal/identity"
	"bookcourier/internal/repository"

	"github.com/gin-gonic/gin"
)

// ==================== Context Keys ====================

const (
	ContextKeyPrincipal = "principal"
	ContextKeyEmail     = "principal_email"
	ContextKeyRole      = "principal_role"
)

// PrincipalFrom 从 Context 取出已验证身份
func PrincipalFrom(c *gin.Context) *identity.Principal {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil
	}
	principal, _ := val.(*identity.Principal)
	return principal
}

// ==================== 身份认证中间件 ====================

// IdentityAuth 身份认证中间件
// 解析 Bearer 令牌并交给身份提供商校验，验证通过后注入身份信息。
func IdentityAuth(verifier identity.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 获取 Authorization Header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未提供认证信息",
			})
			c.Abort()
			return
		}

		// 解析 Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "认证格式错误，应为 Bearer {token}",
			})
			c.Abort()
			return
		}

		// 交给身份提供商校验
		principal, err := verifier.Verify(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Token 无效或已过期",
			})
			c.Abort()
			return
		}

		// 注入身份信息到 Context
		c.Set(ContextKeyPrincipal, principal)
		c.Set(ContextKeyEmail, principal.Email)

		c.Next()
	}
}

// ==================== 角色校验中间件 ====================

// RequireRole 角色权限校验中间件
// 角色保存在用户表中（仅管理员可改），因此按请求从存储读取，
// 不信任令牌里携带的任何角色声明。
func RequireRole(users repository.UserRepository, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := PrincipalFrom(c)
		if principal == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "未获取到用户身份",
			})
			c.Abort()
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), principal.Email)
		if err != nil {
			log.Printf("[Auth] 角色查询失败: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    500,
				"message": "服务器内部错误",
			})
			c.Abort()
			return
		}

		if user != nil {
			for _, r := range roles {
				if user.Role == r {
					c.Set(ContextKeyRole, user.Role)
					c.Next()
					return
				}
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"code":    403,
			"message": "无访问权限",
		})
		c.Abort()
	}
}
