package controller

import (
	"net/http"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminController 管理员控制器
type AdminController struct {
	userSvc *service.UserService
	bookSvc *service.BookService
}

// NewAdminController 创建管理员控制器
func NewAdminController(userSvc *service.UserService, bookSvc *service.BookService) *AdminController {
	return &AdminController{userSvc: userSvc, bookSvc: bookSvc}
}

// ==================== 用户管理 ====================

// ListUsers 全部用户
// GET /admin/users
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.userSvc.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": users})
}

// UpdateUserRole 修改用户角色
// PATCH /admin/users/:id/role
func (c *AdminController) UpdateUserRole(ctx *gin.Context) {
	var req dto.UpdateRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.userSvc.UpdateRole(ctx.Request.Context(), ctx.Param("id"), req.Role); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "角色已更新"})
}

// ==================== 图书管理 ====================

// ListBooks 全部图书（含未上架）
// GET /admin/books
func (c *AdminController) ListBooks(ctx *gin.Context) {
	books, err := c.bookSvc.ListAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": books})
}

// UpdateBookStatus 上下架
// PATCH /admin/books/:id/status
func (c *AdminController) UpdateBookStatus(ctx *gin.Context) {
	var req dto.UpdateBookStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.bookSvc.SetStatus(ctx.Request.Context(), ctx.Param("id"), req.Status); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "状态已更新"})
}

// DeleteBook 删除图书并级联删除其订单
// DELETE /admin/books/:id
func (c *AdminController) DeleteBook(ctx *gin.Context) {
	if err := c.bookSvc.DeleteCascade(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "图书及关联订单已删除"})
}
