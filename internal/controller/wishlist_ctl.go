package controller

import (
	"net/http"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/service"

	"github.com/gin-gonic/gin"
)

// WishlistController 心愿单控制器
type WishlistController struct {
	svc *service.WishlistService
}

// NewWishlistController 创建心愿单控制器
func NewWishlistController(svc *service.WishlistService) *WishlistController {
	return &WishlistController{svc: svc}
}

// Add 收藏图书
// POST /wishlist
func (c *WishlistController) Add(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	var req dto.AddWishlistRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := c.svc.Add(ctx.Request.Context(), email, req.BookID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": item})
}

// List 心愿单列表
// GET /wishlist
func (c *WishlistController) List(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	items, err := c.svc.List(ctx.Request.Context(), email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": items})
}

// Remove 删除条目
// DELETE /wishlist/:id
func (c *WishlistController) Remove(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	if err := c.svc.Remove(ctx.Request.Context(), email, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "已从心愿单移除"})
}
