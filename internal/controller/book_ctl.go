package controller

import (
	"net/http"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/service"

	"github.com/gin-gonic/gin"
)

// BookController 图书控制器
type BookController struct {
	svc *service.BookService
}

// NewBookController 创建图书控制器
func NewBookController(svc *service.BookService) *BookController {
	return &BookController{svc: svc}
}

// ==================== 公开目录 ====================

// List 已上架图书列表
// GET /books
func (c *BookController) List(ctx *gin.Context) {
	books, err := c.svc.ListPublished(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": books})
}

// Latest 最新上架图书（至多 6 本）
// GET /books/latest
func (c *BookController) Latest(ctx *gin.Context) {
	books, err := c.svc.ListLatest(ctx.Request.Context(), service.DefaultLatestLimit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": books})
}

// GetByID 图书详情
// GET /books/:id
func (c *BookController) GetByID(ctx *gin.Context) {
	book, err := c.svc.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": book})
}

// ==================== 创建 ====================

// Create 创建图书
// POST /books
func (c *BookController) Create(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	var req dto.CreateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := c.svc.Create(ctx.Request.Context(), email, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": book})
}
