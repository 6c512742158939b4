package controller

import (
	"net/http"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/service"

	"github.com/gin-gonic/gin"
)

// LibrarianController 图书管理员控制器
type LibrarianController struct {
	bookSvc  *service.BookService
	orderSvc *service.OrderService
}

// NewLibrarianController 创建图书管理员控制器
func NewLibrarianController(bookSvc *service.BookService, orderSvc *service.OrderService) *LibrarianController {
	return &LibrarianController{bookSvc: bookSvc, orderSvc: orderSvc}
}

// MyBooks 名下图书
// GET /librarian/my-books
func (c *LibrarianController) MyBooks(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	books, err := c.bookSvc.ListOwnedBy(ctx.Request.Context(), email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": books})
}

// UpdateBook 编辑名下图书
// PATCH /librarian/books/:id
func (c *LibrarianController) UpdateBook(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.bookSvc.UpdateOwned(ctx.Request.Context(), email, ctx.Param("id"), &req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "图书已更新"})
}

// Orders 名下图书的订单
// GET /librarian/orders
func (c *LibrarianController) Orders(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	orders, err := c.orderSvc.ListForLibrarian(ctx.Request.Context(), email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": orders})
}

// UpdateOrderStatus 推进订单状态
// PATCH /librarian/orders/:id/status
func (c *LibrarianController) UpdateOrderStatus(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.orderSvc.UpdateStatus(ctx.Request.Context(), email, ctx.Param("id"), req.Status); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "订单状态已更新"})
}
