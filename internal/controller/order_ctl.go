package controller

import (
	"net/http"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderController 订单控制器（用户侧）
type OrderController struct {
	svc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// Place 下单
// POST /orders
func (c *OrderController) Place(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	var req dto.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := c.svc.Place(ctx.Request.Context(), email, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": order})
}

// MyOrders 我的订单
// GET /users/my-orders
func (c *OrderController) MyOrders(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	orders, err := c.svc.ListMine(ctx.Request.Context(), email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": orders})
}

// Cancel 取消订单
// PUT /users/cancel/:id
func (c *OrderController) Cancel(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	if err := c.svc.Cancel(ctx.Request.Context(), email, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "订单已取消"})
}

// Pay 标记已支付
// PUT /users/pay/:id
func (c *OrderController) Pay(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	if err := c.svc.Pay(ctx.Request.Context(), email, ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "支付成功"})
}

// Invoices 对账单
// GET /users/invoices
func (c *OrderController) Invoices(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	invoices, err := c.svc.InvoicesFor(ctx.Request.Context(), email)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": invoices})
}

// CreatePaymentIntent 创建支付意向
// POST /orders/:id/payment-intent
func (c *OrderController) CreatePaymentIntent(ctx *gin.Context) {
	email, ok := principalEmail(ctx)
	if !ok {
		return
	}

	intent, err := c.svc.CreatePaymentIntent(ctx.Request.Context(), email, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"data": intent})
}
