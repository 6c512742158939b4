package dto

import "time"

// PlaceOrderRequest 用户下单
type PlaceOrderRequest struct {
	BookID          string                 `json:"book_id" binding:"required"`
	ShippingAddress map[string]interface{} `json:"shipping_address"`
}

// UpdateOrderStatusRequest librarian 推进订单状态
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderInfo 订单信息
type OrderInfo struct {
	ID              string                 `json:"id"`
	BookID          string                 `json:"book_id"`
	BookTitle       string                 `json:"book_title"`
	Price           float64                `json:"price"`
	Status          string                 `json:"status"`
	PaymentStatus   string                 `json:"payment_status"`
	ShippingAddress map[string]interface{} `json:"shipping_address,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// LibrarianOrderItem librarian 订单列表项，附带买家信息
type LibrarianOrderItem struct {
	OrderInfo
	BuyerEmail string `json:"buyer_email"`
	BuyerName  string `json:"buyer_name"`
}

// Invoice 已支付订单的对账视图
type Invoice struct {
	PaymentID string    `json:"payment_id"` // 订单 ID 尾部 8 位大写
	OrderID   string    `json:"order_id"`
	BookTitle string    `json:"book_title"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// PaymentIntentInfo 支付意向
type PaymentIntentInfo struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}
