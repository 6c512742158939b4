package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
const (
	OrderStatusPending   = "pending"   // 待处理
	OrderStatusShipped   = "shipped"   // 已发货
	OrderStatusDelivered = "delivered" // 已送达
	OrderStatusCancelled = "cancelled" // 已取消
)

// PaymentStatus 支付状态（与订单状态相互独立）
const (
	PaymentStatusUnpaid = "unpaid" // 未支付
	PaymentStatusPaid   = "paid"   // 已支付
)

// ValidLibrarianOrderStatus 校验 librarian 可设置的订单状态
// 取消不走该路径，是订单归属用户（或归属 librarian）的独立操作。
func ValidLibrarianOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered:
		return true
	}
	return false
}

// ==================== Order 订单表 ====================

// Order 订单
// 下单时无论入参如何，状态强制为 pending、支付状态强制为 unpaid；
// 书名与价格为下单时的快照，后续图书变更不回写。
type Order struct {
	ID     string `gorm:"primaryKey;size:36"`
	BookID string `gorm:"size:36;index;not null"`
	Email  string `gorm:"size:255;index;not null"` // 下单用户邮箱

	// 状态
	Status        string `gorm:"size:16;index;default:pending"`
	PaymentStatus string `gorm:"size:16;default:unpaid"`

	// 下单时快照
	BookTitle   string `gorm:"size:255"`
	PriceAmount int64
	Currency    string `gorm:"size:10;default:USD"`

	// 收货地址
	ShippingAddress datatypes.JSONMap

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (*Order) TableName() string {
	return "orders"
}

// BeforeCreate 生成主键
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// GetPrice 获取快照价格（元）
func (o *Order) GetPrice() float64 {
	return float64(o.PriceAmount) / 100
}

// IsPaid 是否已支付
func (o *Order) IsPaid() bool {
	return o.PaymentStatus == PaymentStatusPaid
}

// OwnerEmail 订单归属用户的邮箱
func (o *Order) OwnerEmail() string {
	return o.Email
}

// PaymentID 生成对账单号：订单 ID 尾部 8 位大写
func (o *Order) PaymentID() string {
	id := o.ID
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return strings.ToUpper(id)
}
