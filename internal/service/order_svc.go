package service

import (
	"context"
	"errors"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"gorm.io/datatypes"
)

// ==================== OrderService 订单服务 ====================

// OrderService 订单生命周期服务
// 状态轴：pending → shipped → delivered（librarian 推进）；
// pending → cancelled（仅归属用户）；
// 支付轴独立：unpaid → paid（仅归属用户）。
type OrderService struct {
	orderRepo repository.OrderRepository
	bookRepo  repository.BookRepository
	userRepo  repository.UserRepository
	payments  PaymentProvider
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	bookRepo repository.BookRepository,
	userRepo repository.UserRepository,
	payments PaymentProvider,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		payments:  payments,
	}
}

// ==================== 用户侧 ====================

// Place 下单
// 引用的图书必须存在；状态强制 pending、支付强制 unpaid；
// 书名与价格做下单时快照。
func (s *OrderService) Place(ctx context.Context, email string, req *dto.PlaceOrderRequest) (dto.OrderInfo, error) {
	book, err := s.bookRepo.GetByID(ctx, req.BookID)
	if err != nil {
		return dto.OrderInfo{}, err
	}
	if book == nil {
		return dto.OrderInfo{}, ErrBookNotFound
	}

	order := &model.Order{
		BookID:          book.ID,
		Email:           email,
		Status:          model.OrderStatusPending,
		PaymentStatus:   model.PaymentStatusUnpaid,
		BookTitle:       book.Title,
		PriceAmount:     book.PriceAmount,
		Currency:        book.Currency,
		ShippingAddress: datatypes.JSONMap(req.ShippingAddress),
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return dto.OrderInfo{}, err
	}
	return toOrderInfo(order), nil
}

// ListMine 我的订单
func (s *OrderService) ListMine(ctx context.Context, email string) ([]dto.OrderInfo, error) {
	orders, err := s.orderRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return toOrderInfoList(orders), nil
}

// Cancel 取消订单
// 仅归属用户可取消；无条件置为 cancelled，重复调用是幂等的。
func (s *OrderService) Cancel(ctx context.Context, email, orderID string) error {
	order, err := s.ownedOrder(ctx, email, orderID)
	if err != nil {
		return err
	}
	_, err = s.orderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
		"status": model.OrderStatusCancelled,
	})
	return err
}

// Pay 标记已支付
// 仅归属用户可操作；重复调用是幂等的。
func (s *OrderService) Pay(ctx context.Context, email, orderID string) error {
	order, err := s.ownedOrder(ctx, email, orderID)
	if err != nil {
		return err
	}
	_, err = s.orderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
		"payment_status": model.PaymentStatusPaid,
	})
	return err
}

// CreatePaymentIntent 创建支付意向
// 仅归属用户、且订单未支付时可创建；实际扣款由支付服务完成。
func (s *OrderService) CreatePaymentIntent(ctx context.Context, email, orderID string) (dto.PaymentIntentInfo, error) {
	order, err := s.ownedOrder(ctx, email, orderID)
	if err != nil {
		return dto.PaymentIntentInfo{}, err
	}
	if order.IsPaid() {
		return dto.PaymentIntentInfo{}, ErrOrderAlreadyPaid
	}

	intent, err := s.payments.CreateIntent(ctx, order.PriceAmount, order.Currency)
	if err != nil {
		return dto.PaymentIntentInfo{}, err
	}
	return dto.PaymentIntentInfo{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
	}, nil
}

// InvoicesFor 已支付订单的对账视图
func (s *OrderService) InvoicesFor(ctx context.Context, email string) ([]dto.Invoice, error) {
	orders, err := s.orderRepo.ListPaidByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	invoices := make([]dto.Invoice, len(orders))
	for i := range orders {
		o := &orders[i]
		invoices[i] = dto.Invoice{
			PaymentID: o.PaymentID(),
			OrderID:   o.ID,
			BookTitle: o.BookTitle,
			Amount:    o.GetPrice(),
			CreatedAt: o.CreatedAt,
		}
	}
	return invoices, nil
}

// ==================== Librarian 侧 ====================

// ListForLibrarian 名下图书的全部订单，附带买家信息
func (s *OrderService) ListForLibrarian(ctx context.Context, librarianEmail string) ([]dto.LibrarianOrderItem, error) {
	books, err := s.bookRepo.List(ctx, repository.BookFilter{
		LibrarianEmail: librarianEmail,
	})
	if err != nil {
		return nil, err
	}

	bookIDs := make([]string, len(books))
	for i := range books {
		bookIDs[i] = books[i].ID
	}

	orders, err := s.orderRepo.ListByBookIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	// 补充买家姓名，查询失败不阻断列表
	names := map[string]string{}
	items := make([]dto.LibrarianOrderItem, len(orders))
	for i := range orders {
		o := &orders[i]
		name, ok := names[o.Email]
		if !ok {
			if buyer, err := s.userRepo.GetByEmail(ctx, o.Email); err == nil && buyer != nil {
				name = buyer.Name
			}
			names[o.Email] = name
		}
		items[i] = dto.LibrarianOrderItem{
			OrderInfo:  toOrderInfo(o),
			BuyerEmail: o.Email,
			BuyerName:  name,
		}
	}
	return items, nil
}

// UpdateStatus librarian 推进订单状态
// 仅允许 pending/shipped/delivered；订单引用的图书必须归属该 librarian。
func (s *OrderService) UpdateStatus(ctx context.Context, librarianEmail, orderID, status string) error {
	if !model.ValidLibrarianOrderStatus(status) {
		return ErrInvalidOrderStatus
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	book, err := s.bookRepo.GetByID(ctx, order.BookID)
	if err != nil {
		return err
	}
	if book == nil {
		return ErrBookNotFound
	}
	if err := RequireOwner(librarianEmail, book); err != nil {
		return err
	}

	_, err = s.orderRepo.UpdateFields(ctx, order.ID, map[string]interface{}{
		"status": status,
	})
	return err
}

// ownedOrder 取订单并校验归属
func (s *OrderService) ownedOrder(ctx context.Context, email, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if err := RequireOwner(email, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ==================== 错误定义 ====================

var (
	ErrOrderNotFound      = errors.New("订单不存在")
	ErrInvalidOrderStatus = errors.New("订单状态取值非法")
	ErrOrderAlreadyPaid   = errors.New("订单已支付")
)
