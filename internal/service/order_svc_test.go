package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bookcourier/internal/api/dto"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"gorm.io/gorm"
)

func newOrderService(t *testing.T, db *gorm.DB) (*OrderService, *stubPayments) {
	t.Helper()

	payments := &stubPayments{}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewBookRepository(db),
		repository.NewUserRepository(db),
		payments,
	)
	return svc, payments
}

func TestOrderService_PlaceSnapshotsBook(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newOrderService(t, db)
	ctx := context.Background()

	book := seedBook(t, db, &model.Book{
		Title:          "Go 程序设计",
		PriceAmount:    2000,
		Status:         model.BookStatusPublished,
		LibrarianEmail: "lib@example.com",
	})

	info, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{
		BookID:          book.ID,
		ShippingAddress: map[string]interface{}{"city": "上海", "street": "南京路 1 号"},
	})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	if info.Status != model.OrderStatusPending {
		t.Errorf("status = %s, want pending", info.Status)
	}
	if info.PaymentStatus != model.PaymentStatusUnpaid {
		t.Errorf("payment_status = %s, want unpaid", info.PaymentStatus)
	}
	if info.BookTitle != "Go 程序设计" {
		t.Errorf("book_title = %s, 应为下单时快照", info.BookTitle)
	}
	if info.Price != 20 {
		t.Errorf("price = %v, want 20", info.Price)
	}
	if info.ShippingAddress["city"] != "上海" {
		t.Errorf("shipping_address = %v, 地址未保存", info.ShippingAddress)
	}
}

func TestOrderService_PlaceMissingBook(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newOrderService(t, db)

	_, err := svc.Place(context.Background(), "reader@example.com", &dto.PlaceOrderRequest{BookID: "no-such-id"})
	if !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("err = %v, want ErrBookNotFound", err)
	}
}

func TestOrderService_CancelAndPay(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newOrderService(t, db)
	orderRepo := repository.NewOrderRepository(db)
	ctx := context.Background()

	book := seedBook(t, db, &model.Book{Title: "书", Status: model.BookStatusPublished, LibrarianEmail: "lib@example.com"})
	info, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{BookID: book.ID})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	// 非归属用户不可操作，图书归属的 librarian 也不行
	if err := svc.Cancel(ctx, "other@example.com", info.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("越权取消 err = %v, want ErrForbidden", err)
	}
	if err := svc.Cancel(ctx, "lib@example.com", info.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("librarian 取消 err = %v, want ErrForbidden", err)
	}
	if err := svc.Pay(ctx, "other@example.com", info.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("越权支付 err = %v, want ErrForbidden", err)
	}

	// 不存在的订单
	if err := svc.Cancel(ctx, "reader@example.com", "no-such-id"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}

	// 支付与取消均幂等
	for i := 0; i < 2; i++ {
		if err := svc.Pay(ctx, "reader@example.com", info.ID); err != nil {
			t.Fatalf("第 %d 次支付失败: %v", i+1, err)
		}
	}
	for i := 0; i < 2; i++ {
		if err := svc.Cancel(ctx, "reader@example.com", info.ID); err != nil {
			t.Fatalf("第 %d 次取消失败: %v", i+1, err)
		}
	}

	order, _ := orderRepo.GetByID(ctx, info.ID)
	if order.Status != model.OrderStatusCancelled {
		t.Errorf("status = %s, want cancelled", order.Status)
	}
	if order.PaymentStatus != model.PaymentStatusPaid {
		t.Errorf("payment_status = %s, 支付轴与状态轴应相互独立", order.PaymentStatus)
	}
}

func TestOrderService_CreatePaymentIntent(t *testing.T) {
	db := newTestDB(t)
	svc, payments := newOrderService(t, db)
	ctx := context.Background()

	book := seedBook(t, db, &model.Book{Title: "书", PriceAmount: 2000, Status: model.BookStatusPublished, LibrarianEmail: "lib@example.com"})
	info, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{BookID: book.ID})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	// 非归属用户被拒绝
	if _, err := svc.CreatePaymentIntent(ctx, "other@example.com", info.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	intent, err := svc.CreatePaymentIntent(ctx, "reader@example.com", info.ID)
	if err != nil {
		t.Fatalf("创建支付意向失败: %v", err)
	}
	if intent.ID != "pi_test_123" || intent.ClientSecret == "" {
		t.Errorf("intent = %+v", intent)
	}
	if payments.calls != 1 {
		t.Errorf("支付服务调用 %d 次, want 1", payments.calls)
	}

	// 已支付订单不可再创建
	if err := svc.Pay(ctx, "reader@example.com", info.ID); err != nil {
		t.Fatalf("支付失败: %v", err)
	}
	if _, err := svc.CreatePaymentIntent(ctx, "reader@example.com", info.ID); !errors.Is(err, ErrOrderAlreadyPaid) {
		t.Fatalf("err = %v, want ErrOrderAlreadyPaid", err)
	}
}

func TestOrderService_Invoices(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newOrderService(t, db)
	ctx := context.Background()

	book := seedBook(t, db, &model.Book{Title: "Go 程序设计", PriceAmount: 2000, Status: model.BookStatusPublished, LibrarianEmail: "lib@example.com"})

	paid, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{BookID: book.ID})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if _, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{BookID: book.ID}); err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if err := svc.Pay(ctx, "reader@example.com", paid.ID); err != nil {
		t.Fatalf("支付失败: %v", err)
	}

	invoices, err := svc.InvoicesFor(ctx, "reader@example.com")
	if err != nil {
		t.Fatalf("查询对账单失败: %v", err)
	}
	if len(invoices) != 1 {
		t.Fatalf("对账单 %d 条, want 1（只含已支付订单）", len(invoices))
	}

	inv := invoices[0]
	if inv.OrderID != paid.ID {
		t.Errorf("order_id = %s, want %s", inv.OrderID, paid.ID)
	}
	if inv.Amount != 20 {
		t.Errorf("amount = %v, want 20", inv.Amount)
	}
	want := strings.ToUpper(paid.ID[len(paid.ID)-8:])
	if inv.PaymentID != want {
		t.Errorf("payment_id = %s, want %s", inv.PaymentID, want)
	}
}

func TestOrderService_ListForLibrarian(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newOrderService(t, db)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	if err := users.Create(ctx, &model.User{Email: "reader@example.com", Name: "Reader One", Role: model.RoleUser}); err != nil {
		t.Fatalf("预置用户失败: %v", err)
	}

	mine := seedBook(t, db, &model.Book{Title: "我的书", Status: model.BookStatusPublished, LibrarianEmail: "lib@example.com"})
	other := seedBook(t, db, &model.Book{Title: "别人的书", Status: model.BookStatusPublished, LibrarianEmail: "other-lib@example.com"})

	if _, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{BookID: mine.ID}); err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if _, err := svc.Place(ctx, "ghost@example.com", &dto.PlaceOrderRequest{BookID: mine.ID}); err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if _, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{BookID: other.ID}); err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	items, err := svc.ListForLibrarian(ctx, "lib@example.com")
	if err != nil {
		t.Fatalf("查询 librarian 订单失败: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("订单 %d 条, want 2（只含名下图书）", len(items))
	}

	for _, item := range items {
		if item.BookID != mine.ID {
			t.Errorf("混入了他人图书的订单: %+v", item)
		}
		switch item.BuyerEmail {
		case "reader@example.com":
			if item.BuyerName != "Reader One" {
				t.Errorf("buyer_name = %s, want Reader One", item.BuyerName)
			}
		case "ghost@example.com":
			// 未建档买家：姓名留空但订单仍在列表里
			if item.BuyerName != "" {
				t.Errorf("未建档买家 buyer_name = %s, want 空", item.BuyerName)
			}
		default:
			t.Errorf("意外的买家: %s", item.BuyerEmail)
		}
	}
}

func TestOrderService_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	svc, _ := newOrderService(t, db)
	orderRepo := repository.NewOrderRepository(db)
	ctx := context.Background()

	book := seedBook(t, db, &model.Book{Title: "书", Status: model.BookStatusPublished, LibrarianEmail: "lib@example.com"})
	info, err := svc.Place(ctx, "reader@example.com", &dto.PlaceOrderRequest{BookID: book.ID})
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	// cancelled 不在 librarian 可设置范围内
	if err := svc.UpdateStatus(ctx, "lib@example.com", info.ID, model.OrderStatusCancelled); !errors.Is(err, ErrInvalidOrderStatus) {
		t.Fatalf("err = %v, want ErrInvalidOrderStatus", err)
	}
	// 图书不归属该 librarian
	if err := svc.UpdateStatus(ctx, "other-lib@example.com", info.ID, model.OrderStatusShipped); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}
	if err := svc.UpdateStatus(ctx, "lib@example.com", "no-such-id", model.OrderStatusShipped); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}

	if err := svc.UpdateStatus(ctx, "lib@example.com", info.ID, model.OrderStatusShipped); err != nil {
		t.Fatalf("推进状态失败: %v", err)
	}
	order, _ := orderRepo.GetByID(ctx, info.ID)
	if order.Status != model.OrderStatusShipped {
		t.Errorf("status = %s, want shipped", order.Status)
	}
}
