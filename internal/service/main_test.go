package service

import (
	"context"
	"testing"

	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ==================== 测试公共设施 ====================

// newTestDB 打开内存数据库并迁移全部表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Book{},
		&model.Order{},
		&model.WishlistItem{},
	); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

// seedBook 预置一本图书
func seedBook(t *testing.T, db *gorm.DB, book *model.Book) *model.Book {
	t.Helper()

	if err := repository.NewBookRepository(db).Create(context.Background(), book); err != nil {
		t.Fatalf("预置图书失败: %v", err)
	}
	return book
}

// stubPayments 固定返回同一支付意向
type stubPayments struct {
	calls int
}

func (p *stubPayments) CreateIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error) {
	p.calls++
	return &PaymentIntent{
		ID:           "pi_test_123",
		ClientSecret: "pi_test_123_secret",
	}, nil
}
