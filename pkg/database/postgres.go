package database

import (
	"log"
	"strings"
	"time"

	"bookcourier/internal/config"
	"bookcourier/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化 BookCourier 数据库
// 建立 postgres 连接，按配置调整连接池与 SQL 日志级别，并迁移全部业务表。
func InitDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		Logger: logger.Default.LogMode(logLevelFor(cfg.DBLogLevel)),
		// 唯一索引冲突翻译为 gorm.ErrDuplicatedKey，业务层据此返回冲突而非 500
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("获取底层 SQL DB 失败: %v", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 业务表：用户、图书、订单、心愿单
	if err := db.AutoMigrate(
		&model.User{},
		&model.Book{},
		&model.Order{},
		&model.WishlistItem{},
	); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	log.Println("数据库连接成功")
	return db
}

// logLevelFor 配置值 → gorm 日志级别，未识别时打印全部 SQL 便于排查
func logLevelFor(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	default:
		return logger.Info
	}
}
