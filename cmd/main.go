package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookcourier/internal/config"
	"bookcourier/internal/controller"
	"bookcourier/internal/identity"
	"bookcourier/internal/repository"
	"bookcourier/internal/router"
	"bookcourier/internal/service"
	"bookcourier/internal/task"
	"bookcourier/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 0. 加载 .env（不存在则忽略）
	_ = godotenv.Load()
	cfg := config.Load()

	// 1. 初始化数据库
	db := database.InitDB(cfg)

	// 2. 初始化依赖
	deps, err := initDependencies(cfg, db)
	if err != nil {
		log.Fatalf("依赖初始化失败: %v", err)
	}

	// 3. 启动定时任务
	initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers, deps.Verifier, deps.Repos.User)

	// 5. 启动服务
	startServer(r, cfg.Port)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Roles       *config.RoleTable
	Verifier    identity.Verifier
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User     repository.UserRepository
	Book     repository.BookRepository
	Order    repository.OrderRepository
	Wishlist repository.WishlistRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Book     *service.BookService
	Order    *service.OrderService
	Wishlist *service.WishlistService
	User     *service.UserService
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB) (*Dependencies, error) {
	// -------- 角色白名单 --------
	roles, err := config.NewRoleTable()
	if err != nil {
		return nil, err
	}

	// -------- Repo 层 --------
	repos := &Repositories{
		User:     repository.NewUserRepository(db),
		Book:     repository.NewBookRepository(db),
		Order:    repository.NewOrderRepository(db),
		Wishlist: repository.NewWishlistRepository(db),
	}

	// -------- 边界能力 --------
	verifier := identity.NewGoogleVerifier(cfg.ProjectID)
	payments := service.NewPaymentProvider(&service.PaymentConfig{
		APIURL:    cfg.PaymentAPIURL,
		SecretKey: cfg.PaymentSecretKey,
	})

	// -------- 业务服务 --------
	services := &Services{
		Auth:     service.NewAuthService(repos.User, roles),
		Book:     service.NewBookService(repos.Book),
		User:     service.NewUserService(repos.User),
		Wishlist: service.NewWishlistService(repos.Wishlist, repos.Book),
	}
	services.Order = service.NewOrderService(repos.Order, repos.Book, repos.User, payments)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:      controller.NewAuthController(services.Auth),
		Book:      controller.NewBookController(services.Book),
		Order:     controller.NewOrderController(services.Order),
		Wishlist:  controller.NewWishlistController(services.Wishlist),
		Admin:     controller.NewAdminController(services.User, services.Book),
		Librarian: controller.NewLibrarianController(services.Book, services.Order),
	}

	return &Dependencies{
		DB:          db,
		Roles:       roles,
		Verifier:    verifier,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}, nil
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// 角色白名单重载
	reloadTask := task.NewRoleReloadTask(deps.Roles)
	reloadTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, port string) {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}
