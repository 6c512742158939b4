package router

import (
	"net/http"

	"bookcourier/internal/controller"
	"bookcourier/internal/identity"
	"bookcourier/internal/middleware"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "bookcourier/docs"
)

// Controllers 控制器集合
type Controllers struct {
	Auth      *controller.AuthController
	Book      *controller.BookController
	Order     *controller.OrderController
	Wishlist  *controller.WishlistController
	Admin     *controller.AdminController
	Librarian *controller.LibrarianController
}

// SetupRouter 注册所有路由
func SetupRouter(ctl *Controllers, verifier identity.Verifier, users repository.UserRepository) *gin.Engine {
	r := gin.Default()

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 存活探针
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "BookCourier server is running")
	})

	authed := middleware.IdentityAuth(verifier)

	// auth 登录建档
	auth := r.Group("/auth")
	{
		// POST /auth/firebase-login
		auth.POST("/firebase-login", authed, ctl.Auth.Login)
	}

	// books 公开目录 + 创建
	books := r.Group("/books")
	{
		books.GET("", ctl.Book.List)
		books.GET("/latest", ctl.Book.Latest)
		books.GET("/:id", ctl.Book.GetByID)
		// 创建需要已验证身份
		books.POST("", authed, ctl.Book.Create)
	}

	// orders 下单与支付意向
	orders := r.Group("/orders", authed)
	{
		orders.POST("", ctl.Order.Place)
		orders.POST("/:id/payment-intent", ctl.Order.CreatePaymentIntent)
	}

	// users 用户侧订单操作
	userOps := r.Group("/users", authed)
	{
		userOps.GET("/my-orders", ctl.Order.MyOrders)
		userOps.PUT("/cancel/:id", ctl.Order.Cancel)
		userOps.PUT("/pay/:id", ctl.Order.Pay)
		userOps.GET("/invoices", ctl.Order.Invoices)
	}

	// wishlist 心愿单
	wishlist := r.Group("/wishlist", authed)
	{
		wishlist.POST("", ctl.Wishlist.Add)
		wishlist.GET("", ctl.Wishlist.List)
		wishlist.DELETE("/:id", ctl.Wishlist.Remove)
	}

	// admin 管理员
	admin := r.Group("/admin", authed, middleware.RequireRole(users, model.RoleAdmin))
	{
		admin.GET("/users", ctl.Admin.ListUsers)
		admin.PATCH("/users/:id/role", ctl.Admin.UpdateUserRole)
		admin.GET("/books", ctl.Admin.ListBooks)
		admin.PATCH("/books/:id/status", ctl.Admin.UpdateBookStatus)
		admin.DELETE("/books/:id", ctl.Admin.DeleteBook)
	}

	// librarian 图书管理员
	librarian := r.Group("/librarian", authed, middleware.RequireRole(users, model.RoleLibrarian))
	{
		librarian.GET("/my-books", ctl.Librarian.MyBooks)
		librarian.PATCH("/books/:id", ctl.Librarian.UpdateBook)
		librarian.GET("/orders", ctl.Librarian.Orders)
		librarian.PATCH("/orders/:id/status", ctl.Librarian.UpdateOrderStatus)
	}

	return r
}
