package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookcourier/internal/identity"
	"bookcourier/internal/model"
	"bookcourier/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeVerifier 按令牌查表返回身份
type fakeVerifier struct {
	tokens map[string]*identity.Principal
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*identity.Principal, error) {
	if p, ok := f.tokens[token]; ok {
		return p, nil
	}
	return nil, errors.New("token 无效")
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("打开测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		t.Fatalf("迁移表结构失败: %v", err)
	}
	return db
}

// ==================== IdentityAuth ====================

func newAuthRouter(verifier identity.Verifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", IdentityAuth(verifier), func(c *gin.Context) {
		principal := PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": principal.Email})
	})
	return r
}

func TestIdentityAuth_MissingHeader(t *testing.T) {
	r := newAuthRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestIdentityAuth_BadScheme(t *testing.T) {
	r := newAuthRouter(&fakeVerifier{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestIdentityAuth_InvalidToken(t *testing.T) {
	r := newAuthRouter(&fakeVerifier{tokens: map[string]*identity.Principal{}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestIdentityAuth_ValidToken(t *testing.T) {
	verifier := &fakeVerifier{tokens: map[string]*identity.Principal{
		"good-token": {Subject: "uid-1", Email: "reader@example.com"},
	}}
	r := newAuthRouter(verifier)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", w.Code, w.Body.String())
	}
}

// ==================== RequireRole ====================

func newRoleRouter(verifier identity.Verifier, users repository.UserRepository, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only", IdentityAuth(verifier), RequireRole(users, role), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return r
}

func TestRequireRole(t *testing.T) {
	db := setupTestDB(t)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	if err := users.Create(ctx, &model.User{Email: "boss@example.com", Role: model.RoleAdmin}); err != nil {
		t.Fatalf("创建管理员失败: %v", err)
	}
	if err := users.Create(ctx, &model.User{Email: "reader@example.com", Role: model.RoleUser}); err != nil {
		t.Fatalf("创建普通用户失败: %v", err)
	}

	verifier := &fakeVerifier{tokens: map[string]*identity.Principal{
		"admin-token":   {Subject: "uid-a", Email: "boss@example.com"},
		"user-token":    {Subject: "uid-u", Email: "reader@example.com"},
		"unknown-token": {Subject: "uid-x", Email: "ghost@example.com"},
	}}
	r := newRoleRouter(verifier, users, model.RoleAdmin)

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"管理员放行", "admin-token", http.StatusOK},
		{"普通用户拒绝", "user-token", http.StatusForbidden},
		{"未建档用户拒绝", "unknown-token", http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			r.ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}
