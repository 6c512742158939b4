package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bookcourier/pkg/utils"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== Principal 定义 ====================

// Principal 经过验证的请求身份
type Principal struct {
	Subject string // 身份提供商下发的 uid
	Email   string
	Name    string
	Picture string
}

// Verifier 身份令牌校验器
// 对外部身份提供商的纯边界调用，无本地状态。
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*Principal, error)
}

// ErrInvalidToken 令牌缺失、格式错误或被身份提供商拒绝
var ErrInvalidToken = errors.New("身份令牌无效")

// ==================== Google 身份校验 ====================

const (
	// 签名证书下发地址（kid -> x509 证书 PEM）
	defaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

	// 证书缓存时长，官方证书轮换周期远大于该值
	certCacheTTL = time.Hour
)

// GoogleVerifier 校验 Firebase/Google 身份令牌
// 拉取官方签名证书（带缓存），用 RS256 验签并检查 iss/aud。
type GoogleVerifier struct {
	projectID string
	certsURL  string
	client    *resty.Client
}

// NewGoogleVerifier 创建校验器
func NewGoogleVerifier(projectID string) *GoogleVerifier {
	client := resty.New()
	client.SetTimeout(10 * time.Second)
	client.SetRetryCount(2)

	return &GoogleVerifier{
		projectID: projectID,
		certsURL:  defaultCertsURL,
		client:    client,
	}
}

// SetCertsURL 覆盖证书下发地址（测试用）
func (v *GoogleVerifier) SetCertsURL(url string) {
	v.certsURL = url
}

// Verify 校验令牌并提取身份
func (v *GoogleVerifier) Verify(ctx context.Context, idToken string) (*Principal, error) {
	token, err := jwt.Parse(idToken, func(token *jwt.Token) (interface{}, error) {
		return v.publicKeyFor(ctx, token)
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// iss 必须为 securetoken 且指向本项目
	issuer, err := claims.GetIssuer()
	if err != nil || issuer != "https://securetoken.google.com/"+v.projectID {
		return nil, ErrInvalidToken
	}

	// aud 必须为项目 ID
	audience, err := claims.GetAudience()
	if err != nil || !containsAudience(audience, v.projectID) {
		return nil, ErrInvalidToken
	}

	subject, err := claims.GetSubject()
	if err != nil || subject == "" {
		return nil, ErrInvalidToken
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidToken
	}

	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)

	return &Principal{
		Subject: subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}

// publicKeyFor 按 kid 取签名公钥
func (v *GoogleVerifier) publicKeyFor(ctx context.Context, token *jwt.Token) (interface{}, error) {
	kid, _ := token.Header["kid"].(string)
	if kid == "" {
		return nil, errors.New("令牌缺少 kid")
	}

	certs, err := v.fetchCerts(ctx)
	if err != nil {
		return nil, err
	}

	certPEM, ok := certs[kid]
	if !ok {
		return nil, fmt.Errorf("未找到 kid 对应的签名证书: %s", kid)
	}

	return jwt.ParseRSAPublicKeyFromPEM([]byte(certPEM))
}

// fetchCerts 拉取签名证书，命中缓存时不发起网络请求
func (v *GoogleVerifier) fetchCerts(ctx context.Context) (map[string]string, error) {
	cacheKey := "identity:certs:" + v.certsURL

	raw, ok := utils.GetCache(cacheKey)
	if !ok {
		resp, err := v.client.R().SetContext(ctx).Get(v.certsURL)
		if err != nil {
			return nil, fmt.Errorf("拉取签名证书失败: %w", err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("签名证书服务返回错误: %s", resp.Status())
		}
		raw = resp.String()
		utils.SetCache(cacheKey, raw, certCacheTTL)
	}

	var certs map[string]string
	if err := json.Unmarshal([]byte(raw), &certs); err != nil {
		return nil, fmt.Errorf("签名证书解析失败: %w", err)
	}
	return certs, nil
}

func containsAudience(audience jwt.ClaimStrings, projectID string) bool {
	for _, aud := range audience {
		if aud == projectID {
			return true
		}
	}
	return false
}
