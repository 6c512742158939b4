package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ==================== 支付边界 ====================

// PaymentIntent 支付意向
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// PaymentProvider 支付能力边界
// 扣款在外部支付服务完成，这里只负责创建支付意向。
type PaymentProvider interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error)
}

// ==================== Stripe 风格实现 ====================

// PaymentConfig 支付服务配置
type PaymentConfig struct {
	APIURL    string // 形如 https://api.stripe.com/v1
	SecretKey string
}

type restyPaymentProvider struct {
	cfg    *PaymentConfig
	client *resty.Client
}

// NewPaymentProvider 创建支付客户端
func NewPaymentProvider(cfg *PaymentConfig) PaymentProvider {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetRetryCount(2)

	return &restyPaymentProvider{cfg: cfg, client: client}
}

// intentResponse 支付服务返回体
type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

func (p *restyPaymentProvider) CreateIntent(ctx context.Context, amountCents int64, currency string) (*PaymentIntent, error) {
	var result intentResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+p.cfg.SecretKey).
		SetFormData(map[string]string{
			"amount":                 strconv.FormatInt(amountCents, 10),
			"currency":               strings.ToLower(currency),
			"payment_method_types[]": "card",
		}).
		SetResult(&result).
		Post(p.cfg.APIURL + "/payment_intents")
	if err != nil {
		return nil, fmt.Errorf("支付服务请求失败: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("支付服务返回错误: %s", resp.Status())
	}

	return &PaymentIntent{
		ID:           result.ID,
		ClientSecret: result.ClientSecret,
	}, nil
}
