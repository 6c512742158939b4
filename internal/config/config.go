package config

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"os"
	"strconv"
)

// ==================== Config 服务配置 ====================

// Config 进程级配置，全部来自环境变量
type Config struct {
	Port        string
	DatabaseDSN string

	// 数据库连接池与 SQL 日志级别
	DBMaxIdleConns int
	DBMaxOpenConns int
	DBLogLevel     string

	// 身份提供商项目 ID，缺省时从服务账号凭证中解析
	ProjectID string

	// 支付服务
	PaymentAPIURL    string
	PaymentSecretKey string
}

// Load 读取环境变量构造配置
func Load() *Config {
	cfg := &Config{
		Port: getEnv("SERVER_PORT", "8080"),
		DatabaseDSN: getEnv("DATABASE_DSN",
			"host=localhost user=bookcourier password=bookcourier dbname=bookcourier port=5432 sslmode=disable"),
		DBMaxIdleConns:   getEnvInt("DATABASE_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns:   getEnvInt("DATABASE_MAX_OPEN_CONNS", 100),
		DBLogLevel:       getEnv("DATABASE_LOG_LEVEL", "info"),
		ProjectID:        getEnv("FIREBASE_PROJECT_ID", ""),
		PaymentAPIURL:    getEnv("PAYMENT_API_URL", "https://api.stripe.com/v1"),
		PaymentSecretKey: getEnv("PAYMENT_SECRET_KEY", ""),
	}

	if cfg.ProjectID == "" {
		cfg.ProjectID = projectIDFromCredentials()
	}
	if cfg.ProjectID == "" {
		log.Println("警告: 未配置身份提供商项目 ID，令牌校验将全部失败")
	}

	return cfg
}

// projectIDFromCredentials 从服务账号凭证中解析 project_id
// 支持文件路径（FIREBASE_CREDENTIALS）或 base64 内容（FIREBASE_CREDENTIALS_BASE64）
func projectIDFromCredentials() string {
	raw := credentialBytes()
	if len(raw) == 0 {
		return ""
	}

	var cred struct {
		ProjectID string `json:"project_id"`
	}
	if err := json.Unmarshal(raw, &cred); err != nil {
		log.Printf("警告: 服务账号凭证解析失败: %v", err)
		return ""
	}
	return cred.ProjectID
}

func credentialBytes() []byte {
	if path := os.Getenv("FIREBASE_CREDENTIALS"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("警告: 服务账号凭证文件读取失败: %v", err)
			return nil
		}
		return raw
	}

	if blob := os.Getenv("FIREBASE_CREDENTIALS_BASE64"); blob != "" {
		raw, err := base64.StdEncoding.DecodeString(blob)
		if err != nil {
			log.Printf("警告: 服务账号凭证 base64 解码失败: %v", err)
			return nil
		}
		return raw
	}

	return nil
}

// getEnv 读取环境变量，为空时返回默认值
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 读取整型环境变量，为空或非法时返回默认值
func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("警告: %s 取值非法 (%s)，使用默认值 %d", key, raw, defaultValue)
		return defaultValue
	}
	return value
}
