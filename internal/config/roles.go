package config

import (
	"encoding/json"
	"os"
	"strings"
	"sync"

	"bookcourier/internal/model"
)

// ==================== RoleTable 角色白名单 ====================

// RoleTable 邮箱 → 角色映射
// 基础名单来自环境变量（ADMIN_EMAILS / LIBRARIAN_EMAILS，逗号分隔），
// 可选叠加 JSON 文件（ROLE_CONFIG_FILE），文件支持运行期重载。
// admin 优先于 librarian，两者都未命中则为普通用户。
type RoleTable struct {
	mu   sync.RWMutex
	file string

	admins     map[string]struct{}
	librarians map[string]struct{}
}

// roleFile JSON 文件结构
type roleFile struct {
	Admins     []string `json:"admins"`
	Librarians []string `json:"librarians"`
}

// NewRoleTable 从环境变量构造白名单并做首次加载
func NewRoleTable() (*RoleTable, error) {
	t := &RoleTable{
		file: os.Getenv("ROLE_CONFIG_FILE"),
	}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload 重建白名单：环境变量名单始终生效，文件名单叠加其上
func (t *RoleTable) Reload() error {
	admins := splitEmails(os.Getenv("ADMIN_EMAILS"))
	librarians := splitEmails(os.Getenv("LIBRARIAN_EMAILS"))

	if t.file != "" {
		raw, err := os.ReadFile(t.file)
		if err != nil {
			return err
		}
		var rf roleFile
		if err := json.Unmarshal(raw, &rf); err != nil {
			return err
		}
		for _, email := range rf.Admins {
			if email = strings.TrimSpace(email); email != "" {
				admins[email] = struct{}{}
			}
		}
		for _, email := range rf.Librarians {
			if email = strings.TrimSpace(email); email != "" {
				librarians[email] = struct{}{}
			}
		}
	}

	t.mu.Lock()
	t.admins = admins
	t.librarians = librarians
	t.mu.Unlock()
	return nil
}

// RoleFor 解析邮箱对应的角色，admin 先于 librarian 判定
func (t *RoleTable) RoleFor(email string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if _, ok := t.admins[email]; ok {
		return model.RoleAdmin
	}
	if _, ok := t.librarians[email]; ok {
		return model.RoleLibrarian
	}
	return model.RoleUser
}

func splitEmails(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, email := range strings.Split(raw, ",") {
		if email = strings.TrimSpace(email); email != "" {
			set[email] = struct{}{}
		}
	}
	return set
}
