package task

import (
	"log"

	"bookcourier/internal/config"

	"github.com/robfig/cron/v3"
)

// RoleReloadTask 角色白名单定时重载
// 白名单文件可以在运行期修改，定时任务将变更同步进内存。
type RoleReloadTask struct {
	Roles *config.RoleTable
	Cron  *cron.Cron
}

// NewRoleReloadTask 创建重载任务
func NewRoleReloadTask(roles *config.RoleTable) *RoleReloadTask {
	return &RoleReloadTask{
		Roles: roles,
		Cron:  cron.New(cron.WithSeconds()), // 支持秒级控制
	}
}

// Start 启动定时任务
func (t *RoleReloadTask) Start() {
	// 每 5 分钟重载一次
	_, err := t.Cron.AddFunc("0 */5 * * * *", func() {
		if err := t.Roles.Reload(); err != nil {
			log.Printf("[Cron] 角色白名单重载失败: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("无法启动角色白名单定时任务: %v", err)
	}

	t.Cron.Start()
	log.Println("角色白名单重载任务已启动 (每5分钟一次)")
}

// Stop 停止定时任务
func (t *RoleReloadTask) Stop() {
	t.Cron.Stop()
}
