// app/bootstrap.go
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"

	"Gin_postgres_redis_inventory_tracker/db"
	"Gin_postgres_redis_inventory_tracker/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin 首次启动时种一个管理员账号。
// 已有管理员则跳过；未配置密码时生成一个一次性密码打到日志。
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapUsername == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		log.Printf("bootstrap: count admins: %v", err)
		return
	}
	if n > 0 {
		return
	}

	pwd := cfg.BootstrapPassword
	generated := false
	if pwd == "" {
		buf := make([]byte, 12)
		rand.Read(buf)
		pwd = hex.EncodeToString(buf)
		generated = true
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap: hash password: %v", err)
		return
	}

	u := &models.User{
		ID:           uuid.NewString(),
		Username:     cfg.BootstrapUsername,
		DisplayName:  cfg.BootstrapUsername,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap admin failed: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] No admin found, created admin user %s", u.Username)
	if generated {
		log.Printf("[BOOTSTRAP] One-time password: %s (change it after first login)", pwd)
	}
}
