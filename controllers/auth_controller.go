package controllers

import (
	"net/http"

	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/db"
	"Gin_postgres_redis_inventory_tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ===== 注册（仅管理员） =====

func (s *Srv) Register(c *gin.Context) {
	var in struct {
		Username    string `json:"username" binding:"required"`
		DisplayName string `json:"displayName"`
		Password    string `json:"password" binding:"required,min=8"`
		IsAdmin     bool   `json:"isAdmin"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "server error"})
		return
	}
	display := in.DisplayName
	if display == "" {
		display = in.Username
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		DisplayName:  display,
		PasswordHash: hash,
		IsAdmin:      in.IsAdmin,
	}
	if err := s.Repo.CreateUser(c.Request.Context(), u); err != nil {
		if err == db.ErrUsernameTaken {
			c.JSON(http.StatusConflict, app.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, u)
}

// ===== 登录 =====

func (s *Srv) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := s.Repo.FindUserByUsername(c.Request.Context(), in.Username)
	if err != nil {
		// 不区分用户不存在和密码错误
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}
	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(in.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	if err := s.issueSession(c.Request.Context(), c.Writer, u.ID, u.Username, c.ClientIP(), c.Request.UserAgent()); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusOK, app.H{"ok": true, "user": u})
}

// ===== whoami =====

func (s *Srv) WhoAmI(c *app.Ctx) {
	v, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	uid, _ := v.(string)
	name, _ := c.Get("username")
	isAdmin, _ := c.Get("isAdmin")

	c.JSON(http.StatusOK, app.H{
		"userID":   uid,
		"username": name,
		"isAdmin":  isAdmin,
	})
}
