package routes

import (
	"Gin_postgres_redis_inventory_tracker/app"
	"Gin_postgres_redis_inventory_tracker/controllers"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	uc := controllers.GetUserController(s.Repo, s.GetAppSess(), a.Config)
	itemCtl := controllers.NewItemController(s)
	catCtl := controllers.NewCategoryController(s)

	// 复用的中间件
	authMW := app.AuthRequired(s.GetAppSess(), s.Repo, a.Config)
	adminMW := app.AdminOnly(a.Config, s.Repo)
	seenMW := app.TouchLastSeen(s.Repo, a.RDB, 5*time.Minute)
	secureCookie := strings.HasPrefix(a.Config.WebOrigin, "https://")

	// ------------------------------
	// 登录/登出
	// ------------------------------
	auth := r.Group("/auth")
	{
		auth.POST("/login", s.Login)
	}

	authed := auth.Group("", authMW, seenMW)
	{
		authed.GET("/whoami", s.WhoAmI)

		authed.POST("/logout", func(c *app.Ctx) {
			if ck, err := c.Request.Cookie(app.AppSessionCookie); err == nil && ck.Value != "" {
				_ = s.AppSess.Delete(c.Request.Context(), ck.Value)
			}
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     app.AppSessionCookie,
				Value:    "",
				Path:     "/",
				MaxAge:   -1,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   secureCookie,
			})
			c.JSON(http.StatusOK, app.H{"ok": true})
		})

		// 开新账号（仅管理员）
		authed.POST("/register", adminMW, s.Register)
	}

	// ------------------------------
	// 用户管理（仅管理员）
	// ------------------------------
	users := r.Group("/api/users", authMW, adminMW)
	{
		users.GET("", uc.ListUsers) // ?q=&page=&size=
		users.GET("/:id", uc.GetUser)
		users.DELETE("/:id", uc.DeleteUser)
	}

	// ------------------------------
	// 分类
	// ------------------------------
	cats := r.Group("/api/categories", authMW, seenMW)
	{
		cats.GET("", catCtl.ListCategories)
		cats.POST("", catCtl.CreateCategory)
		cats.PUT("/:id", catCtl.RenameCategory)
		cats.DELETE("/:id", adminMW, catCtl.DeleteCategory)
	}

	// ------------------------------
	// 库存（按分类）
	// ------------------------------
	inv := r.Group("/api/inventory", authMW, seenMW)
	{
		inv.GET("/:category", itemCtl.ListItemsByCategory)
		inv.POST("/:category", itemCtl.CreateItem)
		inv.GET("/:category/export", itemCtl.ExportCategoryCSV)
	}

	// 单个 item 的读写与 taken 历史
	items := r.Group("/api/items", authMW, seenMW)
	{
		items.GET("", adminMW, itemCtl.ListItemsAdmin) // ?q=&category=&condition=&page=&size=
		items.GET("/:id", itemCtl.GetItem)
		items.PUT("/:id", itemCtl.UpdateItem)
		items.DELETE("/:id", adminMW, itemCtl.DeleteItem)
		items.GET("/:id/history", itemCtl.ItemHistory)
	}
}
