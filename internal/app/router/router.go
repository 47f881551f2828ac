// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "todo_backend/internal/feature/auth/transport/handler"
	taskhandler "todo_backend/internal/feature/tasks/transport/handler"
	"todo_backend/internal/platform/http/handler"
	jwtmw "todo_backend/internal/platform/jwt"
)

// NewRouter はすべてのエンドポイントを登録したginエンジンを生成します。
func NewRouter(authH *authhandler.AuthHandler, taskH *taskhandler.TaskHandler, verifier jwtmw.Verifier) *gin.Engine {
	r := gin.Default()
	// CORS のデフォルト設定を有効
	r.Use(cors.Default())

	// 認証不要
	r.GET("/healthz", handler.Health)

	auth := r.Group("/auth")
	{
		// 新規ユーザー登録
		auth.POST("/register", authH.Register)
		// ログイン（トークンペア発行）
		auth.POST("/login", authH.Login)
		// アクセストークン再発行
		auth.POST("/refresh", authH.Refresh)
		// ログアウト（ステートレスな応答のみ）
		auth.POST("/logout", authH.Logout)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーにアクセストークンが必要になる
	tasks := r.Group("/tasks")
	tasks.Use(jwtmw.AuthRequired(verifier))
	{
		tasks.POST("", taskH.Create)
		tasks.GET("", taskH.List)
		tasks.GET("/:id", taskH.GetByID)
		tasks.PUT("/:id", taskH.Update)
		tasks.DELETE("/:id", taskH.Delete)
		tasks.PATCH("/:id/toggle", taskH.ToggleStatus)
	}

	return r
}
