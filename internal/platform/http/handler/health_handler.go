// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Health は /healthz エンドポイントを処理します。
// 死活監視はDBやRedisに依存せず、プロセスが応答できることだけを報告します。
func Health(c *gin.Context) {
	// 監視系が古い結果を使い回さないようキャッシュを禁止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case http.MethodHead:
		// HEADはボディなしの200
		c.Status(http.StatusOK)
	case http.MethodOptions:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
