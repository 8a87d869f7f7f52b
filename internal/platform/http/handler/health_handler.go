// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

var startedAt = time.Now()

// Health はサービスヘルスチェック用の /health エンドポイントを処理します。
// HTTPメソッドに応じて適切にレスポンスし、キャッシュを防止します。
func Health(c *gin.Context) {
	// 明示的にキャッシュを防止
	c.Header("Cache-Control", "no-store")

	switch c.Request.Method {
	case "HEAD":
		c.Status(200)
	case "OPTIONS":
		c.Status(204)
	default:
		c.JSON(200, gin.H{
			"status": "ok",
			"uptime": time.Since(startedAt).Round(time.Second).String(),
		})
	}
}
