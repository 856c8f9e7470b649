// Package response 统一 HTTP 响应格式：成功返回 {"message": ...}，失败返回 {"error": ...}
package response

import (
	"github.com/gin-gonic/gin"
)

// Success 直接返回数据
func Success(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Message 返回 {"message": msg}
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

// Error 返回 {"error": msg}
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// Abort 返回错误并终止后续处理
func Abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
