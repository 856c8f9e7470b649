package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/auth/application"
	"github.com/wyfcoding/storefront/internal/auth/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/response"
)

// Handler 认证 HTTP 处理器
type Handler struct {
	cmd *application.AuthCommandService
}

// NewHandler 创建 HTTP 处理器实例
func NewHandler(cmd *application.AuthCommandService) *Handler {
	return &Handler{cmd: cmd}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/auth")
	{
		g.POST("/register", h.Register)
		g.POST("/login", h.Login)
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 用户注册
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Missing required fields")
		return
	}

	user, err := h.cmd.Register(c.Request.Context(), application.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		response.Error(c, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, domain.ErrEmailTaken):
		response.Error(c, http.StatusConflict, "Email already registered")
	case err != nil:
		logging.Error(c.Request.Context(), "Failed to register user", "error", err)
		response.Error(c, http.StatusInternalServerError, "Registration failed")
	default:
		response.Message(c, http.StatusCreated, fmt.Sprintf("User %s registered successfully.", user.Name))
	}
}

// Login 用户登录，返回 access_token
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.cmd.Login(c.Request.Context(), application.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "Invalid email or password")
	case err != nil:
		logging.Error(c.Request.Context(), "Failed to log in", "error", err)
		response.Error(c, http.StatusInternalServerError, "Could not generate token")
	default:
		response.Success(c, http.StatusOK, gin.H{"access_token": token})
	}
}
