package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/wishlist/application"
	"github.com/wyfcoding/storefront/internal/wishlist/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/response"
)

// Handler 心愿单 HTTP 处理器，需挂在鉴权中间件之后
type Handler struct {
	svc *application.WishlistService
}

// NewHandler 创建 HTTP 处理器实例
func NewHandler(svc *application.WishlistService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/wishlist")
	{
		g.GET("", h.List)
		g.POST("", h.Add)
		g.DELETE("/:productId", h.Remove)
	}
}

type addRequest struct {
	ProductID uint `json:"productId"`
}

type lineResponse struct {
	ProductID uint    `json:"ProductID"`
	Name      string  `json:"Name"`
	Price     float64 `json:"Price"`
	ImageURL  string  `json:"img_url"`
}

// List 心愿单列表
func (h *Handler) List(c *gin.Context) {
	lines, err := h.svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to load wishlist", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load wishlist")
		return
	}
	out := make([]lineResponse, len(lines))
	for i, l := range lines {
		out[i] = lineResponse{ProductID: l.ProductID, Name: l.Name, Price: l.Price.InexactFloat64(), ImageURL: l.ImageURL}
	}
	response.Success(c, http.StatusOK, out)
}

// Add 加入心愿单
func (h *Handler) Add(c *gin.Context) {
	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		response.Error(c, http.StatusBadRequest, "Product ID is required")
		return
	}
	err := h.svc.Add(c.Request.Context(), middleware.UserID(c), req.ProductID)
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "Product not found")
	case err != nil:
		logging.Error(c.Request.Context(), "Failed to add wishlist item", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update wishlist")
	default:
		response.Message(c, http.StatusCreated, "Added to wishlist")
	}
}

// Remove 移出心愿单
func (h *Handler) Remove(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("productId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Product ID is required")
		return
	}
	if err := h.svc.Remove(c.Request.Context(), middleware.UserID(c), uint(productID)); err != nil {
		logging.Error(c.Request.Context(), "Failed to remove wishlist item", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	response.Message(c, http.StatusOK, "Removed from wishlist")
}
