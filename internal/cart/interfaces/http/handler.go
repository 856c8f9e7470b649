package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/cart/application"
	"github.com/wyfcoding/storefront/internal/cart/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/response"
)

// Handler 购物车 HTTP 处理器，需挂在鉴权中间件之后
type Handler struct {
	cmd   *application.CartCommandService
	query *application.CartQueryService
}

// NewHandler 创建 HTTP 处理器实例
func NewHandler(cmd *application.CartCommandService, query *application.CartQueryService) *Handler {
	return &Handler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	g := r.Group("/cart")
	{
		g.GET("", h.GetCart)
		g.POST("", h.AddItem)
		g.DELETE("/item/:id", h.RemoveItem)
	}
}

// AddItemRequest 加购请求，quantity 缺省为 1
type AddItemRequest struct {
	ProductID uint `json:"productId"`
	Quantity  *int `json:"quantity"`
}

type cartLineResponse struct {
	CartItemID uint    `json:"CartItemID"`
	ProductID  uint    `json:"ProductID"`
	Quantity   int     `json:"Quantity"`
	Name       string  `json:"Name"`
	Price      float64 `json:"Price"`
	ImageURL   string  `json:"img_url"`
}

// GetCart 当前用户的购物车
func (h *Handler) GetCart(c *gin.Context) {
	lines, err := h.query.GetCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		logging.Error(c.Request.Context(), "Failed to load cart", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	out := make([]cartLineResponse, len(lines))
	for i, l := range lines {
		out[i] = cartLineResponse{
			CartItemID: l.ItemID,
			ProductID:  l.ProductID,
			Quantity:   l.Quantity,
			Name:       l.Name,
			Price:      l.Price.InexactFloat64(),
			ImageURL:   l.ImageURL,
		}
	}
	response.Success(c, http.StatusOK, out)
}

// AddItem 加入购物车
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == 0 {
		response.Error(c, http.StatusBadRequest, "Product ID is required")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}

	err := h.cmd.AddItem(c.Request.Context(), application.AddItemCommand{
		UserID:    middleware.UserID(c),
		ProductID: req.ProductID,
		Quantity:  qty,
	})
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		response.Error(c, http.StatusBadRequest, "Quantity must be at least 1")
	case errors.Is(err, domain.ErrProductNotFound):
		response.Error(c, http.StatusNotFound, "Product not found")
	case err != nil:
		logging.Error(c.Request.Context(), "Failed to add cart item", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to add item to cart")
	default:
		response.Message(c, http.StatusCreated, "Item added to cart")
	}
}

// RemoveItem 按条目 ID 移除
func (h *Handler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusNotFound, "Item not found in cart")
		return
	}

	err = h.cmd.RemoveItem(c.Request.Context(), application.RemoveItemCommand{
		UserID: middleware.UserID(c),
		ItemID: uint(itemID),
	})
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		response.Error(c, http.StatusNotFound, "Item not found in cart")
	case err != nil:
		logging.Error(c.Request.Context(), "Failed to remove cart item", "error", err)
		response.Error(c, http.StatusInternalServerError, "Failed to remove item")
	default:
		response.Message(c, http.StatusOK, "Item removed from cart")
	}
}
