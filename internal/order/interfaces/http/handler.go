package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/storefront/internal/order/application"
	"github.com/wyfcoding/storefront/internal/order/domain"
	"github.com/wyfcoding/storefront/pkg/logging"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/response"
)

// OrderHandler HTTP 处理器，需挂在鉴权中间件之后
type OrderHandler struct {
	cmd *application.OrderCommandService
}

// NewOrderHandler 创建 HTTP 处理器实例
func NewOrderHandler(cmd *application.OrderCommandService) *OrderHandler {
	return &OrderHandler{cmd: cmd}
}

// RegisterRoutes 注册路由
func (h *OrderHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/orders", h.PlaceOrder)
}

// PlaceOrder 以当前购物车下单
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	order, err := h.cmd.PlaceOrder(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		var stockErr *domain.InsufficientStockError
		switch {
		case errors.Is(err, domain.ErrEmptyCart):
			response.Error(c, http.StatusBadRequest, "Cart is empty")
		case errors.As(err, &stockErr):
			response.Error(c, http.StatusBadRequest, "Not enough stock for "+stockErr.ProductName)
		default:
			logging.Error(c.Request.Context(), "Failed to place order", "error", err)
			response.Error(c, http.StatusInternalServerError, "Order placement failed: "+err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Order placed successfully!",
		"OrderID": order.ID,
	})
}
